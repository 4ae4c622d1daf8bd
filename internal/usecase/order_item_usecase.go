package usecase

import (
	"context"
	"encoding/json"

	"orderline/internal/domain/model"
	repo "orderline/internal/repository"

	"golang.org/x/sync/errgroup"
)

// 注文明細の操作。書き込みは必ずトランザクション内で行う。
type OrderItemUsecase struct {
	tx     repo.TransactionManager
	items  repo.ItemRepository
	orders repo.OrderRepository
	lines  repo.OrderItemRepository
	clock  Clock
	ids    IDGenerator
}

func NewOrderItemUsecase(
	tx repo.TransactionManager,
	items repo.ItemRepository,
	orders repo.OrderRepository,
	lines repo.OrderItemRepository,
	clock Clock,
	ids IDGenerator,
) *OrderItemUsecase {
	return &OrderItemUsecase{
		tx:     tx,
		items:  items,
		orders: orders,
		lines:  lines,
		clock:  clock,
		ids:    ids,
	}
}

type AddLineInput struct {
	OrderID  int64
	ItemID   int64
	Quantity int64
}

type OrderLineOutput struct {
	ID         int64  `json:"id"`
	OrderID    int64  `json:"order_id"`
	ItemID     int64  `json:"item_id"`
	ItemName   string `json:"item_name,omitempty"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int64  `json:"quantity"`
	TotalPrice int64  `json:"total_price"`

	OrderStatus string `json:"order_status,omitempty"`
}

type OrderLinesOutput struct {
	OrderID    int64             `json:"order_id"`
	Status     string            `json:"status"`
	Lines      []OrderLineOutput `json:"lines"`
	TotalPrice int64             `json:"total_price"`
}

type DeleteOrderOutput struct {
	OrderID      int64 `json:"order_id"`
	DeletedLines int64 `json:"deleted_lines"`
}

// 監査ログの before/after
type lineSnapshot struct {
	UnitPrice int64 `json:"unit_price"`
	Quantity  int64 `json:"quantity"`
}

// AddLine は注文に明細を追加する。単価はこの時点の商品価格を写し取る。
func (u *OrderItemUsecase) AddLine(ctx context.Context, in AddLineInput) (OrderLineOutput, error) {
	if in.OrderID <= 0 {
		return OrderLineOutput{}, NewError(CodeInvalidArgument, "invalid order_id")
	}
	if in.ItemID <= 0 {
		return OrderLineOutput{}, NewError(CodeInvalidArgument, "invalid item_id")
	}
	if in.Quantity < 1 {
		return OrderLineOutput{}, NewError(CodeInvalidArgument, "invalid quantity")
	}

	var out OrderLineOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if err != nil {
			return fromRepo(err, "order")
		}
		if o.IsCanceled() {
			return NewError(CodeFailedPrecondition, "order is canceled")
		}

		it, err := r.Items().FindByID(ctx, in.ItemID)
		if err != nil {
			return fromRepo(err, "item")
		}

		//スナップショット
		oi, err := model.NewOrderItem(model.Resolved(it.ID, it), model.Resolved(o.ID, o), it.Price, in.Quantity)
		if err != nil {
			return fromRepo(err, "order item")
		}
		if err := r.OrderItems().Save(ctx, oi); err != nil {
			return fromRepo(err, "order item")
		}

		out = toLineOutput(oi)
		return nil
	})
	if err != nil {
		return OrderLineOutput{}, err
	}
	return out, nil
}

// AdjustQuantity は数量を訂正して監査ログを残す。
func (u *OrderItemUsecase) AdjustQuantity(ctx context.Context, actorID int64, lineID int64, quantity int64) (OrderLineOutput, error) {
	return u.correct(ctx, actorID, lineID, model.AuditActionCorrectQuantity, func(oi *model.OrderItem) error {
		return oi.AdjustQuantity(quantity)
	})
}

// CorrectUnitPrice は単価を訂正して監査ログを残す。
func (u *OrderItemUsecase) CorrectUnitPrice(ctx context.Context, actorID int64, lineID int64, unitPrice int64) (OrderLineOutput, error) {
	return u.correct(ctx, actorID, lineID, model.AuditActionCorrectPrice, func(oi *model.OrderItem) error {
		return oi.CorrectUnitPrice(unitPrice)
	})
}

func (u *OrderItemUsecase) correct(
	ctx context.Context,
	actorID int64,
	lineID int64,
	action model.AuditAction,
	apply func(oi *model.OrderItem) error,
) (OrderLineOutput, error) {
	if actorID <= 0 {
		return OrderLineOutput{}, NewError(CodeInvalidArgument, "invalid actor")
	}
	if lineID <= 0 {
		return OrderLineOutput{}, NewError(CodeInvalidArgument, "invalid id")
	}

	var out OrderLineOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		oi, err := r.OrderItems().FindByID(ctx, lineID)
		if err != nil {
			return fromRepo(err, "order item")
		}

		// 取消済みの注文の明細は訂正しない
		if err := oi.LoadOrder(ctx, r.Orders()); err != nil {
			return fromRepo(err, "order")
		}
		if o, _ := oi.Order().Get(); o.IsCanceled() {
			return NewError(CodeFailedPrecondition, "order is canceled")
		}

		before := lineSnapshot{UnitPrice: oi.UnitPrice(), Quantity: oi.Quantity()}
		if err := apply(oi); err != nil {
			return fromRepo(err, "order item")
		}
		after := lineSnapshot{UnitPrice: oi.UnitPrice(), Quantity: oi.Quantity()}

		out = toLineOutput(oi)
		// 同じ値なら何もしない
		if before == after {
			return nil
		}

		if err := r.OrderItems().Save(ctx, oi); err != nil {
			return fromRepo(err, "order item")
		}

		return u.audit(ctx, r, actorID, action, model.AuditResourceOrderItem, oi.ID(), before, after)
	})
	if err != nil {
		return OrderLineOutput{}, err
	}
	return out, nil
}

// GetLine は明細を取得し、商品と注文の参照を読み込んで返す。
func (u *OrderItemUsecase) GetLine(ctx context.Context, lineID int64) (OrderLineOutput, error) {
	if lineID <= 0 {
		return OrderLineOutput{}, NewError(CodeInvalidArgument, "invalid id")
	}

	oi, err := u.lines.FindByID(ctx, lineID)
	if err != nil {
		return OrderLineOutput{}, fromRepo(err, "order item")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := oi.LoadItem(gctx, u.items); err != nil {
			return fromRepo(err, "item")
		}
		return nil
	})
	g.Go(func() error {
		if err := oi.LoadOrder(gctx, u.orders); err != nil {
			return fromRepo(err, "order")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return OrderLineOutput{}, err
	}

	return toLineOutput(oi), nil
}

// ListOrderLines は注文の明細一覧と合計。
func (u *OrderItemUsecase) ListOrderLines(ctx context.Context, orderID int64) (OrderLinesOutput, error) {
	if orderID <= 0 {
		return OrderLinesOutput{}, NewError(CodeInvalidArgument, "invalid order_id")
	}

	var out OrderLinesOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return fromRepo(err, "order")
		}
		lines, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return fromRepo(err, "order item")
		}

		out = OrderLinesOutput{
			OrderID: o.ID,
			Status:  string(o.Status),
			Lines:   make([]OrderLineOutput, 0, len(lines)),
		}
		for _, oi := range lines {
			out.Lines = append(out.Lines, toLineOutput(oi))
			out.TotalPrice += oi.TotalPrice()
		}
		return nil
	})
	if err != nil {
		return OrderLinesOutput{}, err
	}
	return out, nil
}

// DeleteOrder は注文を明細ごと削除する（明細 → 注文の順）。
func (u *OrderItemUsecase) DeleteOrder(ctx context.Context, actorID int64, orderID int64) (DeleteOrderOutput, error) {
	if actorID <= 0 {
		return DeleteOrderOutput{}, NewError(CodeInvalidArgument, "invalid actor")
	}
	if orderID <= 0 {
		return DeleteOrderOutput{}, NewError(CodeInvalidArgument, "invalid order_id")
	}

	var out DeleteOrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return fromRepo(err, "order")
		}

		n, err := r.OrderItems().DeleteByOrderID(ctx, orderID)
		if err != nil {
			return fromRepo(err, "order item")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return fromRepo(err, "order")
		}

		out = DeleteOrderOutput{OrderID: orderID, DeletedLines: n}
		before := map[string]any{"status": o.Status, "lines": n}
		return u.audit(ctx, r, actorID, model.AuditActionDeleteOrder, model.AuditResourceOrder, orderID, before, nil)
	})
	if err != nil {
		return DeleteOrderOutput{}, err
	}
	return out, nil
}

func (u *OrderItemUsecase) audit(
	ctx context.Context,
	r repo.TxRepos,
	actorID int64,
	action model.AuditAction,
	resourceType model.AuditResourceType,
	resourceID int64,
	before, after any,
) error {
	beforeJSON, err := marshalOrEmpty(before)
	if err != nil {
		return &Error{Code: CodeInternal, Message: "encode audit log", Err: err}
	}
	afterJSON, err := marshalOrEmpty(after)
	if err != nil {
		return &Error{Code: CodeInternal, Message: "encode audit log", Err: err}
	}

	if _, err := r.AuditLogs().Create(ctx, model.AuditLog{
		CorrelationID: u.ids.NewID(),
		ActorID:       actorID,
		Action:        action,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
		BeforeJSON:    beforeJSON,
		AfterJSON:     afterJSON,
		CreatedAt:     u.clock.Now(),
	}); err != nil {
		return fromRepo(err, "audit log")
	}
	return nil
}

func marshalOrEmpty(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func toLineOutput(oi *model.OrderItem) OrderLineOutput {
	out := OrderLineOutput{
		ID:         oi.ID(),
		OrderID:    oi.Order().Key(),
		ItemID:     oi.Item().Key(),
		UnitPrice:  oi.UnitPrice(),
		Quantity:   oi.Quantity(),
		TotalPrice: oi.TotalPrice(),
	}
	// 読み込み済みの参照だけ出す
	if it, ok := oi.Item().Get(); ok {
		out.ItemName = it.Name
	}
	if o, ok := oi.Order().Get(); ok {
		out.OrderStatus = string(o.Status)
	}
	return out
}
