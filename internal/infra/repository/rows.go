package repository

import (
	"time"

	"orderline/internal/domain/model"
)

// テーブル・カラム名の対応表。ドメイン型にはgormタグを付けず、ここだけで持つ。

type ItemRow struct {
	ID            int64  `gorm:"column:ITEM_ID;primaryKey;autoIncrement"`
	Name          string `gorm:"column:NAME;type:varchar(255);not null"`
	Price         int64  `gorm:"column:PRICE;not null"`
	StockQuantity int64  `gorm:"column:STOCK_QUANTITY;not null;default:0"`
}

func (ItemRow) TableName() string { return "ITEM" }

type OrderRow struct {
	ID        int64     `gorm:"column:ORDER_ID;primaryKey;autoIncrement"`
	MemberID  int64     `gorm:"column:MEMBER_ID;not null;index"`
	OrderDate time.Time `gorm:"column:ORDER_DATE;not null"`
	Status    string    `gorm:"column:STATUS;type:varchar(20);not null"`
}

func (OrderRow) TableName() string { return "ORDERS" }

type OrderItemRow struct {
	ID         int64 `gorm:"column:ORDER_ITEM_ID;primaryKey;autoIncrement"`
	ItemID     int64 `gorm:"column:ITEM_ID;not null;index"`
	OrderID    int64 `gorm:"column:ORDER_ID;not null;index"`
	OrderPrice int64 `gorm:"column:orderPrice;not null"`
	Count      int64 `gorm:"column:count;not null"`

	// FK制約を作るためだけの関連。保存時は Omit(clause.Associations) で無視する。
	Item  *ItemRow  `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Order *OrderRow `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (OrderItemRow) TableName() string { return "ORDER_ITEM" }

type AuditLogRow struct {
	ID            int64     `gorm:"column:AUDIT_LOG_ID;primaryKey;autoIncrement"`
	CorrelationID string    `gorm:"column:CORRELATION_ID;type:varchar(36);not null;index"`
	ActorID       int64     `gorm:"column:ACTOR_ID;not null;index"`
	Action        string    `gorm:"column:ACTION;type:varchar(50);not null;index"`
	ResourceType  string    `gorm:"column:RESOURCE_TYPE;type:varchar(50);not null"`
	ResourceID    int64     `gorm:"column:RESOURCE_ID;not null;index"`
	BeforeJSON    string    `gorm:"column:BEFORE_JSON;type:text"`
	AfterJSON     string    `gorm:"column:AFTER_JSON;type:text"`
	CreatedAt     time.Time `gorm:"column:CREATED_AT;not null;index"`
}

func (AuditLogRow) TableName() string { return "AUDIT_LOG" }

func toItemRow(it model.Item) ItemRow {
	return ItemRow{ID: it.ID, Name: it.Name, Price: it.Price, StockQuantity: it.StockQuantity}
}

func toItem(r ItemRow) model.Item {
	return model.Item{ID: r.ID, Name: r.Name, Price: r.Price, StockQuantity: r.StockQuantity}
}

func toOrderRow(o model.Order) OrderRow {
	return OrderRow{ID: o.ID, MemberID: o.MemberID, OrderDate: o.OrderDate, Status: string(o.Status)}
}

func toOrder(r OrderRow) model.Order {
	return model.Order{ID: r.ID, MemberID: r.MemberID, OrderDate: r.OrderDate, Status: model.OrderStatus(r.Status)}
}

func toOrderItemRow(oi *model.OrderItem) OrderItemRow {
	return OrderItemRow{
		ID:         oi.ID(),
		ItemID:     oi.Item().Key(),
		OrderID:    oi.Order().Key(),
		OrderPrice: oi.UnitPrice(),
		Count:      oi.Quantity(),
	}
}

// 参照は未解決のまま返す（読み込みは Ref.Load で明示的に）。
func toOrderItem(r OrderItemRow) (*model.OrderItem, error) {
	return model.RestoreOrderItem(
		r.ID,
		model.NewRef[model.Item](r.ItemID),
		model.NewRef[model.Order](r.OrderID),
		r.OrderPrice,
		r.Count,
	)
}

func toAuditLogRow(l model.AuditLog) AuditLogRow {
	return AuditLogRow{
		ID:            l.ID,
		CorrelationID: l.CorrelationID,
		ActorID:       l.ActorID,
		Action:        string(l.Action),
		ResourceType:  string(l.ResourceType),
		ResourceID:    l.ResourceID,
		BeforeJSON:    l.BeforeJSON,
		AfterJSON:     l.AfterJSON,
		CreatedAt:     l.CreatedAt,
	}
}

func toAuditLog(r AuditLogRow) model.AuditLog {
	return model.AuditLog{
		ID:            r.ID,
		CorrelationID: r.CorrelationID,
		ActorID:       r.ActorID,
		Action:        model.AuditAction(r.Action),
		ResourceType:  model.AuditResourceType(r.ResourceType),
		ResourceID:    r.ResourceID,
		BeforeJSON:    r.BeforeJSON,
		AfterJSON:     r.AfterJSON,
		CreatedAt:     r.CreatedAt,
	}
}
