package model

import "time"

type OrderStatus string

const (
	OrderStatusOrder  OrderStatus = "ORDER"
	OrderStatusCancel OrderStatus = "CANCEL"
)

// 注文。明細のライフサイクルを持つ側。
type Order struct {
	ID        int64       `json:"id"`
	MemberID  int64       `json:"member_id"`
	OrderDate time.Time   `json:"order_date"`
	Status    OrderStatus `json:"status"`
}

func (o Order) IsCanceled() bool {
	return o.Status == OrderStatusCancel
}
