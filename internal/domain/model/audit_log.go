package model

import "time"

// 明細の訂正操作。
type AuditAction string

const (
	//数量を訂正した操作。
	AuditActionCorrectQuantity AuditAction = "CORRECT_ORDER_ITEM_QUANTITY"
	//単価を訂正した操作。
	AuditActionCorrectPrice AuditAction = "CORRECT_ORDER_ITEM_PRICE"
	//注文ごと明細を削除した操作。
	AuditActionDeleteOrder AuditAction = "DELETE_ORDER"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrderItem AuditResourceType = "order_item"
	AuditResourceOrder     AuditResourceType = "order"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `json:"id"`

	//同じ操作で書いたログをまとめるためのID（uuid）。
	CorrelationID string `json:"correlation_id"`

	//操作した人のID。
	ActorID int64 `json:"actor_id"`

	Action AuditAction `json:"action"`

	ResourceType AuditResourceType `json:"resource_type"`
	ResourceID   int64             `json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `json:"before_json"`
	AfterJSON  string `json:"after_json"`

	CreatedAt time.Time `json:"created_at"`
}
