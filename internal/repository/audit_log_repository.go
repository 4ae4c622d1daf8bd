package repository

import (
	"context"
	"time"

	"orderline/internal/domain/model"
)

// 監査ログの絞り込み条件。nil は条件なし。
type AuditLogFilter struct {
	ActorID       *int64
	Action        *model.AuditAction
	ResourceType  *model.AuditResourceType
	ResourceID    *int64
	CorrelationID string
	Since         *time.Time
	Limit         int
	Offset        int
}

// 明細訂正の監査ログ。
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) (int64, error)

	//新しい順
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
