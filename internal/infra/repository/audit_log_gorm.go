package repository

import (
	"context"

	"orderline/internal/domain/model"
	repo "orderline/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, log model.AuditLog) (int64, error) {
	row := toAuditLogRow(log)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, errors.Wrap(err, "insert audit log")
	}
	return row.ID, nil
}

func (r *auditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&AuditLogRow{})

	cond := map[string]any{}
	if filter.ActorID != nil {
		cond["ACTOR_ID"] = *filter.ActorID
	}
	if filter.Action != nil {
		cond["ACTION"] = string(*filter.Action)
	}
	if filter.ResourceType != nil {
		cond["RESOURCE_TYPE"] = string(*filter.ResourceType)
	}
	if filter.ResourceID != nil {
		cond["RESOURCE_ID"] = *filter.ResourceID
	}
	if filter.CorrelationID != "" {
		cond["CORRELATION_ID"] = filter.CorrelationID
	}
	if len(cond) > 0 {
		q = q.Where(cond)
	}
	if filter.Since != nil {
		q = q.Where(clause.Gte{Column: clause.Column{Name: "CREATED_AT"}, Value: *filter.Since})
	}

	//新しい順
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "AUDIT_LOG_ID"}, Desc: true})

	// limit/offset
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	q = q.Limit(limit).Offset(filter.Offset)

	var rows []AuditLogRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list audit logs")
	}
	logs := make([]model.AuditLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, toAuditLog(row))
	}
	return logs, nil
}
