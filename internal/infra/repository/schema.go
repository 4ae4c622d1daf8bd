package repository

import "gorm.io/gorm"

// AutoMigrate はテーブルが無ければ作る（バージョン管理されたマイグレーションではない）。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ItemRow{},
		&OrderRow{},
		&OrderItemRow{},
		&AuditLogRow{},
	)
}
