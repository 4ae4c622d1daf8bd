package usecase

import "time"

// 時刻（テストで固定するため）
type Clock interface {
	Now() time.Time
}

// 監査ログの相関IDなど
type IDGenerator interface {
	NewID() string
}
