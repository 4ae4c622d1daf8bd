package repository

import "errors"

var ErrNotFound = errors.New("not found")

// 外部キー制約で保存できなかった（参照先の Item / Order が無い等）。
var ErrReferenceViolation = errors.New("reference violation")
