package usecase

import (
	"errors"
	"fmt"

	"orderline/internal/domain/model"
	repo "orderline/internal/repository"
)

type Code string

const (
	CodeInvalidArgument    Code = "invalid_argument"
	CodeNotFound           Code = "not_found"
	CodeFailedPrecondition Code = "failed_precondition"
	CodeInternal           Code = "internal"
)

// Error はユースケースが呼び出し側に返すエラー。
// Err は原因（ログ用）で、Message にはそのまま出してよい文言だけを入れる。
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

func AsError(err error) (*Error, bool) {
	var ue *Error
	ok := errors.As(err, &ue)
	return ue, ok
}

// CodeOf はエラーのコード。*Error 以外は internal 扱い。
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if ue, ok := AsError(err); ok {
		return ue.Code
	}
	return CodeInternal
}

// fromRepo はリポジトリ/ドメインのエラーを Error に寄せる。what は "order item" など。
func fromRepo(err error, what string) error {
	if _, ok := AsError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return &Error{Code: CodeNotFound, Message: what + " not found", Err: err}
	case errors.Is(err, model.ErrInvalidArgument):
		return &Error{Code: CodeInvalidArgument, Message: err.Error(), Err: err}
	case errors.Is(err, repo.ErrReferenceViolation):
		return &Error{Code: CodeFailedPrecondition, Message: what + " is still referenced or references a missing record", Err: err}
	default:
		return &Error{Code: CodeInternal, Message: "db error", Err: err}
	}
}
