package domain

import (
	"errors"
	"fmt"
)

// 错误分类，传输层按类别映射 HTTP 状态
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrSlotUnavailable = errors.New("time slot unavailable")
	ErrTerminalState   = errors.New("terminal state")
)

// Error 带分类的业务错误；Fields 为字段级提示
type Error struct {
	Kind   error
	Msg    string
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func newErr(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error { return newErr(ErrValidation, format, args...) }
func Unauthorized(format string, args ...any) error {
	return newErr(ErrUnauthorized, format, args...)
}
func Forbidden(format string, args ...any) error { return newErr(ErrForbidden, format, args...) }
func NotFound(format string, args ...any) error  { return newErr(ErrNotFound, format, args...) }
func Conflict(format string, args ...any) error  { return newErr(ErrConflict, format, args...) }

// FieldError 单字段校验失败
func FieldError(field, msg string) error {
	return &Error{Kind: ErrValidation, Msg: field + ": " + msg, Fields: map[string]string{field: msg}}
}

func SlotUnavailable(format string, args ...any) error {
	return newErr(ErrSlotUnavailable, format, args...)
}

func TerminalState(format string, args ...any) error {
	return newErr(ErrTerminalState, format, args...)
}
