package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	ValidationError    Kind = "validation_error"
	InvalidReference   Kind = "invalid_reference"
	InvalidStatus      Kind = "invalid_status"
	SignatureInvalid   Kind = "signature_invalid"
	Unauthenticated    Kind = "unauthenticated"
	Forbidden          Kind = "forbidden"
	NotFound           Kind = "not_found"
	InvalidTransition  Kind = "invalid_transition"
	RateLimited        Kind = "rate_limited"
	GatewayUnavailable Kind = "gateway_unavailable"
	Internal           Kind = "internal_error"
)

var kindStatus = map[Kind]int{
	ValidationError:    http.StatusBadRequest,
	InvalidReference:   http.StatusBadRequest,
	InvalidStatus:      http.StatusBadRequest,
	SignatureInvalid:   http.StatusBadRequest,
	Unauthenticated:    http.StatusUnauthorized,
	Forbidden:          http.StatusForbidden,
	NotFound:           http.StatusNotFound,
	InvalidTransition:  http.StatusConflict,
	RateLimited:        http.StatusTooManyRequests,
	GatewayUnavailable: http.StatusBadGateway,
	Internal:           http.StatusInternalServerError,
}

// HTTPStatus 對應的 http status code, 未知類型視為 500
func (k Kind) HTTPStatus() int {
	if code, ok := kindStatus[k]; ok {
		return code
	}
	return http.StatusInternalServerError
}

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *AppError {
	return &AppError{Kind: kind, Message: msg, Err: err}
}

// KindOf 取出錯誤鏈上第一個 AppError 的類型, 找不到時為 Internal
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}
