package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Conflict(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

// NotVerified is returned when a caller has no accepted identity attestation
// on record and attempts an action gated by verification.
func NotVerified(message string) *AppError {
	return &AppError{
		Code:    "NOT_VERIFIED",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     nil,
	}
}

func InvalidDeadline(message string) *AppError {
	return &AppError{
		Code:    "INVALID_DEADLINE",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     nil,
	}
}

func InvalidReward(message string) *AppError {
	return &AppError{
		Code:    "INVALID_REWARD",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     nil,
	}
}

func InsufficientBalance(message string) *AppError {
	return &AppError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     nil,
	}
}

// NoEscrow signals a settled or missing escrow entry behind a live service.
// The lifecycle guards make this unreachable; it exists so a broken ledger
// surfaces loudly instead of double-paying.
func NoEscrow(message string, err error) *AppError {
	return &AppError{
		Code:    "NO_ESCROW",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    "TOO_MANY_REQUESTS",
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     nil,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
