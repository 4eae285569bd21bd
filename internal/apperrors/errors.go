package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrTimeout indicates that an operation was cancelled before it could complete.
var ErrTimeout = errors.New("operation timed out")

// ErrInternal indicates an unexpected failure that is not the caller's fault.
var ErrInternal = errors.New("internal error")

// Code is the stable, machine readable identifier returned to API clients.
type Code string

const (
	CodeAccountNotFound            Code = "ACCOUNT_NOT_FOUND"
	CodeTransactionNotFound        Code = "TRANSACTION_NOT_FOUND"
	CodeInvalidAmount              Code = "INVALID_AMOUNT"
	CodeDestinationAccountRequired Code = "DESTINATION_ACCOUNT_REQUIRED"
	CodeInsufficientBalance        Code = "INSUFFICIENT_BALANCE"
	CodeDailyLimitExceeded         Code = "DAILY_LIMIT_EXCEEDED"
	CodeFavoriteLimitExceeded      Code = "FAVORITE_LIMIT_EXCEEDED"
	CodeDuplicateTransaction       Code = "DUPLICATE_TRANSACTION"
	CodeIdempotencyKeyReused       Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRefundExpired              Code = "REFUND_EXPIRED"
	CodeTimeout                    Code = "TIMEOUT_ERROR"

	// Boundary codes, never produced by the ledger itself.
	CodeValidation  Code = "VALIDATION_ERROR"
	CodeInternal    Code = "INTERNAL_ERROR"
	CodeRateLimited Code = "RATE_LIMITED"
)

type codeInfo struct {
	message  string
	category error
}

var codes = map[Code]codeInfo{
	CodeAccountNotFound:            {"Account not found.", ErrNotFound},
	CodeTransactionNotFound:        {"Transaction not found for refund.", ErrNotFound},
	CodeInvalidAmount:              {"Invalid transfer amount.", ErrValidation},
	CodeDestinationAccountRequired: {"The destination account is required.", ErrValidation},
	CodeInsufficientBalance:        {"Insufficient balance for the operation.", ErrValidation},
	CodeDailyLimitExceeded:         {"Daily Pix limit exceeded for your account.", ErrValidation},
	CodeFavoriteLimitExceeded:      {"Daily Pix limit exceeded for favorite accounts.", ErrValidation},
	CodeDuplicateTransaction:       {"This transaction has already been processed.", ErrDuplicate},
	CodeIdempotencyKeyReused:       {"Idempotency key reused with a different payload.", ErrValidation},
	CodeRefundExpired:              {"The refund can no longer be processed. The 1 minute window has passed.", ErrValidation},
	CodeTimeout:                    {"The transfer was cancelled due to a timeout.", ErrTimeout},
	CodeValidation:                 {"Invalid request.", ErrValidation},
	CodeInternal:                   {"Internal server error.", ErrInternal},
	CodeRateLimited:                {"Too many requests. Please try again later.", ErrValidation},
}

// Error is a coded business error. It unwraps to one of the category sentinels above so that
// callers can branch with errors.Is without knowing every code.
type Error struct {
	Code    Code
	Message string
}

// New builds an Error carrying the default message registered for code.
func New(code Code) *Error {
	return &Error{Code: code, Message: codes[code].message}
}

// Newf builds an Error with a custom message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the category sentinel.
func (e *Error) Unwrap() error {
	info, ok := codes[e.Code]
	if !ok {
		return ErrInternal
	}
	return info.category
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// CodeOf extracts the code from err, falling back to CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
