package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Order errors
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderForbidden    = errors.New("order does not belong to user")
	ErrDuplicateOrder    = errors.New("duplicate order")
	ErrInsufficientStock = errors.New("insufficient stock")

	// Voucher errors
	ErrVoucherInvalid = errors.New("voucher invalid or inactive")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Product errors
	ErrProductNotFound = errors.New("product not found")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrStoreUnavailable        = errors.New("store temporarily unavailable")
)
