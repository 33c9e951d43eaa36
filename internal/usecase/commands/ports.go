package commands

import (
	"context"
	"time"

	"dicetrails/internal/domain/order"
	"dicetrails/internal/domain/product"
	"dicetrails/internal/domain/user"
	"dicetrails/internal/domain/voucher"
	"dicetrails/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Status        string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}

// AdjustmentRecord is the audit trail row written whenever an admin changes
// an order's discount after placement.
type AdjustmentRecord struct {
	OrderID            uuid.UUID
	AdjustedBy         uuid.UUID
	Reason             string
	PreviousDiscount   decimal.Decimal
	NewDiscount        decimal.Decimal
	PreviousTotal      decimal.Decimal
	NewTotal           decimal.Decimal
	DiscountKindBefore string
	DiscountKindAfter  string
}

type OrderRepository interface {
	// Create persists the order and its lines and returns the store-assigned
	// order number.
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (string, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error)
	// UpdateStatus is a compare-and-set on the current status; it reports
	// whether a row was updated.
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, from, to order.Status, trackingNumber *string, now time.Time) (bool, error)
	// ApplyAdjustment rewrites the discount-derived totals of an order.
	ApplyAdjustment(ctx context.Context, tx db.DBTX, id uuid.UUID, discountKind string, voucherCode *string, discountAmount, shippingFee, total decimal.Decimal, now time.Time) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	// ConsumeNewsletterDiscount flips the one-time discount flag and reports
	// whether it was still unused.
	ConsumeNewsletterDiscount(ctx context.Context, tx db.DBTX, userID uuid.UUID) (bool, error)
}

type VoucherRepository interface {
	FindByCode(ctx context.Context, code string) (*voucher.Voucher, error)
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*product.Product, error)
	// DecrementStock reports whether enough stock was available.
	DecrementStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int32) (bool, error)
}

type IdempotencyRepository interface {
	// TryInsert claims the key and reports whether this request now owns it.
	// Rows past their expiry are reclaimed as if absent. A false result means
	// a live request with the same key got there first.
	TryInsert(ctx context.Context, key uuid.UUID, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key uuid.UUID, userID uuid.UUID) (*IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, userID uuid.UUID, responseBodyHash string, resultOrderID uuid.UUID) error
}

type AdjustmentRepository interface {
	Create(ctx context.Context, tx db.DBTX, rec AdjustmentRecord) (uuid.UUID, error)
}
