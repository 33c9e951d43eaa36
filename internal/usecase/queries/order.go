package queries

import (
	"context"
	"time"

	"dicetrails/internal/infra"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type OrderLineView struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent int32           `json:"discount_percent"`
	Quantity        int32           `json:"quantity"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

type OrderView struct {
	ID             uuid.UUID       `json:"id"`
	OrderNumber    string          `json:"order_number"`
	UserID         uuid.UUID       `json:"user_id"`
	UserEmail      string          `json:"user_email"`
	Status         string          `json:"status"`
	Lines          []OrderLineView `json:"lines"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	Street         string          `json:"street"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	Zipcode        string          `json:"zipcode"`
	Country        string          `json:"country"`
	Phone          string          `json:"phone"`
	PaymentMethod  string          `json:"payment_method"`
	Region         string          `json:"region"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountKind   string          `json:"discount_kind"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	ShippingFee    decimal.Decimal `json:"shipping_fee"`
	Total          decimal.Decimal `json:"total"`
	VoucherCode    *string         `json:"voucher_code,omitempty"`
	TrackingNumber *string         `json:"tracking_number,omitempty"`
	PlacedAt       time.Time       `json:"placed_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type OrderListItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	Region      string          `json:"region"`
	Total       decimal.Decimal `json:"total"`
	PlacedAt    time.Time       `json:"placed_at"`
}

type AdjustmentView struct {
	ID                 uuid.UUID       `json:"id"`
	OrderID            uuid.UUID       `json:"order_id"`
	AdjustedBy         uuid.UUID       `json:"adjusted_by"`
	Reason             string          `json:"reason"`
	PreviousDiscount   decimal.Decimal `json:"previous_discount"`
	NewDiscount        decimal.Decimal `json:"new_discount"`
	PreviousTotal      decimal.Decimal `json:"previous_total"`
	NewTotal           decimal.Decimal `json:"new_total"`
	DiscountKindBefore string          `json:"discount_kind_before"`
	DiscountKindAfter  string          `json:"discount_kind_after"`
	CreatedAt          time.Time       `json:"created_at"`
}

type OrderQueries interface {
	// GetByID enforces ownership: customers only see their own orders.
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*OrderView, error)
	// GetByIDSystem skips the ownership check for internal reads such as
	// idempotent replay.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*OrderListItem, error)
	ListAdjustments(ctx context.Context, orderID uuid.UUID) ([]*AdjustmentView, error)
}

type OrderViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*OrderListItem, error)
	FindAdjustmentsByOrderID(ctx context.Context, orderID uuid.UUID) ([]*AdjustmentView, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*OrderView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if actorRole != "admin" && view.UserID != actorID {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *orderQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*OrderListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByUserID(ctx, userID, int32(limit))
}

func (q *orderQueriesImpl) ListAdjustments(ctx context.Context, orderID uuid.UUID) ([]*AdjustmentView, error) {
	return q.repo.FindAdjustmentsByOrderID(ctx, orderID)
}
