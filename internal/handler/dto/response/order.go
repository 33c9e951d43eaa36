package response

import (
	"time"

	"dicetrails/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type OrderLineResponse struct {
	ProductID       uuid.UUID       `json:"productId"`
	ProductName     string          `json:"productName"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent int32           `json:"discountPercent"`
	Quantity        int32           `json:"quantity"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
}

type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"orderNumber"`
	UserID         uuid.UUID           `json:"userId"`
	UserEmail      string              `json:"userEmail"`
	Status         string              `json:"status"`
	Lines          []OrderLineResponse `json:"lines"`
	FirstName      string              `json:"firstName"`
	LastName       string              `json:"lastName"`
	Email          string              `json:"email"`
	Street         string              `json:"street"`
	City           string              `json:"city"`
	State          string              `json:"state"`
	Zipcode        string              `json:"zipcode"`
	Country        string              `json:"country"`
	Phone          string              `json:"phone"`
	PaymentMethod  string              `json:"paymentMethod"`
	Region         string              `json:"region"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountKind   string              `json:"discountKind"`
	DiscountAmount decimal.Decimal     `json:"discountAmount"`
	ShippingFee    decimal.Decimal     `json:"shippingFee"`
	Total          decimal.Decimal     `json:"total"`
	VoucherCode    *string             `json:"voucherCode,omitempty"`
	TrackingNumber *string             `json:"trackingNumber,omitempty"`
	PlacedAt       time.Time           `json:"placedAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

type OrderListResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	Status      string          `json:"status"`
	Region      string          `json:"region"`
	Total       decimal.Decimal `json:"total"`
	PlacedAt    time.Time       `json:"placedAt"`
}

type AdjustmentResponse struct {
	ID                 uuid.UUID       `json:"id"`
	OrderID            uuid.UUID       `json:"orderId"`
	AdjustedBy         uuid.UUID       `json:"adjustedBy"`
	Reason             string          `json:"reason"`
	PreviousDiscount   decimal.Decimal `json:"previousDiscount"`
	NewDiscount        decimal.Decimal `json:"newDiscount"`
	PreviousTotal      decimal.Decimal `json:"previousTotal"`
	NewTotal           decimal.Decimal `json:"newTotal"`
	DiscountKindBefore string          `json:"discountKindBefore"`
	DiscountKindAfter  string          `json:"discountKindAfter"`
	CreatedAt          time.Time       `json:"createdAt"`
}

func FromOrderView(view *queries.OrderView) *OrderResponse {
	var resp OrderResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromOrderListItem(item *queries.OrderListItem) *OrderListResponse {
	var resp OrderListResponse
	_ = copier.Copy(&resp, item)
	return &resp
}

func FromAdjustmentView(view *queries.AdjustmentView) *AdjustmentResponse {
	var resp AdjustmentResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
