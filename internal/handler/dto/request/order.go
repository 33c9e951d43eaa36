package request

import "strings"

type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest deliberately leaves checkout fields unbound: field-level
// validation runs in the domain so the response carries every violation at
// once instead of the first binding failure.
type PlaceOrderRequest struct {
	Items         []OrderItemRequest `json:"items"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Email         string             `json:"email"`
	Street        string             `json:"street"`
	City          string             `json:"city"`
	State         string             `json:"state"`
	Zipcode       string             `json:"zipcode"`
	Country       string             `json:"country"`
	Phone         string             `json:"phone"`
	PaymentMethod string             `json:"payment_method" binding:"required"`
	Region        string             `json:"region" binding:"required"`
	VoucherCode   *string            `json:"voucher_code,omitempty"`
}

func (r PlaceOrderRequest) GetVoucherCode() *string {
	if r.VoucherCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.VoucherCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type UpdateOrderStatusRequest struct {
	Status         string  `json:"status" binding:"required"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}

type AdjustOrderRequest struct {
	DiscountKind string  `json:"discount_kind" binding:"required"`
	VoucherCode  *string `json:"voucher_code,omitempty"`
	Reason       string  `json:"reason" binding:"required"`
}
