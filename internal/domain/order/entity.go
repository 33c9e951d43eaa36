package order

import (
	"time"

	"github.com/google/uuid"

	"dicetrails/internal/domain/pricing"
)

// Order aggregates the frozen cart snapshot, the checkout details and the
// totals computed at placement. Totals are never recomputed after creation;
// any later correction happens through an adjustment record, never by
// mutating these fields.
type Order struct {
	id             uuid.UUID
	orderNumber    string
	userID         uuid.UUID
	lines          []pricing.CartLine
	address        Address
	paymentMethod  PaymentMethod
	status         Status
	totals         pricing.OrderTotals
	voucherCode    *string
	trackingNumber *string
	placedAt       time.Time
	updatedAt      time.Time
}

// NewOrder validates the draft, prices it and freezes the result. The order
// number is assigned by the store at persist time and stays empty here.
func NewOrder(now time.Time, userID uuid.UUID, draft Draft, selection pricing.Selection) (*Order, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}
	totals, err := pricing.ComputeTotals(draft.Lines, selection, draft.Region)
	if err != nil {
		return nil, err
	}
	var voucherCode *string
	if selection.Kind() == pricing.DiscountVoucher {
		code := selection.VoucherCode()
		voucherCode = &code
	}
	return &Order{
		id:            uuid.New(),
		userID:        userID,
		lines:         draft.Lines,
		address:       draft.Address,
		paymentMethod: draft.PaymentMethod,
		status:        StatusReadyToShip,
		totals:        totals,
		voucherCode:   voucherCode,
		placedAt:      now,
		updatedAt:     now,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	orderNumber string,
	userID uuid.UUID,
	lines []pricing.CartLine,
	address Address,
	paymentMethod PaymentMethod,
	status Status,
	totals pricing.OrderTotals,
	voucherCode *string,
	trackingNumber *string,
	placedAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:             id,
		orderNumber:    orderNumber,
		userID:         userID,
		lines:          lines,
		address:        address,
		paymentMethod:  paymentMethod,
		status:         status,
		totals:         totals,
		voucherCode:    voucherCode,
		trackingNumber: trackingNumber,
		placedAt:       placedAt,
		updatedAt:      updatedAt,
	}
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) OrderNumber() string          { return o.orderNumber }
func (o *Order) UserID() uuid.UUID            { return o.userID }
func (o *Order) Lines() []pricing.CartLine    { return o.lines }
func (o *Order) Address() Address             { return o.address }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Totals() pricing.OrderTotals  { return o.totals }
func (o *Order) VoucherCode() *string         { return o.voucherCode }
func (o *Order) TrackingNumber() *string      { return o.trackingNumber }
func (o *Order) PlacedAt() time.Time          { return o.placedAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }

// TransitionTo moves the order along the lifecycle. The tracking number is
// only recorded on the move into shipped; other transitions ignore it.
func (o *Order) TransitionTo(to Status, trackingNumber *string, now time.Time) error {
	if !to.IsValid() {
		return &InvalidTransitionError{To: to}
	}
	if !o.status.CanTransitionTo(to) {
		return &InvalidTransitionError{From: o.status, To: to}
	}
	if to == StatusShipped && trackingNumber != nil {
		o.trackingNumber = trackingNumber
	}
	o.status = to
	o.updatedAt = now
	return nil
}

func (o *Order) Cancel(now time.Time) error {
	return o.TransitionTo(StatusCancelled, nil, now)
}
