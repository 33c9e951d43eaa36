package pricing

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity        = errors.New("quantity must be greater than 0")
	ErrNegativeUnitPrice      = errors.New("unit price cannot be negative")
	ErrInvalidDiscountPercent = errors.New("discount percent must be between 0 and 100")
)

// CartLine is a frozen catalog snapshot taken at add-to-cart time.
// UnitPrice and DiscountPercent never track later catalog changes, so an
// existing order's totals stay stable however the catalog moves.
type CartLine struct {
	productID       uuid.UUID
	unitPrice       decimal.Decimal
	discountPercent int
	quantity        int
}

func NewCartLine(productID uuid.UUID, unitPrice decimal.Decimal, discountPercent, quantity int) (CartLine, error) {
	if quantity < 1 {
		return CartLine{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return CartLine{}, ErrNegativeUnitPrice
	}
	if discountPercent < 0 || discountPercent > 100 {
		return CartLine{}, ErrInvalidDiscountPercent
	}
	return CartLine{
		productID:       productID,
		unitPrice:       unitPrice,
		discountPercent: discountPercent,
		quantity:        quantity,
	}, nil
}

func ReconstructCartLine(productID uuid.UUID, unitPrice decimal.Decimal, discountPercent, quantity int) CartLine {
	return CartLine{
		productID:       productID,
		unitPrice:       unitPrice,
		discountPercent: discountPercent,
		quantity:        quantity,
	}
}

func (l CartLine) ProductID() uuid.UUID       { return l.productID }
func (l CartLine) UnitPrice() decimal.Decimal { return l.unitPrice }
func (l CartLine) DiscountPercent() int       { return l.discountPercent }
func (l CartLine) Quantity() int              { return l.quantity }

// EffectiveUnitPrice applies the per-item catalog discount snapshot.
func (l CartLine) EffectiveUnitPrice() decimal.Decimal {
	if l.discountPercent > 0 && l.discountPercent <= 100 {
		factor := one.Sub(decimal.NewFromInt(int64(l.discountPercent)).Div(hundred))
		return l.unitPrice.Mul(factor)
	}
	return l.unitPrice
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(l.quantity)))
}
