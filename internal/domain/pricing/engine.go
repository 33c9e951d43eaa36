package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart must contain at least one line")

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// OrderTotals is the pricing breakdown frozen into an order at creation time.
// Total = Subtotal - DiscountAmount + ShippingFee, floored at zero. All
// monetary fields are rounded to 2 decimal places as the final step; the
// computation itself runs on unrounded decimals so rounding error never
// compounds across lines.
type OrderTotals struct {
	Subtotal       decimal.Decimal
	DiscountKind   DiscountKind
	DiscountAmount decimal.Decimal
	ShippingFee    decimal.Decimal
	Region         Region
	Total          decimal.Decimal
}

// ComputeTotals derives the full pricing breakdown for a cart. It is pure and
// deterministic: identical inputs always produce identical totals, which is
// what lets an order's frozen totals be re-verified from its line snapshots
// long after catalog prices have moved.
//
// The free-shipping threshold is compared against the discounted subtotal,
// so a discount can drop an order below the free-shipping line.
func ComputeTotals(lines []CartLine, selection Selection, region Region) (OrderTotals, error) {
	if len(lines) == 0 {
		return OrderTotals{}, ErrEmptyCart
	}

	tier, err := TierFor(region)
	if err != nil {
		return OrderTotals{}, err
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.quantity < 1 {
			return OrderTotals{}, ErrInvalidQuantity
		}
		subtotal = subtotal.Add(line.LineTotal())
	}

	discount := selection.discountAmount(subtotal)
	fee := shippingFee(tier, subtotal.Sub(discount))

	total := subtotal.Sub(discount).Add(fee)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return OrderTotals{
		Subtotal:       subtotal.Round(2),
		DiscountKind:   selection.Kind(),
		DiscountAmount: discount.Round(2),
		ShippingFee:    fee.Round(2),
		Region:         region,
		Total:          total.Round(2),
	}, nil
}
