package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidVoucherValue   = errors.New("voucher value must be greater than 0")
	ErrInvalidVoucherPercent = errors.New("percentage voucher must not exceed 100")
	ErrUnknownVoucherKind    = errors.New("unknown voucher kind")
)

type DiscountKind string

const (
	DiscountNone       DiscountKind = "none"
	DiscountNewsletter DiscountKind = "newsletter"
	DiscountVoucher    DiscountKind = "voucher"
)

type VoucherKind string

const (
	VoucherPercentage VoucherKind = "percentage"
	VoucherFixed      VoucherKind = "fixed"
)

// NewsletterRate is the one-time subscriber discount (20% off the subtotal).
var NewsletterRate = decimal.NewFromFloat(0.20)

// Selection is the single resolved discount source for an order. Vouchers and
// the newsletter discount never stack; the caller resolves mutual exclusivity
// (voucher wins) and eligibility before handing the selection to the engine.
type Selection struct {
	kind         DiscountKind
	voucherCode  string
	voucherKind  VoucherKind
	voucherValue decimal.Decimal
}

func NoDiscount() Selection {
	return Selection{kind: DiscountNone}
}

func NewsletterSelection() Selection {
	return Selection{kind: DiscountNewsletter}
}

func VoucherSelection(code string, kind VoucherKind, value decimal.Decimal) (Selection, error) {
	if kind != VoucherPercentage && kind != VoucherFixed {
		return Selection{}, ErrUnknownVoucherKind
	}
	if !value.IsPositive() {
		return Selection{}, ErrInvalidVoucherValue
	}
	if kind == VoucherPercentage && value.GreaterThan(hundred) {
		return Selection{}, ErrInvalidVoucherPercent
	}
	return Selection{
		kind:         DiscountVoucher,
		voucherCode:  code,
		voucherKind:  kind,
		voucherValue: value,
	}, nil
}

func (s Selection) Kind() DiscountKind            { return s.kind }
func (s Selection) VoucherCode() string           { return s.voucherCode }
func (s Selection) VoucherKind() VoucherKind      { return s.voucherKind }
func (s Selection) VoucherValue() decimal.Decimal { return s.voucherValue }

// discountAmount computes the unrounded discount for the given subtotal,
// clamped so it can never exceed the subtotal.
func (s Selection) discountAmount(subtotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch s.kind {
	case DiscountNewsletter:
		amount = subtotal.Mul(NewsletterRate)
	case DiscountVoucher:
		switch s.voucherKind {
		case VoucherPercentage:
			amount = subtotal.Mul(s.voucherValue).Div(hundred)
		case VoucherFixed:
			amount = s.voucherValue
		}
	default:
		return decimal.Zero
	}

	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
