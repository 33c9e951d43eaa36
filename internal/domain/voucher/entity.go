package voucher

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dicetrails/internal/domain/pricing"
)

var (
	ErrInvalidCode     = errors.New("voucher code must be 3 to 20 uppercase letters or digits")
	ErrInactiveVoucher = errors.New("voucher is not active")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(s string) (Code, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if !codeRegex.MatchString(c) {
		return "", ErrInvalidCode
	}
	return Code(c), nil
}

func (c Code) String() string {
	return string(c)
}

// Voucher is a promotional code with either a percentage or a fixed amount
// off the subtotal.
type Voucher struct {
	id          uuid.UUID
	code        Code
	kind        pricing.VoucherKind
	value       decimal.Decimal
	active      bool
	description string
}

func NewVoucher(code Code, kind pricing.VoucherKind, value decimal.Decimal, description string) (*Voucher, error) {
	if _, err := pricing.VoucherSelection(code.String(), kind, value); err != nil {
		return nil, err
	}
	return &Voucher{
		id:          uuid.New(),
		code:        code,
		kind:        kind,
		value:       value,
		active:      true,
		description: description,
	}, nil
}

func ReconstructVoucher(id uuid.UUID, code Code, kind pricing.VoucherKind, value decimal.Decimal, active bool, description string) *Voucher {
	return &Voucher{
		id:          id,
		code:        code,
		kind:        kind,
		value:       value,
		active:      active,
		description: description,
	}
}

func (v *Voucher) ID() uuid.UUID             { return v.id }
func (v *Voucher) Code() Code                { return v.code }
func (v *Voucher) Kind() pricing.VoucherKind { return v.kind }
func (v *Voucher) Value() decimal.Decimal    { return v.value }
func (v *Voucher) Active() bool              { return v.active }
func (v *Voucher) Description() string       { return v.description }

// Selection converts the voucher into a pricing selection, refusing inactive
// vouchers.
func (v *Voucher) Selection() (pricing.Selection, error) {
	if !v.active {
		return pricing.Selection{}, ErrInactiveVoucher
	}
	return pricing.VoucherSelection(v.code.String(), v.kind, v.value)
}
