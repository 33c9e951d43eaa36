//go:build unit

package pricing_test

import (
	"testing"

	"dicetrails/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== TestVoucherSelection =====

func TestVoucherSelection(t *testing.T) {
	tests := []struct {
		name    string
		kind    pricing.VoucherKind
		value   string
		wantErr error
	}{
		{"valid percentage", pricing.VoucherPercentage, "15", nil},
		{"valid fixed", pricing.VoucherFixed, "10", nil},
		{"percentage at 100 is valid", pricing.VoucherPercentage, "100", nil},
		{"percentage over 100", pricing.VoucherPercentage, "100.01", pricing.ErrInvalidVoucherPercent},
		{"zero value", pricing.VoucherFixed, "0", pricing.ErrInvalidVoucherValue},
		{"negative value", pricing.VoucherFixed, "-5", pricing.ErrInvalidVoucherValue},
		{"unknown kind", pricing.VoucherKind("points"), "10", pricing.ErrUnknownVoucherKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := decimal.NewFromString(tt.value)
			require.NoError(t, err)

			sel, err := pricing.VoucherSelection("WELCOME10", tt.kind, value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, pricing.DiscountVoucher, sel.Kind())
			assert.Equal(t, "WELCOME10", sel.VoucherCode())
			assert.Equal(t, tt.kind, sel.VoucherKind())
			assert.True(t, sel.VoucherValue().Equal(value))
		})
	}
}

func TestSelectionConstructors(t *testing.T) {
	assert.Equal(t, pricing.DiscountNone, pricing.NoDiscount().Kind())
	assert.Equal(t, pricing.DiscountNewsletter, pricing.NewsletterSelection().Kind())
}
