//go:build unit

package voucher_test

import (
	"testing"

	"dicetrails/internal/domain/pricing"
	"dicetrails/internal/domain/voucher"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== TestNewCode =====

func TestNewCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    voucher.Code
		wantErr bool
	}{
		{"valid", "WELCOME10", "WELCOME10", false},
		{"lowercase normalized", "welcome10", "WELCOME10", false},
		{"whitespace trimmed", "  SAVE20  ", "SAVE20", false},
		{"minimum length", "ABC", "ABC", false},
		{"too short", "AB", "", true},
		{"too long", "ABCDEFGHIJKLMNOPQRSTU", "", true},
		{"special characters", "SAVE-20", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := voucher.NewCode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, voucher.ErrInvalidCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ===== TestVoucher_Selection =====

func TestVoucher_Selection(t *testing.T) {
	code, err := voucher.NewCode("SAVE20")
	require.NoError(t, err)

	t.Run("active voucher yields selection", func(t *testing.T) {
		v := voucher.ReconstructVoucher(uuid.New(), code, pricing.VoucherPercentage, decimal.NewFromInt(20), true, "")

		sel, err := v.Selection()
		require.NoError(t, err)
		assert.Equal(t, pricing.DiscountVoucher, sel.Kind())
		assert.Equal(t, "SAVE20", sel.VoucherCode())
		assert.True(t, sel.VoucherValue().Equal(decimal.NewFromInt(20)))
	})

	t.Run("inactive voucher is refused", func(t *testing.T) {
		v := voucher.ReconstructVoucher(uuid.New(), code, pricing.VoucherPercentage, decimal.NewFromInt(20), false, "")

		_, err := v.Selection()
		assert.ErrorIs(t, err, voucher.ErrInactiveVoucher)
	})
}

func TestNewVoucher(t *testing.T) {
	code, err := voucher.NewCode("SAVE20")
	require.NoError(t, err)

	t.Run("valid voucher starts active", func(t *testing.T) {
		v, err := voucher.NewVoucher(code, pricing.VoucherFixed, decimal.NewFromInt(10), "RM10 off")
		require.NoError(t, err)
		assert.True(t, v.Active())
		assert.Equal(t, code, v.Code())
	})

	t.Run("rejects invalid value", func(t *testing.T) {
		_, err := voucher.NewVoucher(code, pricing.VoucherFixed, decimal.Zero, "")
		assert.ErrorIs(t, err, pricing.ErrInvalidVoucherValue)
	})

	t.Run("rejects percentage over 100", func(t *testing.T) {
		_, err := voucher.NewVoucher(code, pricing.VoucherPercentage, decimal.NewFromInt(150), "")
		assert.ErrorIs(t, err, pricing.ErrInvalidVoucherPercent)
	})
}
