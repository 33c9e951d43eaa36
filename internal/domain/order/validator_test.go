//go:build unit

package order_test

import (
	"testing"

	"dicetrails/internal/domain/order"
	"dicetrails/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== TestValidateDraft =====

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*builder.OrderBuilder)
		wantFields []string
	}{
		{
			name:       "valid draft passes",
			mutate:     func(b *builder.OrderBuilder) {},
			wantFields: nil,
		},
		{
			name:       "empty cart",
			mutate:     func(b *builder.OrderBuilder) { b.Lines = nil },
			wantFields: []string{"items"},
		},
		{
			name: "all address fields missing are reported together",
			mutate: func(b *builder.OrderBuilder) {
				b.FirstName = ""
				b.LastName = ""
				b.Email = ""
				b.Street = ""
				b.City = ""
				b.State = ""
				b.Zipcode = ""
				b.Country = ""
				b.Phone = ""
			},
			wantFields: []string{
				"first_name", "last_name", "email", "street", "city",
				"state", "zipcode", "country", "phone",
			},
		},
		{
			name:       "whitespace only counts as empty",
			mutate:     func(b *builder.OrderBuilder) { b.City = "   " },
			wantFields: []string{"city"},
		},
		{
			name:       "malformed email",
			mutate:     func(b *builder.OrderBuilder) { b.Email = "not-an-email" },
			wantFields: []string{"email"},
		},
		{
			name:       "email missing tld",
			mutate:     func(b *builder.OrderBuilder) { b.Email = "aina@example" },
			wantFields: []string{"email"},
		},
		{
			name:       "phone too short",
			mutate:     func(b *builder.OrderBuilder) { b.Phone = "123456789" },
			wantFields: []string{"phone"},
		},
		{
			name:       "phone too long",
			mutate:     func(b *builder.OrderBuilder) { b.Phone = "1234567890123456" },
			wantFields: []string{"phone"},
		},
		{
			name:       "phone with letters",
			mutate:     func(b *builder.OrderBuilder) { b.Phone = "01234abcde" },
			wantFields: []string{"phone"},
		},
		{
			name:       "zipcode too short",
			mutate:     func(b *builder.OrderBuilder) { b.Zipcode = "123" },
			wantFields: []string{"zipcode"},
		},
		{
			name:       "zipcode too long",
			mutate:     func(b *builder.OrderBuilder) { b.Zipcode = "12345678901" },
			wantFields: []string{"zipcode"},
		},
		{
			name: "empty field reports exactly one violation",
			mutate: func(b *builder.OrderBuilder) {
				b.Email = ""
				b.Phone = ""
			},
			wantFields: []string{"email", "phone"},
		},
		{
			name: "empty cart and bad fields collect together",
			mutate: func(b *builder.OrderBuilder) {
				b.Lines = nil
				b.Email = "bad"
				b.Zipcode = "1"
			},
			wantFields: []string{"items", "email", "zipcode"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := builder.NewOrderBuilder().With(tt.mutate).BuildDraft()
			err := order.ValidateDraft(draft)

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *order.ValidationError
			require.ErrorAs(t, err, &verr)

			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}

// ===== TestNewPaymentMethod =====

func TestNewPaymentMethod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    order.PaymentMethod
		wantErr bool
	}{
		{"cod", "cod", order.PaymentCOD, false},
		{"bank transfer", "bank_transfer", order.PaymentBankTransfer, false},
		{"card normalized", " CARD ", order.PaymentCard, false},
		{"unknown", "crypto", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := order.NewPaymentMethod(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, order.ErrUnknownPaymentMethod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
