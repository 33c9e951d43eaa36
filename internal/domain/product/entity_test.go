//go:build unit

package product_test

import (
	"testing"

	"dicetrails/internal/domain/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ===== TestProduct_HasStock =====

func TestProduct_HasStock(t *testing.T) {
	p := product.ReconstructProduct(uuid.New(), "Catan", decimal.NewFromInt(40), 10, 3)

	tests := []struct {
		name     string
		quantity int
		want     bool
	}{
		{"below stock", 2, true},
		{"exactly stock", 3, true},
		{"above stock", 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.HasStock(tt.quantity))
		})
	}
}

// ===== TestReconstructProduct =====

func TestReconstructProduct(t *testing.T) {
	id := uuid.New()
	p := product.ReconstructProduct(id, "Catan", decimal.NewFromInt(40), 10, 3)

	assert.Equal(t, id, p.ID())
	assert.Equal(t, "Catan", p.Name())
	assert.True(t, decimal.NewFromInt(40).Equal(p.Price()))
	assert.Equal(t, 10, p.DiscountPercent())
	assert.Equal(t, 3, p.Stock())
}
