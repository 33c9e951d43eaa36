package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog view consulted at checkout. Orders copy its price
// and discount into line snapshots instead of referencing it, so later
// catalog edits never move an existing order's totals.
type Product struct {
	id              uuid.UUID
	name            string
	price           decimal.Decimal
	discountPercent int
	stock           int
}

func ReconstructProduct(id uuid.UUID, name string, price decimal.Decimal, discountPercent, stock int) *Product {
	return &Product{
		id:              id,
		name:            name,
		price:           price,
		discountPercent: discountPercent,
		stock:           stock,
	}
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) DiscountPercent() int   { return p.discountPercent }
func (p *Product) Stock() int             { return p.stock }

func (p *Product) HasStock(quantity int) bool {
	return p.stock >= quantity
}
