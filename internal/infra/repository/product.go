package repository

import (
	"context"

	"dicetrails/internal/domain/product"
	"dicetrails/internal/infra"
	"dicetrails/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(db db.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const selectProductsByIDsQuery = `
SELECT id, name, price, discount_percent, stock
FROM products
WHERE id = ANY($1)`

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx, selectProductsByIDsQuery, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find products by IDs", err)
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		var (
			id              uuid.UUID
			name            string
			price           decimal.Decimal
			discountPercent int
			stock           int
		)
		if err := rows.Scan(&id, &name, &price, &discountPercent, &stock); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		products = append(products, product.ReconstructProduct(id, name, price, discountPercent, stock))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}

	return products, nil
}

const decrementStockQuery = `
UPDATE products
SET stock = stock - $1, updated_at = NOW()
WHERE id = $2 AND stock >= $1`

// DecrementStock refuses to go negative; a missed WHERE clause means the
// product vanished or ran out concurrently.
func (r *ProductRepository) DecrementStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int32) (bool, error) {
	tag, err := tx.Exec(ctx, decrementStockQuery, quantity, productID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to decrement stock", err)
	}
	return tag.RowsAffected() == 1, nil
}
