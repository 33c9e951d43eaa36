package repository

import (
	"context"

	"dicetrails/internal/infra"
	"dicetrails/internal/infra/db"
	"dicetrails/internal/usecase/commands"

	"github.com/google/uuid"
)

type AdjustmentRepository struct{}

func NewAdjustmentRepository() *AdjustmentRepository {
	return &AdjustmentRepository{}
}

const insertAdjustmentQuery = `
INSERT INTO order_adjustments (
	order_id, adjusted_by, reason,
	previous_discount, new_discount, previous_total, new_total,
	discount_kind_before, discount_kind_after
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

func (r *AdjustmentRepository) Create(ctx context.Context, tx db.DBTX, rec commands.AdjustmentRecord) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertAdjustmentQuery,
		rec.OrderID, rec.AdjustedBy, rec.Reason,
		rec.PreviousDiscount, rec.NewDiscount, rec.PreviousTotal, rec.NewTotal,
		rec.DiscountKindBefore, rec.DiscountKindAfter,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert order adjustment", err)
	}
	return id, nil
}
