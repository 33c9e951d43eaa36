package repository

import (
	"context"
	"errors"
	"strings"

	"dicetrails/internal/domain/pricing"
	"dicetrails/internal/domain/voucher"
	"dicetrails/internal/infra"
	"dicetrails/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type VoucherRepository struct {
	db db.DBTX
}

func NewVoucherRepository(db db.DBTX) *VoucherRepository {
	return &VoucherRepository{db: db}
}

const selectVoucherByCodeQuery = `
SELECT id, code, kind, value, active, description
FROM vouchers
WHERE code = $1`

func (r *VoucherRepository) FindByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	var (
		id          uuid.UUID
		rawCode     string
		kind        string
		value       decimal.Decimal
		active      bool
		description string
	)
	err := r.db.QueryRow(ctx, selectVoucherByCodeQuery, strings.ToUpper(strings.TrimSpace(code))).Scan(
		&id, &rawCode, &kind, &value, &active, &description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by code", err)
	}
	return voucher.ReconstructVoucher(id, voucher.Code(rawCode), pricing.VoucherKind(kind), value, active, description), nil
}
