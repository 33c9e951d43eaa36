package repository

import (
	"context"
	"errors"
	"time"

	"dicetrails/internal/infra"
	"dicetrails/internal/infra/db"
	"dicetrails/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(db db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

const tryInsertIdempotencyKeyQuery = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO UPDATE
SET endpoint = EXCLUDED.endpoint,
    request_hash = EXCLUDED.request_hash,
    status = 'processing',
    response_body_hash = NULL,
    result_order_id = NULL,
    expires_at = EXCLUDED.expires_at,
    updated_at = NOW()
WHERE idempotency_keys.expires_at < NOW()`

// TryInsert claims the key for this request. A conflicting row past its
// expiry is reclaimed in place. It reports false when a live row already
// holds the key, in which case the caller inspects the stored record.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencyKeyQuery, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

const selectIdempotencyKeyQuery = `
SELECT key, user_id, status, request_hash, result_order_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2`

func (r *IdempotencyRepository) Get(ctx context.Context, key, userID uuid.UUID) (*commands.IdempotencyRecord, error) {
	var rec commands.IdempotencyRecord
	err := r.db.QueryRow(ctx, selectIdempotencyKeyQuery, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Status, &rec.RequestHash, &rec.ResultOrderID, &rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	// Expired keys are treated as not found
	if time.Now().After(rec.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}

	return &rec, nil
}

const updateIdempotencyCompletedQuery = `
UPDATE idempotency_keys
SET status = 'completed', response_body_hash = $1, result_order_id = $2, updated_at = NOW()
WHERE key = $3 AND user_id = $4`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseBodyHash string, resultOrderID uuid.UUID) error {
	if _, err := tx.Exec(ctx, updateIdempotencyCompletedQuery, responseBodyHash, resultOrderID, key, userID); err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

const deleteExpiredIdempotencyKeysQuery = `
DELETE FROM idempotency_keys
WHERE expires_at < NOW()`

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredIdempotencyKeysQuery)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
