package repository

import (
	"context"
	"errors"
	"time"

	"dicetrails/internal/domain/user"
	"dicetrails/internal/infra"
	"dicetrails/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const selectUserQuery = `
SELECT id, email, role, newsletter_subscribed, newsletter_discount_used, is_active, created_at, updated_at
FROM users
WHERE id = $1`

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var (
		userID               uuid.UUID
		email, role          string
		subscribed, used     bool
		isActive             bool
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, selectUserQuery, id).Scan(
		&userID, &email, &role, &subscribed, &used, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return user.ReconstructUser(userID, user.Email(email), user.Role(role), subscribed, used, isActive, createdAt, updatedAt), nil
}

const consumeNewsletterDiscountQuery = `
UPDATE users
SET newsletter_discount_used = TRUE, updated_at = NOW()
WHERE id = $1 AND newsletter_subscribed AND NOT newsletter_discount_used`

// ConsumeNewsletterDiscount relies on the row update itself for atomicity: a
// concurrent consumer makes the WHERE clause miss and reports not-ok.
func (r *UserRepository) ConsumeNewsletterDiscount(ctx context.Context, tx db.DBTX, userID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx, consumeNewsletterDiscountQuery, userID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to consume newsletter discount", err)
	}
	return tag.RowsAffected() == 1, nil
}
