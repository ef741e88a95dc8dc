package repository

import (
	"context"

	"go-booking-engine/internal/model"
	apperrors "go-booking-engine/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PromoRepository interface {
	// FindByCode matches case-insensitively.
	FindByCode(ctx context.Context, code string) (*model.PromoCode, error)

	// IncrementUsesTx bumps the usage counter; called exactly once per
	// booking that confirms with the code applied.
	IncrementUsesTx(ctx context.Context, tx pgx.Tx, id int) error
}

type PromoRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPromoRepository(pool *pgxpool.Pool) PromoRepository {
	return &PromoRepositoryImpl{
		pool: pool,
	}
}

func (r *PromoRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `
		SELECT id, code, is_active, discount_type, discount_value,
		       min_purchase_amount, max_discount_amount, uses, max_uses,
		       valid_from, valid_until, created_at, updated_at
		FROM promo_codes
		WHERE UPPER(code) = UPPER($1)
	`

	var p model.PromoCode
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&p.ID,
		&p.Code,
		&p.IsActive,
		&p.DiscountType,
		&p.DiscountValue,
		&p.MinPurchaseAmount,
		&p.MaxDiscountAmount,
		&p.Uses,
		&p.MaxUses,
		&p.ValidFrom,
		&p.ValidUntil,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPromoNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PromoRepositoryImpl) IncrementUsesTx(ctx context.Context, tx pgx.Tx, id int) error {
	result, err := tx.Exec(ctx,
		`UPDATE promo_codes SET uses = uses + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPromoNotFound
	}

	return nil
}
