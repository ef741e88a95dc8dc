package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GSTRateKey names the tax-rate setting, a percentage.
const GSTRateKey = "GST_RATE"

// SettingsRepository reads administrator-managed global values. The
// engine reads a value once per transaction and passes it down; nothing
// here is cached or mutated.
type SettingsRepository interface {
	GetFloat(ctx context.Context, key string) (float64, error)
}

type SettingsRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &SettingsRepositoryImpl{
		pool: pool,
	}
}

func (r *SettingsRepositoryImpl) GetFloat(ctx context.Context, key string) (float64, error) {
	query := `SELECT value FROM settings WHERE key = $1`

	var raw string
	err := r.pool.QueryRow(ctx, query, key).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, fmt.Errorf("setting %s not configured", key)
		}
		return 0, err
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s is not numeric: %w", key, err)
	}

	return value, nil
}
