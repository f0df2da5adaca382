package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"interpreter-booking/internal/domain/ports/repository"
)

var _ repository.BlacklistRepository = (*BlacklistRepo)(nil)

type BlacklistRepo struct {
	pool *pgxpool.Pool
}

func NewBlacklistRepo(pool *pgxpool.Pool) *BlacklistRepo {
	return &BlacklistRepo{pool: pool}
}

func (r *BlacklistRepo) TranslatorIDs(ctx context.Context, tx repository.Tx, customerID string) ([]string, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT translator_id FROM users_blacklist WHERE user_id=$1;`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
