package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/repository"
)

var _ repository.LanguageRepository = (*LanguageRepo)(nil)

type LanguageRepo struct {
	pool *pgxpool.Pool
}

func NewLanguageRepo(pool *pgxpool.Pool) *LanguageRepo {
	return &LanguageRepo{pool: pool}
}

func (r *LanguageRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Language, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var l model.Language
	err = ex.QueryRow(ctx, `SELECT id, name, active FROM languages WHERE id=$1;`, id).
		Scan(&l.ID, &l.Name, &l.Active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *LanguageRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Language, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT id, name, active FROM languages WHERE active ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Language
	for rows.Next() {
		var l model.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.Active); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
