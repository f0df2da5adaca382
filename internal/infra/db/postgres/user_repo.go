package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, name, email, mobile, role, enabled, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &u.Role, &u.Enabled, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanUser(ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1;`, id))
}

func (r *UserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanUser(ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1;`, email))
}

func (r *UserRepo) FindMeta(ctx context.Context, tx repository.Tx, userID string) (*model.UserMeta, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var m model.UserMeta
	err = ex.QueryRow(ctx, `
SELECT user_id, translator_type, translator_level, gender, consumer_type,
       city, address, instructions,
       not_get_notification, not_get_nighttime, not_get_emergency
  FROM user_meta WHERE user_id=$1;`, userID).Scan(
		&m.UserID, &m.TranslatorType, &m.TranslatorLevel, &m.Gender, &m.ConsumerType,
		&m.City, &m.Address, &m.Instructions,
		&m.NotGetNotification, &m.NotGetNighttime, &m.NotGetEmergency,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *UserRepo) ListEnabledTranslators(ctx context.Context, tx repository.Tx, excludeUserID string) ([]*model.User, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `
SELECT `+userColumns+`
  FROM users
 WHERE role='translator' AND enabled AND ($1 = '' OR id <> $1)
 ORDER BY created_at ASC;`, excludeUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) LanguageIDs(ctx context.Context, tx repository.Tx, userID string) ([]string, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT language_id FROM user_languages WHERE user_id=$1;`, userID)
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
