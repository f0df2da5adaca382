package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

type AssignmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepo(pool *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{pool: pool}
}

const assignmentColumns = `id, job_id, user_id, created_at, cancel_at, completed_at, completed_by`

func (r *AssignmentRepo) Create(ctx context.Context, tx repository.Tx, a *model.TranslatorAssignment) error {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, `
INSERT INTO translator_assignments (id, job_id, user_id, created_at)
VALUES ($1,$2,$3,$4);`,
		a.ID, a.JobID, a.UserID, a.CreatedAt,
	)
	return err
}

// Close soft-closes the row; closed rows stay behind as history.
func (r *AssignmentRepo) Close(ctx context.Context, tx repository.Tx, id string, c repository.AssignmentClose) error {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return err
	}
	var by interface{}
	if c.CompletedBy != "" {
		by = c.CompletedBy
	}
	tag, err := ex.Exec(ctx, `
UPDATE translator_assignments
   SET cancel_at = COALESCE($2, cancel_at),
       completed_at = COALESCE($3, completed_at),
       completed_by = COALESCE($4, completed_by)
 WHERE id = $1;`,
		id, c.CancelAt, c.CompletedAt, by,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAssignment(row pgx.Row) (*model.TranslatorAssignment, error) {
	var (
		a  model.TranslatorAssignment
		by *string
	)
	err := row.Scan(&a.ID, &a.JobID, &a.UserID, &a.CreatedAt, &a.CancelAt, &a.CompletedAt, &by)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if by != nil {
		a.CompletedBy = *by
	}
	return &a, nil
}

func (r *AssignmentRepo) FindActiveByJob(ctx context.Context, tx repository.Tx, jobID string) (*model.TranslatorAssignment, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanAssignment(ex.QueryRow(ctx, `
SELECT `+assignmentColumns+`
  FROM translator_assignments
 WHERE job_id=$1 AND cancel_at IS NULL AND completed_at IS NULL
 ORDER BY created_at DESC
 LIMIT 1;`, jobID))
}

func (r *AssignmentRepo) FindByJob(ctx context.Context, tx repository.Tx, jobID string) ([]*model.TranslatorAssignment, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `
SELECT `+assignmentColumns+`
  FROM translator_assignments
 WHERE job_id=$1
 ORDER BY created_at ASC;`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.TranslatorAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AssignmentRepo) HasOverlapping(ctx context.Context, tx repository.Tx, translatorID string, due time.Time) (bool, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return false, err
	}
	var exists bool
	err = ex.QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1
    FROM translator_assignments ta
    JOIN jobs j ON j.id = ta.job_id
   WHERE ta.user_id = $1
     AND ta.cancel_at IS NULL AND ta.completed_at IS NULL
     AND j.due = $2
);`, translatorID, due).Scan(&exists)
	return exists, err
}

func (r *AssignmentRepo) WasAssigned(ctx context.Context, tx repository.Tx, translatorID, jobID string) (bool, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return false, err
	}
	var exists bool
	err = ex.QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM translator_assignments WHERE user_id=$1 AND job_id=$2
);`, translatorID, jobID).Scan(&exists)
	return exists, err
}
