package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

type AuditLogRepo struct {
	pool *pgxpool.Pool
}

func NewAuditLogRepo(pool *pgxpool.Pool) *AuditLogRepo {
	return &AuditLogRepo{pool: pool}
}

// Append writes all fragments of one update call. Callers pass the
// surrounding transaction so the log commits with the rows it describes.
func (r *AuditLogRepo) Append(ctx context.Context, tx repository.Tx, actorID, jobID string, entries []model.AuditEntry) error {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO job_audit_log (id, job_id, actor_id, kind, old_value, new_value, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7);`
	for _, e := range entries {
		if _, err := ex.Exec(ctx, q, e.ID, jobID, actorID, e.Kind, e.OldValue, e.NewValue, e.At); err != nil {
			return err
		}
	}
	return nil
}
