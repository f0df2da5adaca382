package repository

import (
	"context"

	"interpreter-booking/internal/domain/model"
)

// -----------------------------
// Audit log
// -----------------------------

type AuditLogRepository interface {
	// Append records all change fragments of one update call under the
	// acting user and job id.
	Append(ctx context.Context, tx Tx, actorID, jobID string, entries []model.AuditEntry) error
}
