package repository

import (
	"context"
	"time"

	"interpreter-booking/internal/domain/model"
)

// JobFilter narrows Query results. Zero values mean "no constraint".
type JobFilter struct {
	IDs         []string
	CustomerIDs []string

	// TranslatorID selects jobs holding an assignment row for the given
	// translator (open or closed).
	TranslatorID string

	Statuses     []model.JobStatus
	JobTypes     []model.JobType
	LanguageIDs  []string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	DueFrom      *time.Time
	DueTo        *time.Time
	Immediate    *bool
	PhoneType    *bool
	PhysicalType *bool
	Flagged      *bool

	// ExpiredPendingAsOf selects pending jobs whose will_expire_at has
	// passed the given instant and that are not flagged ignore_expired.
	ExpiredPendingAsOf *time.Time

	Limit  int
	Offset int
}

// JobRepository is the port for booking rows.
type JobRepository interface {
	Save(ctx context.Context, tx Tx, job *model.Job) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Job, error)
	Query(ctx context.Context, tx Tx, f JobFilter) ([]*model.Job, error)

	// AtomicSetStatus flips status from expectedOld to new in one
	// compare-and-set. Returns false when the job was no longer in
	// expectedOld, in which case nothing was written.
	AtomicSetStatus(ctx context.Context, tx Tx, id string, expectedOld, new model.JobStatus) (bool, error)
}
