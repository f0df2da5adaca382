package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

const jobColumns = `
  id, user_id, user_email, from_language_id, job_type, certified, gender,
  due, immediate, duration, status,
  customer_phone_type, customer_physical_type,
  town, address, instructions, reference, admin_comments,
  flagged, manually_handled, by_admin, ignored, ignore_expired, ignore_flagged,
  session_time, created_at, withdraw_at, will_expire_at, end_at,
  email_sent_16h, email_sent_48h`

func (r *JobRepo) Save(ctx context.Context, tx repository.Tx, j *model.Job) error {
	const q = `
INSERT INTO jobs (` + jobColumns + `
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
  $19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31
) ON CONFLICT (id) DO UPDATE SET
  user_email=$3, from_language_id=$4, job_type=$5, certified=$6, gender=$7,
  due=$8, immediate=$9, duration=$10, status=$11,
  customer_phone_type=$12, customer_physical_type=$13,
  town=$14, address=$15, instructions=$16, reference=$17, admin_comments=$18,
  flagged=$19, manually_handled=$20, by_admin=$21, ignored=$22,
  ignore_expired=$23, ignore_flagged=$24,
  session_time=$25, created_at=$26, withdraw_at=$27, will_expire_at=$28,
  end_at=$29, email_sent_16h=$30, email_sent_48h=$31;
`
	ex, err := querier(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q,
		j.ID, j.UserID, j.UserEmail, j.FromLanguageID, j.JobType, j.Certified, j.Gender,
		j.Due, j.Immediate, j.Duration, j.Status,
		j.CustomerPhoneType, j.CustomerPhysicalType,
		j.Town, j.Address, j.Instructions, j.Reference, j.AdminComments,
		j.Flags.Flagged, j.Flags.ManuallyHandled, j.Flags.ByAdmin, j.Flags.Ignore,
		j.Flags.IgnoreExpired, j.Flags.IgnoreFlagged,
		j.SessionTime, j.CreatedAt, j.WithdrawAt, j.WillExpireAt, j.EndAt,
		j.EmailSent16Hour, j.EmailSent48Hour,
	)
	return err
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var j model.Job
	err := row.Scan(
		&j.ID, &j.UserID, &j.UserEmail, &j.FromLanguageID, &j.JobType, &j.Certified, &j.Gender,
		&j.Due, &j.Immediate, &j.Duration, &j.Status,
		&j.CustomerPhoneType, &j.CustomerPhysicalType,
		&j.Town, &j.Address, &j.Instructions, &j.Reference, &j.AdminComments,
		&j.Flags.Flagged, &j.Flags.ManuallyHandled, &j.Flags.ByAdmin, &j.Flags.Ignore,
		&j.Flags.IgnoreExpired, &j.Flags.IgnoreFlagged,
		&j.SessionTime, &j.CreatedAt, &j.WithdrawAt, &j.WillExpireAt, &j.EndAt,
		&j.EmailSent16Hour, &j.EmailSent48Hour,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *JobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Job, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanJob(ex.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id=$1;`, id))
}

// Query assembles the WHERE clause from the filter's set fields only.
func (r *JobRepo) Query(ctx context.Context, tx repository.Tx, f repository.JobFilter) ([]*model.Job, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.IDs) > 0 {
		conds = append(conds, "id = ANY("+arg(f.IDs)+")")
	}
	if len(f.CustomerIDs) > 0 {
		conds = append(conds, "user_id = ANY("+arg(f.CustomerIDs)+")")
	}
	if f.TranslatorID != "" {
		conds = append(conds, `EXISTS (
  SELECT 1 FROM translator_assignments ta
   WHERE ta.job_id = jobs.id AND ta.user_id = `+arg(f.TranslatorID)+")")
	}
	if len(f.Statuses) > 0 {
		ss := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			ss[i] = string(s)
		}
		conds = append(conds, "status = ANY("+arg(ss)+")")
	}
	if len(f.JobTypes) > 0 {
		ts := make([]string, len(f.JobTypes))
		for i, t := range f.JobTypes {
			ts[i] = string(t)
		}
		conds = append(conds, "job_type = ANY("+arg(ts)+")")
	}
	if len(f.LanguageIDs) > 0 {
		conds = append(conds, "from_language_id = ANY("+arg(f.LanguageIDs)+")")
	}
	if f.CreatedFrom != nil {
		conds = append(conds, "created_at >= "+arg(*f.CreatedFrom))
	}
	if f.CreatedTo != nil {
		conds = append(conds, "created_at <= "+arg(*f.CreatedTo))
	}
	if f.DueFrom != nil {
		conds = append(conds, "due >= "+arg(*f.DueFrom))
	}
	if f.DueTo != nil {
		conds = append(conds, "due <= "+arg(*f.DueTo))
	}
	if f.Immediate != nil {
		conds = append(conds, "immediate = "+arg(*f.Immediate))
	}
	if f.PhoneType != nil {
		conds = append(conds, "customer_phone_type = "+arg(*f.PhoneType))
	}
	if f.PhysicalType != nil {
		conds = append(conds, "customer_physical_type = "+arg(*f.PhysicalType))
	}
	if f.Flagged != nil {
		conds = append(conds, "flagged = "+arg(*f.Flagged))
	}
	if f.ExpiredPendingAsOf != nil {
		conds = append(conds,
			"status = 'pending'",
			"will_expire_at IS NOT NULL",
			"will_expire_at <= "+arg(*f.ExpiredPendingAsOf),
			"NOT ignore_expired",
		)
	}

	q := `SELECT ` + jobColumns + ` FROM jobs`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY due ASC"
	if f.Limit > 0 {
		q += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		q += " OFFSET " + arg(f.Offset)
	}

	ex, err := querier(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// AtomicSetStatus is the single compare-and-set every concurrent claim
// goes through.
func (r *JobRepo) AtomicSetStatus(ctx context.Context, tx repository.Tx, id string, expectedOld, new model.JobStatus) (bool, error) {
	ex, err := querier(r.pool, tx)
	if err != nil {
		return false, err
	}
	tag, err := ex.Exec(ctx,
		`UPDATE jobs SET status=$3 WHERE id=$1 AND status=$2;`,
		id, expectedOld, new,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
