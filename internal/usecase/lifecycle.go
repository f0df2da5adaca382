package usecase

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/adapter"
	"interpreter-booking/internal/domain/ports/repository"
	"interpreter-booking/internal/infra/metrics"
)

// TransitionRequest is an admin-driven status change as it arrives from an
// update call, validated before it reaches the machine.
type TransitionRequest struct {
	Target        model.JobStatus
	AdminComments string
	SessionTime   string // h:m:s, required for started → completed
	ActorID       string

	// TranslatorChanged is set when the same update call also reassigned
	// the translator; pending → assigned is only legal together with it.
	TranslatorChanged bool
	NewTranslator     *model.User
}

// AssignmentMutation is a pending soft-close of the active assignment,
// applied by the caller inside the same transaction as the job row.
type AssignmentMutation struct {
	AssignmentID string
	Close        repository.AssignmentClose
}

// TransitionOutcome reports what a transition decided. Notifications are
// deferred until after the commit via Notify.
type TransitionOutcome struct {
	Changed         bool
	Entry           *model.AuditEntry
	CloseAssignment *AssignmentMutation

	notify []func(ctx context.Context)
}

// Notify fires the post-commit side effects of the transition. Collaborator
// failures inside are logged by the policy and never propagate.
func (o *TransitionOutcome) Notify(ctx context.Context) {
	for _, fn := range o.notify {
		fn(ctx)
	}
}

// StateMachine is the total transition function over job status. Every
// (from, to) pair outside the enumerated table is rejected as a no-op
// failure, never a panic or a silent fall-through.
type StateMachine struct {
	users       repository.UserRepository
	assignments repository.AssignmentRepository
	notifier    *NotificationPolicy
	filter      *EligibilityFilter
	clock       adapter.Clock
	log         *zerolog.Logger
}

func NewStateMachine(
	users repository.UserRepository,
	assignments repository.AssignmentRepository,
	notifier *NotificationPolicy,
	filter *EligibilityFilter,
	clock adapter.Clock,
	logger *zerolog.Logger,
) *StateMachine {
	l := logger.With().Str("component", "StateMachine").Logger()
	return &StateMachine{
		users: users, assignments: assignments,
		notifier: notifier, filter: filter, clock: clock, log: &l,
	}
}

// commentRequired lists the (from, to) pairs that demand a non-empty
// admin_comments field.
var commentRequired = map[model.JobStatus][]model.JobStatus{
	model.JobStatusTimedOut:        {model.JobStatusPending},
	model.JobStatusStarted:         {model.JobStatusCompleted},
	model.JobStatusPending:         {model.JobStatusAssigned, model.JobStatusTimedOut},
	model.JobStatusWithdrawAfter24: {model.JobStatusTimedOut},
	model.JobStatusAssigned: {
		model.JobStatusWithdrawBefore24, model.JobStatusWithdrawAfter24, model.JobStatusTimedOut,
	},
}

func needsComment(from, to model.JobStatus) bool {
	for _, t := range commentRequired[from] {
		if t == to {
			return true
		}
	}
	return false
}

func statusEntry(from, to model.JobStatus, at time.Time) *model.AuditEntry {
	return &model.AuditEntry{
		ID:       ulid.Make().String(),
		Kind:     model.AuditStatusChanged,
		OldValue: string(from),
		NewValue: string(to),
		At:       at,
	}
}

// Apply runs one transition against the in-memory job. The caller persists
// the job (and any returned assignment mutation) in one transaction, then
// calls Notify on the outcome.
func (m *StateMachine) Apply(ctx context.Context, job *model.Job, req TransitionRequest) (*TransitionOutcome, error) {
	from := job.Status
	if from == req.Target {
		return &TransitionOutcome{}, nil
	}

	if needsComment(from, req.Target) && req.AdminComments == "" {
		metrics.IncTransitionRejected(string(from), string(req.Target))
		return &TransitionOutcome{}, domain.ErrAdminCommentRequired
	}

	var (
		out *TransitionOutcome
		err error
	)
	switch from {
	case model.JobStatusTimedOut:
		out, err = m.fromTimedOut(ctx, job, req)
	case model.JobStatusPending:
		out, err = m.fromPending(ctx, job, req)
	case model.JobStatusAssigned:
		out, err = m.fromAssigned(ctx, job, req)
	case model.JobStatusStarted:
		out, err = m.fromStarted(ctx, job, req)
	case model.JobStatusWithdrawAfter24:
		out, err = m.fromWithdrawAfter24(ctx, job, req)
	default:
		out, err = nil, domain.ErrInvalidTransition
	}
	if err != nil {
		metrics.IncTransitionRejected(string(from), string(req.Target))
		return &TransitionOutcome{}, err
	}

	job.Status = req.Target
	if req.AdminComments != "" {
		job.AdminComments = req.AdminComments
	}
	out.Changed = true
	out.Entry = statusEntry(from, req.Target, m.clock.Now())
	metrics.IncTransition(string(from), string(req.Target))
	return out, nil
}

// fromTimedOut handles the admin reopen: back to pending with a fresh
// offer window, cleared reminder-email flags, and a full re-broadcast.
func (m *StateMachine) fromTimedOut(ctx context.Context, job *model.Job, req TransitionRequest) (*TransitionOutcome, error) {
	if req.Target != model.JobStatusPending {
		return nil, domain.ErrInvalidTransition
	}

	now := m.clock.Now()
	job.CreatedAt = now
	exp := model.WillExpireAt(job.Due, now)
	job.WillExpireAt = &exp
	job.EmailSent16Hour = false
	job.EmailSent48Hour = false

	out := &TransitionOutcome{}
	out.notify = append(out.notify, func(ctx context.Context) {
		customer, err := m.users.FindByID(ctx, repository.NoTX, job.UserID)
		if err != nil {
			m.log.Error().Err(err).Str("job_id", job.ID).Msg("reopen notify: customer lookup failed")
			return
		}
		m.notifier.ReopenedEmail(ctx, job, customer)
		candidates, err := m.filter.PotentialTranslators(ctx, job, "")
		if err != nil {
			m.log.Error().Err(err).Str("job_id", job.ID).Msg("reopen notify: candidate listing failed")
			return
		}
		m.notifier.BroadcastSuitableJob(ctx, job, candidates)
	})
	return out, nil
}

func (m *StateMachine) fromPending(ctx context.Context, job *model.Job, req TransitionRequest) (*TransitionOutcome, error) {
	switch req.Target {
	case model.JobStatusAssigned:
		// Only legal when the same update supplied a translator.
		if !req.TranslatorChanged || req.NewTranslator == nil {
			return nil, domain.ErrInvalidTransition
		}
		translator := req.NewTranslator
		out := &TransitionOutcome{}
		out.notify = append(out.notify, func(ctx context.Context) {
			customer, err := m.users.FindByID(ctx, repository.NoTX, job.UserID)
			if err != nil {
				m.log.Error().Err(err).Str("job_id", job.ID).Msg("assign notify: customer lookup failed")
				return
			}
			m.notifier.AcceptedEmail(ctx, job, customer)
			m.notifier.TranslatorChangedEmails(ctx, job, customer, nil, translator)
			m.notifier.SessionStartReminder(ctx, customer, job)
			m.notifier.SessionStartReminder(ctx, translator, job)
		})
		return out, nil

	case model.JobStatusTimedOut, model.JobStatusWithdrawBefore24, model.JobStatusWithdrawAfter24:
		out := &TransitionOutcome{}
		out.notify = append(out.notify, func(ctx context.Context) {
			customer, err := m.users.FindByID(ctx, repository.NoTX, job.UserID)
			if err != nil {
				m.log.Error().Err(err).Str("job_id", job.ID).Msg("cancel notify: customer lookup failed")
				return
			}
			m.notifier.CancellationEmail(ctx, job, customer)
		})
		return out, nil
	}
	return nil, domain.ErrInvalidTransition
}

func (m *StateMachine) fromAssigned(ctx context.Context, job *model.Job, req TransitionRequest) (*TransitionOutcome, error) {
	switch req.Target {
	case model.JobStatusStarted:
		return &TransitionOutcome{}, nil

	case model.JobStatusTimedOut:
		return &TransitionOutcome{}, nil

	case model.JobStatusWithdrawBefore24, model.JobStatusWithdrawAfter24:
		out := &TransitionOutcome{}
		out.notify = append(out.notify, func(ctx context.Context) {
			customer, err := m.users.FindByID(ctx, repository.NoTX, job.UserID)
			if err != nil {
				m.log.Error().Err(err).Str("job_id", job.ID).Msg("withdraw notify: customer lookup failed")
				return
			}
			m.notifier.CancellationEmail(ctx, job, customer)

			active, err := m.assignments.FindActiveByJob(ctx, repository.NoTX, job.ID)
			if err != nil {
				return
			}
			translator, err := m.users.FindByID(ctx, repository.NoTX, active.UserID)
			if err != nil {
				return
			}
			m.notifier.CancelledTranslatorEmail(ctx, job, translator)
		})
		return out, nil
	}
	return nil, domain.ErrInvalidTransition
}

// fromStarted covers session completion and the customer no-show.
func (m *StateMachine) fromStarted(ctx context.Context, job *model.Job, req TransitionRequest) (*TransitionOutcome, error) {
	now := m.clock.Now()

	switch req.Target {
	case model.JobStatusCompleted:
		if req.SessionTime == "" {
			return nil, domain.ErrSessionTimeRequired
		}
		job.SessionTime = req.SessionTime
		job.EndAt = &now

		out := &TransitionOutcome{}
		active, err := m.assignments.FindActiveByJob(ctx, repository.NoTX, job.ID)
		if err != nil {
			return nil, err
		}
		out.CloseAssignment = &AssignmentMutation{
			AssignmentID: active.ID,
			Close:        repository.AssignmentClose{CompletedAt: &now, CompletedBy: req.ActorID},
		}
		translatorID := active.UserID
		out.notify = append(out.notify, func(ctx context.Context) {
			customer, err := m.users.FindByID(ctx, repository.NoTX, job.UserID)
			if err != nil {
				m.log.Error().Err(err).Str("job_id", job.ID).Msg("complete notify: customer lookup failed")
				return
			}
			translator, err := m.users.FindByID(ctx, repository.NoTX, translatorID)
			if err != nil {
				m.log.Error().Err(err).Str("job_id", job.ID).Msg("complete notify: translator lookup failed")
				return
			}
			m.notifier.SessionEndedEmails(ctx, job, customer, translator)
		})
		return out, nil

	case model.JobStatusNotCarriedOutByCustomer:
		// Customer no-show: the assignment closes against the translator's
		// own id and no billing emails go out.
		active, err := m.assignments.FindActiveByJob(ctx, repository.NoTX, job.ID)
		if err != nil {
			return nil, err
		}
		job.EndAt = &now
		job.SessionTime = model.SessionInterval(job.Due, now)
		return &TransitionOutcome{
			CloseAssignment: &AssignmentMutation{
				AssignmentID: active.ID,
				Close:        repository.AssignmentClose{CompletedAt: &now, CompletedBy: active.UserID},
			},
		}, nil
	}
	return nil, domain.ErrInvalidTransition
}

func (m *StateMachine) fromWithdrawAfter24(ctx context.Context, job *model.Job, req TransitionRequest) (*TransitionOutcome, error) {
	if req.Target != model.JobStatusTimedOut {
		return nil, domain.ErrInvalidTransition
	}
	return &TransitionOutcome{}, nil
}
