package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/adapter"
	"interpreter-booking/internal/domain/ports/repository"
	"interpreter-booking/internal/infra/i18n"
	"interpreter-booking/internal/infra/metrics"
)

const acceptLockTTL = 10 * time.Second

// BookingOrchestrator composes the state machine, the eligibility filter,
// the assignment manager and the notification policy behind the
// transport-agnostic entry points callers invoke.
type BookingOrchestrator struct {
	jobs        repository.JobRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	languages   repository.LanguageRepository
	audit       repository.AuditLogRepository
	txm         repository.TransactionManager

	machine  *StateMachine
	manager  *AssignmentManager
	filter   *EligibilityFilter
	notifier *NotificationPolicy

	events  adapter.EventBus
	locker  adapter.Locker
	clock   adapter.Clock
	catalog *i18n.Catalog

	immediateOffset time.Duration
	log             *zerolog.Logger
}

func NewBookingOrchestrator(
	jobs repository.JobRepository,
	assignments repository.AssignmentRepository,
	users repository.UserRepository,
	languages repository.LanguageRepository,
	audit repository.AuditLogRepository,
	txm repository.TransactionManager,
	machine *StateMachine,
	manager *AssignmentManager,
	filter *EligibilityFilter,
	notifier *NotificationPolicy,
	events adapter.EventBus,
	locker adapter.Locker,
	clock adapter.Clock,
	catalog *i18n.Catalog,
	immediateOffset time.Duration,
	logger *zerolog.Logger,
) *BookingOrchestrator {
	l := logger.With().Str("component", "BookingOrchestrator").Logger()
	return &BookingOrchestrator{
		jobs: jobs, assignments: assignments, users: users,
		languages: languages, audit: audit, txm: txm,
		machine: machine, manager: manager, filter: filter, notifier: notifier,
		events: events, locker: locker, clock: clock, catalog: catalog,
		immediateOffset: immediateOffset, log: &l,
	}
}

func (b *BookingOrchestrator) publish(ctx context.Context, kind adapter.EventKind, jobID, userID string) {
	if err := b.events.Publish(ctx, adapter.Event{
		Kind: kind, JobID: jobID, UserID: userID, OccurredAt: b.clock.Now(),
	}); err != nil {
		b.log.Error().Err(err).Str("event", string(kind)).Str("job_id", jobID).Msg("event publish failed")
	}
}

// ---- store ----

// Store creates a new booking for a customer. Immediate jobs get due =
// now + the configured offset and phone mode forced on; scheduled jobs
// must have a due time strictly in the future.
func (b *BookingOrchestrator) Store(ctx context.Context, customer *model.User, req StoreJobRequest) StoreResult {
	if customer.Role != model.RoleCustomer {
		return StoreResult{Result: fail("Translator can not create booking")}
	}

	meta, err := b.users.FindMeta(ctx, repository.NoTX, customer.ID)
	if err != nil {
		return StoreResult{Result: fail("customer profile not found")}
	}

	now := b.clock.Now()
	job := &model.Job{
		ID:                   uuid.NewString(),
		UserID:               customer.ID,
		FromLanguageID:       req.FromLanguageID,
		JobType:              req.JobType,
		Certified:            req.Certified,
		Gender:               req.Gender,
		Duration:             req.Duration,
		Status:               model.JobStatusPending,
		CustomerPhoneType:    req.CustomerPhoneType,
		CustomerPhysicalType: req.CustomerPhysicalType,
		Town:                 req.Town,
		Reference:            req.Reference,
		CreatedAt:            now,
	}

	var resultType string
	if req.Immediate {
		job.Immediate = true
		job.Due = now.Add(b.immediateOffset)
		job.CustomerPhoneType = true
		resultType = "immediate"
	} else {
		if !req.Due.After(now) {
			return StoreResult{Result: fail("past date"), Type: "regular"}
		}
		job.Due = req.Due
		resultType = "regular"
	}

	if job.JobType == "" {
		job.JobType = jobTypeForConsumer(meta.ConsumerType)
	}
	if job.Town == "" {
		job.Town = meta.City
	}
	exp := model.WillExpireAt(job.Due, now)
	job.WillExpireAt = &exp

	if err := b.jobs.Save(ctx, repository.NoTX, job); err != nil {
		b.log.Error().Err(err).Msg("store: job save failed")
		return StoreResult{Result: fail("could not store booking"), Type: resultType}
	}
	metrics.IncJobCreated(string(job.JobType), job.Immediate)

	b.publish(ctx, adapter.EventJobCreated, job.ID, customer.ID)

	candidates, err := b.filter.PotentialTranslators(ctx, job, "")
	if err != nil {
		b.log.Error().Err(err).Str("job_id", job.ID).Msg("store: candidate listing failed")
	} else {
		b.notifier.BroadcastSuitableJob(ctx, job, candidates)
	}

	return StoreResult{Result: success(), ID: job.ID, Type: resultType}
}

// jobTypeForConsumer is the default when the create payload names no type.
func jobTypeForConsumer(consumerType string) model.JobType {
	switch consumerType {
	case "rws", "RWS":
		return model.JobTypeRWS
	case "ngo":
		return model.JobTypeUnpaid
	default:
		return model.JobTypePaid
	}
}

// StoreJobEmail attaches the contact override to a stored job, falling
// back to the customer's profile for blank address fields, and confirms
// the booking by email.
func (b *BookingOrchestrator) StoreJobEmail(ctx context.Context, req JobEmailRequest) Result {
	job, err := b.jobs.FindByID(ctx, repository.NoTX, req.JobID)
	if err != nil {
		return fail("booking not found")
	}
	customer, err := b.users.FindByID(ctx, repository.NoTX, job.UserID)
	if err != nil {
		return fail("customer not found")
	}

	job.UserEmail = req.UserEmail
	job.Reference = req.Reference
	if req.Address != "" || req.Instructions != "" || req.Town != "" {
		meta, _ := b.users.FindMeta(ctx, repository.NoTX, job.UserID)
		job.Address = valueOr(req.Address, metaAddress(meta))
		job.Instructions = valueOr(req.Instructions, metaInstructions(meta))
		job.Town = valueOr(req.Town, metaCity(meta))
	}

	if err := b.jobs.Save(ctx, repository.NoTX, job); err != nil {
		b.log.Error().Err(err).Str("job_id", job.ID).Msg("storeJobEmail: save failed")
		return fail("could not update booking")
	}

	b.notifier.JobCreatedEmail(ctx, job, customer)
	return success()
}

func valueOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func metaAddress(m *model.UserMeta) string {
	if m == nil {
		return ""
	}
	return m.Address
}

func metaInstructions(m *model.UserMeta) string {
	if m == nil {
		return ""
	}
	return m.Instructions
}

func metaCity(m *model.UserMeta) string {
	if m == nil {
		return ""
	}
	return m.City
}

// ---- accept ----

// AcceptJobWithID claims a pending job for a translator. The
// double-booking check runs strictly before the compare-and-set so two
// racing translators cannot both pass it; the CAS then guarantees exactly
// one winner.
func (b *BookingOrchestrator) AcceptJobWithID(ctx context.Context, jobID string, translator *model.User) AcceptResult {
	job, err := b.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return AcceptResult{Result: fail("booking not found")}
	}
	lang := b.languageName(ctx, job.FromLanguageID)

	token, err := b.locker.TryLock(ctx, "job:accept:"+jobID, acceptLockTTL)
	if err != nil {
		metrics.IncJobAcceptConflict()
		return AcceptResult{Result: fail(b.catalog.T("msg.accept_taken", lang, job.Duration, formatDue(job.Due)))}
	}
	defer func() {
		if err := b.locker.Unlock(ctx, "job:accept:"+jobID, token); err != nil {
			b.log.Warn().Err(err).Str("job_id", jobID).Msg("accept lock release failed")
		}
	}()

	booked, err := b.assignments.HasOverlapping(ctx, repository.NoTX, translator.ID, job.Due)
	if err != nil {
		return AcceptResult{Result: fail("could not verify translator schedule")}
	}
	if booked {
		metrics.IncJobAcceptConflict()
		return AcceptResult{Result: fail(b.catalog.T("msg.accept_booked", formatDue(job.Due)))}
	}

	var claimed bool
	err = b.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		ok, err := b.jobs.AtomicSetStatus(ctx, tx, jobID, model.JobStatusPending, model.JobStatusAssigned)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		claimed = true
		return b.assignments.Create(ctx, tx, &model.TranslatorAssignment{
			ID:        uuid.NewString(),
			JobID:     jobID,
			UserID:    translator.ID,
			CreatedAt: b.clock.Now(),
		})
	})
	if err != nil {
		b.log.Error().Err(err).Str("job_id", jobID).Msg("accept: claim tx failed")
		return AcceptResult{Result: fail("could not accept booking")}
	}
	if !claimed {
		metrics.IncJobAcceptConflict()
		return AcceptResult{Result: fail(b.catalog.T("msg.accept_taken", lang, job.Duration, formatDue(job.Due)))}
	}

	job.Status = model.JobStatusAssigned
	metrics.IncJobAccepted()

	customer, err := b.users.FindByID(ctx, repository.NoTX, job.UserID)
	if err == nil {
		b.notifier.AcceptedEmail(ctx, job, customer)
		b.notifier.AcceptedPush(ctx, job, customer)
	}

	return AcceptResult{
		Result: Result{
			Status:  StatusSuccess,
			Message: b.catalog.T("msg.accept_success", lang, job.Duration, formatDue(job.Due)),
		},
	}
}

// AcceptJob claims the job and additionally returns the translator's
// remaining potential jobs, the list the mobile client refreshes with.
func (b *BookingOrchestrator) AcceptJob(ctx context.Context, jobID string, translator *model.User) AcceptResult {
	res := b.AcceptJobWithID(ctx, jobID, translator)
	if !res.Succeeded() {
		return res
	}
	jobs, err := b.GetPotentialJobs(ctx, translator.ID)
	if err != nil {
		b.log.Error().Err(err).Str("translator_id", translator.ID).Msg("accept: potential jobs listing failed")
		return res
	}
	res.List = jobs
	return res
}

// ---- cancel ----

// CancelJob handles both cancellation directions. Customers may withdraw
// any time; the status branches on how far away the due time is.
// Translators may only step back with more than 24h to go, returning the
// job to pending and re-broadcasting it.
func (b *BookingOrchestrator) CancelJob(ctx context.Context, jobID string, actor *model.User) Result {
	job, err := b.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return fail("booking not found")
	}

	if actor.Role == model.RoleCustomer {
		return b.cancelByCustomer(ctx, job)
	}
	return b.cancelByTranslator(ctx, job, actor)
}

func (b *BookingOrchestrator) cancelByCustomer(ctx context.Context, job *model.Job) Result {
	now := b.clock.Now()
	job.WithdrawAt = &now
	if job.Due.Sub(now) >= 24*time.Hour {
		job.Status = model.JobStatusWithdrawBefore24
	} else {
		job.Status = model.JobStatusWithdrawAfter24
	}

	if err := b.jobs.Save(ctx, repository.NoTX, job); err != nil {
		b.log.Error().Err(err).Str("job_id", job.ID).Msg("cancel: save failed")
		return fail("could not cancel booking")
	}
	metrics.IncJobCancelled("customer")
	b.publish(ctx, adapter.EventJobCanceled, job.ID, job.UserID)

	active, err := b.assignments.FindActiveByJob(ctx, repository.NoTX, job.ID)
	if err == nil {
		if translator, err := b.users.FindByID(ctx, repository.NoTX, active.UserID); err == nil {
			b.notifier.CustomerCancelledPush(ctx, job, translator)
		}
	}
	return success()
}

func (b *BookingOrchestrator) cancelByTranslator(ctx context.Context, job *model.Job, translator *model.User) Result {
	now := b.clock.Now()
	if job.Due.Sub(now) <= 24*time.Hour {
		return fail(b.catalog.T("msg.cancel_window"))
	}

	active, err := b.assignments.FindActiveByJob(ctx, repository.NoTX, job.ID)
	if err != nil {
		return fail("no active assignment to cancel")
	}

	// Reopen the job and close the assignment as one unit.
	err = b.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		job.Status = model.JobStatusPending
		job.CreatedAt = now
		exp := model.WillExpireAt(job.Due, now)
		job.WillExpireAt = &exp
		if err := b.jobs.Save(ctx, tx, job); err != nil {
			return err
		}
		return b.assignments.Close(ctx, tx, active.ID, repository.AssignmentClose{CancelAt: &now})
	})
	if err != nil {
		b.log.Error().Err(err).Str("job_id", job.ID).Msg("translator cancel: tx failed")
		return fail("could not cancel booking")
	}
	metrics.IncJobCancelled("translator")
	b.publish(ctx, adapter.EventJobCanceled, job.ID, translator.ID)

	if customer, err := b.users.FindByID(ctx, repository.NoTX, job.UserID); err == nil {
		b.notifier.TranslatorCancelledPush(ctx, job, customer)
	}

	candidates, err := b.filter.PotentialTranslators(ctx, job, translator.ID)
	if err != nil {
		b.log.Error().Err(err).Str("job_id", job.ID).Msg("translator cancel: candidate listing failed")
		return success()
	}
	b.notifier.BroadcastSuitableJob(ctx, job, candidates)
	return success()
}

// ---- session end ----

// EndJob completes a started session: session_time becomes the h:m:s gap
// between due and completion, the assignment closes with completed_at and
// the acting user, and the invoice/payout emails go out. Calling it on a
// job that is not started is a success no-op, so repeated submissions
// never double-send.
func (b *BookingOrchestrator) EndJob(ctx context.Context, jobID, actorID string) Result {
	job, err := b.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return fail("booking not found")
	}
	if job.Status != model.JobStatusStarted {
		return success()
	}

	active, err := b.assignments.FindActiveByJob(ctx, repository.NoTX, job.ID)
	if err != nil {
		return fail("no active assignment")
	}

	now := b.clock.Now()
	job.Status = model.JobStatusCompleted
	job.EndAt = &now
	job.SessionTime = model.SessionInterval(job.Due, now)

	err = b.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := b.jobs.Save(ctx, tx, job); err != nil {
			return err
		}
		return b.assignments.Close(ctx, tx, active.ID, repository.AssignmentClose{
			CompletedAt: &now, CompletedBy: actorID,
		})
	})
	if err != nil {
		b.log.Error().Err(err).Str("job_id", job.ID).Msg("endJob: tx failed")
		return fail("could not complete booking")
	}
	metrics.IncJobCompleted()

	counterpart := job.UserID
	if actorID == job.UserID {
		counterpart = active.UserID
	}
	b.publish(ctx, adapter.EventSessionEnded, job.ID, counterpart)

	customer, cerr := b.users.FindByID(ctx, repository.NoTX, job.UserID)
	translator, terr := b.users.FindByID(ctx, repository.NoTX, active.UserID)
	if cerr == nil && terr == nil {
		b.notifier.SessionEndedEmails(ctx, job, customer, translator)
	}
	return success()
}

// CustomerNotCall records a customer no-show on a started session. The
// assignment closes against the translator's own id and no billing emails
// are sent.
func (b *BookingOrchestrator) CustomerNotCall(ctx context.Context, jobID string) Result {
	job, err := b.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return fail("booking not found")
	}
	if job.Status != model.JobStatusStarted {
		return fail("booking is not in a started session")
	}

	active, err := b.assignments.FindActiveByJob(ctx, repository.NoTX, job.ID)
	if err != nil {
		return fail("no active assignment")
	}

	now := b.clock.Now()
	job.Status = model.JobStatusNotCarriedOutByCustomer
	job.EndAt = &now
	job.SessionTime = model.SessionInterval(job.Due, now)

	err = b.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := b.jobs.Save(ctx, tx, job); err != nil {
			return err
		}
		return b.assignments.Close(ctx, tx, active.ID, repository.AssignmentClose{
			CompletedAt: &now, CompletedBy: active.UserID,
		})
	})
	if err != nil {
		b.log.Error().Err(err).Str("job_id", job.ID).Msg("customerNotCall: tx failed")
		return fail("could not record no-show")
	}
	return success()
}

// ---- update ----

// UpdateJob applies an admin update: translator, due date, language and
// status changes in one call. The job row and any assignment rows commit
// as one transaction; all audit fragments merge into a single append
// keyed by the acting user and job id. Notifications fire only after the
// commit, and only for future bookings.
func (b *BookingOrchestrator) UpdateJob(ctx context.Context, jobID string, req UpdateJobRequest, actor *model.User) UpdateResult {
	job, err := b.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return UpdateResult{Result: fail("booking not found")}
	}

	oldDue := job.Due
	oldLangName := b.languageName(ctx, job.FromLanguageID)

	var (
		logEntries []model.AuditEntry
		change     *TranslatorChange
		outcome    *TransitionOutcome
		dueChanged bool
	)

	err = b.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		current, err := b.assignments.FindActiveByJob(ctx, tx, job.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		change, err = b.manager.ChangeTranslator(ctx, tx, job, current, req.Translator)
		if err != nil {
			return err
		}
		if change.Changed {
			logEntries = append(logEntries, *change.Entry)
		}

		var dueEntry *model.AuditEntry
		if req.Due != nil {
			dueChanged, dueEntry = b.manager.ChangeDue(job.Due, *req.Due)
			if dueChanged {
				job.Due = *req.Due
				logEntries = append(logEntries, *dueEntry)
			}
		}

		langChanged, langEntry := b.manager.ChangeLanguage(ctx, job, req.FromLanguageID)
		if langChanged {
			logEntries = append(logEntries, *langEntry)
		}

		if req.Status != "" {
			target, err := model.ParseJobStatus(req.Status)
			if err != nil {
				return err
			}
			outcome, err = b.machine.Apply(ctx, job, TransitionRequest{
				Target:            target,
				AdminComments:     req.AdminComments,
				SessionTime:       req.SessionTime,
				ActorID:           actor.ID,
				TranslatorChanged: change.Changed,
				NewTranslator:     change.New,
			})
			if err != nil {
				return err
			}
			if outcome.Changed {
				logEntries = append(logEntries, *outcome.Entry)
			}
			if outcome.CloseAssignment != nil {
				mut := outcome.CloseAssignment
				if err := b.assignments.Close(ctx, tx, mut.AssignmentID, mut.Close); err != nil {
					return err
				}
			}
		}

		if req.AdminComments != "" {
			job.AdminComments = req.AdminComments
		}
		if req.Reference != "" {
			job.Reference = req.Reference
		}

		if err := b.jobs.Save(ctx, tx, job); err != nil {
			return err
		}
		if len(logEntries) > 0 {
			return b.audit.Append(ctx, tx, actor.ID, job.ID, logEntries)
		}
		return nil
	})
	if err != nil {
		return UpdateResult{Result: fail(err.Error())}
	}

	b.log.Info().Str("actor_id", actor.ID).Str("job_id", job.ID).
		Int("changes", len(logEntries)).Msg("booking updated")

	// Past bookings are corrected silently; only future ones notify.
	if job.Due.After(b.clock.Now()) {
		b.notifyUpdate(ctx, job, change, dueChanged, oldDue, oldLangName, req.FromLanguageID)
		if outcome != nil {
			outcome.Notify(ctx)
		}
	}

	return UpdateResult{Result: success(), Log: logEntries}
}

func (b *BookingOrchestrator) notifyUpdate(ctx context.Context, job *model.Job, change *TranslatorChange, dueChanged bool, oldDue time.Time, oldLangName, newLangID string) {
	customer, err := b.users.FindByID(ctx, repository.NoTX, job.UserID)
	if err != nil {
		b.log.Error().Err(err).Str("job_id", job.ID).Msg("update notify: customer lookup failed")
		return
	}

	var translator *model.User
	if active, err := b.assignments.FindActiveByJob(ctx, repository.NoTX, job.ID); err == nil {
		translator, _ = b.users.FindByID(ctx, repository.NoTX, active.UserID)
	}

	if change != nil && change.Changed {
		b.notifier.TranslatorChangedEmails(ctx, job, customer, change.Old, change.New)
	}
	if dueChanged {
		b.notifier.DueChangedEmails(ctx, job, customer, translator, oldDue)
	}
	if newLangID != "" && newLangID == job.FromLanguageID && oldLangName != b.languageName(ctx, job.FromLanguageID) {
		b.notifier.LanguageChangedEmails(ctx, job, customer, translator, oldLangName)
	}
}

// ---- reopen ----

// Reopen revives a cancelled or timed-out booking. Cancelled jobs flip
// back to pending in place; timed-out ones get a fresh row carrying an
// admin comment that links back to the original, preserving audit
// history. Open assignments of the original close either way.
func (b *BookingOrchestrator) Reopen(ctx context.Context, jobID, actorID string) Result {
	job, err := b.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return fail("booking not found")
	}

	now := b.clock.Now()
	newJobID := jobID

	err = b.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if job.Status != model.JobStatusTimedOut {
			job.Status = model.JobStatusPending
			job.CreatedAt = now
			exp := model.WillExpireAt(job.Due, now)
			job.WillExpireAt = &exp
			if err := b.jobs.Save(ctx, tx, job); err != nil {
				return err
			}
		} else {
			reopened := *job
			reopened.ID = uuid.NewString()
			reopened.Status = model.JobStatusPending
			reopened.CreatedAt = now
			exp := model.WillExpireAt(reopened.Due, now)
			reopened.WillExpireAt = &exp
			reopened.EmailSent16Hour = false
			reopened.EmailSent48Hour = false
			reopened.AdminComments = "This booking is a reopening of booking #" + jobID
			if err := b.jobs.Save(ctx, tx, &reopened); err != nil {
				return err
			}
			newJobID = reopened.ID
		}

		// Close whatever assignment the original still holds open.
		if active, err := b.assignments.FindActiveByJob(ctx, tx, jobID); err == nil {
			return b.assignments.Close(ctx, tx, active.ID, repository.AssignmentClose{CancelAt: &now})
		}
		return nil
	})
	if err != nil {
		b.log.Error().Err(err).Str("job_id", jobID).Msg("reopen: tx failed")
		return Result{Status: StatusFail, Message: "Please try again!"}
	}

	if err := b.SendNotificationByAdminCancelJob(ctx, newJobID); err != nil {
		b.log.Error().Err(err).Str("job_id", newJobID).Msg("reopen: broadcast failed")
	}
	return Result{Status: StatusSuccess, Message: "Tolk cancelled!"}
}

// SendNotificationByAdminCancelJob re-broadcasts a job to every eligible
// translator, the admin's manual nudge after cancelling or reopening.
func (b *BookingOrchestrator) SendNotificationByAdminCancelJob(ctx context.Context, jobID string) error {
	job, err := b.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return err
	}
	candidates, err := b.filter.PotentialTranslators(ctx, job, "")
	if err != nil {
		return err
	}
	b.notifier.BroadcastSuitableJob(ctx, job, candidates)
	return nil
}

// ResendSMSNotifications texts the eligible translator set for a job, on
// explicit admin request only. Returns how many translators were messaged.
func (b *BookingOrchestrator) ResendSMSNotifications(ctx context.Context, jobID string) (int, error) {
	job, err := b.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return 0, err
	}
	candidates, err := b.filter.PotentialTranslators(ctx, job, "")
	if err != nil {
		return 0, err
	}
	return b.notifier.SMSBroadcast(ctx, job, candidates)
}

// ---- listings ----

// GetPotentialJobs lists the pending jobs a translator is eligible for.
func (b *BookingOrchestrator) GetPotentialJobs(ctx context.Context, translatorID string) ([]*model.Job, error) {
	candidate, err := b.filter.CandidateFor(ctx, translatorID)
	if err != nil {
		return nil, err
	}

	jobs, err := b.jobs.Query(ctx, repository.NoTX, repository.JobFilter{
		Statuses:    []model.JobStatus{model.JobStatusPending},
		JobTypes:    []model.JobType{JobTypeFor(candidate.Meta.TranslatorType)},
		LanguageIDs: candidate.LanguageIDs,
	})
	if err != nil {
		return nil, err
	}

	var out []*model.Job
	for _, job := range jobs {
		ok, err := b.filter.Eligible(ctx, job, candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, job)
		}
	}
	return out, nil
}

// GetUsersJobs returns the active bookings of a customer or translator,
// immediate jobs listed apart and scheduled ones ordered by due time.
func (b *BookingOrchestrator) GetUsersJobs(ctx context.Context, userID string) (*UserJobs, error) {
	user, err := b.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}

	filter := repository.JobFilter{
		Statuses: []model.JobStatus{model.JobStatusPending, model.JobStatusAssigned, model.JobStatusStarted},
	}
	switch user.Role {
	case model.RoleCustomer:
		filter.CustomerIDs = []string{userID}
	case model.RoleTranslator:
		filter.TranslatorID = userID
	default:
		return &UserJobs{UserType: user.Role}, nil
	}

	jobs, err := b.jobs.Query(ctx, repository.NoTX, filter)
	if err != nil {
		return nil, err
	}

	out := &UserJobs{UserType: user.Role}
	for _, j := range jobs {
		if j.Immediate {
			out.Emergency = append(out.Emergency, j)
		} else {
			out.Normal = append(out.Normal, j)
		}
	}
	sort.Slice(out.Normal, func(i, k int) bool { return out.Normal[i].Due.Before(out.Normal[k].Due) })
	return out, nil
}

// GetUsersJobsHistory pages through a user's finished bookings.
func (b *BookingOrchestrator) GetUsersJobsHistory(ctx context.Context, userID string, limit, offset int) ([]*model.Job, error) {
	user, err := b.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}

	filter := repository.JobFilter{
		Statuses: []model.JobStatus{
			model.JobStatusCompleted, model.JobStatusWithdrawBefore24,
			model.JobStatusWithdrawAfter24, model.JobStatusTimedOut,
			model.JobStatusNotCarriedOutByCustomer,
		},
		Limit:  limit,
		Offset: offset,
	}
	switch user.Role {
	case model.RoleCustomer:
		filter.CustomerIDs = []string{userID}
	case model.RoleTranslator:
		filter.TranslatorID = userID
	default:
		return nil, nil
	}
	return b.jobs.Query(ctx, repository.NoTX, filter)
}

// QueryJobs is the admin listing behind the dashboard filters.
func (b *BookingOrchestrator) QueryJobs(ctx context.Context, f repository.JobFilter) ([]*model.Job, error) {
	return b.jobs.Query(ctx, repository.NoTX, f)
}

// ---- expiry sweep ----

// ExpirePending times out every pending job whose offer window has
// passed, pushing the expired notice to its customer. The CAS keeps the
// sweep safe against a translator accepting concurrently.
func (b *BookingOrchestrator) ExpirePending(ctx context.Context) (int, error) {
	now := b.clock.Now()
	jobs, err := b.jobs.Query(ctx, repository.NoTX, repository.JobFilter{ExpiredPendingAsOf: &now})
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, job := range jobs {
		ok, err := b.jobs.AtomicSetStatus(ctx, repository.NoTX, job.ID, model.JobStatusPending, model.JobStatusTimedOut)
		if err != nil {
			b.log.Error().Err(err).Str("job_id", job.ID).Msg("expiry: status flip failed")
			continue
		}
		if !ok {
			continue
		}
		expired++
		job.Status = model.JobStatusTimedOut
		if customer, err := b.users.FindByID(ctx, repository.NoTX, job.UserID); err == nil {
			b.notifier.ExpiredPush(ctx, job, customer)
		}
	}
	return expired, nil
}

func (b *BookingOrchestrator) languageName(ctx context.Context, id string) string {
	lang, err := b.languages.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return id
	}
	return lang.Name
}
