package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/adapter"
	"interpreter-booking/internal/domain/ports/repository"
	"interpreter-booking/internal/infra/i18n"
	"interpreter-booking/internal/infra/metrics"
)

// NightWindow is the clock-time range during which push delivery defers
// to the next business time. Start and End are offsets from midnight;
// the window may wrap past midnight (Start > End).
type NightWindow struct {
	Start time.Duration
	End   time.Duration
}

// Contains reports whether t falls inside the window.
func (w NightWindow) Contains(t time.Time) bool {
	mins := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
	if w.Start <= w.End {
		return mins >= w.Start && mins < w.End
	}
	return mins >= w.Start || mins < w.End
}

// NextBusinessTime returns the next instant at which the window ends.
func (w NightWindow) NextBusinessTime(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := day.Add(w.End)
	if !end.After(t) {
		end = end.Add(24 * time.Hour)
	}
	return end
}

// NotificationPolicy decides recipients, channel and timing for every
// domain event, and hands the result to the outbound gateways. Gateway
// failures are logged and swallowed: a committed status transition is
// never rolled back because a notification failed.
type NotificationPolicy struct {
	mailer    adapter.Mailer
	push      adapter.PushGateway
	sms       adapter.SMSGateway
	users     repository.UserRepository
	languages repository.LanguageRepository
	catalog   *i18n.Catalog
	clock     adapter.Clock
	night     NightWindow

	// remindLead is how long before due the session-start reminder lands.
	remindLead time.Duration

	log *zerolog.Logger
}

func NewNotificationPolicy(
	mailer adapter.Mailer,
	push adapter.PushGateway,
	sms adapter.SMSGateway,
	users repository.UserRepository,
	languages repository.LanguageRepository,
	catalog *i18n.Catalog,
	clock adapter.Clock,
	night NightWindow,
	remindLead time.Duration,
	logger *zerolog.Logger,
) *NotificationPolicy {
	l := logger.With().Str("component", "NotificationPolicy").Logger()
	return &NotificationPolicy{
		mailer: mailer, push: push, sms: sms,
		users: users, languages: languages,
		catalog: catalog, clock: clock, night: night,
		remindLead: remindLead, log: &l,
	}
}

// ---- preference helpers ----

func (p *NotificationPolicy) needSendPush(meta *model.UserMeta) bool {
	return meta == nil || !meta.NotGetNotification
}

// needDelayPush is true inside the night window unless the recipient
// asked to be reached at night too.
func (p *NotificationPolicy) needDelayPush(meta *model.UserMeta) bool {
	if !p.night.Contains(p.clock.Now()) {
		return false
	}
	return meta == nil || !meta.NotGetNighttime
}

func (p *NotificationPolicy) metaOf(ctx context.Context, userID string) *model.UserMeta {
	meta, err := p.users.FindMeta(ctx, repository.NoTX, userID)
	if err != nil {
		return nil
	}
	return meta
}

func (p *NotificationPolicy) languageName(ctx context.Context, id string) string {
	lang, err := p.languages.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return id
	}
	return lang.Name
}

// customerAddress resolves the email the customer is reached on: the
// per-job override when set, else the account address.
func customerAddress(job *model.Job, customer *model.User) string {
	if job.UserEmail != "" {
		return job.UserEmail
	}
	return customer.Email
}

func formatDue(t time.Time) string { return t.Format("2006-01-02 15:04:05") }

// hoursMins renders a duration in minutes the way the SMS templates show it.
func hoursMins(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dmin", mins)
	}
	if mins == 60 {
		return "1h"
	}
	return fmt.Sprintf("%02dh %02dmin", mins/60, mins%60)
}

func (p *NotificationPolicy) sendMail(ctx context.Context, toEmail, toName, subject string, tpl adapter.MailTemplate, payload map[string]any) {
	if err := p.mailer.Send(ctx, toEmail, toName, subject, tpl, payload); err != nil {
		p.log.Error().Err(err).Str("template", string(tpl)).Str("to", toEmail).Msg("mail send failed")
		metrics.IncNotificationFailed("email")
		return
	}
	metrics.IncNotificationSent("email", string(tpl))
}

// sendPushTo delivers one push to a single recipient, applying the
// opt-out and night-delay preferences.
func (p *NotificationPolicy) sendPushTo(ctx context.Context, user *model.User, n adapter.PushNotification) {
	meta := p.metaOf(ctx, user.ID)
	if !p.needSendPush(meta) {
		return
	}
	n.Recipients = []adapter.PushRecipient{{UserID: user.ID, Email: user.Email}}
	if n.SendAfter == nil && p.needDelayPush(meta) {
		next := p.night.NextBusinessTime(p.clock.Now())
		n.SendAfter = &next
	}
	p.deliverPush(ctx, n)
}

func (p *NotificationPolicy) deliverPush(ctx context.Context, n adapter.PushNotification) {
	if len(n.Recipients) == 0 {
		return
	}
	if err := p.push.Deliver(ctx, n); err != nil {
		p.log.Error().Err(err).Str("job_id", n.JobID).Str("type", string(n.Type)).Msg("push deliver failed")
		metrics.IncNotificationFailed("push")
		return
	}
	metrics.IncNotificationSent("push", string(n.Type))
}

func suitableJobSound(immediate bool) adapter.PushSound {
	if immediate {
		return adapter.PushSound{Android: "emergency_booking", IOS: "emergency_booking.mp3"}
	}
	return adapter.PushSound{Android: "normal_booking", IOS: "normal_booking.mp3"}
}

// ---- definitive single-recipient emails ----

// JobCreatedEmail confirms a new booking to the customer.
func (p *NotificationPolicy) JobCreatedEmail(ctx context.Context, job *model.Job, customer *model.User) {
	subject := p.catalog.T("email.subject.job_created", job.ID)
	p.sendMail(ctx, customerAddress(job, customer), customer.Name, subject, adapter.MailJobCreated,
		map[string]any{"job_id": job.ID})
}

// AcceptedEmail confirms to the customer that a translator took the booking.
func (p *NotificationPolicy) AcceptedEmail(ctx context.Context, job *model.Job, customer *model.User) {
	subject := p.catalog.T("email.subject.job_accepted", job.ID)
	p.sendMail(ctx, customerAddress(job, customer), customer.Name, subject, adapter.MailJobAccepted,
		map[string]any{"job_id": job.ID})
}

// ReopenedEmail tells the customer their timed-out booking is live again.
func (p *NotificationPolicy) ReopenedEmail(ctx context.Context, job *model.Job, customer *model.User) {
	lang := p.languageName(ctx, job.FromLanguageID)
	subject := p.catalog.T("email.subject.job_reopened", lang, job.ID)
	p.sendMail(ctx, customerAddress(job, customer), customer.Name, subject, adapter.MailJobReopened,
		map[string]any{"job_id": job.ID})
}

// CancellationEmail goes to the customer on any withdraw-style transition.
func (p *NotificationPolicy) CancellationEmail(ctx context.Context, job *model.Job, customer *model.User) {
	subject := p.catalog.T("email.subject.cancellation", job.ID)
	p.sendMail(ctx, customerAddress(job, customer), customer.Name, subject, adapter.MailStatusChangedCustomer,
		map[string]any{"job_id": job.ID})
}

// CancelledTranslatorEmail tells the active translator their booking was
// withdrawn.
func (p *NotificationPolicy) CancelledTranslatorEmail(ctx context.Context, job *model.Job, translator *model.User) {
	subject := p.catalog.T("email.subject.session_ended", job.ID)
	p.sendMail(ctx, translator.Email, translator.Name, subject, adapter.MailJobCancelTranslator,
		map[string]any{"job_id": job.ID})
}

// SessionEndedEmails sends the invoice ("faktura") email to the customer
// and the payout ("lön") email to the translator. One call per recipient,
// never batched.
func (p *NotificationPolicy) SessionEndedEmails(ctx context.Context, job *model.Job, customer, translator *model.User) {
	subject := p.catalog.T("email.subject.session_ended", job.ID)
	sessionTime := i18n.SessionTimeHuman(job.SessionTime)
	p.sendMail(ctx, customerAddress(job, customer), customer.Name, subject, adapter.MailSessionEnded,
		map[string]any{"job_id": job.ID, "session_time": sessionTime, "for_text": "faktura"})
	p.sendMail(ctx, translator.Email, translator.Name, subject, adapter.MailSessionEnded,
		map[string]any{"job_id": job.ID, "session_time": sessionTime, "for_text": "lön"})
}

// TranslatorChangedEmails notifies the customer, the displaced translator
// (when any) and the incoming translator about a reassignment.
func (p *NotificationPolicy) TranslatorChangedEmails(ctx context.Context, job *model.Job, customer, oldTranslator, newTranslator *model.User) {
	subject := p.catalog.T("email.subject.changed_translator", job.ID)
	p.sendMail(ctx, customerAddress(job, customer), customer.Name, subject, adapter.MailChangedTranslatorCustomer,
		map[string]any{"job_id": job.ID})
	if oldTranslator != nil {
		p.sendMail(ctx, oldTranslator.Email, oldTranslator.Name, subject, adapter.MailChangedTranslatorOld,
			map[string]any{"job_id": job.ID})
	}
	p.sendMail(ctx, newTranslator.Email, newTranslator.Name, subject, adapter.MailChangedTranslatorNew,
		map[string]any{"job_id": job.ID})
}

// DueChangedEmails notifies customer and active translator of the new time.
func (p *NotificationPolicy) DueChangedEmails(ctx context.Context, job *model.Job, customer, translator *model.User, oldTime time.Time) {
	subject := p.catalog.T("email.subject.changed_date", job.ID)
	payload := map[string]any{"job_id": job.ID, "old_time": formatDue(oldTime)}
	p.sendMail(ctx, customerAddress(job, customer), customer.Name, subject, adapter.MailChangedDate, payload)
	if translator != nil {
		p.sendMail(ctx, translator.Email, translator.Name, subject, adapter.MailChangedDate, payload)
	}
}

// LanguageChangedEmails notifies customer and active translator of the
// language switch.
func (p *NotificationPolicy) LanguageChangedEmails(ctx context.Context, job *model.Job, customer, translator *model.User, oldLanguage string) {
	subject := p.catalog.T("email.subject.changed_date", job.ID)
	payload := map[string]any{"job_id": job.ID, "old_lang": oldLanguage}
	p.sendMail(ctx, customerAddress(job, customer), customer.Name, subject, adapter.MailChangedLang, payload)
	if translator != nil {
		p.sendMail(ctx, translator.Email, translator.Name, subject, adapter.MailChangedLang, payload)
	}
}

// ---- broadcast and single pushes ----

// BroadcastSuitableJob pushes a newly available job to every eligible
// candidate, split into an immediate batch and a night-delayed batch.
func (p *NotificationPolicy) BroadcastSuitableJob(ctx context.Context, job *model.Job, candidates []*Candidate) {
	lang := p.languageName(ctx, job.FromLanguageID)
	due := formatDue(job.Due)
	if job.Immediate {
		due = "akut"
	}
	text := p.catalog.T("push.suitable_job", lang, job.Duration, due)

	var immediate, delayed []adapter.PushRecipient
	for _, c := range candidates {
		if !p.needSendPush(c.Meta) {
			continue
		}
		if job.Immediate && c.Meta != nil && c.Meta.NotGetEmergency {
			continue
		}
		r := adapter.PushRecipient{UserID: c.User.ID, Email: c.User.Email}
		if p.needDelayPush(c.Meta) {
			delayed = append(delayed, r)
		} else {
			immediate = append(immediate, r)
		}
	}

	base := adapter.PushNotification{
		JobID:    job.ID,
		Type:     adapter.PushSuitableJob,
		Contents: map[string]string{"en": text},
		Data:     map[string]string{"job_id": job.ID, "duration": fmt.Sprint(job.Duration)},
		Sound:    suitableJobSound(job.Immediate),
	}

	n := base
	n.Recipients = immediate
	p.deliverPush(ctx, n)

	if len(delayed) > 0 {
		next := p.night.NextBusinessTime(p.clock.Now())
		d := base
		d.Recipients = delayed
		d.SendAfter = &next
		p.deliverPush(ctx, d)
	}
}

// AcceptedPush tells the customer a translator accepted their booking.
func (p *NotificationPolicy) AcceptedPush(ctx context.Context, job *model.Job, customer *model.User) {
	lang := p.languageName(ctx, job.FromLanguageID)
	text := p.catalog.T("push.job_accepted", lang, job.Duration, formatDue(job.Due))
	p.sendPushTo(ctx, customer, adapter.PushNotification{
		JobID:    job.ID,
		Type:     adapter.PushJobAccepted,
		Contents: map[string]string{"en": text},
	})
}

// CustomerCancelledPush tells the active translator the customer withdrew.
func (p *NotificationPolicy) CustomerCancelledPush(ctx context.Context, job *model.Job, translator *model.User) {
	lang := p.languageName(ctx, job.FromLanguageID)
	text := p.catalog.T("push.job_cancelled_customer", lang, job.Duration, formatDue(job.Due))
	p.sendPushTo(ctx, translator, adapter.PushNotification{
		JobID:    job.ID,
		Type:     adapter.PushJobCancelled,
		Contents: map[string]string{"en": text},
	})
}

// TranslatorCancelledPush tells the customer their translator stepped back
// and a replacement is being searched.
func (p *NotificationPolicy) TranslatorCancelledPush(ctx context.Context, job *model.Job, customer *model.User) {
	lang := p.languageName(ctx, job.FromLanguageID)
	text := p.catalog.T("push.job_cancelled_translator", lang, job.Duration, formatDue(job.Due))
	p.sendPushTo(ctx, customer, adapter.PushNotification{
		JobID:    job.ID,
		Type:     adapter.PushJobCancelled,
		Contents: map[string]string{"en": text},
	})
}

// ExpiredPush tells the customer nobody accepted before the deadline.
func (p *NotificationPolicy) ExpiredPush(ctx context.Context, job *model.Job, customer *model.User) {
	lang := p.languageName(ctx, job.FromLanguageID)
	text := p.catalog.T("push.job_expired", lang, job.Duration, formatDue(job.Due))
	p.sendPushTo(ctx, customer, adapter.PushNotification{
		JobID:    job.ID,
		Type:     adapter.PushJobExpired,
		Contents: map[string]string{"en": text},
	})
}

// SessionStartReminder nudges one participant shortly before the session.
// The text differs for on-site and phone interpretations. Scheduling rides
// on the gateway's deferred delivery: the push is handed over now with a
// send time of due minus the reminder lead.
func (p *NotificationPolicy) SessionStartReminder(ctx context.Context, user *model.User, job *model.Job) {
	lang := p.languageName(ctx, job.FromLanguageID)
	var text string
	if job.CustomerPhysicalType {
		text = p.catalog.T("push.session_remind_physical", lang, job.Town, job.Due.Format("15:04"), job.Due.Format("2006-01-02"), job.Duration)
	} else {
		text = p.catalog.T("push.session_remind_phone", lang, job.Due.Format("15:04"), job.Due.Format("2006-01-02"), job.Duration)
	}

	n := adapter.PushNotification{
		JobID:    job.ID,
		Type:     adapter.PushSessionStartRemind,
		Contents: map[string]string{"en": text},
	}
	if at := job.Due.Add(-p.remindLead); at.After(p.clock.Now()) {
		n.SendAfter = &at
	}
	p.sendPushTo(ctx, user, n)
}

// ---- SMS ----

// smsMessage picks the template from the job's contact modes:
// physical-only uses the on-site template, phone-only and both use the
// phone template. A job with neither mode is a validation failure rather
// than a silent no-op.
func (p *NotificationPolicy) smsMessage(ctx context.Context, job *model.Job, city string) (string, error) {
	date := job.Due.Format("02.01.2006")
	clock := job.Due.Format("15:04")
	duration := hoursMins(job.Duration)

	switch {
	case job.CustomerPhysicalType && !job.CustomerPhoneType:
		return p.catalog.T("sms.physical_job", date, clock, city, duration, job.ID), nil
	case job.CustomerPhoneType:
		return p.catalog.T("sms.phone_job", date, clock, duration, job.ID), nil
	default:
		return "", domain.ErrNoContactMode
	}
}

// SMSBroadcast texts every candidate about the job, on explicit request
// only (resend action). Returns the number of translators messaged.
func (p *NotificationPolicy) SMSBroadcast(ctx context.Context, job *model.Job, candidates []*Candidate) (int, error) {
	city := job.Town
	if city == "" {
		if meta := p.metaOf(ctx, job.UserID); meta != nil {
			city = meta.City
		}
	}
	message, err := p.smsMessage(ctx, job, city)
	if err != nil {
		return 0, err
	}

	for _, c := range candidates {
		status, err := p.sms.Send(ctx, c.User.Mobile, message)
		if err != nil {
			p.log.Error().Err(err).Str("translator", c.User.Email).Msg("sms send failed")
			metrics.IncNotificationFailed("sms")
			continue
		}
		p.log.Info().Str("translator", c.User.Email).Str("mobile", c.User.Mobile).
			Str("status", string(status)).Msg("sms sent")
		metrics.IncNotificationSent("sms", "job_broadcast")
	}
	return len(candidates), nil
}
