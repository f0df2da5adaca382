package adapter

import "context"

// MailTemplate identifies a rendered email body; rendering itself lives
// behind the gateway.
type MailTemplate string

const (
	MailJobCreated                MailTemplate = "job-created"
	MailJobAccepted               MailTemplate = "job-accepted"
	MailJobReopened               MailTemplate = "job-change-status-to-customer"
	MailStatusChangedCustomer     MailTemplate = "status-changed-from-pending-or-assigned-customer"
	MailJobCancelTranslator       MailTemplate = "job-cancel-translator"
	MailSessionEnded              MailTemplate = "session-ended"
	MailChangedTranslatorCustomer MailTemplate = "job-changed-translator-customer"
	MailChangedTranslatorOld      MailTemplate = "job-changed-translator-old-translator"
	MailChangedTranslatorNew      MailTemplate = "job-changed-translator-new-translator"
	MailChangedDate               MailTemplate = "job-changed-date"
	MailChangedLang               MailTemplate = "job-changed-lang"
)

// Mailer sends one email to one recipient. Best effort: the core never
// retries and never rolls back a committed transition on send failure.
type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject string, template MailTemplate, payload map[string]any) error
}
