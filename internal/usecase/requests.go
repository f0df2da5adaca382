package usecase

import (
	"time"

	"interpreter-booking/internal/domain/model"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Result is the caller-facing outcome of a booking operation. Failures of
// the validation/concurrency/not-found taxonomy come back here as status
// "fail" with a message, never as a panic or transport error.
type Result struct {
	Status  string
	Message string
}

func success() Result            { return Result{Status: StatusSuccess} }
func fail(msg string) Result     { return Result{Status: StatusFail, Message: msg} }
func (r Result) Succeeded() bool { return r.Status == StatusSuccess }

// StoreJobRequest is the validated create payload. Optional fields carry
// documented defaults: JobType falls back to the customer's consumer type,
// Town to the customer's city.
type StoreJobRequest struct {
	FromLanguageID string
	Immediate      bool
	Due            time.Time // ignored for immediate jobs
	Duration       int       // minutes
	JobType        model.JobType
	Certified      model.CertifiedRequirement
	Gender         model.Gender

	CustomerPhoneType    bool
	CustomerPhysicalType bool

	Town      string
	Reference string
}

type StoreResult struct {
	Result
	ID   string
	Type string // "immediate" | "regular"
}

// JobEmailRequest enriches a stored job with the contact override used by
// all subsequent customer emails.
type JobEmailRequest struct {
	JobID        string
	UserEmail    string
	Reference    string
	Address      string
	Instructions string
	Town         string
}

// UpdateJobRequest is the admin update payload. Zero values leave the
// corresponding attribute untouched.
type UpdateJobRequest struct {
	Translator     TranslatorChangeRequest
	Due            *time.Time
	FromLanguageID string
	Status         string // target status, empty for none
	AdminComments  string
	SessionTime    string // h:m:s, for started → completed
	Reference      string
}

type UpdateResult struct {
	Result
	Log []model.AuditEntry
}

type AcceptResult struct {
	Result
	List []*model.Job // remaining potential jobs for the translator
}

// UserJobs is the active-jobs view for one user, emergency (immediate)
// bookings listed apart from scheduled ones.
type UserJobs struct {
	Emergency []*model.Job
	Normal    []*model.Job
	UserType  model.Role
}
