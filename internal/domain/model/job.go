package model

import (
	"fmt"
	"time"

	"interpreter-booking/internal/domain"
)

type JobStatus string

const (
	JobStatusPending                 JobStatus = "pending"
	JobStatusAssigned                JobStatus = "assigned"
	JobStatusStarted                 JobStatus = "started"
	JobStatusCompleted               JobStatus = "completed"
	JobStatusWithdrawBefore24        JobStatus = "withdrawbefore24"
	JobStatusWithdrawAfter24         JobStatus = "withdrawafter24"
	JobStatusTimedOut                JobStatus = "timedout"
	JobStatusNotCarriedOutByCustomer JobStatus = "not_carried_out_customer"
)

// ParseJobStatus maps a wire value onto the closed status set.
func ParseJobStatus(s string) (JobStatus, error) {
	switch JobStatus(s) {
	case JobStatusPending, JobStatusAssigned, JobStatusStarted, JobStatusCompleted,
		JobStatusWithdrawBefore24, JobStatusWithdrawAfter24, JobStatusTimedOut,
		JobStatusNotCarriedOutByCustomer:
		return JobStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown job status %q", domain.ErrInvalidArgument, s)
}

type JobType string

const (
	JobTypePaid   JobType = "paid"
	JobTypeRWS    JobType = "rws"
	JobTypeUnpaid JobType = "unpaid"
)

// CertifiedRequirement is the certification the customer asked for on the
// booking. Empty means unrestricted.
type CertifiedRequirement string

const (
	CertifiedNone      CertifiedRequirement = ""
	CertifiedYes       CertifiedRequirement = "yes"
	CertifiedBoth      CertifiedRequirement = "both"
	CertifiedLaw       CertifiedRequirement = "law"
	CertifiedNLaw      CertifiedRequirement = "n_law"
	CertifiedHealth    CertifiedRequirement = "health"
	CertifiedNHealth   CertifiedRequirement = "n_health"
	CertifiedNormal    CertifiedRequirement = "normal"
)

type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
)

// ModerationFlags groups the admin moderation booleans that used to live
// as loose columns on the job row. Set is the single mutation entry point.
type ModerationFlags struct {
	Flagged         bool
	ManuallyHandled bool
	ByAdmin         bool
	Ignore          bool
	IgnoreExpired   bool
	IgnoreFlagged   bool
}

type ModerationFlag string

const (
	FlagFlagged         ModerationFlag = "flagged"
	FlagManuallyHandled ModerationFlag = "manually_handled"
	FlagByAdmin         ModerationFlag = "by_admin"
	FlagIgnore          ModerationFlag = "ignore"
	FlagIgnoreExpired   ModerationFlag = "ignore_expired"
	FlagIgnoreFlagged   ModerationFlag = "ignore_flagged"
)

func (m *ModerationFlags) Set(flag ModerationFlag, v bool) error {
	switch flag {
	case FlagFlagged:
		m.Flagged = v
	case FlagManuallyHandled:
		m.ManuallyHandled = v
	case FlagByAdmin:
		m.ByAdmin = v
	case FlagIgnore:
		m.Ignore = v
	case FlagIgnoreExpired:
		m.IgnoreExpired = v
	case FlagIgnoreFlagged:
		m.IgnoreFlagged = v
	default:
		return fmt.Errorf("%w: unknown moderation flag %q", domain.ErrInvalidArgument, flag)
	}
	return nil
}

// Job is a single interpretation-booking request.
type Job struct {
	ID             string // UUID
	UserID         string // owning customer
	UserEmail      string // optional override; emails go here when set
	FromLanguageID string

	JobType   JobType
	Certified CertifiedRequirement
	Gender    Gender

	Due       time.Time
	Immediate bool
	Duration  int // minutes

	Status JobStatus

	CustomerPhoneType    bool
	CustomerPhysicalType bool

	Town         string
	Address      string
	Instructions string
	Reference    string

	AdminComments string
	Flags         ModerationFlags

	SessionTime string // h:m:s, set on completion

	CreatedAt    time.Time
	WithdrawAt   *time.Time
	WillExpireAt *time.Time
	EndAt        *time.Time

	// Reminder email bookkeeping, cleared when a booking is reopened.
	EmailSent16Hour bool
	EmailSent48Hour bool
}

// Active reports whether the job still occupies a translator slot.
func (j *Job) Active() bool {
	switch j.Status {
	case JobStatusPending, JobStatusAssigned, JobStatusStarted:
		return true
	}
	return false
}

// SessionInterval formats the gap between due and completion as h:m:s,
// the legacy storage format for session_time.
func SessionInterval(due, completed time.Time) string {
	d := completed.Sub(due)
	if d < 0 {
		d = -d
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%d:%d", h, m, s)
}

// WillExpireAt computes when an unaccepted booking stops being offered.
// Near bookings expire at their due time; everything else gets a grace
// window that shrinks as the due time approaches.
func WillExpireAt(due, createdAt time.Time) time.Time {
	diff := due.Sub(createdAt)
	switch {
	case diff <= 90*time.Minute:
		return due
	case diff <= 24*time.Hour:
		return createdAt.Add(90 * time.Minute)
	case diff <= 72*time.Hour:
		return createdAt.Add(16 * time.Hour)
	default:
		return due.Add(-48 * time.Hour)
	}
}
