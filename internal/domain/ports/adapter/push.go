package adapter

import (
	"context"
	"time"
)

type PushType string

const (
	PushSuitableJob        PushType = "suitable_job"
	PushJobAccepted        PushType = "job_accepted"
	PushJobCancelled       PushType = "job_cancelled"
	PushJobExpired         PushType = "job_expired"
	PushSessionStartRemind PushType = "session_start_remind"
)

// PushRecipient is the identifier tuple the gateway matches device tags on.
type PushRecipient struct {
	UserID string
	Email  string
}

// PushSound selects the notification sound per platform; broadcast pushes
// for immediate jobs use the emergency profile.
type PushSound struct {
	Android string
	IOS     string
}

// PushNotification is the outbound payload. SendAfter, when set, defers
// delivery to the given instant; the gateway interprets it, the core does
// no scheduling of its own.
type PushNotification struct {
	JobID      string
	Type       PushType
	Recipients []PushRecipient
	Contents   map[string]string // locale -> text
	Data       map[string]string
	Sound      PushSound
	SendAfter  *time.Time
}

type PushGateway interface {
	Deliver(ctx context.Context, n PushNotification) error
}
