package model

import "time"

// AuditEntry is one recorded change fragment on a booking. All fragments
// produced by a single update call share the same actor and job id and
// are appended together.
type AuditEntry struct {
	ID       string // ULID
	Kind     AuditKind
	OldValue string
	NewValue string
	At       time.Time
}

type AuditKind string

const (
	AuditTranslatorChanged AuditKind = "translator_changed"
	AuditDueChanged        AuditKind = "due_changed"
	AuditLanguageChanged   AuditKind = "language_changed"
	AuditStatusChanged     AuditKind = "status_changed"
)
