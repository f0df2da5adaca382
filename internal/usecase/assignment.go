package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/adapter"
	"interpreter-booking/internal/domain/ports/repository"
)

// TranslatorChangeRequest names the requested translator by id or email.
// Both empty means "leave the assignment alone".
type TranslatorChangeRequest struct {
	TranslatorID    string
	TranslatorEmail string
}

func (r TranslatorChangeRequest) empty() bool {
	return r.TranslatorID == "" && r.TranslatorEmail == ""
}

// TranslatorChange is the result of a reassignment attempt.
type TranslatorChange struct {
	Changed bool
	Old     *model.User // nil when the job had no active assignment
	New     *model.User
	Entry   *model.AuditEntry
}

// AssignmentManager detects and performs translator, due-date and language
// changes during an update, producing one audit fragment per change. All
// row mutations go through the transaction handed in by the orchestrator.
type AssignmentManager struct {
	users       repository.UserRepository
	assignments repository.AssignmentRepository
	languages   repository.LanguageRepository
	clock       adapter.Clock
	log         *zerolog.Logger
}

func NewAssignmentManager(
	users repository.UserRepository,
	assignments repository.AssignmentRepository,
	languages repository.LanguageRepository,
	clock adapter.Clock,
	logger *zerolog.Logger,
) *AssignmentManager {
	l := logger.With().Str("component", "AssignmentManager").Logger()
	return &AssignmentManager{
		users: users, assignments: assignments, languages: languages,
		clock: clock, log: &l,
	}
}

func (am *AssignmentManager) resolveTranslator(ctx context.Context, tx repository.Tx, req TranslatorChangeRequest) (*model.User, error) {
	if req.TranslatorID != "" {
		return am.users.FindByID(ctx, tx, req.TranslatorID)
	}
	return am.users.FindByEmail(ctx, tx, req.TranslatorEmail)
}

// ChangeTranslator compares the requested translator against the current
// active assignment. A different translator soft-closes the current row
// (cancel_at = now, retained for audit) and creates a fresh one for the
// same job.
func (am *AssignmentManager) ChangeTranslator(ctx context.Context, tx repository.Tx, job *model.Job, current *model.TranslatorAssignment, req TranslatorChangeRequest) (*TranslatorChange, error) {
	if req.empty() {
		return &TranslatorChange{}, nil
	}

	requested, err := am.resolveTranslator(ctx, tx, req)
	if err != nil {
		return nil, err
	}

	now := am.clock.Now()

	if current != nil {
		if current.UserID == requested.ID {
			return &TranslatorChange{}, nil
		}
		old, err := am.users.FindByID(ctx, tx, current.UserID)
		if err != nil {
			return nil, err
		}
		if err := am.assignments.Close(ctx, tx, current.ID, repository.AssignmentClose{CancelAt: &now}); err != nil {
			return nil, err
		}
		if err := am.createAssignment(ctx, tx, job.ID, requested.ID, now); err != nil {
			return nil, err
		}
		return &TranslatorChange{
			Changed: true,
			Old:     old,
			New:     requested,
			Entry: &model.AuditEntry{
				ID:       ulid.Make().String(),
				Kind:     model.AuditTranslatorChanged,
				OldValue: old.Email,
				NewValue: requested.Email,
				At:       now,
			},
		}, nil
	}

	if err := am.createAssignment(ctx, tx, job.ID, requested.ID, now); err != nil {
		return nil, err
	}
	return &TranslatorChange{
		Changed: true,
		New:     requested,
		Entry: &model.AuditEntry{
			ID:       ulid.Make().String(),
			Kind:     model.AuditTranslatorChanged,
			NewValue: requested.Email,
			At:       now,
		},
	}, nil
}

func (am *AssignmentManager) createAssignment(ctx context.Context, tx repository.Tx, jobID, translatorID string, now time.Time) error {
	return am.assignments.Create(ctx, tx, &model.TranslatorAssignment{
		ID:        uuid.NewString(),
		JobID:     jobID,
		UserID:    translatorID,
		CreatedAt: now,
	})
}

// ChangeDue detects a due-date change and returns its audit fragment.
func (am *AssignmentManager) ChangeDue(oldDue, newDue time.Time) (bool, *model.AuditEntry) {
	if newDue.IsZero() || oldDue.Equal(newDue) {
		return false, nil
	}
	return true, &model.AuditEntry{
		ID:       ulid.Make().String(),
		Kind:     model.AuditDueChanged,
		OldValue: formatDue(oldDue),
		NewValue: formatDue(newDue),
		At:       am.clock.Now(),
	}
}

// ChangeLanguage detects a source-language change, mutates the job and
// returns an audit fragment carrying the human-readable language names.
func (am *AssignmentManager) ChangeLanguage(ctx context.Context, job *model.Job, newLangID string) (bool, *model.AuditEntry) {
	if newLangID == "" || job.FromLanguageID == newLangID {
		return false, nil
	}
	oldName := am.languageName(ctx, job.FromLanguageID)
	newName := am.languageName(ctx, newLangID)
	job.FromLanguageID = newLangID
	return true, &model.AuditEntry{
		ID:       ulid.Make().String(),
		Kind:     model.AuditLanguageChanged,
		OldValue: oldName,
		NewValue: newName,
		At:       am.clock.Now(),
	}
}

func (am *AssignmentManager) languageName(ctx context.Context, id string) string {
	lang, err := am.languages.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return id
	}
	return lang.Name
}
