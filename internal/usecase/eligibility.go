package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/repository"
)

// Candidate bundles the translator attributes the eligibility rules read.
type Candidate struct {
	User        *model.User
	Meta        *model.UserMeta
	LanguageIDs []string
}

// EligibilityFilter decides which translators may receive or accept a job.
// The same rule set serves bulk candidate listing and per-broadcast checks.
type EligibilityFilter struct {
	users       repository.UserRepository
	blacklist   repository.BlacklistRepository
	assignments repository.AssignmentRepository
	log         *zerolog.Logger
}

func NewEligibilityFilter(
	users repository.UserRepository,
	blacklist repository.BlacklistRepository,
	assignments repository.AssignmentRepository,
	logger *zerolog.Logger,
) *EligibilityFilter {
	l := logger.With().Str("component", "EligibilityFilter").Logger()
	return &EligibilityFilter{users: users, blacklist: blacklist, assignments: assignments, log: &l}
}

// JobTypeFor maps a translator type onto the job type it may take.
func JobTypeFor(t model.TranslatorType) model.JobType {
	switch t {
	case model.TranslatorProfessional:
		return model.JobTypePaid
	case model.TranslatorRWS:
		return model.JobTypeRWS
	default:
		return model.JobTypeUnpaid
	}
}

// TranslatorTypeFor is the inverse mapping, used when listing candidates
// for a given job.
func TranslatorTypeFor(jt model.JobType) model.TranslatorType {
	switch jt {
	case model.JobTypePaid:
		return model.TranslatorProfessional
	case model.JobTypeRWS:
		return model.TranslatorRWS
	default:
		return model.TranslatorVolunteer
	}
}

// RequiredLevels expands a certification requirement into the translator
// levels that satisfy it. An empty requirement is unrestricted.
func RequiredLevels(c model.CertifiedRequirement) []model.TranslatorLevel {
	switch c {
	case model.CertifiedYes:
		return []model.TranslatorLevel{model.LevelCertified, model.LevelCertifiedLaw, model.LevelCertifiedHealth}
	case model.CertifiedBoth:
		return []model.TranslatorLevel{
			model.LevelCertified, model.LevelCertifiedLaw, model.LevelCertifiedHealth,
			model.LevelLayman, model.LevelReadCourses,
		}
	case model.CertifiedLaw, model.CertifiedNLaw:
		return []model.TranslatorLevel{model.LevelCertifiedLaw}
	case model.CertifiedHealth, model.CertifiedNHealth:
		return []model.TranslatorLevel{model.LevelCertifiedHealth}
	case model.CertifiedNormal:
		return []model.TranslatorLevel{model.LevelLayman, model.LevelReadCourses}
	default:
		return model.AllTranslatorLevels
	}
}

func levelAllowed(level model.TranslatorLevel, allowed []model.TranslatorLevel) bool {
	for _, l := range allowed {
		if l == level {
			return true
		}
	}
	return false
}

// Eligible applies all rules for one job/candidate pair. The blacklist is
// checked first and excludes unconditionally.
func (f *EligibilityFilter) Eligible(ctx context.Context, job *model.Job, c *Candidate) (bool, error) {
	excluded, err := f.blacklist.TranslatorIDs(ctx, repository.NoTX, job.UserID)
	if err != nil {
		return false, err
	}
	for _, id := range excluded {
		if id == c.User.ID {
			return false, nil
		}
	}

	if JobTypeFor(c.Meta.TranslatorType) != job.JobType {
		return false, nil
	}

	if !levelAllowed(c.Meta.TranslatorLevel, RequiredLevels(job.Certified)) {
		return false, nil
	}

	if !f.speaksLanguage(c, job.FromLanguageID) {
		return false, nil
	}

	if job.Gender != model.GenderUnspecified && c.Meta.Gender != job.Gender {
		return false, nil
	}

	ok, err := f.townRuleSatisfied(ctx, job, c)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (f *EligibilityFilter) speaksLanguage(c *Candidate, langID string) bool {
	for _, id := range c.LanguageIDs {
		if id == langID {
			return true
		}
	}
	return false
}

// townRuleSatisfied enforces the physical-only town match: a job with
// phone disabled and physical enabled requires the translator's town to
// match the customer's, unless the translator was already specifically
// assigned this job.
func (f *EligibilityFilter) townRuleSatisfied(ctx context.Context, job *model.Job, c *Candidate) (bool, error) {
	if job.CustomerPhoneType || !job.CustomerPhysicalType {
		return true, nil
	}

	town := job.Town
	if town == "" {
		custMeta, err := f.users.FindMeta(ctx, repository.NoTX, job.UserID)
		if err == nil {
			town = custMeta.City
		}
	}
	if town != "" && c.Meta.City == town {
		return true, nil
	}

	assigned, err := f.assignments.WasAssigned(ctx, repository.NoTX, c.User.ID, job.ID)
	if err != nil {
		return false, err
	}
	return assigned, nil
}

// CandidateFor loads the candidate view of one translator.
func (f *EligibilityFilter) CandidateFor(ctx context.Context, userID string) (*Candidate, error) {
	u, err := f.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	if u.Role != model.RoleTranslator {
		return nil, domain.ErrNotFound
	}
	meta, err := f.users.FindMeta(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	langs, err := f.users.LanguageIDs(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	return &Candidate{User: u, Meta: meta, LanguageIDs: langs}, nil
}

// PotentialTranslators lists every enabled translator eligible for the job,
// excluding excludeUserID from the broadcast set.
func (f *EligibilityFilter) PotentialTranslators(ctx context.Context, job *model.Job, excludeUserID string) ([]*Candidate, error) {
	users, err := f.users.ListEnabledTranslators(ctx, repository.NoTX, excludeUserID)
	if err != nil {
		return nil, err
	}

	var out []*Candidate
	for _, u := range users {
		c, err := f.CandidateFor(ctx, u.ID)
		if err != nil {
			f.log.Warn().Err(err).Str("translator_id", u.ID).Msg("skipping candidate, profile lookup failed")
			continue
		}
		ok, err := f.Eligible(ctx, job, c)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}
