package model

import "time"

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleTranslator Role = "translator"
	RoleAdmin      Role = "admin"
)

type TranslatorType string

const (
	TranslatorProfessional TranslatorType = "professional"
	TranslatorRWS          TranslatorType = "rwstranslator"
	TranslatorVolunteer    TranslatorType = "volunteer"
)

// TranslatorLevel is the qualification level a translator holds.
type TranslatorLevel string

const (
	LevelCertified       TranslatorLevel = "Certified"
	LevelCertifiedLaw    TranslatorLevel = "Certified with specialisation in law"
	LevelCertifiedHealth TranslatorLevel = "Certified with specialisation in health care"
	LevelLayman          TranslatorLevel = "Layman"
	LevelReadCourses     TranslatorLevel = "Read Translation courses"
)

// AllTranslatorLevels is the unrestricted level set used when a booking
// carries no certification requirement.
var AllTranslatorLevels = []TranslatorLevel{
	LevelCertified, LevelCertifiedLaw, LevelCertifiedHealth,
	LevelLayman, LevelReadCourses,
}

type User struct {
	ID        string // UUID
	Name      string
	Email     string
	Mobile    string
	Role      Role
	Enabled   bool
	CreatedAt time.Time
}

// UserMeta carries the profile attributes that drive matching and
// notification preferences.
type UserMeta struct {
	UserID          string
	TranslatorType  TranslatorType
	TranslatorLevel TranslatorLevel
	Gender          Gender
	ConsumerType    string
	City            string
	Address         string
	Instructions    string

	// Notification preferences.
	NotGetNotification bool // suppress all pushes
	NotGetNighttime    bool // skip the night deferral, deliver at night too
	NotGetEmergency    bool // skip broadcasts for immediate jobs
}

type Language struct {
	ID       string
	Name     string
	Active   bool
}

// BlacklistEntry excludes one translator from a customer's bookings.
type BlacklistEntry struct {
	UserID       string // customer
	TranslatorID string
}
