package repository

import (
	"context"

	"interpreter-booking/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	FindMeta(ctx context.Context, tx Tx, userID string) (*model.UserMeta, error)

	// ListEnabledTranslators returns all enabled translator accounts,
	// optionally skipping one user id (the broadcast exclusion).
	ListEnabledTranslators(ctx context.Context, tx Tx, excludeUserID string) ([]*model.User, error)

	// LanguageIDs returns the declared working languages of a user.
	LanguageIDs(ctx context.Context, tx Tx, userID string) ([]string, error)
}

type LanguageRepository interface {
	FindByID(ctx context.Context, tx Tx, id string) (*model.Language, error)
	ListActive(ctx context.Context, tx Tx) ([]*model.Language, error)
}

type BlacklistRepository interface {
	// TranslatorIDs returns the translator ids a customer has excluded.
	TranslatorIDs(ctx context.Context, tx Tx, customerID string) ([]string, error)
}
