package profile

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("profile not found")
	ErrUnknownLanguage = errors.New("unknown language")
)

// Repository defines the data-access contract for profiles and languages.
type Repository interface {
	ListLanguages(ctx context.Context) ([]Language, error)
	// GetLanguage returns ErrUnknownLanguage when id does not exist
	GetLanguage(ctx context.Context, id string) (*Language, error)
	UpsertLanguage(ctx context.Context, lang Language) error

	// GetProfile returns ErrNotFound when the user has not onboarded yet
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpsertProfile(ctx context.Context, p *Profile) error
}
