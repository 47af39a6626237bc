package profile

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid profile input")

// OnboardingMarker records that a user finished onboarding.
type OnboardingMarker interface {
	CompleteOnboarding(ctx context.Context, userID string) error
}

type SaveInput struct {
	PreferredLanguageID string
	Allergies           []string
	DietaryRestrictions []string
	Dislikes            []string
	Preferences         []string
}

type Service struct {
	repo       Repository
	onboarding OnboardingMarker
	logger     *zap.Logger
}

func NewService(repo Repository, onboarding OnboardingMarker, logger *zap.Logger) *Service {
	return &Service{repo: repo, onboarding: onboarding, logger: logger}
}

func (s *Service) ListLanguages(ctx context.Context) ([]Language, error) {
	return s.repo.ListLanguages(ctx)
}

// AddLanguage creates or renames a language (ADMIN).
func (s *Service) AddLanguage(ctx context.Context, id, name string) (*Language, error) {
	lang := Language{
		ID:   strings.ToLower(strings.TrimSpace(id)),
		Name: strings.TrimSpace(name),
	}
	if lang.ID == "" || lang.Name == "" {
		return nil, ErrInvalidInput
	}

	if err := s.repo.UpsertLanguage(ctx, lang); err != nil {
		return nil, err
	}
	return &lang, nil
}

func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// Save creates or replaces the user's profile and completes onboarding.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (*Profile, error) {
	languageID := strings.TrimSpace(in.PreferredLanguageID)
	if userID == "" || languageID == "" {
		return nil, ErrInvalidInput
	}

	lang, err := s.repo.GetLanguage(ctx, languageID)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		UserID:                userID,
		PreferredLanguageID:   lang.ID,
		PreferredLanguageName: lang.Name,
		Allergies:             NormalizeTags(in.Allergies),
		DietaryRestrictions:   NormalizeTags(in.DietaryRestrictions),
		Dislikes:              NormalizeTags(in.Dislikes),
		Preferences:           NormalizeTags(in.Preferences),
	}

	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}

	// the profile is already stored; a stale onboarding flag only affects routing
	if s.onboarding != nil {
		if err := s.onboarding.CompleteOnboarding(ctx, userID); err != nil {
			s.logger.Warn("ONBOARDING_UPDATE_FAILED",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("PROFILE_SAVED",
		zap.String("user_id", userID),
		zap.String("language", lang.ID),
		zap.Int("allergies", len(p.Allergies)),
		zap.Int("restrictions", len(p.DietaryRestrictions)),
	)

	return p, nil
}
