// Package workout holds the workout-profile aggregate. It shares the data
// store with the conversational domain but is an independent entity: profile
// names are not account identities and nothing here references users.
package workout

import (
	"context"
	"strings"
	"time"

	"converse-server/internal/utils/apperrors"
)

// Profile is a named workout entry with a demonstration GIF.
type Profile struct {
	ID          uint      `json:"-"`
	Name        string    `json:"name"`
	GifURL      string    `json:"gifUrl"`
	WorkoutType string    `json:"workoutType"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository defines storage operations for workout profiles.
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	FindByName(ctx context.Context, name string) (*Profile, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a profile. Name is unique.
func (s *Service) Create(ctx context.Context, profile Profile) (*Profile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" || profile.GifURL == "" || profile.WorkoutType == "" {
		return nil, apperrors.Validation("name, gifUrl and workoutType are required")
	}

	existing, err := s.repo.FindByName(ctx, profile.Name)
	if err != nil {
		return nil, apperrors.Store("check existing profile", err)
	}
	if existing != nil {
		return nil, apperrors.Validation("profile name is already taken")
	}

	if err := s.repo.Create(ctx, &profile); err != nil {
		return nil, apperrors.Store("create profile", err)
	}
	return &profile, nil
}

// Get returns the profile for a name.
func (s *Service) Get(ctx context.Context, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("name is required")
	}
	profile, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, apperrors.Store("find profile", err)
	}
	if profile == nil {
		return nil, apperrors.NotFound("workout profile not found")
	}
	return profile, nil
}
