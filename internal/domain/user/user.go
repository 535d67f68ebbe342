// Package user provides the auth identity aggregate and account behaviors.
package user

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"converse-server/internal/utils/apperrors"
	"converse-server/internal/utils/idgen"
)

// User is the account that owns conversations. It is deliberately separate
// from the workout profile aggregate that shares the same data store.
type User struct {
	ID           uint      `json:"-"`
	PublicID     string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Repository defines storage operations for users.
type Repository interface {
	Create(ctx context.Context, usr *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
}

// Service registers and authenticates accounts.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates an account with a bcrypt password hash. Email is the
// uniqueness key.
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Store("check existing email", err)
	}
	if existing != nil {
		return nil, apperrors.Validation("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TypeInternal, "hash password", err)
	}
	publicID, err := idgen.GenerateSecureID("user", 16)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TypeInternal, "generate user id", err)
	}

	usr := &User{
		PublicID:     publicID,
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, usr); err != nil {
		return nil, apperrors.Store("create user", err)
	}
	return usr, nil
}

// Authenticate verifies credentials and returns the account. Failures are
// uniformly unauthorized so callers cannot probe which part was wrong.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	usr, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Store("find user", err)
	}
	if usr == nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	return usr, nil
}

// Resolve returns the account for a public ID, or an unauthorized error when
// the token references an account that no longer exists.
func (s *Service) Resolve(ctx context.Context, publicID string) (*User, error) {
	usr, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, apperrors.Store("find user", err)
	}
	if usr == nil {
		return nil, apperrors.Unauthorized("unknown account")
	}
	return usr, nil
}
