// Package authhandler exposes account registration and login over the user
// service and the token manager.
package authhandler

import (
	"context"

	"converse-server/internal/domain/user"
	"converse-server/internal/infrastructure/auth"
	"converse-server/internal/utils/apperrors"
)

type AuthHandler struct {
	users  *user.Service
	tokens *auth.TokenManager
}

func NewAuthHandler(users *user.Service, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// AccountInfo is the public projection of an account. Numeric row IDs never
// leave the service.
type AccountInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult pairs a bearer token with the account it identifies.
type AuthResult struct {
	Token string      `json:"token"`
	User  AccountInfo `json:"user"`
}

func accountInfo(u *user.User) AccountInfo {
	return AccountInfo{ID: u.PublicID, Name: u.Name, Email: u.Email}
}

// Register creates an account and signs the caller in.
func (h *AuthHandler) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	account, err := h.users.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	return h.issue(account)
}

// Login verifies credentials and issues a fresh token.
func (h *AuthHandler) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := h.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return h.issue(account)
}

func (h *AuthHandler) issue(account *user.User) (*AuthResult, error) {
	token, err := h.tokens.Issue(account.PublicID)
	if err != nil {
		return nil, apperrors.Internal("failed to issue token", err)
	}
	return &AuthResult{Token: token, User: accountInfo(account)}, nil
}
