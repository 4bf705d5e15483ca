// Package service contains the business logic for the travelshare API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/techup/travelshare/backend/internal/domain"
	"github.com/techup/travelshare/backend/internal/repo"
	"github.com/techup/travelshare/backend/internal/token"
)

// AuthService implements the login / refresh / logout session protocol.
//
// Refresh tokens follow a hard single-session policy: issuing a new token for
// a user replaces any existing one, and every successful refresh rotates the
// token — the previously issued value stops working immediately.
type AuthService struct {
	users      repo.UserRepo
	tokens     repo.RefreshTokenRepo
	issuer     *token.Issuer
	refreshTTL time.Duration
}

// NewAuthService constructs an AuthService. refreshTTL is the validity window
// applied to every newly issued refresh token; rotation resets it, so a
// session that keeps refreshing never hits the refresh expiry.
func NewAuthService(users repo.UserRepo, tokens repo.RefreshTokenRepo, issuer *token.Issuer, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		issuer:     issuer,
		refreshTTL: refreshTTL,
	}
}

// Login verifies the credentials and opens a session: a fresh access token
// plus a refresh token that replaces any previously persisted one for this
// user. An unknown email and a wrong password both fail with
// domain.ErrInvalidCredentials — the API never reveals which it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if email == "" || password == "" {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
		}
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	// bcrypt's own comparison — never a plaintext or manual compare.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	return s.openSession(ctx, domain.Identity{UserID: user.ID, Email: user.Email})
}

// Refresh exchanges a previously issued refresh token for a new access token
// and a new refresh token (full rotation — the presented value is dead after
// this call, whether it succeeds or fails).
//
// Fails with domain.ErrRefreshTokenNotFound when the value is unknown or was
// already rotated away, and with domain.ErrRefreshTokenExpired when it exists
// but has outlived its validity window; in that case the row is purged and
// the caller must log in again.
func (s *AuthService) Refresh(ctx context.Context, refreshValue string) (domain.Session, error) {
	if refreshValue == "" {
		return domain.Session{}, fmt.Errorf("service.AuthService.Refresh: %w: refresh token is required", domain.ErrValidation)
	}

	stored, err := s.tokens.GetByToken(ctx, refreshValue)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Session{}, fmt.Errorf("service.AuthService.Refresh: %w", domain.ErrRefreshTokenNotFound)
		}
		return domain.Session{}, fmt.Errorf("service.AuthService.Refresh: %w", err)
	}

	// Lazy expiry: an expired token is deleted the moment it is seen, so it
	// is unobservable afterward. There is no background sweep.
	if stored.Expired(time.Now()) {
		if err := s.tokens.DeleteByToken(ctx, stored.Token); err != nil {
			return domain.Session{}, fmt.Errorf("service.AuthService.Refresh: purge expired: %w", err)
		}
		return domain.Session{}, fmt.Errorf("service.AuthService.Refresh: %w", domain.ErrRefreshTokenExpired)
	}

	owner, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Account deleted between issue and refresh; treat the token as gone.
			return domain.Session{}, fmt.Errorf("service.AuthService.Refresh: %w", domain.ErrRefreshTokenNotFound)
		}
		return domain.Session{}, fmt.Errorf("service.AuthService.Refresh: %w", err)
	}

	return s.openSession(ctx, domain.Identity{UserID: owner.ID, Email: owner.Email})
}

// Logout revokes the caller's refresh token. The access token stays valid
// until it expires — it is stateless by design.
func (s *AuthService) Logout(ctx context.Context, id domain.Identity) error {
	if err := s.tokens.DeleteByUser(ctx, id.UserID); err != nil {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// openSession issues the access token and installs a freshly generated
// refresh token, replacing any prior one for the user. The refresh expiry is
// always reset to now + TTL, never carried over from the replaced token.
func (s *AuthService) openSession(ctx context.Context, id domain.Identity) (domain.Session, error) {
	access, err := s.issuer.AccessToken(id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService: issue access token: %w", err)
	}

	value, err := token.NewRefreshValue()
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService: generate refresh token: %w", err)
	}

	stored, err := s.tokens.Replace(ctx, id.UserID, value, time.Now().Add(s.refreshTTL))
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService: persist refresh token: %w", err)
	}

	return domain.Session{
		AccessToken:  access,
		RefreshToken: stored.Token,
		TokenType:    "Bearer",
		User:         id,
	}, nil
}
