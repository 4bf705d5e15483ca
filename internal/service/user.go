package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/techup/travelshare/backend/internal/domain"
	"github.com/techup/travelshare/backend/internal/repo"
)

// minPasswordLen is the minimum accepted password length at registration and
// password change.
const minPasswordLen = 8

// UserService implements account management: registration plus the legacy
// admin-style user CRUD surface.
type UserService struct {
	users repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// RegisterParams carries the fields accepted at registration.
// DisplayName is optional and can be set later via Update.
type RegisterParams struct {
	Email       string
	Password    string
	DisplayName string
}

// UpdateParams carries the mutable account fields. An empty Password leaves
// the stored hash untouched.
type UpdateParams struct {
	Email       string
	Password    string
	DisplayName string
}

// Register creates a new account with a bcrypt-hashed password.
// Fails with domain.ErrEmailExists when the email is already registered —
// the existing account is left untouched.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (domain.User, error) {
	email := strings.TrimSpace(params.Email)
	if err := validateEmail(email); err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	if len(params.Password) < minPasswordLen {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: hash password: %w", err)
	}

	created, err := s.users.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(params.DisplayName),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	return created, nil
}

// GetByID returns a single user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// GetByEmail returns a single user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByEmail: %w", err)
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// Update overwrites the account's email and display name, and rehashes the
// password when a new one is supplied. An email change to an address another
// account owns fails with domain.ErrEmailExists.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}

	email := strings.TrimSpace(params.Email)
	if err := validateEmail(email); err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	user.Email = email
	user.DisplayName = strings.TrimSpace(params.DisplayName)

	if params.Password != "" {
		if len(params.Password) < minPasswordLen {
			return domain.User{}, fmt.Errorf("service.UserService.Update: %w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, fmt.Errorf("service.UserService.Update: hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an account. The user's refresh token goes with it via the
// database cascade; their trips remain, attributed to the removed author id.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}

// validateEmail applies the minimal shape check the API has always used:
// non-empty, with an "@" somewhere inside. Real validation happens when the
// address is used.
func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if i := strings.Index(email, "@"); i <= 0 || i == len(email)-1 {
		return fmt.Errorf("%w: email is malformed", domain.ErrValidation)
	}
	return nil
}
