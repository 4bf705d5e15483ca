package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/techup/travelshare/backend/internal/domain"
)

// UserRepo defines the persistence operations for Users.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record.
	// Returns domain.ErrEmailExists when the email is already taken.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail retrieves a user by their unique email.
	// Returns domain.ErrNotFound if no user with that email exists.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]domain.User, error)

	// Update overwrites the mutable fields of a user and returns the updated
	// record. Returns domain.ErrNotFound for an unknown ID and
	// domain.ErrEmailExists when the new email is already taken.
	Update(ctx context.Context, user domain.User) (domain.User, error)

	// Delete removes a user by ID. The user's refresh token, if any, is
	// removed by the ON DELETE CASCADE on refresh_tokens.
	// Returns domain.ErrNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, email, password_hash, display_name, created_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (email, password_hash, display_name)
		VALUES (@email, @password_hash, @display_name)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"display_name":  user.DisplayName,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrEmailExists)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.UserRepo.List: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: rows: %w", err)
	}

	return users, nil
}

func (r *pgUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		UPDATE users
		SET email         = @email,
		    password_hash = @password_hash,
		    display_name  = @display_name
		WHERE id = @id
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":            user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"display_name":  user.DisplayName,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", domain.ErrEmailExists)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM users WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)

	err := s.Scan(&id, &u.Email, &u.PasswordHash, &u.DisplayName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
