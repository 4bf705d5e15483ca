package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/techup/travelshare/backend/internal/domain"
)

// RefreshTokenRepo defines the persistence operations for refresh tokens.
// The table carries a UNIQUE constraint on user_id, so the "at most one
// active refresh token per user" invariant holds even under concurrent
// logins — Replace is an upsert over that constraint.
type RefreshTokenRepo interface {
	// Replace atomically installs token as the user's single refresh token,
	// overwriting any existing row for that user. Concurrent calls for the
	// same user converge to exactly one persisted row: the upsert serializes
	// them at the database, and the last writer wins.
	Replace(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (domain.RefreshToken, error)

	// GetByToken retrieves a refresh token by its opaque value.
	// Returns domain.ErrNotFound if no such token exists.
	GetByToken(ctx context.Context, token string) (domain.RefreshToken, error)

	// DeleteByToken removes a refresh token by its value. Deleting a token
	// that no longer exists is not an error — expiry purges race with
	// explicit revocation.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteByUser removes the user's refresh token, if any.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// pgRefreshTokenRepo is the Postgres implementation of RefreshTokenRepo.
type pgRefreshTokenRepo struct {
	db db
}

// NewRefreshTokenRepo constructs a RefreshTokenRepo backed by the provided
// db connection.
func NewRefreshTokenRepo(db db) RefreshTokenRepo {
	return &pgRefreshTokenRepo{db: db}
}

const refreshTokenColumns = `id, user_id, token, expires_at, created_at`

func (r *pgRefreshTokenRepo) Replace(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (domain.RefreshToken, error) {
	// Upsert on the user_id uniqueness constraint: delete-then-insert done
	// as a single statement, so two concurrent logins can never leave two
	// valid tokens behind.
	const q = `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES (@user_id, @token, @expires_at)
		ON CONFLICT (user_id) DO UPDATE
		SET token      = EXCLUDED.token,
		    expires_at = EXCLUDED.expires_at,
		    created_at = now()
		RETURNING ` + refreshTokenColumns

	args := pgx.NamedArgs{
		"user_id":    userID,
		"token":      token,
		"expires_at": expiresAt,
	}

	result, err := scanRefreshToken(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("repo.RefreshTokenRepo.Replace: %w", err)
	}
	return result, nil
}

func (r *pgRefreshTokenRepo) GetByToken(ctx context.Context, token string) (domain.RefreshToken, error) {
	const q = `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens WHERE token = @token`

	result, err := scanRefreshToken(r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token}))
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("repo.RefreshTokenRepo.GetByToken: %w", err)
	}
	return result, nil
}

func (r *pgRefreshTokenRepo) DeleteByToken(ctx context.Context, token string) error {
	const q = `DELETE FROM refresh_tokens WHERE token = @token`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"token": token}); err != nil {
		return fmt.Errorf("repo.RefreshTokenRepo.DeleteByToken: %w", err)
	}
	return nil
}

func (r *pgRefreshTokenRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	const q = `DELETE FROM refresh_tokens WHERE user_id = @user_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID}); err != nil {
		return fmt.Errorf("repo.RefreshTokenRepo.DeleteByUser: %w", err)
	}
	return nil
}

// scanRefreshToken maps a single database row into a domain.RefreshToken.
func scanRefreshToken(s scanner) (domain.RefreshToken, error) {
	var (
		t      domain.RefreshToken
		id     pgtype.UUID
		userID pgtype.UUID
	)

	err := s.Scan(&id, &userID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RefreshToken{}, domain.ErrNotFound
		}
		return domain.RefreshToken{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	return t, nil
}
