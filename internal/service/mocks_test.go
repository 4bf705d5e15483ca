package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/techup/travelshare/backend/internal/domain"
	"github.com/techup/travelshare/backend/internal/repo"
	"github.com/techup/travelshare/backend/internal/service"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockUserRepo struct {
	create     func(ctx context.Context, user domain.User) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
	list       func(ctx context.Context) ([]domain.User, error)
	update     func(ctx context.Context, user domain.User) (domain.User, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}
func (m *mockUserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	return m.update(ctx, u)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockRefreshTokenRepo struct {
	replace       func(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (domain.RefreshToken, error)
	getByToken    func(ctx context.Context, token string) (domain.RefreshToken, error)
	deleteByToken func(ctx context.Context, token string) error
	deleteByUser  func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockRefreshTokenRepo) Replace(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (domain.RefreshToken, error) {
	return m.replace(ctx, userID, token, expiresAt)
}
func (m *mockRefreshTokenRepo) GetByToken(ctx context.Context, token string) (domain.RefreshToken, error) {
	return m.getByToken(ctx, token)
}
func (m *mockRefreshTokenRepo) DeleteByToken(ctx context.Context, token string) error {
	return m.deleteByToken(ctx, token)
}
func (m *mockRefreshTokenRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.deleteByUser(ctx, userID)
}

var _ repo.RefreshTokenRepo = (*mockRefreshTokenRepo)(nil)

type mockTripRepo struct {
	create        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged     func(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	listByAuthor  func(ctx context.Context, authorID uuid.UUID) ([]domain.Trip, error)
	searchByTitle func(ctx context.Context, title string) ([]domain.Trip, error)
	update        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Trip, error) {
	return m.listByAuthor(ctx, authorID)
}
func (m *mockTripRepo) SearchByTitle(ctx context.Context, title string) ([]domain.Trip, error) {
	return m.searchByTitle(ctx, title)
}
func (m *mockTripRepo) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockUploader struct {
	upload func(ctx context.Context, photos []domain.PhotoUpload) ([]string, error)
}

func (m *mockUploader) UploadTripPhotos(ctx context.Context, photos []domain.PhotoUpload) ([]string, error) {
	return m.upload(ctx, photos)
}

var _ service.PhotoUploader = (*mockUploader)(nil)
