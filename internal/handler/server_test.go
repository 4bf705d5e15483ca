package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/techup/travelshare/backend/internal/domain"
	"github.com/techup/travelshare/backend/internal/handler"
	"github.com/techup/travelshare/backend/internal/middleware"
	"github.com/techup/travelshare/backend/internal/service"
)

// Test doubles for the handler's service interfaces. Set only the method
// fields your test needs.

type mockAuthServicer struct {
	login   func(ctx context.Context, email, password string) (domain.Session, error)
	refresh func(ctx context.Context, refreshValue string) (domain.Session, error)
	logout  func(ctx context.Context, id domain.Identity) error
}

func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthServicer) Refresh(ctx context.Context, refreshValue string) (domain.Session, error) {
	return m.refresh(ctx, refreshValue)
}
func (m *mockAuthServicer) Logout(ctx context.Context, id domain.Identity) error {
	return m.logout(ctx, id)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockUserServicer struct {
	register func(ctx context.Context, params service.RegisterParams) (domain.User, error)
	getByID  func(ctx context.Context, id uuid.UUID) (domain.User, error)
	list     func(ctx context.Context) ([]domain.User, error)
	update   func(ctx context.Context, id uuid.UUID, params service.UpdateParams) (domain.User, error)
	delete   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserServicer) Register(ctx context.Context, params service.RegisterParams) (domain.User, error) {
	return m.register(ctx, params)
}
func (m *mockUserServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserServicer) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}
func (m *mockUserServicer) Update(ctx context.Context, id uuid.UUID, params service.UpdateParams) (domain.User, error) {
	return m.update(ctx, id, params)
}
func (m *mockUserServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockTripServicer struct {
	create            func(ctx context.Context, id domain.Identity, trip domain.Trip, photos []domain.PhotoUpload) (domain.Trip, error)
	createForAuthor   func(ctx context.Context, id domain.Identity, authorID uuid.UUID, trip domain.Trip, photos []domain.PhotoUpload) (domain.Trip, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged         func(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	listByAuthor      func(ctx context.Context, authorID uuid.UUID) ([]domain.Trip, error)
	searchByTitle     func(ctx context.Context, title string) ([]domain.Trip, error)
	update            func(ctx context.Context, id domain.Identity, patch domain.Trip) (domain.Trip, error)
	updateWithUploads func(ctx context.Context, id domain.Identity, tripID uuid.UUID, patch domain.Trip, primary *domain.PhotoUpload, additional []domain.PhotoUpload) (domain.Trip, error)
	delete            func(ctx context.Context, id domain.Identity, tripID uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, id domain.Identity, trip domain.Trip, photos []domain.PhotoUpload) (domain.Trip, error) {
	return m.create(ctx, id, trip, photos)
}
func (m *mockTripServicer) CreateForAuthor(ctx context.Context, id domain.Identity, authorID uuid.UUID, trip domain.Trip, photos []domain.PhotoUpload) (domain.Trip, error) {
	return m.createForAuthor(ctx, id, authorID, trip, photos)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, params)
}
func (m *mockTripServicer) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Trip, error) {
	return m.listByAuthor(ctx, authorID)
}
func (m *mockTripServicer) SearchByTitle(ctx context.Context, title string) ([]domain.Trip, error) {
	return m.searchByTitle(ctx, title)
}
func (m *mockTripServicer) Update(ctx context.Context, id domain.Identity, patch domain.Trip) (domain.Trip, error) {
	return m.update(ctx, id, patch)
}
func (m *mockTripServicer) UpdateWithUploads(ctx context.Context, id domain.Identity, tripID uuid.UUID, patch domain.Trip, primary *domain.PhotoUpload, additional []domain.PhotoUpload) (domain.Trip, error) {
	return m.updateWithUploads(ctx, id, tripID, patch, primary, additional)
}
func (m *mockTripServicer) Delete(ctx context.Context, id domain.Identity, tripID uuid.UUID) error {
	return m.delete(ctx, id, tripID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// testIdentity is the caller every authenticated test request runs as.
var testIdentity = domain.Identity{
	UserID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
	Email:  "caller@example.com",
}

// stubAuth injects testIdentity without checking any header, standing in for
// the real bearer middleware.
func stubAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), testIdentity)))
	})
}

// newHTTPHandler wires a Server with the given mocks into the real router,
// mirroring how main.go wires it in production.
func newHTTPHandler(auth handler.AuthServicer, users handler.UserServicer, trips handler.TripServicer) http.Handler {
	log := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	return handler.NewServer(auth, users, trips, log).Routes(stubAuth)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func userFixture() domain.User {
	return domain.User{
		ID:          uuid.New(),
		Email:       "alice@example.com",
		DisplayName: "Alice",
		CreatedAt:   time.Now().UTC(),
	}
}

func tripFixture() domain.Trip {
	lat, lng := 46.55, 8.56
	return domain.Trip{
		ID:          uuid.New(),
		Title:       "Alps Crossing",
		Description: "Three weeks on foot",
		Photos:      []string{"https://cdn.example.com/alps.jpg"},
		Tags:        []string{"hiking"},
		Latitude:    &lat,
		Longitude:   &lng,
		AuthorID:    testIdentity.UserID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}
