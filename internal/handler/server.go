// Package handler implements the HTTP layer of the travelshare API.
// Handlers are methods on Server, split into domain-specific files (auth.go,
// user.go, trip.go, health.go) that all share the same struct. Handlers
// decode requests, call services, and map domain errors to HTTP statuses —
// no business logic lives here.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/techup/travelshare/backend/internal/domain"
	"github.com/techup/travelshare/backend/internal/service"
)

// AuthServicer defines the session operations the auth handlers depend on.
// Defining the interfaces here, in the consumer package, lets handler tests
// inject mocks without touching the database or service layer.
type AuthServicer interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Refresh(ctx context.Context, refreshValue string) (domain.Session, error)
	Logout(ctx context.Context, id domain.Identity) error
}

// UserServicer defines the account operations the user handlers depend on.
type UserServicer interface {
	Register(ctx context.Context, params service.RegisterParams) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id uuid.UUID, params service.UpdateParams) (domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TripServicer defines the trip operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, id domain.Identity, trip domain.Trip, photos []domain.PhotoUpload) (domain.Trip, error)
	CreateForAuthor(ctx context.Context, id domain.Identity, authorID uuid.UUID, trip domain.Trip, photos []domain.PhotoUpload) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Trip, error)
	SearchByTitle(ctx context.Context, title string) ([]domain.Trip, error)
	Update(ctx context.Context, id domain.Identity, patch domain.Trip) (domain.Trip, error)
	UpdateWithUploads(ctx context.Context, id domain.Identity, tripID uuid.UUID, patch domain.Trip, primary *domain.PhotoUpload, additional []domain.PhotoUpload) (domain.Trip, error)
	Delete(ctx context.Context, id domain.Identity, tripID uuid.UUID) error
}

// Server holds the handler dependencies.
type Server struct {
	auth  AuthServicer
	users UserServicer
	trips TripServicer
	log   Logger
}

// Logger is the subset of slog.Logger the handlers use. An interface so
// tests can pass a no-op without constructing a real logger.
type Logger interface {
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// NewServer constructs the Server with all its dependencies.
func NewServer(auth AuthServicer, users UserServicer, trips TripServicer, log Logger) *Server {
	return &Server{auth: auth, users: users, trips: trips, log: log}
}

// Routes mounts every API endpoint on a fresh chi router. requireAuth is the
// bearer-token middleware; it is a parameter so handler tests can substitute
// a stub that injects a fixed identity.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", s.handleOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.With(requireAuth).Post("/logout", s.handleLogout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Get("/{id}", s.handleGetUser)
			r.Put("/{id}", s.handleUpdateUser)
			r.Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.handleListTrips)
			r.Get("/search", s.handleSearchTrips)
			r.Get("/author/{id}", s.handleListTripsByAuthor)
			r.Get("/{id}", s.handleGetTrip)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", s.handleCreateTrip)
				r.Post("/my", s.handleCreateMyTrip)
				r.Post("/author/{id}", s.handleCreateTripForAuthor)
				r.Put("/{id}", s.handleUpdateTrip)
				r.Delete("/{id}", s.handleDeleteTrip)
			})
		})
	})

	return r
}
