package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/techup/travelshare/backend/internal/domain"
	"github.com/techup/travelshare/backend/internal/repo"
)

// PhotoUploader pushes photo bytes to object storage and returns their public
// URLs, in input order. Defined here, in the consumer package, so the trip
// service can be unit-tested without the real storage client.
type PhotoUploader interface {
	UploadTripPhotos(ctx context.Context, photos []domain.PhotoUpload) ([]string, error)
}

// TripService implements business logic for Trip operations, including the
// ownership guard: only a trip's author may update or delete it. The caller's
// identity is always an explicit argument — the service never reads ambient
// request state.
type TripService struct {
	trips    repo.TripRepo
	users    repo.UserRepo
	uploader PhotoUploader
}

// NewTripService constructs a TripService.
func NewTripService(trips repo.TripRepo, users repo.UserRepo, uploader PhotoUploader) *TripService {
	return &TripService{trips: trips, users: users, uploader: uploader}
}

// Create validates and persists a new trip authored by the caller. Any photo
// bytes are uploaded to storage first; an upload failure aborts the whole
// operation and no trip row is written. The author is always the
// authenticated identity — an author id supplied by the client is ignored on
// this path.
func (s *TripService) Create(ctx context.Context, id domain.Identity, trip domain.Trip, photos []domain.PhotoUpload) (domain.Trip, error) {
	if err := validateTitle(trip.Title); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	if len(photos) > 0 {
		urls, err := s.uploader.UploadTripPhotos(ctx, photos)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
		}
		trip.Photos = append(trip.Photos, urls...)
	}

	trip.AuthorID = id.UserID

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// CreateForAuthor is the legacy creation path that carries an explicit author
// id. It historically skipped ownership checks; it now requires the supplied
// author to be the caller and fails with domain.ErrForbidden otherwise, so
// both creation paths enforce the same policy.
func (s *TripService) CreateForAuthor(ctx context.Context, id domain.Identity, authorID uuid.UUID, trip domain.Trip, photos []domain.PhotoUpload) (domain.Trip, error) {
	if authorID != id.UserID {
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateForAuthor: %w: you can only create trips as yourself", domain.ErrForbidden)
	}
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateForAuthor: author: %w", err)
	}
	return s.Create(ctx, id, trip, photos)
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListPaged returns one page of trips plus the total count.
func (s *TripService) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// ListByAuthor returns all trips owned by the given author.
func (s *TripService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.trips.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByAuthor: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// SearchByTitle returns trips whose title contains the query, case-insensitively.
func (s *TripService) SearchByTitle(ctx context.Context, title string) ([]domain.Trip, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("service.TripService.SearchByTitle: %w: title query is required", domain.ErrValidation)
	}
	trips, err := s.trips.SearchByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.SearchByTitle: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// Update overwrites a trip's content. Only the author may call it; anyone
// else fails with domain.ErrForbidden. Nil Photos or Tags in patch keep the
// stored values; non-nil slices replace them. The author never changes.
func (s *TripService) Update(ctx context.Context, id domain.Identity, patch domain.Trip) (domain.Trip, error) {
	existing, err := s.ownedTrip(ctx, id, patch.ID, "you can only edit your own trips")
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if err := validateTitle(patch.Title); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	existing.Title = patch.Title
	existing.Description = patch.Description
	existing.Latitude = patch.Latitude
	existing.Longitude = patch.Longitude
	if patch.Photos != nil {
		existing.Photos = patch.Photos
	}
	if patch.Tags != nil {
		existing.Tags = patch.Tags
	}

	updated, err := s.trips.Update(ctx, existing)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// UpdateWithUploads is the multipart variant of Update: fields are patched
// only when supplied, and freshly uploaded images are merged into the photo
// list — the primary image replaces the first slot (or becomes it), the
// additional images are appended, skipping URLs already present. All uploads
// complete before anything is written; a failed upload aborts the update.
func (s *TripService) UpdateWithUploads(ctx context.Context, id domain.Identity, tripID uuid.UUID, patch domain.Trip, primary *domain.PhotoUpload, additional []domain.PhotoUpload) (domain.Trip, error) {
	existing, err := s.ownedTrip(ctx, id, tripID, "you can only edit your own trips")
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateWithUploads: %w", err)
	}

	if t := strings.TrimSpace(patch.Title); t != "" {
		existing.Title = t
	}
	if patch.Description != "" {
		existing.Description = patch.Description
	}
	if patch.Tags != nil {
		existing.Tags = patch.Tags
	}
	if patch.Latitude != nil {
		existing.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		existing.Longitude = patch.Longitude
	}

	var primaryURL string
	if primary != nil {
		urls, err := s.uploader.UploadTripPhotos(ctx, []domain.PhotoUpload{*primary})
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.UpdateWithUploads: %w", err)
		}
		primaryURL = urls[0]
	}

	var additionalURLs []string
	if len(additional) > 0 {
		additionalURLs, err = s.uploader.UploadTripPhotos(ctx, additional)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.UpdateWithUploads: %w", err)
		}
	}

	// Photo merge: the request's photo list, when present, is the set of
	// existing photos the client chose to keep; otherwise everything stays.
	photos := existing.Photos
	if len(patch.Photos) > 0 {
		photos = slices.Clone(patch.Photos)
	}
	if primaryURL != "" {
		if len(photos) > 0 {
			photos[0] = primaryURL
		} else {
			photos = []string{primaryURL}
		}
	}
	for _, u := range additionalURLs {
		if !slices.Contains(photos, u) {
			photos = append(photos, u)
		}
	}
	existing.Photos = photos

	updated, err := s.trips.Update(ctx, existing)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateWithUploads: %w", err)
	}
	return updated, nil
}

// Delete removes a trip. Only the author may call it.
func (s *TripService) Delete(ctx context.Context, id domain.Identity, tripID uuid.UUID) error {
	if _, err := s.ownedTrip(ctx, id, tripID, "you can only delete your own trips"); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// ownedTrip loads a trip and enforces the ownership guard, returning
// domain.ErrForbidden with msg when the caller is not the author.
func (s *TripService) ownedTrip(ctx context.Context, id domain.Identity, tripID uuid.UUID, msg string) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if !trip.OwnedBy(id) {
		return domain.Trip{}, fmt.Errorf("%w: %s", domain.ErrForbidden, msg)
	}
	return trip, nil
}

// validateTitle rejects empty or whitespace-only titles.
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	return nil
}
