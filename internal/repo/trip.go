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

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key, with author
	// email and display name joined in.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trips ordered by created_at descending,
	// plus the total number of trips.
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)

	// ListByAuthor returns all trips owned by authorID, newest first.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Trip, error)

	// SearchByTitle returns trips whose title contains the given substring,
	// case-insensitively, newest first.
	SearchByTitle(ctx context.Context, title string) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and returns
	// the updated record. Returns domain.ErrNotFound if no trip with that
	// ID exists. Ownership is checked by the service, not here.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripSelect joins users so every read returns the author's email and display
// name alongside the trip. The join is LEFT so reads survive a dangling
// author_id (the legacy data path did not always enforce the reference).
const tripSelect = `
	SELECT t.id, t.title, t.description, t.photos, t.tags,
	       t.latitude, t.longitude, t.author_id, t.created_at, t.updated_at,
	       u.email, u.display_name
	FROM trips t
	LEFT JOIN users u ON u.id = t.author_id`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (title, description, photos, tags, latitude, longitude, author_id)
		VALUES (@title, @description, @photos, @tags, @latitude, @longitude, @author_id)
		RETURNING id`

	args := pgx.NamedArgs{
		"title":       trip.Title,
		"description": trip.Description,
		"photos":      trip.Photos,
		"tags":        trip.Tags,
		"latitude":    trip.Latitude, // nil becomes NULL
		"longitude":   trip.Longitude,
		"author_id":   trip.AuthorID,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	// Re-read through tripSelect so the returned trip carries the author join.
	result, err := r.GetByID(ctx, uuid.UUID(id.Bytes))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = tripSelect + ` WHERE t.id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const q = tripSelect + `
		ORDER BY t.created_at DESC
		LIMIT @limit OFFSET @offset`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"limit": params.Limit, "offset": params.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

func (r *pgTripRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Trip, error) {
	const q = tripSelect + `
		WHERE t.author_id = @author_id
		ORDER BY t.created_at DESC`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"author_id": authorID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByAuthor: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) SearchByTitle(ctx context.Context, title string) ([]domain.Trip, error) {
	const q = tripSelect + `
		WHERE t.title ILIKE '%' || @title || '%'
		ORDER BY t.created_at DESC`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"title": title})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.SearchByTitle: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET title       = @title,
		    description = @description,
		    photos      = @photos,
		    tags        = @tags,
		    latitude    = @latitude,
		    longitude   = @longitude,
		    updated_at  = now()
		WHERE id = @id
		RETURNING id`

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"title":       trip.Title,
		"description": trip.Description,
		"photos":      trip.Photos,
		"tags":        trip.Tags,
		"latitude":    trip.Latitude,
		"longitude":   trip.Longitude,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	result, err := r.GetByID(ctx, uuid.UUID(id.Bytes))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// queryTrips runs a tripSelect-based query and scans all rows.
func (r *pgTripRepo) queryTrips(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return trips, nil
}

// scanTrip maps a single tripSelect row into a domain.Trip.
// It handles the UUID conversions, nullable coordinates, and the nullable
// author columns produced by the LEFT JOIN.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t           domain.Trip
		id          pgtype.UUID
		authorID    pgtype.UUID
		lat, lng    pgtype.Float8
		email, name pgtype.Text
	)

	err := s.Scan(&id, &t.Title, &t.Description, &t.Photos, &t.Tags,
		&lat, &lng, &authorID, &t.CreatedAt, &t.UpdatedAt,
		&email, &name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.AuthorID = uuid.UUID(authorID.Bytes)
	if lat.Valid {
		v := lat.Float64
		t.Latitude = &v
	}
	if lng.Valid {
		v := lng.Float64
		t.Longitude = &v
	}
	if email.Valid {
		t.AuthorEmail = email.String
	}
	if name.Valid {
		t.AuthorDisplayName = name.String
	}
	if t.Photos == nil {
		t.Photos = []string{}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}

	return t, nil
}
