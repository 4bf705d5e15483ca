package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techup/travelshare/backend/internal/domain"
	"github.com/techup/travelshare/backend/internal/service"
)

func identity() domain.Identity {
	return domain.Identity{UserID: uuid.New(), Email: "author@example.com"}
}

// passthroughTrips returns a TripRepo whose Create and Update echo their input.
func passthroughTrips() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			t.ID = uuid.New()
			return t, nil
		},
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

func noUploads(t *testing.T) *mockUploader {
	t.Helper()
	return &mockUploader{
		upload: func(context.Context, []domain.PhotoUpload) ([]string, error) {
			t.Fatal("unexpected upload")
			return nil, nil
		},
	}
}

func TestTripServiceCreateSetsAuthor(t *testing.T) {
	id := identity()
	trips := passthroughTrips()
	svc := service.NewTripService(trips, &mockUserRepo{}, noUploads(t))

	created, err := svc.Create(context.Background(), id, domain.Trip{
		Title:    "Alps Crossing",
		AuthorID: uuid.New(), // client-supplied author must be ignored
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, id.UserID, created.AuthorID, "author is always the authenticated caller")
}

func TestTripServiceCreateUploadsPhotosFirst(t *testing.T) {
	id := identity()
	var uploaded []domain.PhotoUpload
	uploader := &mockUploader{
		upload: func(_ context.Context, photos []domain.PhotoUpload) ([]string, error) {
			uploaded = photos
			return []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, nil
		},
	}
	svc := service.NewTripService(passthroughTrips(), &mockUserRepo{}, uploader)

	created, err := svc.Create(context.Background(), id, domain.Trip{Title: "Alps"}, []domain.PhotoUpload{
		{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("aa")},
		{Filename: "b.jpg", ContentType: "image/jpeg", Data: []byte("bb")},
	})

	require.NoError(t, err)
	require.Len(t, uploaded, 2)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, created.Photos)
}

func TestTripServiceCreateUploadFailureAborts(t *testing.T) {
	uploader := &mockUploader{
		upload: func(context.Context, []domain.PhotoUpload) ([]string, error) {
			return nil, domain.ErrStorageUpstream
		},
	}
	trips := &mockTripRepo{
		create: func(context.Context, domain.Trip) (domain.Trip, error) {
			t.Fatal("trip must not be persisted when upload fails")
			return domain.Trip{}, nil
		},
	}
	svc := service.NewTripService(trips, &mockUserRepo{}, uploader)

	_, err := svc.Create(context.Background(), identity(), domain.Trip{Title: "Alps"}, []domain.PhotoUpload{
		{Filename: "a.jpg", Data: []byte("aa")},
	})

	assert.ErrorIs(t, err, domain.ErrStorageUpstream)
}

func TestTripServiceCreateBlankTitle(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, &mockUserRepo{}, noUploads(t))

	_, err := svc.Create(context.Background(), identity(), domain.Trip{Title: "   "}, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripServiceCreateForAuthorSelf(t *testing.T) {
	id := identity()
	users := &mockUserRepo{
		getByID: func(_ context.Context, got uuid.UUID) (domain.User, error) {
			require.Equal(t, id.UserID, got)
			return domain.User{ID: got, Email: id.Email}, nil
		},
	}
	svc := service.NewTripService(passthroughTrips(), users, noUploads(t))

	created, err := svc.CreateForAuthor(context.Background(), id, id.UserID, domain.Trip{Title: "Alps"}, nil)

	require.NoError(t, err)
	assert.Equal(t, id.UserID, created.AuthorID)
}

func TestTripServiceCreateForAuthorMismatch(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, &mockUserRepo{}, noUploads(t))

	_, err := svc.CreateForAuthor(context.Background(), identity(), uuid.New(), domain.Trip{Title: "Alps"}, nil)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTripServiceUpdateOwnership(t *testing.T) {
	owner := identity()
	stranger := identity()
	trip := domain.Trip{ID: uuid.New(), Title: "Alps", AuthorID: owner.UserID}
	trips := passthroughTrips()
	trips.getByID = func(context.Context, uuid.UUID) (domain.Trip, error) { return trip, nil }
	svc := service.NewTripService(trips, &mockUserRepo{}, noUploads(t))

	_, err := svc.Update(context.Background(), stranger, domain.Trip{ID: trip.ID, Title: "Hacked"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := svc.Update(context.Background(), owner, domain.Trip{ID: trip.ID, Title: "Alps, revisited"})
	require.NoError(t, err)
	assert.Equal(t, "Alps, revisited", updated.Title)
	assert.Equal(t, owner.UserID, updated.AuthorID, "author never changes on update")
}

func TestTripServiceUpdateNilSlicesKeepStored(t *testing.T) {
	owner := identity()
	trip := domain.Trip{
		ID:       uuid.New(),
		Title:    "Alps",
		AuthorID: owner.UserID,
		Photos:   []string{"https://cdn.example.com/keep.jpg"},
		Tags:     []string{"hiking"},
	}
	trips := passthroughTrips()
	trips.getByID = func(context.Context, uuid.UUID) (domain.Trip, error) { return trip, nil }
	svc := service.NewTripService(trips, &mockUserRepo{}, noUploads(t))

	updated, err := svc.Update(context.Background(), owner, domain.Trip{ID: trip.ID, Title: "Alps"})

	require.NoError(t, err)
	assert.Equal(t, trip.Photos, updated.Photos)
	assert.Equal(t, trip.Tags, updated.Tags)
}

func TestTripServiceUpdateWithUploadsMergesPhotos(t *testing.T) {
	owner := identity()
	trip := domain.Trip{
		ID:       uuid.New(),
		Title:    "Alps",
		AuthorID: owner.UserID,
		Photos:   []string{"https://cdn.example.com/old-primary.jpg", "https://cdn.example.com/second.jpg"},
	}
	trips := passthroughTrips()
	trips.getByID = func(context.Context, uuid.UUID) (domain.Trip, error) { return trip, nil }
	uploader := &mockUploader{
		upload: func(_ context.Context, photos []domain.PhotoUpload) ([]string, error) {
			urls := make([]string, len(photos))
			for i, p := range photos {
				urls[i] = "https://cdn.example.com/new-" + p.Filename
			}
			return urls, nil
		},
	}
	svc := service.NewTripService(trips, &mockUserRepo{}, uploader)

	primary := &domain.PhotoUpload{Filename: "cover.jpg", Data: []byte("x")}
	additional := []domain.PhotoUpload{
		{Filename: "extra.jpg", Data: []byte("y")},
	}
	updated, err := svc.UpdateWithUploads(context.Background(), owner, trip.ID, domain.Trip{}, primary, additional)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.example.com/new-cover.jpg", // primary replaces the first slot
		"https://cdn.example.com/second.jpg",
		"https://cdn.example.com/new-extra.jpg",
	}, updated.Photos)
	assert.Equal(t, "Alps", updated.Title, "empty patch fields keep stored values")
}

func TestTripServiceUpdateWithUploadsKeepList(t *testing.T) {
	owner := identity()
	trip := domain.Trip{
		ID:       uuid.New(),
		Title:    "Alps",
		AuthorID: owner.UserID,
		Photos:   []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	}
	trips := passthroughTrips()
	trips.getByID = func(context.Context, uuid.UUID) (domain.Trip, error) { return trip, nil }
	svc := service.NewTripService(trips, &mockUserRepo{}, noUploads(t))

	// The client keeps only b.jpg and uploads nothing new.
	updated, err := svc.UpdateWithUploads(context.Background(), owner, trip.ID, domain.Trip{
		Photos: []string{"https://cdn.example.com/b.jpg"},
	}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/b.jpg"}, updated.Photos)
}

func TestTripServiceDeleteOwnership(t *testing.T) {
	owner := identity()
	trip := domain.Trip{ID: uuid.New(), Title: "Alps", AuthorID: owner.UserID}
	var deleted uuid.UUID
	trips := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return trip, nil },
		delete: func(_ context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}
	svc := service.NewTripService(trips, &mockUserRepo{}, noUploads(t))

	err := svc.Delete(context.Background(), identity(), trip.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, uuid.Nil, deleted)

	require.NoError(t, svc.Delete(context.Background(), owner, trip.ID))
	assert.Equal(t, trip.ID, deleted)
}

func TestTripServiceDeleteNotFound(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(trips, &mockUserRepo{}, noUploads(t))

	err := svc.Delete(context.Background(), identity(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripServiceSearchByTitleBlank(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, &mockUserRepo{}, noUploads(t))

	_, err := svc.SearchByTitle(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripServiceListPagedRepoError(t *testing.T) {
	repoErr := errors.New("connection reset")
	trips := &mockTripRepo{
		listPaged: func(context.Context, domain.PaginationParams) ([]domain.Trip, int64, error) {
			return nil, 0, repoErr
		},
	}
	svc := service.NewTripService(trips, &mockUserRepo{}, noUploads(t))

	_, _, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 1, Limit: 20})

	assert.ErrorIs(t, err, repoErr)
}
