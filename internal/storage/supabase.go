// Package storage implements the object-storage client used for trip photos.
// The backing store is a Supabase storage bucket, spoken to over its plain
// REST API.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/techup/travelshare/backend/internal/domain"
)

// SupabaseClient uploads photo bytes to a Supabase storage bucket and hands
// back public URLs. It satisfies service.PhotoUploader.
type SupabaseClient struct {
	client *resty.Client
	bucket string
}

// NewSupabaseClient constructs a client for the given project URL (e.g.
// "https://abc.supabase.co"), bucket, and service API key.
func NewSupabaseClient(baseURL, bucket, apiKey string) *SupabaseClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("apikey", apiKey).
		SetTimeout(30 * time.Second)
	return &SupabaseClient{client: client, bucket: bucket}
}

// UploadTripPhotos stores each photo under trips/ with a random prefix so
// uploads never collide, and returns the public URLs in input order. The
// first failure aborts the batch; already-uploaded files are left in place,
// they are harmless orphans.
func (c *SupabaseClient) UploadTripPhotos(ctx context.Context, photos []domain.PhotoUpload) ([]string, error) {
	urls := make([]string, 0, len(photos))
	for _, photo := range photos {
		url, err := c.upload(ctx, photo)
		if err != nil {
			return nil, fmt.Errorf("storage.SupabaseClient.UploadTripPhotos: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (c *SupabaseClient) upload(ctx context.Context, photo domain.PhotoUpload) (string, error) {
	objectPath := fmt.Sprintf("trips/%s-%s", uuid.NewString(), sanitizeFilename(photo.Filename))

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "true").
		SetBody(photo.Data).
		Post("/storage/v1/object/" + c.bucket + "/" + objectPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUpstream, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: upload %q: status %d", domain.ErrStorageUpstream, photo.Filename, resp.StatusCode())
	}

	return c.client.BaseURL + "/storage/v1/object/public/" + c.bucket + "/" + objectPath, nil
}

// Disabled is the PhotoUploader wired in when no storage backend is
// configured. Every upload fails; trips without photo uploads are unaffected.
type Disabled struct{}

// UploadTripPhotos always fails with domain.ErrStorageUpstream.
func (Disabled) UploadTripPhotos(context.Context, []domain.PhotoUpload) ([]string, error) {
	return nil, fmt.Errorf("storage.Disabled: %w: object storage is not configured", domain.ErrStorageUpstream)
}

// sanitizeFilename keeps the object path URL-safe: anything outside
// [A-Za-z0-9._-] becomes an underscore, and an empty name gets a placeholder.
func sanitizeFilename(name string) string {
	if name == "" {
		return "photo"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}
