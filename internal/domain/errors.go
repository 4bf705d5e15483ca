package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed email).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidCredentials is returned by the auth service when the email is
// unknown or the password does not match. Both cases collapse into this one
// error so the API never reveals whether an email is registered.
// Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailExists is returned when registration or a profile update would
// claim an email address another account already owns.
// Handlers should map this to HTTP 409 Conflict.
var ErrEmailExists = errors.New("email already exists")

// ErrRefreshTokenNotFound is returned when a presented refresh token value
// has no matching row — either it was never issued, or it was rotated away
// and its replacement is now the only valid value.
// Handlers should map this to HTTP 401.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// ErrRefreshTokenExpired is returned when a refresh token exists but its
// expiry instant has passed. The row is deleted as part of this failure;
// the caller must log in again.
// Handlers should map this to HTTP 401.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrUnauthenticated is returned when a request reaches a protected
// operation without a valid identity attached.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden is returned when an authenticated caller attempts to mutate
// a resource they do not own.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrStorageUpstream is returned when the object-storage service rejects or
// fails a photo upload. The enclosing trip create/update is aborted — a trip
// is never persisted with missing photos.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrStorageUpstream = errors.New("storage upload failed")
