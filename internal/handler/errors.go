package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/techup/travelshare/backend/internal/domain"
)

// ErrorResponse is the error envelope every non-2xx response carries.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail holds a stable machine-readable code plus a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are
// swallowed: the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error to its HTTP status and error code. Anything
// that is not a known sentinel becomes an opaque 500 — internals never leak
// to the client, only to the log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var code string
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, domain.ErrRefreshTokenNotFound):
		status, code = http.StatusUnauthorized, "refresh_token_not_found"
	case errors.Is(err, domain.ErrRefreshTokenExpired):
		status, code = http.StatusUnauthorized, "refresh_token_expired"
	case errors.Is(err, domain.ErrUnauthenticated):
		status, code = http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, domain.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrEmailExists):
		status, code = http.StatusConflict, "email_exists"
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, domain.ErrStorageUpstream):
		status, code = http.StatusBadGateway, "storage_upstream"
	default:
		s.log.ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
		})
		return
	}

	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: unwrapMessage(err)}})
}

// writeRequestError rejects a request before it reaches the service layer
// (missing or malformed body, bad path parameter).
func writeRequestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{Code: "validation_error", Message: message},
	})
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: title is
// required" → "title is required". Errors without wrapping come back whole.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
