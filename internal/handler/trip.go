package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/techup/travelshare/backend/internal/domain"
	"github.com/techup/travelshare/backend/internal/middleware"
)

// multipartMemory caps the in-memory portion of a parsed multipart body; the
// rest spills to temp files. The overall size limit is enforced earlier by
// the max-body-size middleware.
const multipartMemory = 10 << 20

type tripRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Photos      []string   `json:"photos"`
	Tags        []string   `json:"tags"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	AuthorID    *uuid.UUID `json:"authorId"`
}

func (req tripRequest) toDomain() domain.Trip {
	return domain.Trip{
		Title:       req.Title,
		Description: req.Description,
		Photos:      req.Photos,
		Tags:        req.Tags,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
}

type tripResponse struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Photos            []string  `json:"photos"`
	Tags              []string  `json:"tags"`
	Latitude          *float64  `json:"latitude,omitempty"`
	Longitude         *float64  `json:"longitude,omitempty"`
	AuthorID          uuid.UUID `json:"authorId"`
	AuthorEmail       string    `json:"authorEmail,omitempty"`
	AuthorDisplayName string    `json:"authorDisplayName,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Photos:            t.Photos,
		Tags:              t.Tags,
		Latitude:          t.Latitude,
		Longitude:         t.Longitude,
		AuthorID:          t.AuthorID,
		AuthorEmail:       t.AuthorEmail,
		AuthorDisplayName: t.AuthorDisplayName,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

func tripsToResponses(trips []domain.Trip) []tripResponse {
	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	return data
}

// handleListTrips handles GET /api/trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripListResponse{
		Data: tripsToResponses(trips),
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// handleGetTrip handles GET /api/trips/{id}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeRequestError(w, "id must be a valid UUID")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// handleListTripsByAuthor handles GET /api/trips/author/{id}.
func (s *Server) handleListTripsByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeRequestError(w, "author id must be a valid UUID")
		return
	}

	trips, err := s.trips.ListByAuthor(r.Context(), authorID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripsToResponses(trips))
}

// handleSearchTrips handles GET /api/trips/search?title=.
func (s *Server) handleSearchTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.SearchByTitle(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripsToResponses(trips))
}

// handleCreateTrip handles POST /api/trips (JSON). A body carrying authorId
// takes the legacy explicit-author path, which only accepts the caller's own
// id.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		s.writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "request body must be valid JSON")
		return
	}

	var created domain.Trip
	var err error
	if req.AuthorID != nil {
		created, err = s.trips.CreateForAuthor(r.Context(), id, *req.AuthorID, req.toDomain(), nil)
	} else {
		created, err = s.trips.Create(r.Context(), id, req.toDomain(), nil)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// handleCreateTripForAuthor handles POST /api/trips/author/{id}, the legacy
// path with the author in the URL.
func (s *Server) handleCreateTripForAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		s.writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	authorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeRequestError(w, "author id must be a valid UUID")
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "request body must be valid JSON")
		return
	}

	created, err := s.trips.CreateForAuthor(r.Context(), id, authorID, req.toDomain(), nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// handleCreateMyTrip handles POST /api/trips/my (multipart): a "trip" JSON
// part plus optional "primaryImage" and "images" files. Uploaded photos go
// to object storage before the trip is persisted.
func (s *Server) handleCreateMyTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		s.writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	req, primary, additional, err := parseMultipartTrip(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	// The primary image leads the photo list.
	var photos []domain.PhotoUpload
	if primary != nil {
		photos = append(photos, *primary)
	}
	photos = append(photos, additional...)

	created, err := s.trips.Create(r.Context(), id, req.toDomain(), photos)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// handleUpdateTrip handles PUT /api/trips/{id}. A JSON body is a full
// overwrite; a multipart body is a partial patch with optional image
// uploads merged into the photo list.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		s.writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeRequestError(w, "id must be a valid UUID")
		return
	}

	if isMultipart(r) {
		req, primary, additional, err := parseMultipartTrip(r)
		if err != nil {
			writeRequestError(w, err.Error())
			return
		}

		updated, err := s.trips.UpdateWithUploads(r.Context(), id, tripID, req.toDomain(), primary, additional)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tripToResponse(updated))
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "request body must be valid JSON")
		return
	}
	patch := req.toDomain()
	patch.ID = tripID

	updated, err := s.trips.Update(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// handleDeleteTrip handles DELETE /api/trips/{id}.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		s.writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeRequestError(w, "id must be a valid UUID")
		return
	}

	if err := s.trips.Delete(r.Context(), id, tripID); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- request parsing helpers ------------------------------------------------

// queryInt reads an integer query parameter, nil when absent or malformed.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseMultipartTrip decodes the "trip" JSON part and reads the
// "primaryImage" and "images" file parts into memory.
func parseMultipartTrip(r *http.Request) (tripRequest, *domain.PhotoUpload, []domain.PhotoUpload, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return tripRequest{}, nil, nil, errors.New("request body must be valid multipart form data")
	}

	var req tripRequest
	if raw := r.FormValue("trip"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			return tripRequest{}, nil, nil, errors.New("trip part must be valid JSON")
		}
	}

	var primary *domain.PhotoUpload
	if headers := r.MultipartForm.File["primaryImage"]; len(headers) > 0 {
		upload, err := readUpload(headers[0])
		if err != nil {
			return tripRequest{}, nil, nil, err
		}
		primary = &upload
	}

	var additional []domain.PhotoUpload
	for _, header := range r.MultipartForm.File["images"] {
		upload, err := readUpload(header)
		if err != nil {
			return tripRequest{}, nil, nil, err
		}
		additional = append(additional, upload)
	}

	return req, primary, additional, nil
}

func readUpload(header *multipart.FileHeader) (domain.PhotoUpload, error) {
	file, err := header.Open()
	if err != nil {
		return domain.PhotoUpload{}, errors.New("could not read uploaded file " + header.Filename)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.PhotoUpload{}, errors.New("could not read uploaded file " + header.Filename)
	}

	return domain.PhotoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
