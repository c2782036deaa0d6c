package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
	"github.com/sbilibin2017/recipe-api/internal/validation"
)

// Error messages shared by handlers.
const (
	msgInvalidInput       = "Invalid input"
	msgInvalidBody        = "Invalid request body"
	msgNotFound           = "Not found."
	msgUnauthenticated    = "Authentication credentials were not provided."
	msgInternal           = "Internal server error"
	msgRequired           = "This field is required."
	msgBlank              = "This field may not be blank."
	msgInvalidCredentials = "Unable to authenticate with provided credentials."
	msgEmailExists        = "user with this email already exists."
	msgInvalidImage       = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	msgNoFile             = "No file was submitted."
)

// validate checks request payloads.
var validate = validation.New()

// ErrorResponse is the body of every error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Invalid input
	Error string `json:"error"`

	// Per-field messages, present for validation failures
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidInput, Fields: fields})
}

// writeServiceError maps a service error to its HTTP response.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		writeFieldErrors(w, vErr.Fields)
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, services.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, msgUnauthenticated)
	case errors.Is(err, services.ErrInvalidCredentials):
		writeFieldErrors(w, map[string]string{"non_field_errors": msgInvalidCredentials})
	case errors.Is(err, services.ErrEmailAlreadyExists):
		writeFieldErrors(w, map[string]string{"email": msgEmailExists})
	case errors.Is(err, services.ErrInvalidImage):
		writeFieldErrors(w, map[string]string{"image": msgInvalidImage})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// currentUser returns the authenticated user or writes 401.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthenticated)
	}
	return user, ok
}

// pathID parses the {id} URL parameter or writes 404.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into v or writes 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		logger.Log.Infow("invalid request body", "err", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// validateRequest runs struct validation or writes 400.
func validateRequest(w http.ResponseWriter, v any) bool {
	if err := validate.Validate(v); err != nil {
		writeServiceError(w, err)
		return false
	}
	return true
}
