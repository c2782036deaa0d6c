package handlers

//go:generate mockgen -source=profile.go -destination=mock_profile.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// ProfileUpdater defines the interface that the profile service must implement.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, password *string) (*models.User, error)
}

// ProfileUpdateRequest represents the JSON body for a profile update
// swagger:model ProfileUpdateRequest
type ProfileUpdateRequest struct {
	// New display name
	Name *string `json:"name" validate:"omitempty,max=255"`

	// New password, at least 5 characters
	Password *string `json:"password"`
}

// NewGetProfileHandler returns an HTTP handler for the authenticated user's profile.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} handlers.UserResponse "Profile"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /users/me [get]
// @Security TokenAuth
func NewGetProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, UserResponse{Email: user.Email, Name: user.Name})
	}
}

// NewUpdateProfileHandler returns an HTTP handler that updates the authenticated user's profile.
// @Summary Update own profile
// @Description Partially updates name and/or password
// @Tags users
// @Accept json
// @Produce json
// @Param profileUpdateRequest body handlers.ProfileUpdateRequest true "Fields to change"
// @Success 200 {object} handlers.UserResponse "Updated profile"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /users/me [patch]
// @Security TokenAuth
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req ProfileUpdateRequest
		if !decodeJSON(w, r, &req) || !validateRequest(w, req) {
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), user.UserID, req.Name, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, UserResponse{Email: updated.Email, Name: updated.Name})
	}
}
