package handlers

//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/models"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email
	// required: true
	// default: user@example.com
	Email string `json:"email" validate:"required,email,max=255"`

	// Password, at least 5 characters
	// required: true
	// default: testPass123
	Password string `json:"password" validate:"required"`

	// Display name
	// default: Test Name
	Name string `json:"name" validate:"max=255"`
}

// UserResponse represents a user profile
// swagger:model UserResponse
type UserResponse struct {
	// Email
	// default: user@example.com
	Email string `json:"email"`

	// Display name
	// default: Test Name
	Name string `json:"name"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Email must be unique. Password is hashed before storing.
// @Tags users
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.UserResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Email already exists / invalid request"
// @Router /users [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeJSON(w, r, &req) || !validateRequest(w, req) {
			return
		}

		user, err := svc.Register(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, UserResponse{Email: user.Email, Name: user.Name})
	}
}
