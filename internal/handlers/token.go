package handlers

//go:generate mockgen -source=token.go -destination=mock_token.go -package=handlers

import (
	"context"
	"net/http"
)

// Loginer defines the interface that the token service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenRequest represents the JSON body for token issue
// swagger:model TokenRequest
type TokenRequest struct {
	// Email
	// required: true
	// default: user@example.com
	Email string `json:"email" validate:"required"`

	// Password
	// required: true
	// default: testPass123
	Password string `json:"password"`
}

// TokenResponse represents a successful token issue
// swagger:model TokenResponse
type TokenResponse struct {
	// Access token, sent back as "Authorization: Token <token>"
	// default: TOKEN
	Token string `json:"token"`
}

// NewTokenHandler returns an HTTP handler that exchanges credentials for a token.
// @Summary Create auth token
// @Description Authenticate user by email and password and return an access token
// @Tags users
// @Accept json
// @Produce json
// @Param tokenRequest body handlers.TokenRequest true "Credentials"
// @Success 200 {object} handlers.TokenResponse "Token returned"
// @Failure 400 {object} handlers.ErrorResponse "Invalid credentials / invalid request"
// @Router /users/token [post]
func NewTokenHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TokenRequest
		if !decodeJSON(w, r, &req) || !validateRequest(w, req) {
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, TokenResponse{Token: token})
	}
}
