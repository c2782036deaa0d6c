package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileHandler(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		rr := serve(NewGetProfileHandler(), http.MethodGet, "/users/me", "/users/me", "", testUser)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, UserResponse{Email: testUser.Email, Name: testUser.Name}, resp)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rr := serve(NewGetProfileHandler(), http.MethodGet, "/users/me", "/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("updates name and password", func(t *testing.T) {
		mockSvc := NewMockProfileUpdater(ctrl)
		mockSvc.EXPECT().
			UpdateProfile(gomock.Any(), testUser.UserID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, name, password *string) (*models.User, error) {
				require.NotNil(t, name)
				require.NotNil(t, password)
				assert.Equal(t, "New Name", *name)
				assert.Equal(t, "newpassword123", *password)
				return &models.User{Email: testUser.Email, Name: *name}, nil
			})

		rr := serve(NewUpdateProfileHandler(mockSvc), http.MethodPatch, "/users/me", "/users/me",
			`{"name":"New Name","password":"newpassword123"}`, testUser)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "New Name", resp.Name)
	})

	t.Run("short password", func(t *testing.T) {
		mockSvc := NewMockProfileUpdater(ctrl)
		mockSvc.EXPECT().
			UpdateProfile(gomock.Any(), testUser.UserID, nil, gomock.Any()).
			Return(nil, validation.NewError("password", "Ensure this field has at least 5 characters."))

		rr := serve(NewUpdateProfileHandler(mockSvc), http.MethodPatch, "/users/me", "/users/me",
			`{"password":"pw"}`, testUser)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Fields, "password")
	})
}
