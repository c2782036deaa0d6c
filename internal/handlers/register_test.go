package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
	"github.com/sbilibin2017/recipe-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		expectedErr  string
		fieldErrors  []string
	}{
		{
			name: "success",
			body: `{"email":"user@example.com","password":"testPass123","name":"Test Name"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "user@example.com", "testPass123", "Test Name").
					Return(&models.User{Email: "user@example.com", Name: "Test Name"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "email already exists",
			body: `{"email":"user@example.com","password":"testPass123","name":"Test Name"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "user@example.com", "testPass123", "Test Name").
					Return(nil, services.ErrEmailAlreadyExists)
			},
			expectedCode: http.StatusBadRequest,
			fieldErrors:  []string{"email"},
		},
		{
			name: "short password",
			body: `{"email":"user@example.com","password":"pw","name":"Test Name"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "user@example.com", "pw", "Test Name").
					Return(nil, validation.NewError("password", "Ensure this field has at least 5 characters."))
			},
			expectedCode: http.StatusBadRequest,
			fieldErrors:  []string{"password"},
		},
		{
			name:         "missing fields",
			body:         `{"name":"Test Name"}`,
			expectedCode: http.StatusBadRequest,
			fieldErrors:  []string{"email", "password"},
		},
		{
			name:         "invalid email",
			body:         `{"email":"not-an-email","password":"testPass123"}`,
			expectedCode: http.StatusBadRequest,
			fieldErrors:  []string{"email"},
		},
		{
			name: "internal server error",
			body: `{"email":"user@example.com","password":"testPass123"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "user@example.com", "testPass123", "").
					Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "Internal server error",
		},
		{
			name:         "invalid json",
			body:         "{invalid json}",
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			rr := serve(NewRegisterHandler(mockSvc), http.MethodPost, "/users", "/users", tt.body, nil)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusCreated {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, map[string]any{"email": "user@example.com", "name": "Test Name"}, resp)
				assert.NotContains(t, rr.Body.String(), "password")
				return
			}

			resp := decodeError(t, rr)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, resp.Error)
			}
			for _, f := range tt.fieldErrors {
				assert.Contains(t, resp.Fields, f)
			}
		})
	}
}
