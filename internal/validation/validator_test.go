package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nameRequest struct {
	Name string `json:"name" validate:"required,max=5"`
}

type sampleRequest struct {
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password,omitempty" validate:"required,min=5"`
	Minutes  int           `json:"time_minutes" validate:"gt=0"`
	Link     string        `json:"link" validate:"omitempty,url"`
	Tags     []nameRequest `json:"tags" validate:"omitempty,dive"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		input      sampleRequest
		wantFields map[string]string
	}{
		{
			name: "valid",
			input: sampleRequest{
				Email:    "user@example.com",
				Password: "testPass123",
				Minutes:  10,
				Link:     "https://example.com/r",
				Tags:     []nameRequest{{Name: "Vegan"}},
			},
		},
		{
			name:  "missing fields",
			input: sampleRequest{Minutes: 1},
			wantFields: map[string]string{
				"email":    "This field is required.",
				"password": "This field is required.",
			},
		},
		{
			name: "constraint violations",
			input: sampleRequest{
				Email:    "not-an-email",
				Password: "pass",
				Minutes:  0,
				Link:     "nope",
				Tags:     []nameRequest{{Name: "Dessert"}},
			},
			wantFields: map[string]string{
				"email":        "Enter a valid email address.",
				"password":     "Ensure this field has at least 5 characters.",
				"time_minutes": "Ensure this value is greater than 0.",
				"link":         "Enter a valid URL.",
				"tags[0].name": "Ensure this field has no more than 5 characters.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var vErr *Error
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantFields, vErr.Fields)
		})
	}
}

func TestError_Error(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "second", "a": "first"}}
	assert.Equal(t, "validation failed: a: first; b: second", err.Error())

	single := NewError("image", "Upload a valid image.")
	assert.Equal(t, map[string]string{"image": "Upload a valid image."}, single.Fields)
}
