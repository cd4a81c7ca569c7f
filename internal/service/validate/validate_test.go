package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/models"
)

func TestStruct(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected map[string]string
	}{
		{
			name:  "valid login",
			value: models.LoginInput{Email: "ana@example.com", Password: "secret"},
		},
		{
			name:  "empty login",
			value: models.LoginInput{},
			expected: map[string]string{
				"email":    "This field is required",
				"password": "This field is required",
			},
		},
		{
			name:     "bad email",
			value:    models.LoginInput{Email: "ana", Password: "secret"},
			expected: map[string]string{"email": "Must be a valid email"},
		},
		{
			name:     "blank category name",
			value:    models.BeverageCategoryInput{Name: "   "},
			expected: map[string]string{"name": "This field is required"},
		},
		{
			name:  "category name",
			value: models.BeverageCategoryInput{Name: "Vinhos"},
		},
		{
			name:     "desk without seats",
			value:    models.DeskInput{Name: "Mesa 1"},
			expected: map[string]string{"seats_Limit": "Value is too small (minimum 1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.value)

			if tt.expected == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, apperrors.ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.expected, verr.Fields)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"password": "This field is required", "email": "Must be a valid email"}}

	assert.Equal(t, "validation failed: email: Must be a valid email; password: This field is required", err.Error())
}
