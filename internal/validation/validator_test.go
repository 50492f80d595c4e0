package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bookspace/bookspace-server/internal/errors"
	"github.com/bookspace/bookspace-server/internal/validation"
)

type registerForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Limit    int    `json:"limit,omitempty" validate:"omitempty,gte=1,lte=50"`
}

func TestValidatePasses(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerForm{
		Email:    "reader@example.com",
		Password: "long-enough-password",
		Name:     "Reader",
	})
	assert.NoError(t, err)
}

func TestValidateReportsFieldsByJSONName(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerForm{
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	problems, ok := appErr.Details.(map[string]string)
	require.True(t, ok)

	// JSON tag names, not Go field names.
	assert.Contains(t, problems, "email")
	assert.Contains(t, problems, "password")
	assert.Contains(t, problems, "name")
	assert.NotContains(t, problems, "Email")
}

func TestValidateMessages(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name  string
		form  registerForm
		field string
		want  string
	}{
		{
			name:  "required",
			form:  registerForm{Email: "a@b.co", Password: "long-enough"},
			field: "name",
			want:  "is required",
		},
		{
			name:  "email format",
			form:  registerForm{Email: "nope", Password: "long-enough", Name: "R"},
			field: "email",
			want:  "must be a valid email address",
		},
		{
			name:  "min length",
			form:  registerForm{Email: "a@b.co", Password: "short", Name: "R"},
			field: "password",
			want:  "must be at least 8 characters",
		},
		{
			name:  "range ceiling",
			form:  registerForm{Email: "a@b.co", Password: "long-enough", Name: "R", Limit: 99},
			field: "limit",
			want:  "must be less than or equal to 50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.form)
			require.Error(t, err)

			var appErr *apperrors.Error
			require.True(t, errors.As(err, &appErr))
			problems := appErr.Details.(map[string]string)
			assert.Equal(t, tt.want, problems[tt.field])
		})
	}
}
