package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/bookspace/bookspace-server/internal/errors"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code   apperrors.Code
		status int
	}{
		{apperrors.CodeNotFound, http.StatusNotFound},
		{apperrors.CodeAlreadyExists, http.StatusConflict},
		{apperrors.CodeUnauthorized, http.StatusUnauthorized},
		{apperrors.CodeForbidden, http.StatusForbidden},
		{apperrors.CodeValidation, http.StatusBadRequest},
		{apperrors.CodeInvalidCredentials, http.StatusUnauthorized},
		{apperrors.CodeInternal, http.StatusInternalServerError},
		{apperrors.Code("SOMETHING_NEW"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.code.HTTPStatus())
		})
	}
}

func TestSentinelMatchingByCode(t *testing.T) {
	err := apperrors.NotFound("book not found")

	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.False(t, apperrors.Is(err, apperrors.ErrForbidden))

	// Matching survives wrapping.
	wrapped := fmt.Errorf("get book: %w", err)
	assert.True(t, apperrors.Is(wrapped, apperrors.ErrNotFound))
}

func TestValidationWithDetails(t *testing.T) {
	details := map[string]string{"email": "must be a valid email address"}
	err := apperrors.ValidationWithDetails("validation failed", details)

	assert.Equal(t, "validation failed", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Equal(t, details, err.Details)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestValidationf(t *testing.T) {
	err := apperrors.Validationf("limit must be between %d and %d", 1, 50)

	assert.Equal(t, "limit must be between 1 and 50", err.Error())
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}
