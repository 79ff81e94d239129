package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		errType ErrorType
		want    int
	}{
		{AuthError, http.StatusUnauthorized},
		{UnauthorizedError, http.StatusForbidden},
		{NotFoundError, http.StatusNotFound},
		{ValidationError, http.StatusBadRequest},
		{BadRequestError, http.StatusBadRequest},
		{ConflictError, http.StatusConflict},
		{DatabaseError, http.StatusInternalServerError},
		{InternalError, http.StatusInternalServerError},
		{UnknownError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		appErr := NewAppError(tc.errType, "message", nil)
		assert.Equal(t, tc.want, appErr.StatusCode(), "type %v", tc.errType)
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := NewDatabaseError("failed to query", cause)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "failed to query")
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestFromError(t *testing.T) {
	t.Run("direct AppError", func(t *testing.T) {
		appErr, ok := FromError(NewNotFoundError("gone", nil))
		require.True(t, ok)
		assert.Equal(t, NotFoundError, appErr.Type)
	})

	t.Run("wrapped AppError", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", NewConflictError("duplicate", nil))
		appErr, ok := FromError(wrapped)
		require.True(t, ok)
		assert.Equal(t, ConflictError, appErr.Type)
	})

	t.Run("plain error", func(t *testing.T) {
		_, ok := FromError(errors.New("plain"))
		assert.False(t, ok)
	})

	t.Run("nil", func(t *testing.T) {
		_, ok := FromError(nil)
		assert.False(t, ok)
	})
}

func TestTypeHelpers(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("x", nil)))
	assert.True(t, IsAuthError(NewAuthError("x", nil)))
	assert.True(t, IsUnauthorizedError(NewUnauthorizedError("x", nil)))
	assert.True(t, IsValidationError(NewValidationError("x", nil)))
	assert.True(t, IsConflictError(NewConflictError("x", nil)))

	assert.False(t, IsNotFound(NewAuthError("x", nil)))
	assert.False(t, IsAuthError(nil))
}
