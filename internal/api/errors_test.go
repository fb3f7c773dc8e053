package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/playerhub/playerhub/internal/service"
	"github.com/playerhub/playerhub/internal/service/auth"
	"github.com/playerhub/playerhub/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid argument", service.NewInvalidArgumentError("User not found"), http.StatusBadRequest},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"commentary not found wrapped", fmt.Errorf("failed: %w", store.ErrCommentaryNotFound), http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"username exists", store.ErrUsernameExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("invalid argument messages pass through verbatim", func(t *testing.T) {
		t.Parallel()

		err := service.NewInvalidArgumentError("le jeux n'est pas dans la liste: 7")
		assert.Equal(t, "le jeux n'est pas dans la liste: 7", GetSafeErrorMessage(err))

		wrapped := fmt.Errorf("handler: %w", service.NewInvalidArgumentError("User not found"))
		assert.Equal(t, "User not found", GetSafeErrorMessage(wrapped))
	})

	t.Run("internal errors are sanitized", func(t *testing.T) {
		t.Parallel()

		err := errors.New("pq: connection refused host=10.0.0.5")
		msg := GetSafeErrorMessage(err)
		assert.Equal(t, "An unexpected error occurred", msg)
		assert.NotContains(t, msg, "10.0.0.5")
	})

	t.Run("sentinels map to stable client messages", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "User not found", GetSafeErrorMessage(store.ErrUserNotFound))
		assert.Equal(t, "Score not found", GetSafeErrorMessage(store.ErrScoreNotFound))
		assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
		assert.Equal(t, "Token expired", GetSafeErrorMessage(auth.ErrExpiredToken))
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}
