package domain_test

import (
	"testing"

	"github.com/playerhub/playerhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		user, err := domain.NewUser("testuser", "test@example.com", "Password123!")
		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Zero(t, user.ID, "store assigns the ID, not the constructor")
		assert.Empty(t, user.Slug, "slug is derived at creation by the service")
		assert.False(t, user.CreatedAt.IsZero())
	})

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"empty username", "", "test@example.com", "Password123!", domain.ErrEmptyUsername},
		{"empty email", "testuser", "", "Password123!", domain.ErrEmptyEmail},
		{"missing at sign", "testuser", "example.com", "Password123!", domain.ErrInvalidEmail},
		{"missing domain dot", "testuser", "test@example", "Password123!", domain.ErrInvalidEmail},
		{"empty password", "testuser", "test@example.com", "", domain.ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewUser(tt.username, tt.email, tt.password)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserValidate_HashedPasswordOnly(t *testing.T) {
	// Users loaded from the store have no plaintext password.
	user := &domain.User{
		Username:       "testuser",
		Email:          "test@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	require.NoError(t, user.Validate())
}

func TestUserHasGame(t *testing.T) {
	user := &domain.User{
		Games: []*domain.Game{{ID: 1}, {ID: 3}},
	}

	assert.True(t, user.HasGame(1))
	assert.True(t, user.HasGame(3))
	assert.False(t, user.HasGame(2))

	empty := &domain.User{}
	assert.False(t, empty.HasGame(1))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain username maps to itself", "testuser", "testuser"},
		{"upper case is lowered", "TestUser", "testuser"},
		{"spaces become hyphens", "Test User", "test-user"},
		{"separator runs collapse", "test -_ user", "test-user"},
		{"symbols are dropped", "test!user?", "testuser"},
		{"symbol-only input yields empty", "@#$%", ""},
		{"digits survive", "player42", "player42"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Slugify(tt.in)
			assert.Equal(t, tt.want, got)

			// Idempotent: slugifying a slug is a no-op.
			assert.Equal(t, got, domain.Slugify(got))
		})
	}
}
