package auth

import (
	"context"
	"testing"
	"time"

	"github.com/playerhub/playerhub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

// newTestTokenService builds a token service with an injectable clock for
// predictable expiry testing.
func newTestTokenService(secret string, lifetime time.Duration, timeFunc func() time.Time) *hmacTokenService {
	return &hmacTokenService{
		signingKey:           []byte(secret),
		tokenLifetime:        lifetime,
		refreshTokenLifetime: 24 * lifetime,
		timeFunc:             timeFunc,
		clockSkew:            2 * time.Minute,
	}
}

func TestNewTokenService(t *testing.T) {
	t.Run("rejects short secret", func(t *testing.T) {
		_, err := NewTokenService(config.AuthConfig{
			JWTSecret:                   "tooshort",
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 1440,
		})
		require.Error(t, err)
	})

	t.Run("accepts valid config", func(t *testing.T) {
		svc, err := NewTokenService(config.AuthConfig{
			JWTSecret:                   testSecret,
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 1440,
		})
		require.NoError(t, err)
		require.NotNil(t, svc)
	})
}

func TestGenerateToken(t *testing.T) {
	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute

	svc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	token, err := svc.GenerateToken(context.Background(), "testuser")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "testuser", claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	// Compare Unix timestamps to avoid timezone issues
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	wrongSecret := "wrong-secret-that-is-long-enough-for-testing"

	tests := []struct {
		name      string
		setupFunc func() (*hmacTokenService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (*hmacTokenService, string) {
				svc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				token, _ := svc.GenerateToken(context.Background(), "testuser")
				return svc, token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func() (*hmacTokenService, string) {
				genSvc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				token, _ := genSvc.GenerateToken(context.Background(), "testuser")

				// Validate well past the lifetime plus clock skew.
				valSvc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime.Add(tokenLifetime + time.Hour)
				})
				return valSvc, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "wrong signing key",
			setupFunc: func() (*hmacTokenService, string) {
				genSvc := newTestTokenService(wrongSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				token, _ := genSvc.GenerateToken(context.Background(), "testuser")

				valSvc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return valSvc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (*hmacTokenService, string) {
				svc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return svc, "not.a.jwt"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "refresh token rejected as access token",
			setupFunc: func() (*hmacTokenService, string) {
				svc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				token, _ := svc.GenerateRefreshToken(context.Background(), "testuser")
				return svc, token
			},
			wantErr: ErrWrongTokenType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, token := tt.setupFunc()

			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				require.NotNil(t, claims)
			}
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(testSecret, time.Hour, func() time.Time {
		return fixedTime
	})

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateRefreshToken(context.Background(), "testuser")
		require.NoError(t, err)

		claims, err := svc.ValidateRefreshToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "testuser", claims.Username)
		assert.Equal(t, "refresh", claims.TokenType)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		token, err := svc.GenerateToken(context.Background(), "testuser")
		require.NoError(t, err)

		_, err = svc.ValidateRefreshToken(context.Background(), token)
		require.ErrorIs(t, err, ErrWrongTokenType)
	})
}

func TestExtractUsername(t *testing.T) {
	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(testSecret, time.Hour, func() time.Time {
		return fixedTime
	})

	t.Run("returns username from valid token", func(t *testing.T) {
		token, err := svc.GenerateToken(context.Background(), "testuser")
		require.NoError(t, err)

		username, err := svc.ExtractUsername(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "testuser", username)
	})

	t.Run("propagates validation failure", func(t *testing.T) {
		username, err := svc.ExtractUsername(context.Background(), "garbage")
		require.ErrorIs(t, err, ErrInvalidToken)
		assert.Empty(t, username)
	})
}

func TestPasswordHashing(t *testing.T) {
	hasher := NewBcryptHasher(bcryptTestCost)
	verifier := NewBcryptVerifier()

	hashed, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "Password123!", hashed)

	require.NoError(t, verifier.Compare(hashed, "Password123!"))
	require.Error(t, verifier.Compare(hashed, "WrongPassword!"))
}

// bcryptTestCost keeps password tests fast.
const bcryptTestCost = 4
