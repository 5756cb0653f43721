package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	ts := NewTokenService("secret-key", 30, 43200)

	assert.Equal(t, "secret-key", ts.Secret)
	assert.Equal(t, 30*time.Minute, ts.AccessTokenExpiry)
	assert.Equal(t, 43200*time.Minute, ts.RefreshTokenExpiry)
	assert.Equal(t, 30*time.Minute, ts.AccessTokenTTL())
	assert.Equal(t, 30*24*time.Hour, ts.RefreshTokenTTL())
}

func TestTokenService_Generate(t *testing.T) {
	ts := NewTokenService("test-secret-123", 30, 43200)

	before := time.Now()
	token, expiresAt, err := ts.Generate("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.WithinDuration(t, before.Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := ts.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

// Repeated issuance must never mint the same access token twice, for the
// same or different users, even within a single second.
func TestTokenService_Generate_Uniqueness(t *testing.T) {
	ts := NewTokenService("test-secret-123", 30, 43200)

	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		userID := "user-a"
		if i%2 == 0 {
			userID = "user-b"
		}

		token, _, err := ts.Generate(userID)
		require.NoError(t, err)

		_, dup := seen[token]
		require.False(t, dup, "duplicate access token on iteration %d", i)
		seen[token] = struct{}{}
	}
}

func TestTokenService_NewRefreshToken(t *testing.T) {
	ts := NewTokenService("secret", 30, 43200)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := ts.NewRefreshToken()
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}
	}
}

func TestTokenService_VerifyAccessToken(t *testing.T) {
	ts := NewTokenService("right-secret", 30, 43200)

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewTokenService("wrong-secret", 30, 43200)
		token, _, err := other.Generate("user-123")
		require.NoError(t, err)

		_, err = ts.VerifyAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewTokenService("right-secret", -1, 43200)
		token, _, err := expired.Generate("user-123")
		require.NoError(t, err)

		_, err = ts.VerifyAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects non-HMAC signing method", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject: "user-123",
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ts.VerifyAccessToken(unsigned)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ts.VerifyAccessToken("not-a-jwt")
		assert.Error(t, err)
	})
}
