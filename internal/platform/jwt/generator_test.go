package jwtmw

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedGenerator は発行時刻を固定したGeneratorを返します。
func fixedGenerator(secret string, expiration time.Duration, now time.Time) *Generator {
	gen := NewGenerator(secret, expiration)
	gen.now = func() time.Time { return now }
	return gen
}

func TestGenerator_Claims(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		userID     uint
		email      string
		expiration time.Duration
		wantSub    string
	}{
		{"first user", 1, "a@x.com", time.Hour, "1"},
		{"plus address", 42, "user+tag@example.com", 15 * time.Minute, "42"},
		{"seven day token", 1000, "b@x.com", 7 * 24 * time.Hour, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := fixedGenerator("claims-secret", tt.expiration, issued).GenerateToken(tt.userID, tt.email)
			require.NoError(t, err)

			var claims Claims
			parsed, err := jwt.ParseWithClaims(token, &claims,
				func(*jwt.Token) (interface{}, error) { return []byte("claims-secret"), nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithTimeFunc(func() time.Time { return issued }),
			)
			require.NoError(t, err)

			assert.Equal(t, "HS256", parsed.Header["alg"])
			assert.Equal(t, tt.userID, claims.ID)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.wantSub, claims.Subject)
			require.NotNil(t, claims.IssuedAt)
			require.NotNil(t, claims.ExpiresAt)
			assert.True(t, claims.IssuedAt.Equal(issued))
			assert.True(t, claims.ExpiresAt.Equal(issued.Add(tt.expiration)))
		})
	}
}

// TestGenerator_ExpiryIsEnforced は有効期限を過ぎたトークンが検証で拒否されることを検証します。
func TestGenerator_ExpiryIsEnforced(t *testing.T) {
	t.Parallel()

	const secret = "expiry-secret"
	v := NewVerifier(secret)

	tests := []struct {
		name    string
		issued  time.Time
		wantErr bool
	}{
		{"still valid", time.Now().Add(-30 * time.Minute), false},
		{"expired", time.Now().Add(-2 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := fixedGenerator(secret, time.Hour, tt.issued).GenerateToken(5, "c@x.com")
			require.NoError(t, err)

			p, err := v.VerifyToken(token)

			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidToken), "expected ErrInvalidToken, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(5), p.ID)
		})
	}
}

func TestGenerator_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator("", time.Hour).GenerateToken(1, "a@x.com")

	assert.EqualError(t, err, "jwt secret is empty")
}
