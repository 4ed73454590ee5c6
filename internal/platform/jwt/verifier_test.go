package jwtmw

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo_backend/internal/shared/principal"
)

func TestVerifier_RoundTrip(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("round-trip-secret", time.Hour)
	v := NewVerifier("round-trip-secret")

	token, err := gen.GenerateToken(42, "a@x.com")
	require.NoError(t, err)

	p, err := v.VerifyToken(token)

	require.NoError(t, err)
	assert.Equal(t, principal.Principal{ID: 42, Email: "a@x.com"}, p)
}

func TestVerifier_Rejects(t *testing.T) {
	t.Parallel()

	const secret = "verifier-secret"

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1, "email": "a@x.com"})
	noExpStr, _ := noExp.SignedString([]byte(secret))

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"id": 1, "email": "a@x.com", "exp": time.Now().Add(time.Hour).Unix(),
	})
	hs512Str, _ := hs512.SignedString([]byte(secret))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": 1, "exp": time.Now().Add(time.Hour).Unix(),
	})
	noneStr, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", createTokenWithSecret("wrong-secret", 1, time.Hour)},
		{"expired", createTokenWithSecret(secret, 1, -time.Hour)},
		{"missing exp", noExpStr},
		{"other hmac algorithm", hs512Str},
		{"unsigned", noneStr},
		{"missing id", createTokenWithSecret(secret, 0, time.Hour)},
	}

	v := NewVerifier(secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := v.VerifyToken(tt.token)

			assert.True(t, errors.Is(err, ErrInvalidToken), "expected ErrInvalidToken, got %v", err)
		})
	}
}

func TestVerifier_EmptySecret(t *testing.T) {
	t.Parallel()

	token := createTokenWithSecret("", 1, time.Hour)
	_, err := NewVerifier("").VerifyToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
