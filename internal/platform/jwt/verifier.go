package jwtmw

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"todo_backend/internal/shared/principal"
)

// ErrInvalidToken is returned for tokens that are malformed, expired or
// signed with another key or algorithm.
var ErrInvalidToken = errors.New("invalid token")

// Verifier validates tokens produced by Generator.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier creates a verifier sharing the generator's secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// VerifyToken checks the signature and expiry and returns the embedded principal.
func (v *Verifier) VerifyToken(tokenStr string) (principal.Principal, error) {
	if len(v.secret) == 0 {
		return principal.Principal{}, fmt.Errorf("%w: verifier has no secret", ErrInvalidToken)
	}

	var claims Claims
	token, err := v.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		return principal.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ID == 0 {
		return principal.Principal{}, ErrInvalidToken
	}

	return principal.Principal{ID: claims.ID, Email: claims.Email}, nil
}
