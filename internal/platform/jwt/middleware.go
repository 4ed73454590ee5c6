package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/shared/principal"
)

// ContextPrincipal is the gin context key holding the authenticated principal.
const ContextPrincipal = "principal"

const bearerPrefix = "Bearer "

// Rejection messages returned by AuthRequired.
const (
	MsgNoToken      = "no token provided"
	MsgInvalidToken = "invalid or expired token"
)

// TokenVerifier is satisfied by *Verifier.
type TokenVerifier interface {
	VerifyToken(token string) (principal.Principal, error)
}

// BearerToken extracts the token following the literal "Bearer " prefix.
// The remainder is returned as is; extra whitespace makes the token invalid.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	return token, token != ""
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		tokenStr, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgNoToken})
			return
		}

		// 2. Verify signature and expiry
		p, err := v.VerifyToken(tokenStr)
		if err != nil {
			slog.Warn("token rejected", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgInvalidToken})
			return
		}

		// 3. Expose the principal to handlers and use cases
		c.Set(ContextPrincipal, p)
		c.Request = c.Request.WithContext(principal.WithContext(c.Request.Context(), p))
		c.Next()
	}
}
