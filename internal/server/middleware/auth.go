// file: internal/server/middleware/auth.go
// version: 1.1.0
// guid: 74b31dca-2ef1-4acf-8791-2e80ba3cc5ed

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopkit/storefront/internal/auth"
)

const contextIdentityKey = "auth_identity"

// BearerTokenFromRequest extracts the bearer token from the Authorization
// header. Returns "" for a missing or malformed header.
func BearerTokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}

// CurrentIdentity fetches the authenticated identity from Gin context.
func CurrentIdentity(c *gin.Context) (*auth.Identity, bool) {
	if c == nil {
		return nil, false
	}
	value, ok := c.Get(contextIdentityKey)
	if !ok || value == nil {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok && identity != nil
}

// SetIdentity stores an identity in the Gin context (exported for tests).
func SetIdentity(c *gin.Context, identity *auth.Identity) {
	c.Set(contextIdentityKey, identity)
}

// RequireAuth verifies the bearer token on every request and attaches the
// resulting identity to the context. A missing or malformed header is
// rejected before the verifier is consulted.
func RequireAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerTokenFromRequest(c.Request)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":  "missing or malformed Authorization header",
				"code":   "UNAUTHORIZED",
				"status": http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			message := "invalid token"
			if err == auth.ErrExpiredToken {
				message = "token expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":  message,
				"code":   "UNAUTHORIZED",
				"status": http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}
