// Package middleware holds the gin middleware the router installs.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/telugutor/backend/internal/logger"
)

// LearnerIDKey is the gin context key the handlers read the authenticated
// learner ID from.
const LearnerIDKey = "learner_id"

// SessionResolver maps a bearer token to a learner ID. An empty result
// means the token is unknown or expired.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// AuthMiddleware resolves the caller's learner identity. Credential
// verification itself (login, token issuance) lives with the auth layer;
// this middleware only maps an established session to a learner ID.
type AuthMiddleware struct {
	log      *logger.Logger
	sessions SessionResolver
	// devHeader trusts the X-Learner-ID header instead of the session
	// store. Local development only.
	devHeader bool
}

// NewAuthMiddleware creates the middleware.
func NewAuthMiddleware(log *logger.Logger, sessions SessionResolver, devHeader bool) *AuthMiddleware {
	return &AuthMiddleware{
		log:       log.With("middleware", "auth"),
		sessions:  sessions,
		devHeader: devHeader,
	}
}

// RequireLearner aborts with 401 unless the request carries a resolvable
// learner identity.
func (m *AuthMiddleware) RequireLearner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.devHeader {
			if learnerID := c.GetHeader("X-Learner-ID"); learnerID != "" {
				c.Set(LearnerIDKey, learnerID)
				c.Next()
				return
			}
		}

		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		learnerID, err := m.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			m.log.Error("session lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		if learnerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(LearnerIDKey, learnerID)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
