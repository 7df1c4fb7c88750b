package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/logger"
	"disputedesk/internal/pkg/jwtutil"
	"disputedesk/internal/portal"
	"disputedesk/internal/transport/http/response"
)

const (
	ContextSessionIDKey = "portal_session_id"
	ContextPortalKey    = "portal"
)

// PortalSession accepts a bearer token issued when a portal session was
// opened and binds the request to that session.
func PortalSession(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		kind, ok := portal.ParseKind(claims.Portal)
		if !ok || claims.SessionID == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
			c.Abort()
			return
		}

		c.Set(ContextSessionIDKey, claims.SessionID)
		c.Set(ContextPortalKey, kind)
		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			SessionID: claims.SessionID,
			Portal:    string(kind),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequirePortal rejects tokens issued for a different portal.
func RequirePortal(kind portal.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got, _ := PortalFrom(c); got != kind {
			response.Error(c, http.StatusForbidden, response.CodeWrongPortal, "token does not belong to the "+string(kind)+" portal")
			c.Abort()
			return
		}
		c.Next()
	}
}

func SessionIDFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextSessionIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func PortalFrom(c *gin.Context) (portal.Kind, bool) {
	v, ok := c.Get(ContextPortalKey)
	if !ok {
		return "", false
	}
	kind, ok := v.(portal.Kind)
	return kind, ok
}
