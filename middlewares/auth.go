package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordering-console/session"
)

const sessionKey = "session"

// SessionMiddleware reads the cookie pair once per request and attaches the
// session to the gin context. Requests without a session pass through; the
// role gates below decide who gets turned away.
func SessionMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s, err := manager.Read(c); err == nil {
			c.Set(sessionKey, s)
		}
		c.Next()
	}
}

// GetSession returns the request's session, if any.
func GetSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	return s, ok
}

// RequireRole gates a route group to the given roles. This is the same
// client-side check the browser app did: a convenience, not a boundary.
// Every proxied call still carries the token for the backend to judge.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sesión requerida"})
			return
		}
		for _, rol := range roles {
			if s.Usuario.Rol == rol {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "rol no autorizado"})
	}
}
