package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fractal.app/api/common/logger"
	"fractal.app/api/internal/service"
)

const (
	SessionCookieName = "fractal_session"
	principalKey      = "principal"
	bearerPrefix      = "Bearer "
)

// Authenticator resolves a bearer token to a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*service.Principal, error)
}

// RequireAuth accepts the token from the Authorization header or the
// session cookie and aborts with 401 when it does not resolve.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		principal, err := auth.Authenticate(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidToken),
				errors.Is(err, service.ErrSessionExpired),
				errors.Is(err, service.ErrUserNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			default:
				slog.ErrorContext(ctx, "failed to authenticate request", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to authenticate"})
			}
			return
		}

		c.Set(principalKey, principal)
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(principal.User.ID)})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetPrincipal returns the principal RequireAuth stored on the context.
func GetPrincipal(c *gin.Context) (*service.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*service.Principal)
	return p, ok
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); len(h) > len(bearerPrefix) && strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(h[len(bearerPrefix):])
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}
