package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fractal.app/api/common/id"
	"fractal.app/api/common/logger"
	"fractal.app/api/internal/http/middleware"
	"fractal.app/api/internal/service"
)

// respondError maps a service error to its status code. Internal errors are
// logged and answered with fallback so no detail leaks to the caller.
func respondError(c *gin.Context, err error, fallback string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) && svcErr.Kind != service.KindInternal {
		c.JSON(statusFor(svcErr.Kind), gin.H{"error": svcErr.Message})
		return
	}

	slog.ErrorContext(c.Request.Context(), fallback, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindBadRequest:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// callerID returns the authenticated user id. Routes using it sit behind
// RequireAuth, so a missing principal is answered with 401.
func callerID(c *gin.Context) (int64, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return 0, false
	}
	return p.User.ID, true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	v, err := id.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return v, true
}

func workspaceID(c *gin.Context) (int64, bool) {
	wsID, ok := parseID(c, "workspace_id")
	if ok {
		withLogFields(c, logger.LogFields{WorkspaceID: &wsID})
	}
	return wsID, ok
}

func projectID(c *gin.Context) (int64, bool) {
	pID, ok := parseID(c, "project_id")
	if ok {
		withLogFields(c, logger.LogFields{ProjectID: &pID})
	}
	return pID, ok
}

func withLogFields(c *gin.Context, fields logger.LogFields) {
	c.Request = c.Request.WithContext(logger.WithLogFields(c.Request.Context(), fields))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
