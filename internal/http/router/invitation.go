package router

import (
	"github.com/gin-gonic/gin"

	"fractal.app/api/internal/http/handler"
)

// InvitationRouter sets up the token routes. Lookup is public so the invite
// page renders before sign-in; accepting needs a session.
func InvitationRouter(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, h *handler.InvitationHandler) {
	rg.GET("/:token", h.Get)
	rg.POST("/:token/accept", requireAuth, h.Accept)
}
