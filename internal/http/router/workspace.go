package router

import (
	"github.com/gin-gonic/gin"

	"fractal.app/api/internal/http/handler"
)

func WorkspaceRouter(rg *gin.RouterGroup, h *handler.WorkspaceHandler, inv *handler.InvitationHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)

	ws := rg.Group("/:workspace_id")
	{
		ws.PATCH("", h.Update)
		ws.DELETE("", h.Delete)
		ws.GET("/members", h.ListMembers)
		ws.PATCH("/members/:user_id", h.UpdateMemberRole)
		ws.DELETE("/members/:user_id", h.RemoveMember)
		ws.POST("/transfer-ownership", h.TransferOwnership)
		ws.POST("/invitations", inv.Create)
	}
}
