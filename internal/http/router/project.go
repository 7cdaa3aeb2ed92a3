package router

import (
	"github.com/gin-gonic/gin"

	"fractal.app/api/internal/http/handler"
)

// ProjectRouter mounts project routes. Creation and listing are scoped to a
// workspace; everything else addresses the project directly.
func ProjectRouter(rg *gin.RouterGroup, h *handler.ProjectHandler) {
	rg.POST("/workspaces/:workspace_id/projects", h.Create)
	rg.GET("/workspaces/:workspace_id/projects", h.List)

	p := rg.Group("/projects/:project_id")
	{
		p.PATCH("", h.Update)
		p.DELETE("", h.Delete)
		p.GET("/members", h.ListMembers)
		p.POST("/members", h.AddMember)
		p.PATCH("/members/:user_id", h.UpdateMemberRole)
		p.DELETE("/members/:user_id", h.RemoveMember)
		p.POST("/transfer-ownership", h.TransferOwnership)
	}
}
