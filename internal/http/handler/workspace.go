package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fractal.app/api/internal/http/dto"
	"fractal.app/api/internal/model"
	"fractal.app/api/internal/service"
)

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.workspaceService.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err, "failed to create workspace")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceWithRoleResponse(ws))
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	list, err := h.workspaceService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list workspaces")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceListResponse(list))
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.workspaceService.Update(c.Request.Context(), userID, wsID, service.UpdateWorkspaceParams{
		Name: deref(req.Name),
		Slug: req.Slug,
	})
	if err != nil {
		respondError(c, err, "failed to update workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(c.Request.Context(), userID, wsID); err != nil {
		respondError(c, err, "failed to delete workspace")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(c.Request.Context(), userID, wsID)
	if err != nil {
		respondError(c, err, "failed to list workspace members")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberListResponse(members))
}

func (h *WorkspaceHandler) UpdateMemberRole(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	targetID, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, err := model.ParseWorkspaceRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace role"})
		return
	}

	member, err := h.workspaceService.UpdateMemberRole(c.Request.Context(), userID, wsID, targetID, role)
	if err != nil {
		respondError(c, err, "failed to update member role")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceMemberResponse(member))
}

func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	targetID, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveMember(c.Request.Context(), userID, wsID, targetID); err != nil {
		respondError(c, err, "failed to remove member")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) TransferOwnership(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_owner_id is required"})
		return
	}

	if err := h.workspaceService.TransferOwnership(c.Request.Context(), userID, wsID, req.NewOwnerID); err != nil {
		respondError(c, err, "failed to transfer ownership")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ownership transferred"})
}
