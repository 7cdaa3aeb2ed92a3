package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fractal.app/api/common/id"
	"fractal.app/api/internal/http/dto"
	"fractal.app/api/internal/model"
	"fractal.app/api/internal/service"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.CreateProjectParams{Name: req.Name, Color: req.Color}
	if req.ParentID != nil {
		parentID, err := id.Parse(*req.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parent_id"})
			return
		}
		params.ParentID = &parentID
	}

	project, err := h.projectService.Create(c.Request.Context(), userID, wsID, params)
	if err != nil {
		respondError(c, err, "failed to create project")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectWithRoleResponse(project))
}

func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), userID, wsID)
	if err != nil {
		respondError(c, err, "failed to list projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pID, ok := projectID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), userID, pID, service.UpdateProjectParams{
		Name:  deref(req.Name),
		Color: req.Color,
	})
	if err != nil {
		respondError(c, err, "failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pID, ok := projectID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), userID, pID); err != nil {
		respondError(c, err, "failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) ListMembers(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pID, ok := projectID(c)
	if !ok {
		return
	}

	members, err := h.projectService.ListMembers(c.Request.Context(), userID, pID)
	if err != nil {
		respondError(c, err, "failed to list project members")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberListResponse(members))
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pID, ok := projectID(c)
	if !ok {
		return
	}

	var req dto.AddProjectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, err := model.ParseProjectRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project role"})
		return
	}

	member, err := h.projectService.AddMember(c.Request.Context(), userID, pID, req.UserID, role)
	if err != nil {
		respondError(c, err, "failed to add project member")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectMemberResponse(member))
}

func (h *ProjectHandler) UpdateMemberRole(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pID, ok := projectID(c)
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
	role, err := model.ParseProjectRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project role"})
		return
	}

	member, err := h.projectService.UpdateMemberRole(c.Request.Context(), userID, pID, targetID, role)
	if err != nil {
		respondError(c, err, "failed to update member role")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectMemberResponse(member))
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pID, ok := projectID(c)
	if !ok {
		return
	}
	targetID, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	if err := h.projectService.RemoveMember(c.Request.Context(), userID, pID, targetID); err != nil {
		respondError(c, err, "failed to remove project member")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) TransferOwnership(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pID, ok := projectID(c)
	if !ok {
		return
	}

	var req dto.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_owner_id is required"})
		return
	}

	if err := h.projectService.TransferOwnership(c.Request.Context(), userID, pID, req.NewOwnerID); err != nil {
		respondError(c, err, "failed to transfer ownership")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ownership transferred"})
}
