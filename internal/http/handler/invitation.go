package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fractal.app/api/internal/http/dto"
	"fractal.app/api/internal/model"
	"fractal.app/api/internal/service"
)

type InvitationHandler struct {
	invService service.InvitationService
}

func NewInvitationHandler(invService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invService: invService}
}

func (h *InvitationHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: email and role are required"})
		return
	}
	role, err := model.ParseWorkspaceRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace role"})
		return
	}

	inv, inviteURL, err := h.invService.Invite(c.Request.Context(), userID, wsID, req.Email, role)
	if err != nil {
		respondError(c, err, "failed to create invitation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationResponse(inv, inviteURL))
}

// Get is public so the invite landing page can render before sign-in.
func (h *InvitationHandler) Get(c *gin.Context) {
	details, err := h.invService.Get(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err, "failed to load invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationDetailsResponse(details))
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	member, err := h.invService.Accept(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		respondError(c, err, "failed to accept invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceMemberResponse(member))
}
