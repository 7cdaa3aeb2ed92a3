package dto

import (
	"time"

	"fractal.app/api/internal/model"
	"fractal.app/api/internal/service"
)

type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Role  string `json:"role" binding:"required"`
}

type InvitationResponse struct {
	ID          int64     `json:"id,string"`
	WorkspaceID int64     `json:"workspace_id,string"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	InviteURL   string    `json:"invite_url,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func ToInvitationResponse(inv *model.Invitation, inviteURL string) InvitationResponse {
	return InvitationResponse{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		Email:       inv.Email,
		Role:        string(inv.Role),
		InviteURL:   inviteURL,
		ExpiresAt:   inv.ExpiresAt,
	}
}

type InvitationDetailsResponse struct {
	WorkspaceID   int64     `json:"workspace_id,string"`
	WorkspaceName string    `json:"workspace_name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func ToInvitationDetailsResponse(d *service.InvitationDetails) InvitationDetailsResponse {
	return InvitationDetailsResponse{
		WorkspaceID:   d.Invitation.WorkspaceID,
		WorkspaceName: d.WorkspaceName,
		Email:         d.Invitation.Email,
		Role:          string(d.Invitation.Role),
		ExpiresAt:     d.Invitation.ExpiresAt,
	}
}
