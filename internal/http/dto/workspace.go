package dto

import (
	"time"

	"fractal.app/api/internal/model"
)

type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type UpdateWorkspaceRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Slug *string `json:"slug,omitempty" binding:"omitempty,min=1,max=48"`
}

type WorkspaceResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   int64     `json:"owner_id,string"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToWorkspaceResponse(ws *model.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        ws.ID,
		Name:      ws.Name,
		Slug:      ws.Slug,
		OwnerID:   ws.OwnerID,
		CreatedAt: ws.CreatedAt,
		UpdatedAt: ws.UpdatedAt,
	}
}

func ToWorkspaceWithRoleResponse(ws *model.WorkspaceWithRole) WorkspaceResponse {
	resp := ToWorkspaceResponse(&ws.Workspace)
	resp.Role = string(ws.Role)
	return resp
}

func ToWorkspaceListResponse(list []model.WorkspaceWithRole) []WorkspaceResponse {
	resp := make([]WorkspaceResponse, len(list))
	for i := range list {
		resp[i] = ToWorkspaceWithRoleResponse(&list[i])
	}
	return resp
}

type WorkspaceMemberResponse struct {
	WorkspaceID int64     `json:"workspace_id,string"`
	UserID      int64     `json:"user_id,string"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

func ToWorkspaceMemberResponse(m *model.WorkspaceMember) WorkspaceMemberResponse {
	return WorkspaceMemberResponse{
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		Role:        string(m.Role),
		JoinedAt:    m.JoinedAt,
	}
}
