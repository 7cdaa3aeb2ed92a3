package dto

import (
	"strconv"
	"time"

	"fractal.app/api/internal/model"
)

// RoleUnknown is a fallback for a listed project whose caller role is empty.
// Listing joins on the caller's membership rows, so it should not surface.
const RoleUnknown = "UNKNOWN"

type CreateProjectRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Color    *string `json:"color,omitempty" binding:"omitempty,hexcolor"`
	ParentID *string `json:"parent_id,omitempty" binding:"omitempty,numeric"`
}

type UpdateProjectRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Color *string `json:"color,omitempty" binding:"omitempty,hexcolor"`
}

type AddProjectMemberRequest struct {
	UserID int64  `json:"user_id,string" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type ProjectResponse struct {
	ID          int64     `json:"id,string"`
	WorkspaceID int64     `json:"workspace_id,string"`
	ParentID    *string   `json:"parent_id"`
	Name        string    `json:"name"`
	Color       *string   `json:"color,omitempty"`
	IsArchived  bool      `json:"is_archived"`
	CreatedBy   int64     `json:"created_by,string"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProjectResponse(p *model.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Color:       p.Color,
		IsArchived:  p.IsArchived,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ParentID != nil {
		parent := formatID(*p.ParentID)
		resp.ParentID = &parent
	}
	return resp
}

func ToProjectWithRoleResponse(p *model.ProjectWithRole) ProjectResponse {
	resp := ToProjectResponse(&p.Project)
	resp.Role = string(p.Role)
	if resp.Role == "" {
		resp.Role = RoleUnknown
	}
	return resp
}

func ToProjectListResponse(list []model.ProjectWithRole) []ProjectResponse {
	resp := make([]ProjectResponse, len(list))
	for i := range list {
		resp[i] = ToProjectWithRoleResponse(&list[i])
	}
	return resp
}

type ProjectMemberResponse struct {
	ProjectID int64     `json:"project_id,string"`
	UserID    int64     `json:"user_id,string"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func ToProjectMemberResponse(m *model.ProjectMember) ProjectMemberResponse {
	return ProjectMemberResponse{
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
