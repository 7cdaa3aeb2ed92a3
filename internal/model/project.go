package model

import "time"

type Project struct {
	ID          int64      `json:"id"`
	WorkspaceID int64      `json:"workspace_id"`
	ParentID    *int64     `json:"parent_id,omitempty"`
	Name        string     `json:"name"`
	Color       *string    `json:"color,omitempty"`
	IsArchived  bool       `json:"is_archived"`
	CreatedBy   int64      `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // soft delete marker
}

func (p Project) IsDeleted() bool {
	return p.DeletedAt != nil
}

// ProjectWithRole is a project annotated with the caller's role on it.
// Role is empty when the caller holds no membership row.
type ProjectWithRole struct {
	Project
	Role ProjectRole `json:"role"`
}

type ProjectMember struct {
	ProjectID int64       `json:"project_id"`
	UserID    int64       `json:"user_id"`
	Role      ProjectRole `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// ProjectAncestor is one closure row seen from the descendant side.
type ProjectAncestor struct {
	AncestorID int64 `json:"ancestor_id"`
	Depth      int32 `json:"depth"`
}
