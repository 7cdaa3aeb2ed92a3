package model

import "time"

type Workspace struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"owner_id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // soft delete marker
}

func (w Workspace) IsDeleted() bool {
	return w.DeletedAt != nil
}

// WorkspaceWithRole is a workspace as seen by one of its members.
type WorkspaceWithRole struct {
	Workspace
	Role WorkspaceRole `json:"role"`
}

type WorkspaceMember struct {
	WorkspaceID int64         `json:"workspace_id"`
	UserID      int64         `json:"user_id"`
	Role        WorkspaceRole `json:"role"`
	JoinedAt    time.Time     `json:"joined_at"`
}

// MemberDetail joins a membership row with the member's profile.
type MemberDetail struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}
