package model

import "time"

type Invitation struct {
	ID          int64         `json:"id"`
	WorkspaceID int64         `json:"workspace_id"`
	Email       string        `json:"email"`
	Role        WorkspaceRole `json:"role"`
	Token       string        `json:"token"`
	InvitedBy   *int64        `json:"invited_by,omitempty"`
	ExpiresAt   time.Time     `json:"expires_at"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
