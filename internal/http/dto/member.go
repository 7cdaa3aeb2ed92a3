package dto

import (
	"time"

	"fractal.app/api/internal/model"
)

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type TransferOwnershipRequest struct {
	NewOwnerID int64 `json:"new_owner_id,string" binding:"required"`
}

type MemberResponse struct {
	UserID    int64     `json:"user_id,string"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

func ToMemberListResponse(members []model.MemberDetail) []MemberResponse {
	resp := make([]MemberResponse, len(members))
	for i, m := range members {
		resp[i] = MemberResponse{
			UserID:    m.UserID,
			Email:     m.Email,
			Name:      m.Name,
			AvatarURL: m.AvatarURL,
			Role:      m.Role,
			JoinedAt:  m.JoinedAt,
		}
	}
	return resp
}
