package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"fractal.app/api/common/id"
	"fractal.app/api/internal/model"
	"fractal.app/api/internal/queue"
	"fractal.app/api/internal/store"
)

const (
	InviteTokenLength = 32
	InviteExpiryDays  = 7
)

// InvitationDetails is what the public invite landing page shows.
type InvitationDetails struct {
	Invitation    model.Invitation
	WorkspaceName string
}

type InvitationService interface {
	Invite(ctx context.Context, requesterID, workspaceID int64, email string, role model.WorkspaceRole) (*model.Invitation, string, error)
	Get(ctx context.Context, token string) (*InvitationDetails, error)
	Accept(ctx context.Context, userID int64, token string) (*model.WorkspaceMember, error)
}

type invitationService struct {
	stores      StoreProvider
	txRunner    TxRunner
	producer    queue.Producer
	frontendURL string
	now         func() time.Time
}

func NewInvitationService(stores StoreProvider, txRunner TxRunner, producer queue.Producer, frontendURL string) InvitationService {
	if producer == nil {
		producer = queue.NopProducer{}
	}
	return &invitationService{
		stores:      stores,
		txRunner:    txRunner,
		producer:    producer,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

func (s *invitationService) Invite(ctx context.Context, requesterID, workspaceID int64, email string, role model.WorkspaceRole) (*model.Invitation, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", errBadRequest("invalid email address")
	}
	if !role.Valid() {
		return nil, "", errBadRequest("invalid workspace role")
	}
	if role == model.WorkspaceRoleOwner {
		return nil, "", errBadRequest("cannot invite as OWNER")
	}

	var inv *model.Invitation
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		requester, err := requireWorkspaceRole(ctx, stores, workspaceID, requesterID, model.WorkspaceRoleOwner, model.WorkspaceRoleAdmin)
		if err != nil {
			return err
		}
		if role == model.WorkspaceRoleAdmin && requester.Role != model.WorkspaceRoleOwner {
			return errForbidden("only the workspace owner can invite admins")
		}

		if _, err := stores.WorkspaceMembers().GetByEmail(ctx, workspaceID, email); err == nil {
			return errBadRequest("user is already a workspace member")
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking existing member: %w", err)
		}

		// A new invitation replaces any pending one for the same address.
		if err := stores.Invitations().DeleteByWorkspaceAndEmail(ctx, workspaceID, email); err != nil {
			return fmt.Errorf("deleting previous invitations: %w", err)
		}

		token, err := generateSecureToken(InviteTokenLength)
		if err != nil {
			return fmt.Errorf("generating token: %w", err)
		}

		created := &model.Invitation{
			ID:          id.New(),
			WorkspaceID: workspaceID,
			Email:       email,
			Role:        role,
			Token:       token,
			InvitedBy:   &requesterID,
			ExpiresAt:   s.now().Add(InviteExpiryDays * 24 * time.Hour),
		}
		if err := stores.Invitations().Create(ctx, created); err != nil {
			return fmt.Errorf("creating invitation: %w", err)
		}
		inv = created
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	inviteURL := fmt.Sprintf("%s/invite?token=%s", s.frontendURL, url.QueryEscape(inv.Token))

	recordEvent("invitation", "created")
	slog.InfoContext(ctx, "invitation created",
		"invitation_id", inv.ID,
		"workspace_id", workspaceID,
		"email", email,
		"expires_at", inv.ExpiresAt,
	)

	notification := queue.Notification{
		Type:        queue.NotificationInvitationCreated,
		WorkspaceID: workspaceID,
		Email:       inv.Email,
		Role:        string(inv.Role),
		Link:        inviteURL,
		InvitedBy:   inv.InvitedBy,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		traceID := sc.TraceID().String()
		notification.TraceID = &traceID
	}
	if err := s.producer.Publish(ctx, notification); err != nil {
		slog.WarnContext(ctx, "failed to publish invitation notification",
			"error", err,
			"invitation_id", inv.ID,
		)
	}

	return inv, inviteURL, nil
}

func (s *invitationService) Get(ctx context.Context, token string) (*InvitationDetails, error) {
	inv, err := s.validToken(ctx, s.stores, token)
	if err != nil {
		return nil, err
	}

	ws, err := getActiveWorkspace(ctx, s.stores, inv.WorkspaceID)
	if err != nil {
		return nil, err
	}

	return &InvitationDetails{Invitation: *inv, WorkspaceName: ws.Name}, nil
}

func (s *invitationService) Accept(ctx context.Context, userID int64, token string) (*model.WorkspaceMember, error) {
	var (
		member        *model.WorkspaceMember
		alreadyMember bool
	)
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		inv, err := s.validToken(ctx, stores, token)
		if err != nil {
			return err
		}
		if _, err := getActiveWorkspace(ctx, stores, inv.WorkspaceID); err != nil {
			return err
		}

		user, err := stores.Users().GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("getting user: %w", err)
		}
		if !strings.EqualFold(user.Email, inv.Email) {
			slog.WarnContext(ctx, "email mismatch on invitation acceptance",
				"invitation_id", inv.ID,
				"user_id", userID,
			)
			return errForbidden("invitation was sent to a different email address")
		}

		if _, err := stores.WorkspaceMembers().Get(ctx, inv.WorkspaceID, userID); err == nil {
			// The consumed invitation is still removed; the error is reported after commit.
			alreadyMember = true
			return stores.Invitations().Delete(ctx, inv.ID)
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking existing member: %w", err)
		}

		m := &model.WorkspaceMember{
			WorkspaceID: inv.WorkspaceID,
			UserID:      userID,
			Role:        inv.Role,
		}
		if err := stores.WorkspaceMembers().Create(ctx, m); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return errBadRequest("already a workspace member")
			}
			return fmt.Errorf("adding workspace member: %w", err)
		}
		if err := stores.Invitations().Delete(ctx, inv.ID); err != nil {
			return fmt.Errorf("deleting invitation: %w", err)
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	if alreadyMember {
		return nil, errBadRequest("already a workspace member")
	}

	recordEvent("invitation", "accepted")
	slog.InfoContext(ctx, "invitation accepted",
		"workspace_id", member.WorkspaceID,
		"user_id", userID,
		"role", member.Role,
	)
	return member, nil
}

func (s *invitationService) validToken(ctx context.Context, stores StoreProvider, token string) (*model.Invitation, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errNotFound("invitation not found")
	}
	inv, err := stores.Invitations().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errNotFound("invitation not found")
		}
		return nil, fmt.Errorf("getting invitation: %w", err)
	}
	if inv.Expired(s.now()) {
		return nil, errBadRequest("invitation has expired")
	}
	return inv, nil
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
