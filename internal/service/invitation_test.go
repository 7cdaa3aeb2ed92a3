package service_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fractal.app/api/common/id"
	"fractal.app/api/internal/model"
	"fractal.app/api/internal/queue"
	"fractal.app/api/internal/service"
)

var _ = Describe("InvitationService", func() {
	const (
		owner    = int64(1)
		admin    = int64(2)
		member   = int64(3)
		invitee  = int64(4)
		stranger = int64(5)
		ws       = int64(100)
	)

	var (
		ctx      context.Context
		db       *memDB
		producer *mockProducer
		svc      service.InvitationService
	)

	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())
		ctx = context.Background()
		db = newMemDB()
		for _, u := range []int64{owner, admin, member, invitee, stranger} {
			db.addUser(u, fmt.Sprintf("user%d@example.com", u))
		}
		db.addWorkspace(ws, owner)
		db.addWorkspaceMember(ws, admin, model.WorkspaceRoleAdmin)
		db.addWorkspaceMember(ws, member, model.WorkspaceRoleMember)

		producer = &mockProducer{}
		svc = service.NewInvitationService(db, newMemTxRunner(db), producer, "https://app.example.com")
	})

	Describe("Invite", func() {
		It("creates the invitation and publishes a notification", func() {
			inv, link, err := svc.Invite(ctx, admin, ws, "  User4@Example.com ", model.WorkspaceRoleMember)
			Expect(err).NotTo(HaveOccurred())

			Expect(inv.Email).To(Equal("user4@example.com"))
			Expect(inv.Token).NotTo(BeEmpty())
			Expect(inv.ExpiresAt).To(BeTemporally("~", time.Now().Add(7*24*time.Hour), time.Minute))
			Expect(link).To(HavePrefix("https://app.example.com/invite?token="))

			Expect(producer.published).To(HaveLen(1))
			n := producer.published[0]
			Expect(n.Type).To(Equal(queue.NotificationInvitationCreated))
			Expect(n.WorkspaceID).To(Equal(ws))
			Expect(n.Email).To(Equal("user4@example.com"))
			Expect(n.Role).To(Equal("MEMBER"))
			Expect(n.Link).To(Equal(link))
			Expect(*n.InvitedBy).To(Equal(admin))
		})

		It("replaces a pending invitation for the same address", func() {
			first, _, err := svc.Invite(ctx, owner, ws, "new@example.com", model.WorkspaceRoleMember)
			Expect(err).NotTo(HaveOccurred())
			second, _, err := svc.Invite(ctx, owner, ws, "new@example.com", model.WorkspaceRoleAdmin)
			Expect(err).NotTo(HaveOccurred())

			Expect(db.invitations).To(HaveLen(1))
			Expect(db.invitations).To(HaveKey(second.ID))
			Expect(db.invitations).NotTo(HaveKey(first.ID))
		})

		It("still succeeds when publishing fails", func() {
			producer.publishFn = func(context.Context, queue.Notification) error {
				return errors.New("redis down")
			}

			_, _, err := svc.Invite(ctx, owner, ws, "new@example.com", model.WorkspaceRoleMember)
			Expect(err).NotTo(HaveOccurred())
			Expect(db.invitations).To(HaveLen(1))
		})

		DescribeTable("rejects bad input",
			func(email string, role model.WorkspaceRole) {
				_, _, err := svc.Invite(ctx, owner, ws, email, role)
				expectKind(err, service.KindBadRequest)
			},
			Entry("invalid email", "not-an-email", model.WorkspaceRoleMember),
			Entry("unknown role", "new@example.com", model.WorkspaceRole("GUEST")),
			Entry("owner role", "new@example.com", model.WorkspaceRoleOwner),
			Entry("existing member", "user3@example.com", model.WorkspaceRoleMember),
		)

		It("only lets the owner invite admins", func() {
			_, _, err := svc.Invite(ctx, admin, ws, "new@example.com", model.WorkspaceRoleAdmin)
			expectKind(err, service.KindForbidden)
		})

		It("forbids plain members", func() {
			_, _, err := svc.Invite(ctx, member, ws, "new@example.com", model.WorkspaceRoleMember)
			expectKind(err, service.KindForbidden)
			Expect(producer.published).To(BeEmpty())
		})
	})

	Describe("Get", func() {
		It("returns the invitation with the workspace name", func() {
			inv, _, err := svc.Invite(ctx, owner, ws, "user4@example.com", model.WorkspaceRoleMember)
			Expect(err).NotTo(HaveOccurred())

			details, err := svc.Get(ctx, inv.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Invitation.ID).To(Equal(inv.ID))
			Expect(details.WorkspaceName).To(Equal("ws"))
		})

		It("returns NotFound for unknown tokens", func() {
			_, err := svc.Get(ctx, "nope")
			expectKind(err, service.KindNotFound)
			_, err = svc.Get(ctx, "")
			expectKind(err, service.KindNotFound)
		})

		It("rejects expired invitations", func() {
			db.invitations[9] = model.Invitation{
				ID: 9, WorkspaceID: ws, Email: "user4@example.com", Role: model.WorkspaceRoleMember,
				Token: "stale", ExpiresAt: time.Now().Add(-time.Hour),
			}
			_, err := svc.Get(ctx, "stale")
			expectKind(err, service.KindBadRequest)
		})
	})

	Describe("Accept", func() {
		var token string

		BeforeEach(func() {
			inv, _, err := svc.Invite(ctx, owner, ws, "user4@example.com", model.WorkspaceRoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			token = inv.Token
		})

		It("adds the user with the invited role and consumes the invitation", func() {
			m, err := svc.Accept(ctx, invitee, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.WorkspaceID).To(Equal(ws))
			Expect(m.Role).To(Equal(model.WorkspaceRoleAdmin))
			Expect(db.wsMembers).To(HaveKey(pair{ws, invitee}))
			Expect(db.invitations).To(BeEmpty())

			_, err = svc.Accept(ctx, invitee, token)
			expectKind(err, service.KindNotFound)
		})

		It("requires the invited address", func() {
			_, err := svc.Accept(ctx, stranger, token)
			expectKind(err, service.KindForbidden)
			Expect(db.invitations).To(HaveLen(1))
		})

		It("consumes the invitation when the user already joined", func() {
			db.addWorkspaceMember(ws, invitee, model.WorkspaceRoleMember)

			_, err := svc.Accept(ctx, invitee, token)
			expectKind(err, service.KindBadRequest)
			Expect(db.invitations).To(BeEmpty())
			Expect(db.wsMembers[pair{ws, invitee}].Role).To(Equal(model.WorkspaceRoleMember))
		})
	})
})
