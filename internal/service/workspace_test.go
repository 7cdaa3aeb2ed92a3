package service_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fractal.app/api/common/id"
	"fractal.app/api/internal/model"
	"fractal.app/api/internal/service"
)

var _ = Describe("WorkspaceService", func() {
	const (
		owner  = int64(1)
		admin  = int64(2)
		member = int64(3)
		other  = int64(4)
		ws     = int64(100)
	)

	var (
		ctx context.Context
		db  *memDB
		svc service.WorkspaceService
	)

	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())
		ctx = context.Background()
		db = newMemDB()
		for _, u := range []int64{owner, admin, member, other} {
			db.addUser(u, fmt.Sprintf("user%d@example.com", u))
		}
		db.addWorkspace(ws, owner)
		db.addWorkspaceMember(ws, admin, model.WorkspaceRoleAdmin)
		db.addWorkspaceMember(ws, member, model.WorkspaceRoleMember)

		svc = service.NewWorkspaceService(db, newMemTxRunner(db))
	})

	Describe("Create", func() {
		It("creates the workspace with the creator as owner", func() {
			w, err := svc.Create(ctx, other, "Fractal Labs")
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Slug).To(Equal("fractal-labs"))
			Expect(w.OwnerID).To(Equal(other))
			Expect(w.Role).To(Equal(model.WorkspaceRoleOwner))
			Expect(db.wsMembers[pair{w.ID, other}].Role).To(Equal(model.WorkspaceRoleOwner))
		})

		It("suffixes the slug until it is free", func() {
			first, err := svc.Create(ctx, other, "Acme")
			Expect(err).NotTo(HaveOccurred())
			second, err := svc.Create(ctx, other, "Acme")
			Expect(err).NotTo(HaveOccurred())
			third, err := svc.Create(ctx, other, "ACME!")
			Expect(err).NotTo(HaveOccurred())

			Expect([]string{first.Slug, second.Slug, third.Slug}).To(Equal([]string{"acme", "acme-1", "acme-2"}))
		})

		It("gives up after exhausting slug candidates", func() {
			for i := 0; i <= 20; i++ {
				_, err := svc.Create(ctx, other, "Busy")
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := svc.Create(ctx, other, "Busy")
			expectKind(err, service.KindConflict)
		})

		It("rejects a blank name", func() {
			_, err := svc.Create(ctx, other, " ")
			expectKind(err, service.KindBadRequest)
		})

		It("writes nothing when the insert fails", func() {
			before := len(db.workspaces)
			db.failOn["Workspaces.Create"] = errors.New("boom")

			_, err := svc.Create(ctx, other, "Broken")
			Expect(err).To(HaveOccurred())
			Expect(db.workspaces).To(HaveLen(before))
		})
	})

	Describe("ListForUser", func() {
		It("returns memberships with roles, skipping deleted workspaces", func() {
			w, err := svc.Create(ctx, member, "Second")
			Expect(err).NotTo(HaveOccurred())

			list, err := svc.ListForUser(ctx, member)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(ws))
			Expect(list[0].Role).To(Equal(model.WorkspaceRoleMember))
			Expect(list[1].Role).To(Equal(model.WorkspaceRoleOwner))

			Expect(svc.Delete(ctx, member, w.ID)).To(Succeed())
			list, err = svc.ListForUser(ctx, member)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
		})
	})

	Describe("ListMembers", func() {
		It("lists members for any member", func() {
			members, err := svc.ListMembers(ctx, member, ws)
			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(HaveLen(3))
			Expect(members[0].UserID).To(Equal(owner))
		})

		It("forbids outsiders", func() {
			_, err := svc.ListMembers(ctx, other, ws)
			expectKind(err, service.KindForbidden)
		})
	})

	Describe("Update", func() {
		It("lets admins rename", func() {
			w, err := svc.Update(ctx, admin, ws, service.UpdateWorkspaceParams{Name: "Renamed"})
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Name).To(Equal("Renamed"))
			Expect(w.Slug).To(Equal("ws-100"))
		})

		It("normalizes and checks a new slug", func() {
			db.addWorkspace(200, other)

			w, err := svc.Update(ctx, owner, ws, service.UpdateWorkspaceParams{Slug: strPtr("Brand New")})
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Slug).To(Equal("brand-new"))

			_, err = svc.Update(ctx, owner, ws, service.UpdateWorkspaceParams{Slug: strPtr("ws-200")})
			expectKind(err, service.KindConflict)
		})

		It("forbids plain members", func() {
			_, err := svc.Update(ctx, member, ws, service.UpdateWorkspaceParams{Name: "Mine"})
			expectKind(err, service.KindForbidden)
		})
	})

	Describe("UpdateMemberRole", func() {
		It("lets the owner promote a member", func() {
			m, err := svc.UpdateMemberRole(ctx, owner, ws, member, model.WorkspaceRoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Role).To(Equal(model.WorkspaceRoleAdmin))
		})

		It("never assigns OWNER", func() {
			_, err := svc.UpdateMemberRole(ctx, owner, ws, member, model.WorkspaceRoleOwner)
			expectKind(err, service.KindForbidden)
		})

		It("rejects unknown roles", func() {
			_, err := svc.UpdateMemberRole(ctx, owner, ws, member, model.WorkspaceRole("GUEST"))
			expectKind(err, service.KindBadRequest)
		})

		It("forbids admins", func() {
			_, err := svc.UpdateMemberRole(ctx, admin, ws, member, model.WorkspaceRoleAdmin)
			expectKind(err, service.KindForbidden)
		})

		It("returns NotFound for non-members", func() {
			_, err := svc.UpdateMemberRole(ctx, owner, ws, other, model.WorkspaceRoleAdmin)
			expectKind(err, service.KindNotFound)
		})
	})

	Describe("RemoveMember", func() {
		It("lets the owner remove members", func() {
			Expect(svc.RemoveMember(ctx, owner, ws, member)).To(Succeed())
			Expect(db.wsMembers).NotTo(HaveKey(pair{ws, member}))
		})

		It("lets members leave", func() {
			Expect(svc.RemoveMember(ctx, admin, ws, admin)).To(Succeed())
		})

		It("keeps the owner", func() {
			expectKind(svc.RemoveMember(ctx, owner, ws, owner), service.KindForbidden)
		})

		It("forbids admins from removing others", func() {
			expectKind(svc.RemoveMember(ctx, admin, ws, member), service.KindForbidden)
		})
	})

	Describe("Delete", func() {
		It("is owner only", func() {
			expectKind(svc.Delete(ctx, admin, ws), service.KindForbidden)
			Expect(svc.Delete(ctx, owner, ws)).To(Succeed())
			Expect(db.workspaces[ws].IsDeleted()).To(BeTrue())

			_, err := svc.ListMembers(ctx, owner, ws)
			expectKind(err, service.KindNotFound)
		})
	})

	Describe("TransferOwnership", func() {
		It("swaps roles and records the new owner", func() {
			Expect(svc.TransferOwnership(ctx, owner, ws, member)).To(Succeed())

			Expect(db.wsMembers[pair{ws, owner}].Role).To(Equal(model.WorkspaceRoleAdmin))
			Expect(db.wsMembers[pair{ws, member}].Role).To(Equal(model.WorkspaceRoleOwner))
			Expect(db.wsMembers[pair{ws, admin}].Role).To(Equal(model.WorkspaceRoleAdmin))
			Expect(db.workspaces[ws].OwnerID).To(Equal(member))
		})

		It("is owner only", func() {
			expectKind(svc.TransferOwnership(ctx, admin, ws, member), service.KindForbidden)
		})

		It("requires the new owner to be a member", func() {
			expectKind(svc.TransferOwnership(ctx, owner, ws, other), service.KindBadRequest)
		})

		It("keeps exactly one owner", func() {
			Expect(svc.TransferOwnership(ctx, owner, ws, member)).To(Succeed())
			Expect(svc.TransferOwnership(ctx, member, ws, admin)).To(Succeed())

			owners := 0
			for k, m := range db.wsMembers {
				if k[0] == ws && m.Role == model.WorkspaceRoleOwner {
					owners++
				}
			}
			Expect(owners).To(Equal(1))
		})
	})
})
