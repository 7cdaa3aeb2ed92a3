package queue

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeStreamClient struct {
	args   []*redis.XAddArgs
	err    error
	closed bool
}

func (f *fakeStreamClient) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1700000000000-0", f.err)
}

func (f *fakeStreamClient) Close() error {
	f.closed = true
	return nil
}

var _ = Describe("redisProducer", func() {
	var (
		ctx    context.Context
		client *fakeStreamClient
		p      *redisProducer
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &fakeStreamClient{}
		p = newRedisProducer(client, "fractal_notifications", nil)
	})

	It("writes the notification as flat stream values", func() {
		inviter := int64(9)
		trace := "abc123"

		err := p.Publish(ctx, Notification{
			Type:        NotificationInvitationCreated,
			WorkspaceID: 42,
			Email:       "bob@example.com",
			Role:        "MEMBER",
			Link:        "http://localhost:3000/invite?token=t",
			InvitedBy:   &inviter,
			TraceID:     &trace,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(client.args).To(HaveLen(1))
		Expect(client.args[0].Stream).To(Equal("fractal_notifications"))
		values, ok := client.args[0].Values.(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(values).To(HaveKeyWithValue("type", "invitation.created"))
		Expect(values).To(HaveKeyWithValue("workspace_id", int64(42)))
		Expect(values).To(HaveKeyWithValue("email", "bob@example.com"))
		Expect(values).To(HaveKeyWithValue("invited_by", int64(9)))
		Expect(values).To(HaveKeyWithValue("trace_id", "abc123"))
	})

	It("omits optional fields when unset", func() {
		Expect(p.Publish(ctx, Notification{Type: NotificationInvitationCreated, WorkspaceID: 1})).To(Succeed())

		values := client.args[0].Values.(map[string]any)
		Expect(values).NotTo(HaveKey("invited_by"))
		Expect(values).NotTo(HaveKey("trace_id"))
	})

	It("wraps client errors", func() {
		client.err = errors.New("connection refused")

		err := p.Publish(ctx, Notification{Type: NotificationInvitationCreated})
		Expect(err).To(MatchError(ContainSubstring("publishing notification")))
	})

	It("closes the client", func() {
		Expect(p.Close()).To(Succeed())
		Expect(client.closed).To(BeTrue())
	})
})

var _ = Describe("NopProducer", func() {
	It("accepts and drops notifications", func() {
		Expect(NopProducer{}.Publish(context.Background(), Notification{Type: NotificationInvitationCreated})).To(Succeed())
	})
})
