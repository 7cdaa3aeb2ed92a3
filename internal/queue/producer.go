package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Publish(ctx context.Context, n Notification) error
	Close() error
}

// streamClient is the subset of *redis.Client the producer needs.
type streamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

type redisProducer struct {
	client streamClient
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	return newRedisProducer(client, stream, logger)
}

func newRedisProducer(client streamClient, stream string, logger *slog.Logger) *redisProducer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, n Notification) error {
	fields := map[string]any{
		"type":         string(n.Type),
		"workspace_id": n.WorkspaceID,
		"email":        n.Email,
		"role":         n.Role,
		"link":         n.Link,
	}

	if n.InvitedBy != nil {
		fields["invited_by"] = *n.InvitedBy
	}
	if n.TraceID != nil && *n.TraceID != "" {
		fields["trace_id"] = *n.TraceID
	}

	msgID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Result()
	if err != nil {
		return fmt.Errorf("publishing notification: %w", err)
	}

	p.logger.InfoContext(ctx, "published notification", "type", n.Type, "workspace_id", n.WorkspaceID, "message_id", msgID)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

// NopProducer drops notifications. Used when REDIS_URL is not configured.
type NopProducer struct{}

func (NopProducer) Publish(ctx context.Context, n Notification) error {
	slog.DebugContext(ctx, "notification dropped, no producer configured", "type", n.Type)
	return nil
}

func (NopProducer) Close() error { return nil }
