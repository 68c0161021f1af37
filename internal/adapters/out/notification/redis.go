package notification

import (
	"context"
	"encoding/json"

	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "checkout.notifications"

// RedisPublisher publishes notifications as JSON on a redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, n ports.Notification) error {
	payload, err := json.Marshal(toMessage(n))
	if err != nil {
		return err
	}
	if err = p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return errs.NewGatewayError("publish "+n.Event, err)
	}
	return nil
}
