package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/zakatfund/backend/internal/models"
)

// DefaultQueueLength bounds the donation_events list.
const DefaultQueueLength = 10000

// RedisPublisher publishes each event on a pub/sub channel for live consumers
// and appends it to a capped list for consumers that poll.
type RedisPublisher struct {
	client   *redis.Client
	channel  string
	queue    string
	queueLen int64
}

func NewRedisPublisher(client *redis.Client, channel, queue string) *RedisPublisher {
	return &RedisPublisher{
		client:   client,
		channel:  channel,
		queue:    queue,
		queueLen: DefaultQueueLength,
	}
}

func (p *RedisPublisher) PublishDonation(ctx context.Context, event models.DonationEvent) error {
	if p.client == nil {
		return errors.New("redis client not available")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode donation event: %w", err)
	}
	message := string(payload)

	if err := p.client.Publish(ctx, p.channel, message).Err(); err != nil {
		return fmt.Errorf("publish donation event: %w", err)
	}
	if err := p.client.RPush(ctx, p.queue, message).Err(); err != nil {
		return fmt.Errorf("queue donation event: %w", err)
	}
	if err := p.client.LTrim(ctx, p.queue, -p.queueLen, -1).Err(); err != nil {
		return fmt.Errorf("trim donation events: %w", err)
	}
	return nil
}

// Recent returns up to n of the newest queued events, oldest first.
func (p *RedisPublisher) Recent(ctx context.Context, n int64) ([]models.DonationEvent, error) {
	if p.client == nil {
		return nil, errors.New("redis client not available")
	}

	raw, err := p.client.LRange(ctx, p.queue, -n, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read donation events: %w", err)
	}

	events := make([]models.DonationEvent, 0, len(raw))
	for _, item := range raw {
		var event models.DonationEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			return nil, fmt.Errorf("decode donation event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}
