package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

const (
	channelPrefix    = "user_data:"
	subscriberBuffer = 64
)

// Notifier publishes user_data row changes over Redis pub/sub.
// Channel format: user_data:<user_id>
type Notifier struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewNotifier creates a Notifier wrapping the given Redis client.
func NewNotifier(client *redis.Client, log zerolog.Logger) *Notifier {
	return &Notifier{client: client, log: log.With().Str("component", "redis_notifier").Logger()}
}

// Publish sends ev on the owning user's channel.
func (n *Notifier) Publish(ctx context.Context, ev domain.ChangeEvent) error {
	payload, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	if err := n.client.Publish(ctx, channelFor(ev.Row.UserID), payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Subscribe listens on one user's channel, or on every user channel when the
// filter has no user id. The returned channel closes when ctx is done.
func (n *Notifier) Subscribe(ctx context.Context, filter domain.ChangeFilter) (<-chan domain.ChangeEvent, error) {
	var ps *redis.PubSub
	if filter.UserID != "" {
		ps = n.client.Subscribe(ctx, channelFor(filter.UserID))
	} else {
		ps = n.client.PSubscribe(ctx, channelPrefix+"*")
	}

	// Receive blocks until the subscription is confirmed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	out := make(chan domain.ChangeEvent, subscriberBuffer)
	go func() {
		defer ps.Close()
		n.forward(ctx, ps.Channel(), filter, out)
	}()

	return out, nil
}

// forward decodes pub/sub messages matching filter into out until ctx is
// done or msgs closes, then closes out.
func (n *Notifier) forward(ctx context.Context, msgs <-chan *redis.Message, filter domain.ChangeFilter, out chan<- domain.ChangeEvent) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			ev, err := decodeEvent(msg.Payload)
			if err != nil {
				n.log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping malformed change event")
				continue
			}
			if !filter.Match(ev) {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

func channelFor(userID string) string {
	return channelPrefix + userID
}

func encodeEvent(ev domain.ChangeEvent) (string, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("encode change event: %w", err)
	}
	return string(b), nil
}

func decodeEvent(payload string) (domain.ChangeEvent, error) {
	var ev domain.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("decode change event: %w", err)
	}
	return ev, nil
}
