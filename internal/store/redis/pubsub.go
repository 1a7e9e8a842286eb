package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// subscriberBuffer bounds how many undelivered board events a subscriber may
// hold before the relay goroutine blocks.
const subscriberBuffer = 64

// PubSub carries board events over Redis, one channel per board.
type PubSub struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &PubSub{client: client}, nil
}

func (ps *PubSub) Close() error {
	if err := ps.client.Close(); err != nil {
		return fmt.Errorf("redis.PubSub.Close: %w", err)
	}
	return nil
}

// PublishBoard encodes event as JSON and publishes it on the board's channel.
func (ps *PubSub) PublishBoard(ctx context.Context, boardID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis.PubSub.PublishBoard: encode: %w", err)
	}

	receivers, err := ps.client.Publish(ctx, BoardChannel(boardID), payload).Result()
	if err != nil {
		return fmt.Errorf("redis.PubSub.PublishBoard: %w", err)
	}

	log.Debug().
		Str("board_id", boardID.String()).
		Int64("receivers", receivers).
		Msg("redis: board event published")
	return nil
}

// SubscribeBoard streams the JSON payloads published for boardID. The channel
// is closed when ctx ends or the subscription is torn down. stop releases the
// subscription and may be called more than once.
func (ps *PubSub) SubscribeBoard(ctx context.Context, boardID uuid.UUID) (<-chan []byte, func(), error) {
	channel := BoardChannel(boardID)
	sub := ps.client.Subscribe(ctx, channel)

	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis.PubSub.SubscribeBoard: %s: %w", channel, err)
	}

	out := make(chan []byte, subscriberBuffer)
	in := sub.Channel(redis.WithChannelSize(subscriberBuffer))

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() { _ = sub.Close() })
	}

	return out, stop, nil
}

// BoardChannel returns the Redis channel name for a board.
func BoardChannel(boardID uuid.UUID) string {
	return "board:" + boardID.String()
}
