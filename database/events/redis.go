// File: database/events/redis.go
package events

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ChannelPrefix namespaces the pub/sub channels of the board.
const ChannelPrefix = "gkm:events:"

// RedisNotifier publishes through Redis pub/sub so that every server
// instance, including this one, hears about every change.
type RedisNotifier struct {
	client *redis.Client
	hub    *Hub
	pubsub *redis.PubSub
	logger *zap.Logger
	done   chan struct{}
}

// NewRedisNotifier subscribes to the board channels and relays messages to
// local listeners until ctx is cancelled or Close is called.
func NewRedisNotifier(ctx context.Context, client *redis.Client, logger *zap.Logger) (*RedisNotifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pubsub := client.PSubscribe(ctx, ChannelPrefix+"*")

	// Wait for the subscription to be confirmed so no publish is missed.
	receiveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := pubsub.Receive(receiveCtx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	n := &RedisNotifier{
		client: client,
		hub:    NewHub(),
		pubsub: pubsub,
		logger: logger,
		done:   make(chan struct{}),
	}
	go n.relay(ctx)
	return n, nil
}

func (n *RedisNotifier) relay(ctx context.Context) {
	defer close(n.done)
	ch := n.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			topic := strings.TrimPrefix(msg.Channel, ChannelPrefix)
			n.logger.Debug("change event received", zap.String("topic", topic))
			n.hub.Signal(topic)
		}
	}
}

func (n *RedisNotifier) Publish(ctx context.Context, topic string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return n.client.Publish(ctx, ChannelPrefix+topic, time.Now().UnixMilli()).Err()
}

func (n *RedisNotifier) Listen(topic string) (<-chan struct{}, func()) {
	return n.hub.Listen(topic)
}

// Close stops relaying and waits for the relay goroutine to exit.
func (n *RedisNotifier) Close() error {
	err := n.pubsub.Close()
	<-n.done
	return err
}
