package notifications

import (
	"context"
	"log"
	"time"

	"raybot-trade-manager/cache"
	"raybot-trade-manager/realtime"
)

// Event names published on trade lifecycle transitions
const (
	EventSignalReceived = "signal.received"
	EventTradeOpened    = "trade.opened"
	EventTradeClosed    = "trade.closed"
)

// Publisher fans trade lifecycle events out to the realtime hub (dashboard
// clients) and a Redis pub/sub channel (external consumers). Either sink
// may be absent; publishing is fire-and-forget and never fails the
// operation that triggered it.
type Publisher struct {
	hub     *realtime.Hub
	redis   *cache.RedisClient
	channel string
}

// NewPublisher creates an event publisher. hub and redis may each be nil.
func NewPublisher(hub *realtime.Hub, redis *cache.RedisClient, channel string) *Publisher {
	return &Publisher{hub: hub, redis: redis, channel: channel}
}

// Publish delivers the event. With Redis present it goes out on the
// pub/sub channel only; the Relay subscribed to that channel carries it
// back to local WebSocket clients, so subscribers of every instance see
// every instance's events without duplicates. Without Redis (or when the
// publish fails) the local hub is fed directly.
func (p *Publisher) Publish(event string, payload interface{}) {
	if p == nil {
		return
	}

	if p.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		message := map[string]interface{}{
			"event":   event,
			"payload": payload,
			"time":    time.Now().UTC().Format(time.RFC3339),
		}
		err := p.redis.Publish(ctx, p.channel, message)
		if err == nil {
			return
		}
		log.Printf("⚠️  Failed to publish %s to Redis, broadcasting directly: %v", event, err)
	}

	if p.hub != nil {
		p.hub.Broadcast(event, payload)
	}
}
