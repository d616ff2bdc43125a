package notifications

import (
	"context"
	"log"

	"raybot-trade-manager/cache"
	"raybot-trade-manager/realtime"
)

// Relay subscribes to the Redis event channel and forwards each message to
// the local WebSocket hub. Events published by any instance (this one
// included) reach local dashboard clients through this single path.
type Relay struct {
	redis   *cache.RedisClient
	hub     *realtime.Hub
	channel string
}

// NewRelay creates a relay between the Redis event channel and the hub
func NewRelay(redis *cache.RedisClient, hub *realtime.Hub, channel string) *Relay {
	return &Relay{redis: redis, hub: hub, channel: channel}
}

// Run consumes the channel until ctx is cancelled or the subscription dies
func (r *Relay) Run(ctx context.Context) {
	sub := r.redis.Subscribe(ctx, r.channel)
	if sub == nil {
		return
	}
	defer sub.Close()

	log.Printf("📡 Relaying events from %s to WebSocket clients", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			r.hub.BroadcastRaw([]byte(msg.Payload))
		}
	}
}
