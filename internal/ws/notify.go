package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"empedi/internal/domain/job"
)

var (
	errInvalidKind    = errors.New("kind must be job or internship")
	errInvalidSkillID = errors.New("skill_ids must be comma separated UUIDs")
)

// Subscriber is the pub/sub side of the cache.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string, fn func(payload []byte)) error
}

// Relay forwards job events published by any server instance to this
// instance's hub.
type Relay struct {
	hub    *Hub
	sub    Subscriber
	logger *log.Logger
	retry  time.Duration
}

func NewRelay(hub *Hub, sub Subscriber, logger *log.Logger) *Relay {
	if logger == nil {
		logger = log.Default()
	}
	return &Relay{hub: hub, sub: sub, logger: logger, retry: 5 * time.Second}
}

// Run subscribes until ctx is done, resubscribing after transient failures.
// It returns at once when the subscriber reports it is unavailable.
func (r *Relay) Run(ctx context.Context, unavailable error) {
	for {
		err := r.sub.Subscribe(ctx, job.EventsChannel, r.Deliver)
		if ctx.Err() != nil {
			return
		}
		if err != nil && unavailable != nil && errors.Is(err, unavailable) {
			r.logger.Printf("[WS] relay disabled, pub/sub unavailable")
			return
		}
		r.logger.Printf("[WS] relay subscription ended, retrying in %s err=%v", r.retry, err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(r.retry):
		}
	}
}

// Deliver decodes one event payload and hands it to the hub.
func (r *Relay) Deliver(payload []byte) {
	var ev job.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		r.logger.Printf("[WS] dropping malformed event err=%v", err)
		return
	}
	r.hub.Broadcast(Message{Kind: ev.Kind, SkillIDs: ev.SkillIDs, Payload: payload})
}

type publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// LocalFallbackPublisher publishes through pub/sub and, when pub/sub is
// unavailable, delivers straight to the local hub so single-instance
// deployments without Redis still get a live feed.
type LocalFallbackPublisher struct {
	next        publisher
	relay       *Relay
	unavailable error
}

func NewLocalFallbackPublisher(next publisher, relay *Relay, unavailable error) *LocalFallbackPublisher {
	return &LocalFallbackPublisher{next: next, relay: relay, unavailable: unavailable}
}

func (p *LocalFallbackPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	err := p.next.Publish(ctx, channel, payload)
	if err != nil && p.unavailable != nil && errors.Is(err, p.unavailable) {
		p.relay.Deliver(payload)
		return nil
	}
	return err
}
