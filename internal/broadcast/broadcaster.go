// Package broadcast fans typed room events out to subscribers. Producers
// only enqueue; a dedicated drain goroutine performs delivery so the
// engine's critical sections never block on a slow consumer.
package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/8954sood/overwatch-civilwar/internal/events"
)

// GlobalRoom receives every event regardless of room. Single-room
// deployments subscribe here without knowing the auction id up front.
var GlobalRoom = uuid.Nil

// Subscriber is one delivery target. A failed Send marks the subscriber
// dead; it is removed silently and never retried.
type Subscriber interface {
	Send(data []byte) error
}

// Sink receives a copy of every delivered event, e.g. a NATS mirror.
type Sink interface {
	Publish(room uuid.UUID, eventType events.Type, data []byte)
}

type queuedEvent struct {
	room  uuid.UUID
	event events.Event
}

// Broadcaster maintains the room -> subscriber registry and the
// queue-and-drain dispatch loop.
type Broadcaster struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[Subscriber]bool
	index map[Subscriber]uuid.UUID

	queue chan queuedEvent
	sinks []Sink
}

// New creates a Broadcaster. Run must be started for delivery to happen.
func New(sinks ...Sink) *Broadcaster {
	return &Broadcaster{
		rooms: make(map[uuid.UUID]map[Subscriber]bool),
		index: make(map[Subscriber]uuid.UUID),
		queue: make(chan queuedEvent, 1024),
		sinks: sinks,
	}
}

// Run drains the event queue until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	log.Info().Msg("broadcaster started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("broadcaster shutting down")
			return
		case q := <-b.queue:
			b.deliver(q)
		}
	}
}

// Subscribe registers a subscriber with a room.
func (b *Broadcaster) Subscribe(room uuid.UUID, s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rooms[room] == nil {
		b.rooms[room] = make(map[Subscriber]bool)
	}
	b.rooms[room][s] = true
	b.index[s] = room
	log.Debug().Str("room", room.String()).Int("subscribers", len(b.rooms[room])).Msg("subscriber registered")
}

// Unsubscribe removes a subscriber. Safe to call twice.
func (b *Broadcaster) Unsubscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.remove(s)
}

func (b *Broadcaster) remove(s Subscriber) {
	room, ok := b.index[s]
	if !ok {
		return
	}
	delete(b.index, s)
	if subs, ok := b.rooms[room]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(b.rooms, room)
		}
	}
}

// Broadcast enqueues an event for every subscriber of room plus the global
// room. Never blocks; the event is dropped with a warning if the queue is
// full.
func (b *Broadcaster) Broadcast(room uuid.UUID, e events.Event) {
	select {
	case b.queue <- queuedEvent{room: room, event: e}:
	default:
		log.Warn().Str("room", room.String()).Str("event", string(e.Type)).Msg("broadcast queue full, dropping event")
	}
}

// SnapshotTo pushes one event to a single subscriber, bypassing fan-out.
// Used for the lobby/state snapshot on connect.
func (b *Broadcaster) SnapshotTo(s Subscriber, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.Send(data)
}

func (b *Broadcaster) deliver(q queuedEvent) {
	data, err := json.Marshal(q.event)
	if err != nil {
		log.Error().Err(err).Str("event", string(q.event.Type)).Msg("failed to marshal event")
		return
	}

	b.mu.RLock()
	targets := make([]Subscriber, 0, len(b.rooms[q.room])+len(b.rooms[GlobalRoom]))
	for s := range b.rooms[q.room] {
		targets = append(targets, s)
	}
	if q.room != GlobalRoom {
		for s := range b.rooms[GlobalRoom] {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	var dead []Subscriber
	for _, s := range targets {
		if err := s.Send(data); err != nil {
			dead = append(dead, s)
		}
	}
	if len(dead) > 0 {
		b.mu.Lock()
		for _, s := range dead {
			b.remove(s)
		}
		b.mu.Unlock()
		log.Debug().Int("dropped", len(dead)).Str("event", string(q.event.Type)).Msg("removed dead subscribers")
	}

	for _, sink := range b.sinks {
		sink.Publish(q.room, q.event.Type, data)
	}
}

// SubscriberCount reports active subscribers for a room.
func (b *Broadcaster) SubscriberCount(room uuid.UUID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.rooms[room])
}
