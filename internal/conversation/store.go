// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jeranaias/chatbot-tui/internal/model"
)

// Persister is the durable side of the store. Implementations handle their
// own failures: the store never sees an error from them.
type Persister interface {
	Load(ctx context.Context) []model.Message
	Save(ctx context.Context, log []model.Message)
	Delete(ctx context.Context)
}

// =============================================================================
// EVENTS
// =============================================================================

// EventKind identifies the mutation that produced an Event.
type EventKind int

const (
	EventHydrated EventKind = iota
	EventAppended
	EventCleared
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventHydrated:
		return "hydrated"
	case EventAppended:
		return "appended"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after every mutation.
type Event struct {
	Kind EventKind
	// Snapshot is the log after the mutation. Listeners own it.
	Snapshot []model.Message
}

// Listener receives store events.
type Listener func(Event)

// =============================================================================
// STORE
// =============================================================================

// Store holds the ordered conversation log, oldest first.
// The in-memory log is authoritative; every change is written through to the
// Persister before listeners are notified.
type Store struct {
	mu        sync.Mutex
	messages  []model.Message
	persister Persister
	logger    zerolog.Logger

	listeners map[int]Listener
	order     []int
	nextID    int
}

// New creates an empty store backed by p. A nil p keeps the log in memory only.
func New(p Persister, logger zerolog.Logger) *Store {
	return &Store{
		messages:  make([]model.Message, 0),
		persister: p,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Hydrate replaces the log with the persisted one. It is called once at
// startup, before any Append.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	if s.persister != nil {
		loaded := s.persister.Load(ctx)
		s.messages = append(make([]model.Message, 0, len(loaded)), loaded...)
	}
	s.logger.Debug().Int("messages", len(s.messages)).Msg("conversation hydrated")
	event, listeners := s.eventLocked(EventHydrated)
	s.mu.Unlock()

	notify(listeners, event)
}

// Append adds msg to the end of the log and persists the whole log.
func (s *Store) Append(msg model.Message) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	if s.persister != nil {
		s.persister.Save(context.Background(), s.copyLocked())
	}
	event, listeners := s.eventLocked(EventAppended)
	s.mu.Unlock()

	notify(listeners, event)
}

// Clear empties the log and removes the persisted value.
func (s *Store) Clear() {
	s.mu.Lock()
	s.messages = make([]model.Message, 0)
	if s.persister != nil {
		s.persister.Delete(context.Background())
	}
	s.logger.Debug().Msg("conversation cleared")
	event, listeners := s.eventLocked(EventCleared)
	s.mu.Unlock()

	notify(listeners, event)
}

// Snapshot returns a copy of the log.
func (s *Store) Snapshot() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Last returns the newest message, if any.
func (s *Store) Last() (model.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return model.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// LastBot returns the newest Bot message, if any.
func (s *Store) LastBot() (model.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].IsBot() {
			return s.messages[i], true
		}
	}
	return model.Message{}, false
}

// Subscribe registers fn for all future events and returns a function that
// removes it. Listeners run in registration order, outside the store lock,
// so they may read the store.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) copyLocked() []model.Message {
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// eventLocked builds the event for kind and collects the current listeners.
func (s *Store) eventLocked(kind EventKind) (Event, []Listener) {
	if len(s.order) == 0 {
		return Event{}, nil
	}
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	return Event{Kind: kind, Snapshot: s.copyLocked()}, listeners
}

func notify(listeners []Listener, event Event) {
	for _, fn := range listeners {
		// Each listener gets its own copy.
		snap := make([]model.Message, len(event.Snapshot))
		copy(snap, event.Snapshot)
		fn(Event{Kind: event.Kind, Snapshot: snap})
	}
}
