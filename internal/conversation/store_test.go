// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatbot-tui/internal/model"
	"github.com/jeranaias/chatbot-tui/internal/storage"
)

// recordingPersister remembers every call.
type recordingPersister struct {
	mu      sync.Mutex
	stored  []model.Message
	saves   int
	deletes int
}

func (p *recordingPersister) Load(context.Context) []model.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Message(nil), p.stored...)
}

func (p *recordingPersister) Save(_ context.Context, log []model.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stored = log
	p.saves++
}

func (p *recordingPersister) Delete(context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stored = nil
	p.deletes++
}

var t0 = time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

func TestStore_StartsEmpty(t *testing.T) {
	s := New(nil, zerolog.Nop())
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Snapshot())
	_, ok := s.Last()
	assert.False(t, ok)
}

func TestStore_AppendPersistsWholeLog(t *testing.T) {
	p := &recordingPersister{}
	s := New(p, zerolog.Nop())

	s.Append(model.NewUserMessage("Hi", t0))
	s.Append(model.NewBotMessage("Hello!", t0.Add(time.Second)))

	assert.Equal(t, 2, p.saves)
	assert.True(t, model.EqualLogs(s.Snapshot(), p.stored))

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "Hello!", last.Text())
}

func TestStore_AppendKeepsOrder(t *testing.T) {
	s := New(nil, zerolog.Nop())
	for _, text := range []string{"a", "b", "c"} {
		s.Append(model.NewUserMessage(text, t0))
	}

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "a", snap[0].Text())
	assert.Equal(t, "c", snap[2].Text())
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := New(nil, zerolog.Nop())
	s.Append(model.NewUserMessage("Hi", t0))

	snap := s.Snapshot()
	snap[0] = model.NewBotMessage("tampered", t0)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "Hi", s.Snapshot()[0].Text())
}

func TestStore_ClearDeletesPersistedValue(t *testing.T) {
	p := &recordingPersister{}
	s := New(p, zerolog.Nop())
	s.Append(model.NewUserMessage("Hi", t0))

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, p.deletes)
	assert.Empty(t, p.Load(context.Background()))
}

func TestStore_Hydrate(t *testing.T) {
	p := &recordingPersister{stored: []model.Message{
		model.NewUserMessage("Hi", t0),
		model.NewBotMessage("Hello!", t0),
	}}
	s := New(p, zerolog.Nop())

	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })
	s.Hydrate(context.Background())

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, p.saves, "hydrate must not write back")
	require.Len(t, events, 1)
	assert.Equal(t, EventHydrated, events[0].Kind)
	assert.Len(t, events[0].Snapshot, 2)
}

func TestStore_LastBot(t *testing.T) {
	s := New(nil, zerolog.Nop())
	_, ok := s.LastBot()
	assert.False(t, ok)

	s.Append(model.NewBotMessage("first", t0))
	s.Append(model.NewUserMessage("question", t0))

	msg, ok := s.LastBot()
	require.True(t, ok)
	assert.Equal(t, "first", msg.Text())
}

func TestStore_SubscribeReceivesEventsAfterPersist(t *testing.T) {
	p := &recordingPersister{}
	s := New(p, zerolog.Nop())

	var kinds []EventKind
	var savesSeen []int
	s.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		p.mu.Lock()
		savesSeen = append(savesSeen, p.saves)
		p.mu.Unlock()
		// Listeners run outside the lock and may read the store.
		_ = s.Len()
	})

	s.Append(model.NewUserMessage("Hi", t0))
	s.Clear()

	assert.Equal(t, []EventKind{EventAppended, EventCleared}, kinds)
	assert.Equal(t, 1, savesSeen[0])
}

func TestStore_SubscribeOrderAndUnsubscribe(t *testing.T) {
	s := New(nil, zerolog.Nop())

	var calls []string
	unsubA := s.Subscribe(func(Event) { calls = append(calls, "a") })
	s.Subscribe(func(Event) { calls = append(calls, "b") })

	s.Append(model.NewUserMessage("1", t0))
	unsubA()
	unsubA()
	s.Append(model.NewUserMessage("2", t0))

	assert.Equal(t, []string{"a", "b", "b"}, calls)
}

func TestStore_ListenerSnapshotsAreIndependent(t *testing.T) {
	s := New(nil, zerolog.Nop())

	var first, second []model.Message
	s.Subscribe(func(ev Event) {
		first = ev.Snapshot
		first[0] = model.NewBotMessage("changed", t0)
	})
	s.Subscribe(func(ev Event) { second = ev.Snapshot })

	s.Append(model.NewUserMessage("Hi", t0))

	assert.Equal(t, "Hi", second[0].Text())
	assert.Equal(t, "Hi", s.Snapshot()[0].Text())
}

func TestStore_ConcurrentAppend(t *testing.T) {
	s := New(&recordingPersister{}, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(model.NewUserMessage("x", time.Now()))
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}

func TestStore_WithTranscript(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()

	s := New(storage.NewTranscript(kv, "chatMessages"), zerolog.Nop())
	s.Hydrate(ctx)
	s.Append(model.NewUserMessage("Hi", t0))
	s.Append(model.NewBotMessage("Hello!", t0))

	restored := New(storage.NewTranscript(kv, "chatMessages"), zerolog.Nop())
	restored.Hydrate(ctx)
	assert.True(t, model.EqualLogs(s.Snapshot(), restored.Snapshot()))

	restored.Clear()
	again := New(storage.NewTranscript(kv, "chatMessages"), zerolog.Nop())
	again.Hydrate(ctx)
	assert.Equal(t, 0, again.Len())
}

func TestStore_ClearThenLoadReturnsEmpty(t *testing.T) {
	tr := storage.NewTranscript(storage.NewMemoryKV(), "chatMessages")
	s := New(tr, zerolog.Nop())

	s.Append(model.NewUserMessage("one", t0))
	s.Append(model.NewBotMessage("two", t0))
	s.Append(model.NewUserMessage("three", t0))
	s.Clear()

	loaded := tr.Load(context.Background())
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}
