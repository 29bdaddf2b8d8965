// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatbot-tui/internal/model"
)

// failingKV fails every operation.
type failingKV struct {
	calls int
}

var errBackendDown = errors.New("backend down")

func (f *failingKV) Get(context.Context, string) ([]byte, error) {
	f.calls++
	return nil, errBackendDown
}

func (f *failingKV) Set(context.Context, string, []byte) error {
	f.calls++
	return errBackendDown
}

func (f *failingKV) Delete(context.Context, string) error {
	f.calls++
	return errBackendDown
}

func (f *failingKV) Close() error { return nil }

func sampleLog() []model.Message {
	at := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	return []model.Message{
		model.NewUserMessage("Hi", at),
		model.NewBotMessage("Hello!", at.Add(2*time.Second)),
	}
}

func TestTranscript_LoadEmpty(t *testing.T) {
	tr := NewTranscript(NewMemoryKV(), "chatMessages")

	log := tr.Load(context.Background())
	assert.NotNil(t, log)
	assert.Empty(t, log)

	_, err := tr.LoadStrict(context.Background())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTranscript_SaveLoadRoundTrip(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	tr := NewTranscript(kv, "chatMessages")
	ctx := context.Background()

	log := sampleLog()
	tr.Save(ctx, log)

	assert.True(t, model.EqualLogs(log, tr.Load(ctx)))
}

func TestTranscript_SaveReplacesWholeLog(t *testing.T) {
	tr := NewTranscript(NewMemoryKV(), "chatMessages")
	ctx := context.Background()

	log := sampleLog()
	tr.Save(ctx, log)
	tr.Save(ctx, log[:1])

	loaded := tr.Load(ctx)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].Equal(log[0]))
}

func TestTranscript_DeleteThenLoadIsEmpty(t *testing.T) {
	tr := NewTranscript(NewMemoryKV(), "chatMessages")
	ctx := context.Background()

	tr.Save(ctx, sampleLog())
	tr.Delete(ctx)

	assert.Empty(t, tr.Load(ctx))
}

func TestTranscript_CorruptValueLoadsEmptyAndWarns(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "chatMessages", []byte("not json at all")))

	var buf bytes.Buffer
	tr := NewTranscript(kv, "chatMessages", WithLogger(zerolog.New(&buf)))

	log := tr.Load(ctx)
	assert.NotNil(t, log)
	assert.Empty(t, log)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "corrupt")
}

func TestTranscript_FailuresAreSwallowed(t *testing.T) {
	kv := &failingKV{}
	var buf bytes.Buffer
	tr := NewTranscript(kv, "chatMessages", WithLogger(zerolog.New(&buf)))
	ctx := context.Background()

	assert.NotPanics(t, func() {
		tr.Save(ctx, sampleLog())
		tr.Delete(ctx)
		assert.Empty(t, tr.Load(ctx))
	})
	assert.Equal(t, 3, kv.calls)
	assert.Contains(t, buf.String(), "backend down")
}

func TestTranscript_KeysAreIndependent(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	a := NewTranscript(kv, "a")
	b := NewTranscript(kv, "b")

	a.Save(ctx, sampleLog())
	assert.Empty(t, b.Load(ctx))
	assert.Len(t, a.Load(ctx), 2)
	assert.Equal(t, "a", a.Key())
}

func TestTranscript_WithTimeout(t *testing.T) {
	tr := NewTranscript(NewMemoryKV(), "k", WithTimeout(time.Second))
	assert.Equal(t, time.Second, tr.timeout)

	tr = NewTranscript(NewMemoryKV(), "k", WithTimeout(0))
	assert.Equal(t, DefaultWriteTimeout, tr.timeout)
}

// A log saved by one process is restored by the next one.
func TestTranscript_RestoreAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	log := sampleLog()

	first, err := NewFileKV(dir)
	require.NoError(t, err)
	NewTranscript(first, "chatMessages").Save(ctx, log)

	second, err := NewFileKV(dir)
	require.NoError(t, err)
	restored := NewTranscript(second, "chatMessages").Load(ctx)

	require.Len(t, restored, 2)
	assert.Equal(t, "Hi", restored[0].Text())
	assert.Equal(t, model.SenderUser, restored[0].Sender())
	assert.Equal(t, "Hello!", restored[1].Text())
	assert.Equal(t, model.SenderBot, restored[1].Sender())
	assert.True(t, model.EqualLogs(log, restored))
}
