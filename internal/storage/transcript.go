// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeranaias/chatbot-tui/internal/model"
)

// DefaultWriteTimeout bounds a single backend call made by a Transcript.
const DefaultWriteTimeout = 5 * time.Second

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript persists a whole conversation log under a single key.
//
// Transcript never reports failures to its caller: a missing or unreadable
// value loads as an empty log, and failed writes are logged and dropped.
type Transcript struct {
	kv      KV
	key     string
	logger  zerolog.Logger
	timeout time.Duration
}

// TranscriptOption configures a Transcript.
type TranscriptOption func(*Transcript)

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(logger zerolog.Logger) TranscriptOption {
	return func(t *Transcript) { t.logger = logger }
}

// WithTimeout sets the per-call backend timeout.
func WithTimeout(d time.Duration) TranscriptOption {
	return func(t *Transcript) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// NewTranscript binds kv to key.
func NewTranscript(kv KV, key string, opts ...TranscriptOption) *Transcript {
	t := &Transcript{
		kv:      kv,
		key:     key,
		logger:  zerolog.Nop(),
		timeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Key returns the storage key.
func (t *Transcript) Key() string { return t.key }

// Load returns the stored log, or an empty log when nothing usable is stored.
func (t *Transcript) Load(ctx context.Context) []model.Message {
	log, err := t.LoadStrict(ctx)
	switch {
	case err == nil:
		return log
	case errors.Is(err, ErrNotFound):
		t.logger.Debug().Str("key", t.key).Msg("no stored transcript")
	case errors.Is(err, ErrCorrupt):
		t.logger.Warn().Err(err).Str("key", t.key).Msg("stored transcript is corrupt, starting empty")
	default:
		t.logger.Error().Err(err).Str("key", t.key).Msg("failed to read transcript, starting empty")
	}
	return []model.Message{}
}

// LoadStrict is Load with the failure reported. It returns ErrNotFound when
// the key holds no value and an error wrapping ErrCorrupt for unparsable data.
func (t *Transcript) LoadStrict(ctx context.Context) ([]model.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	data, err := t.kv.Get(ctx, t.key)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Save replaces the stored value with log.
func (t *Transcript) Save(ctx context.Context, log []model.Message) {
	data, err := Encode(log)
	if err != nil {
		t.logger.Error().Err(err).Msg("failed to encode transcript")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if err := t.kv.Set(ctx, t.key, data); err != nil {
		t.logger.Error().Err(err).Str("key", t.key).Int("messages", len(log)).Msg("failed to save transcript")
		return
	}
	t.logger.Debug().Str("key", t.key).Int("messages", len(log)).Msg("transcript saved")
}

// Delete removes the stored value.
func (t *Transcript) Delete(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if err := t.kv.Delete(ctx, t.key); err != nil {
		t.logger.Error().Err(err).Str("key", t.key).Msg("failed to delete transcript")
		return
	}
	t.logger.Debug().Str("key", t.key).Msg("transcript deleted")
}
