// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/jeranaias/chatbot-tui/internal/model"
)

// =============================================================================
// STORED MESSAGE TYPE
// =============================================================================

// storedMessage is the on-disk form of a message. The layout is shared with
// the web client: [{"text":..., "sender":"user"|"bot", "timestamp":ISO-8601}].
type storedMessage struct {
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

// TimestampFormat is the layout used for stored timestamps (always UTC).
const TimestampFormat = time.RFC3339Nano

// =============================================================================
// ENCODE / DECODE
// =============================================================================

// Encode serializes a log as a JSON array, oldest first.
func Encode(log []model.Message) ([]byte, error) {
	stored := make([]storedMessage, 0, len(log))
	for _, msg := range log {
		stored = append(stored, storedMessage{
			Text:      msg.Text(),
			Sender:    msg.Sender().String(),
			Timestamp: msg.Timestamp().UTC().Format(TimestampFormat),
		})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrap(err, "encode transcript")
	}
	return data, nil
}

// Decode parses a stored log. Any malformed entry makes the whole value
// corrupt; the returned error then wraps ErrCorrupt.
// An empty value or JSON null decodes to an empty log.
func Decode(data []byte) ([]model.Message, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Message{}, nil
	}

	var stored []storedMessage
	if err := json.Unmarshal(trimmed, &stored); err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "invalid JSON: %v", err)
	}

	log := make([]model.Message, 0, len(stored))
	for i, sm := range stored {
		sender, ok := model.ParseSender(sm.Sender)
		if !ok {
			return nil, errors.Wrapf(ErrCorrupt, "message %d: unknown sender %q", i, sm.Sender)
		}
		if sm.Text == "" {
			return nil, errors.Wrapf(ErrCorrupt, "message %d: empty text", i)
		}
		at, err := time.Parse(TimestampFormat, sm.Timestamp)
		if err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "message %d: bad timestamp %q", i, sm.Timestamp)
		}
		log = append(log, model.NewMessage(sender, sm.Text, at))
	}
	return log, nil
}
