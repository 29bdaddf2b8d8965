// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the conversation log for chatbot-tui.
//
// The whole log is stored as one JSON array under a single key:
//
//	[{"text":"Hi","sender":"user","timestamp":"2025-01-02T15:04:05.123Z"}]
//
// # Key Types
//
//   - Transcript: load/save/delete of the log under one key; never fails
//   - KV: the backend interface (FileKV, SQLiteKV, RedisKV, MemoryKV)
//
// # Usage
//
//	kv, err := storage.Open(ctx, cfg)
//	t := storage.NewTranscript(kv, cfg.Storage.Key, storage.WithLogger(logger))
//	log := t.Load(ctx)
//	t.Save(ctx, append(log, msg))
//
// # Storage Location
//
// The file backend keeps one JSON file per key in ~/.chatbot/data/.
// The sqlite backend uses ~/.chatbot/transcript.db.
package storage
