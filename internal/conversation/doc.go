// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation holds the in-memory conversation log.
//
// The Store is append-only apart from Clear. Every change is written through
// to a Persister (normally a storage.Transcript) and then announced to
// subscribers such as the chat view.
//
//	store := conversation.New(transcript, logger)
//	store.Hydrate(ctx)
//	unsubscribe := store.Subscribe(func(ev conversation.Event) { ... })
//	defer unsubscribe()
package conversation
