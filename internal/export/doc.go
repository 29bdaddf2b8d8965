// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the conversation log in shareable formats.
//
// # Formats
//
//   - markdown (md): a readable document with one section per message
//   - json: the stored log format, [{"text","sender","timestamp"}]
//
// # Usage
//
//	exp, err := export.ForFormat("md", export.DefaultOptions())
//	data, err := exp.Export(store.Snapshot())
package export
