// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for chatbot-tui.
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync and rename
//   - RemoveIfExists: delete that tolerates a missing file
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - TruncateWidth: terminal-column aware truncation
//   - SingleLine: collapse whitespace for one-line previews
package util
