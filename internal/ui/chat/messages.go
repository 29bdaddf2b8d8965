// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatbot-tui/internal/chatclient"
)

// ResultMsg carries a finished exchange back to the event loop.
type ResultMsg struct {
	Result chatclient.Result
}

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Err error
}

// exchangeCmd runs the network call for req off the event loop.
func exchangeCmd(client *chatclient.Client, req *chatclient.Request) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Result: client.Exchange(context.Background(), req)}
	}
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// copyCmd copies text to the system clipboard.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: writeClipboard(text)}
	}
}
