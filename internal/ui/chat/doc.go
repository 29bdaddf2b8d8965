// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat view for the chatbot-tui application.

# Key Components

## Model (model.go)

The Bubble Tea model. It owns the input line, the scrolling viewport and
the loading spinner, and renders from a copy of the conversation log that
it receives through a conversation.Store subscription.

## Update Loop (update.go)

Enter calls chatclient.Client.Begin inside Update, so the user message is
in the log before the network call starts. The exchange itself runs in a
tea.Cmd and comes back as a ResultMsg, which Update settles.

## View Rendering (view.go, markdown.go)

Header, welcome panel (empty log), message bubbles with the local time of
day, the loading indicator while a reply is pending, the input line and a
status bar. Bot replies are rendered as markdown with glamour.

# Usage

	m := chat.New(chat.Options{Client: client, Store: store, Theme: "auto"})
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
*/
package chat
