// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatclient sends user messages to the chat endpoint.
//
// # Request Lifecycle
//
// The client is Idle or Pending. Begin moves Idle to Pending and appends
// the user message; Settle moves back to Idle and appends the reply. While
// Pending every send is rejected with ErrRequestPending.
//
// A failed exchange (network error, non-2xx status, malformed body) is never
// shown to the user: it is logged and the fixed text model.FallbackText is
// appended instead.
//
// # Wire Format
//
//	POST /chat  {"user_message": "Hello"}
//	200 OK      {"bot_response": "Hi! How can I help?"}
//
// # Usage
//
//	client := chatclient.New(store, chatclient.NewHTTPTransport(url, timeout))
//	out := client.Send(ctx, "Hello")
//	fmt.Println(out.Reply.Text())
package chatclient
