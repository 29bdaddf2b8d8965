// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/jeranaias/chatbot-tui/internal/util"
)

// Fixed texts shown by the client.
const (
	// FallbackText is the Bot reply appended when a request fails.
	FallbackText = "Sorry, I encountered an error. Please try again."

	// WelcomeTitle and WelcomeHint are rendered when the log is empty.
	// They are never appended to the log.
	WelcomeTitle = "Welcome to AI Chatbot Assistant!"
	WelcomeHint  = "Start a conversation by typing a message below."
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// Valid reports whether s is one of the known senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// ParseSender converts a stored sender string into a Sender.
func ParseSender(s string) (Sender, bool) {
	sender := Sender(strings.ToLower(strings.TrimSpace(s)))
	return sender, sender.Valid()
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry of the conversation log.
// A Message is immutable: its fields can only be set by the constructors.
type Message struct {
	text      string
	sender    Sender
	timestamp time.Time
}

// NewMessage creates a message authored by sender at the given time.
// Invalid UTF-8 in text is replaced with U+FFFD and the monotonic clock
// reading is stripped, so that a message compares equal to its decoded copy.
func NewMessage(sender Sender, text string, at time.Time) Message {
	return Message{
		text:      strings.ToValidUTF8(text, "\uFFFD"),
		sender:    sender,
		timestamp: at.Round(0),
	}
}

// NewUserMessage creates a message authored by the user.
func NewUserMessage(text string, at time.Time) Message {
	return NewMessage(SenderUser, text, at)
}

// NewBotMessage creates a message authored by the bot.
func NewBotMessage(text string, at time.Time) Message {
	return NewMessage(SenderBot, text, at)
}

// NewFallbackMessage creates the Bot message used when a request fails.
func NewFallbackMessage(at time.Time) Message {
	return NewBotMessage(FallbackText, at)
}

// Text returns the message content.
func (m Message) Text() string { return m.text }

// Sender returns the author of the message.
func (m Message) Sender() Sender { return m.sender }

// Timestamp returns the creation time of the message.
func (m Message) Timestamp() time.Time { return m.timestamp }

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool { return m.sender == SenderUser }

// IsBot reports whether the message was written by the bot.
func (m Message) IsBot() bool { return m.sender == SenderBot }

// IsFallback reports whether the message is the fixed failure reply.
func (m Message) IsFallback() bool {
	return m.sender == SenderBot && m.text == FallbackText
}

// Equal reports whether two messages have the same text, sender and
// point in time. Locations are ignored.
func (m Message) Equal(other Message) bool {
	return m.text == other.text &&
		m.sender == other.sender &&
		m.timestamp.Equal(other.timestamp)
}

// Preview returns the content truncated to maxLen runes.
func (m Message) Preview(maxLen int) string {
	return util.TruncateRunes(m.text, maxLen)
}

// ClockTime formats the timestamp as a local time of day.
func (m Message) ClockTime() string {
	return m.timestamp.Local().Format("15:04:05")
}

// EqualLogs reports whether two logs contain equal messages in the same order.
func EqualLogs(a, b []Message) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
