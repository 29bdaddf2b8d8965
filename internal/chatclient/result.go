// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatclient

import (
	"time"

	"github.com/jeranaias/chatbot-tui/internal/model"
)

// RequestState is the lifecycle state of the client.
type RequestState int

const (
	// StateIdle accepts a new send.
	StateIdle RequestState = iota
	// StatePending has one request in flight; sends are rejected.
	StatePending
)

// String returns the string representation of the state.
func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	default:
		return "unknown"
	}
}

// Request is an accepted send awaiting its exchange.
type Request struct {
	ID   string
	Text string
	// User is the message appended to the log when the send was accepted.
	User model.Message
}

// ResultKind tags a Result.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultFailure
)

// String returns the string representation of the kind.
func (k ResultKind) String() string {
	if k == ResultSuccess {
		return "success"
	}
	return "failure"
}

// Result is the settled outcome of one exchange.
// Reply is set for ResultSuccess; Err for ResultFailure.
type Result struct {
	Kind       ResultKind
	Reply      string
	Err        error
	ReceivedAt time.Time
	RequestID  string
	// Duration is the time spent in the transport.
	Duration time.Duration
}

// OK reports whether the exchange succeeded.
func (r Result) OK() bool {
	return r.Kind == ResultSuccess
}

// Outcome summarizes a synchronous Send.
type Outcome struct {
	// Accepted is false when the send was rejected; Rejected then holds
	// ErrEmptyInput or ErrRequestPending and nothing else is set.
	Accepted bool
	Rejected error

	User   model.Message
	Reply  model.Message
	Result Result
}
