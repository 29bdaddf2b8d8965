// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatclient

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/chatbot-tui/internal/model"
)

// Log receives the messages produced by the client.
// *conversation.Store satisfies it.
type Log interface {
	Append(msg model.Message)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client drives the send cycle: append the user message, call the endpoint
// once, append the reply or the fallback text. At most one request is in
// flight at a time.
//
// Interactive callers split the cycle so the network call runs off the event
// loop: Begin and Settle mutate state, Exchange only talks to the network.
type Client struct {
	mu      sync.Mutex
	state   RequestState
	current *Request
	// settling is set while the reply for current is being appended.
	settling bool

	log       Log
	transport Transport
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates an idle client appending to log and talking through transport.
func New(log Log, transport Transport, opts ...Option) *Client {
	c := &Client{
		state:     StateIdle,
		log:       log,
		transport: transport,
		logger:    zerolog.Nop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current request state.
func (c *Client) State() RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns the in-flight request, if any.
func (c *Client) Pending() (*Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current != nil
}

// Begin accepts userText for sending. Empty text and sends while a request
// is pending are rejected without side effects. On acceptance the user
// message is appended and the client becomes Pending.
func (c *Client) Begin(userText string) (*Request, error) {
	text := strings.TrimSpace(userText)
	if text == "" {
		return nil, ErrEmptyInput
	}

	c.mu.Lock()
	if c.state == StatePending {
		c.mu.Unlock()
		c.logger.Debug().Msg("send rejected: request pending")
		return nil, ErrRequestPending
	}
	req := &Request{
		ID:   c.newID(),
		Text: text,
		User: model.NewUserMessage(text, c.now()),
	}
	c.state = StatePending
	c.current = req
	c.mu.Unlock()

	c.log.Append(req.User)
	c.logger.Debug().Str("request_id", req.ID).Str("preview", req.User.Preview(40)).Msg("send accepted")
	return req, nil
}

// Exchange performs the network call for req. It does not touch the log or
// the request state and may run on any goroutine.
func (c *Client) Exchange(ctx context.Context, req *Request) Result {
	if req == nil {
		return Result{Kind: ResultFailure, Err: ErrNoRequest, ReceivedAt: c.now()}
	}

	start := time.Now()
	reply, err := c.transport.Chat(ctx, req.Text)
	result := Result{
		RequestID:  req.ID,
		ReceivedAt: c.now(),
		Duration:   time.Since(start),
	}
	if err != nil {
		result.Kind = ResultFailure
		result.Err = err
		return result
	}
	result.Kind = ResultSuccess
	result.Reply = reply
	return result
}

// Settle completes the pending request with result: the reply (or the
// fallback text on failure) is appended and the client becomes Idle.
// The client stays Pending until the reply is in the log, so a send
// accepted afterwards always follows the reply. A result for a request that
// is not pending is ignored and reported as not settled.
func (c *Client) Settle(result Result) (model.Message, bool) {
	c.mu.Lock()
	if c.current == nil || c.current.ID != result.RequestID || c.settling {
		c.mu.Unlock()
		c.logger.Warn().Str("request_id", result.RequestID).Msg("ignoring result for unknown request")
		return model.Message{}, false
	}
	c.settling = true
	c.mu.Unlock()

	var reply model.Message
	if result.OK() {
		reply = model.NewBotMessage(result.Reply, result.ReceivedAt)
		c.logger.Info().
			Str("request_id", result.RequestID).
			Dur("duration", result.Duration).
			Msg("reply received")
	} else {
		reply = model.NewFallbackMessage(result.ReceivedAt)
		c.logger.Error().
			Err(result.Err).
			Str("request_id", result.RequestID).
			Dur("duration", result.Duration).
			Msg("chat request failed")
	}

	c.log.Append(reply)

	c.mu.Lock()
	c.current = nil
	c.settling = false
	c.state = StateIdle
	c.mu.Unlock()
	return reply, true
}

// Send runs a whole cycle synchronously.
func (c *Client) Send(ctx context.Context, userText string) Outcome {
	req, err := c.Begin(userText)
	if err != nil {
		return Outcome{Rejected: err}
	}
	result := c.Exchange(ctx, req)
	reply, _ := c.Settle(result)
	return Outcome{
		Accepted: true,
		User:     req.User,
		Reply:    reply,
		Result:   result,
	}
}
