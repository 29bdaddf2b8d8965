// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeranaias/chatbot-tui/internal/util"
)

// Transport performs one chat exchange with the remote endpoint.
type Transport interface {
	Chat(ctx context.Context, text string) (string, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, text string) (string, error)

// Chat implements Transport.
func (f TransportFunc) Chat(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

const (
	// DefaultTimeout is used when no timeout is configured.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps the response body read from the endpoint.
	MaxResponseSize = 1 << 20

	// MaxInputChars bounds a single user message entered in the TUI or
	// piped to the CLI.
	MaxInputChars = 4000

	// errorBodyPreview is how much of a non-2xx body is kept in StatusError.
	errorBodyPreview = 200
)

// chatRequest is the request body sent to the endpoint.
type chatRequest struct {
	UserMessage string `json:"user_message"`
}

// chatResponse is the expected response body.
type chatResponse struct {
	BotResponse *string `json:"bot_response"`
}

// =============================================================================
// HTTP TRANSPORT
// =============================================================================

// HTTPTransport posts user text as JSON to a chat endpoint.
type HTTPTransport struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(t *HTTPTransport) { t.httpClient = c }
}

// WithTransportLogger sets the logger for request diagnostics.
func WithTransportLogger(logger zerolog.Logger) HTTPOption {
	return func(t *HTTPTransport) { t.logger = logger }
}

// NewHTTPTransport creates a transport for endpoint. A non-positive timeout
// selects DefaultTimeout.
func NewHTTPTransport(endpoint string, timeout time.Duration, opts ...HTTPOption) *HTTPTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &HTTPTransport{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Endpoint returns the chat URL.
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

// Chat sends text and returns the bot's reply. It makes exactly one HTTP
// request and never retries.
func (t *HTTPTransport) Chat(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(chatRequest{UserMessage: text})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{URL: t.endpoint, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{URL: t.endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := readResponse(t.endpoint, resp.Body)
	if err != nil {
		return "", err
	}

	t.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Int("bytes", len(data)).
		Msg("chat response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{
			Code: resp.StatusCode,
			Body: util.SingleLine(util.TruncateRunes(string(data), errorBodyPreview)),
		}
	}

	return parseReply(data)
}

// parseReply extracts bot_response from a 2xx body.
func parseReply(data []byte) (string, error) {
	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", errors.Wrapf(ErrMalformedResponse, "invalid JSON: %v", err)
	}
	if parsed.BotResponse == nil {
		return "", errors.Wrap(ErrMalformedResponse, "missing bot_response")
	}
	if strings.TrimSpace(*parsed.BotResponse) == "" {
		return "", errors.Wrap(ErrMalformedResponse, "empty bot_response")
	}
	return *parsed.BotResponse, nil
}

// readResponse reads at most MaxResponseSize bytes.
func readResponse(endpoint string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxResponseSize+1))
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: errors.Wrap(err, "failed to read response")}
	}
	if len(data) > MaxResponseSize {
		return nil, errors.Wrapf(ErrMalformedResponse, "response exceeds %d bytes", MaxResponseSize)
	}
	return data, nil
}

// HealthURL returns the /health URL next to the chat endpoint,
// e.g. http://host:8000/chat -> http://host:8000/health.
func (t *HTTPTransport) HealthURL() (string, error) {
	base, err := url.Parse(t.endpoint)
	if err != nil {
		return "", errors.Wrap(err, "invalid endpoint")
	}
	return base.ResolveReference(&url.URL{Path: "health"}).String(), nil
}

// HealthCheck probes the endpoint's /health route.
func (t *HTTPTransport) HealthCheck(ctx context.Context) error {
	healthURL, err := t.HealthURL()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return &TransportError{URL: healthURL, Err: err}
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: healthURL, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

var _ Transport = (*HTTPTransport)(nil)
