// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatclient

import (
	"fmt"

	"github.com/pkg/errors"
)

// Send rejections. Neither changes the log or the request state.
var (
	// ErrEmptyInput indicates the text was empty after trimming.
	ErrEmptyInput = errors.New("empty input")

	// ErrRequestPending indicates another request is still in flight.
	ErrRequestPending = errors.New("a request is already pending")
)

// Exchange failures.
var (
	// ErrMalformedResponse indicates the endpoint answered 2xx with a body
	// that is not {"bot_response": "<non-empty string>"}.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNoRequest indicates Exchange was called without an accepted request.
	ErrNoRequest = errors.New("no request")
)

// TransportError wraps a failure to reach the endpoint or read its reply.
type TransportError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Unwrap supports errors.Is and errors.As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	// Body holds the start of the response body, for diagnostics.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("endpoint returned HTTP %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("endpoint returned HTTP %d", e.Code)
}
