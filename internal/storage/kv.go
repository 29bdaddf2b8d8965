// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"

	"github.com/pkg/errors"
)

// KV is a durable key-value store holding whole values per key.
// Implementations must be safe for concurrent use.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// ErrNotFound is returned by KV.Get when the key holds no value.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = errors.New("key not found")

// ErrCorrupt wraps decode failures of a stored transcript.
var ErrCorrupt = errors.New("stored transcript is corrupt")

// BackendError annotates a failure with the backend that produced it.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return e.Backend + " " + e.Op + ": " + e.Err.Error()
}

// Unwrap supports errors.Is and errors.As.
func (e *BackendError) Unwrap() error {
	return e.Err
}

func backendErr(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Backend: backend, Op: op, Err: err}
}
