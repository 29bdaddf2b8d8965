// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/chatbot-tui/internal/util"
)

// =============================================================================
// FILE STORE
// =============================================================================

// FileKV stores each key as a JSON file in BaseDir.
// Default: ~/.chatbot/data/
type FileKV struct {
	BaseDir string
}

// NewFileKV creates a file store rooted at baseDir, creating it if needed.
func NewFileKV(baseDir string) (*FileKV, error) {
	if err := os.MkdirAll(baseDir, util.DataDirPerm); err != nil {
		return nil, backendErr("file", "open", err)
	}
	return &FileKV{BaseDir: baseDir}, nil
}

// Get implements KV.
func (s *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, backendErr("file", "get", err)
	}
	return data, nil
}

// Set implements KV. Writes are atomic: a crash leaves either the old or the
// new value on disk.
func (s *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return backendErr("file", "set", util.AtomicWriteFile(s.filePath(key), value, 0600))
}

// Delete implements KV.
func (s *FileKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return backendErr("file", "delete", util.RemoveIfExists(s.filePath(key)))
}

// Close implements KV.
func (s *FileKV) Close() error { return nil }

// Path returns the file backing key.
func (s *FileKV) Path(key string) string {
	return s.filePath(key)
}

// filePath maps a key to a file name, replacing characters that are not
// safe in file names.
func (s *FileKV) filePath(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	safe = strings.TrimLeft(safe, ".")
	if safe == "" {
		safe = "_"
	}
	return filepath.Join(s.BaseDir, safe+".json")
}

var _ KV = (*FileKV)(nil)
