// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatbot-tui/internal/config"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tests := []struct {
		backend string
		path    string
		want    interface{}
	}{
		{config.BackendMemory, "", &MemoryKV{}},
		{config.BackendFile, filepath.Join(dir, "data"), &FileKV{}},
		{config.BackendSQLite, filepath.Join(dir, "t.db"), &SQLiteKV{}},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.Default()
			cfg.Storage.Backend = tt.backend
			cfg.Storage.Path = tt.path

			kv, err := Open(ctx, cfg)
			require.NoError(t, err)
			defer kv.Close()
			assert.IsType(t, tt.want, kv)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = "floppy"

	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendRedis
	cfg.Storage.RedisAddr = "127.0.0.1:1"

	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
	var be *BackendError
	assert.ErrorAs(t, err, &be)
}

func TestDescribe(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendMemory
	assert.Equal(t, "memory", Describe(cfg))

	cfg.Storage.Backend = config.BackendFile
	cfg.Storage.Path = "/tmp/x"
	assert.Equal(t, "file:/tmp/x", Describe(cfg))

	cfg.Storage.Backend = config.BackendRedis
	assert.True(t, strings.HasPrefix(Describe(cfg), "redis://127.0.0.1:6379/"))
}
