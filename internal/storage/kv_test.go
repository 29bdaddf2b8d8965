// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// BACKEND CONFORMANCE
// =============================================================================

// testKVConformance runs the behaviour every backend must share.
func testKVConformance(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound), "Get(missing) err = %v", err)

	require.NoError(t, kv.Set(ctx, "chatMessages", []byte(`[1]`)))
	got, err := kv.Get(ctx, "chatMessages")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))

	require.NoError(t, kv.Set(ctx, "chatMessages", []byte(`[2]`)))
	got, err = kv.Get(ctx, "chatMessages")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got), "Set must replace the value")

	require.NoError(t, kv.Delete(ctx, "chatMessages"))
	_, err = kv.Get(ctx, "chatMessages")
	assert.True(t, errors.Is(err, ErrNotFound), "Get after Delete err = %v", err)

	assert.NoError(t, kv.Delete(ctx, "chatMessages"), "deleting a missing key is not an error")
}

func TestMemoryKV(t *testing.T) {
	testKVConformance(t, NewMemoryKV())
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[0] = 'y'
	again, _ := kv.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestFileKV(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	testKVConformance(t, kv)
}

func TestFileKV_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileKV(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileKV_Path(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	tests := []struct {
		key  string
		want string
	}{
		{"chatMessages", "chatMessages.json"},
		{"../escape", "_escape.json"},
		{"a/b c", "a_b_c.json"},
		{"", "_.json"},
	}
	for _, tt := range tests {
		got := kv.Path(tt.key)
		if filepath.Dir(got) != dir {
			t.Errorf("Path(%q) = %q, escapes base dir", tt.key, got)
		}
		if filepath.Base(got) != tt.want {
			t.Errorf("Path(%q) base = %q, want %q", tt.key, filepath.Base(got), tt.want)
		}
	}
}

func TestFileKV_CanceledContext(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, kv.Set(ctx, "k", []byte("v")))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.db")
	kv, err := NewSQLiteKV(context.Background(), path)
	require.NoError(t, err)
	defer kv.Close()

	assert.Equal(t, path, kv.Path())
	testKVConformance(t, kv)
}

func TestSQLiteKV_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.db")
	ctx := context.Background()

	kv, err := NewSQLiteKV(ctx, path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "chatMessages", []byte(`[]`)))
	require.NoError(t, kv.Close())

	kv, err = NewSQLiteKV(ctx, path)
	require.NoError(t, err)
	defer kv.Close()

	got, err := kv.Get(ctx, "chatMessages")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("CHATBOT_TEST_REDIS")
	if addr == "" {
		t.Skip("CHATBOT_TEST_REDIS not set")
	}

	kv, err := NewRedisKV(context.Background(), addr, "chatbot-test:")
	require.NoError(t, err)
	defer kv.Close()

	testKVConformance(t, kv)
}

func TestBackendError(t *testing.T) {
	assert.NoError(t, backendErr("file", "set", nil))

	inner := errors.New("disk full")
	err := backendErr("file", "set", inner)
	assert.EqualError(t, err, "file set: disk full")

	var be *BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "file", be.Backend)
	assert.True(t, errors.Is(err, inner))
}
