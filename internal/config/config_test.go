// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points ConfigDir at a temp directory and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CHATBOT_HOME", dir)
	for _, key := range []string{
		"CHATBOT_ENDPOINT", "CHATBOT_TIMEOUT", "CHATBOT_STORE", "CHATBOT_STORE_PATH",
		"CHATBOT_REDIS_ADDR", "CHATBOT_THEME", "CHATBOT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8000/chat", cfg.Endpoint.URL)
	assert.Equal(t, 60*time.Second, cfg.Endpoint.Timeout())
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "chatMessages", cfg.Storage.Key)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Endpoint, cfg.Endpoint)
}

func TestLoad_TOMLFromConfigDir(t *testing.T) {
	dir := isolate(t)
	content := `
[endpoint]
url = "https://bot.example.com/chat"

[storage]
backend = "SQLite"

[ui]
theme = "dark"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://bot.example.com/chat", cfg.Endpoint.URL)
	assert.Equal(t, 60, cfg.Endpoint.TimeoutSecs, "missing values come from defaults")
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoad_JSONPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"endpoint":{"url":"http://10.0.0.1:9000/chat","timeout_secs":5}}`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:9000/chat", cfg.Endpoint.URL)
	assert.Equal(t, 5, cfg.Endpoint.TimeoutSecs)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_MalformedTOML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[endpoint\nurl="), 0600))

	_, err := Load("")
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CHATBOT_ENDPOINT", "http://override:1234/chat")
	t.Setenv("CHATBOT_TIMEOUT", "7")
	t.Setenv("CHATBOT_STORE", "memory")
	t.Setenv("CHATBOT_THEME", "LIGHT")
	t.Setenv("CHATBOT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://override:1234/chat", cfg.Endpoint.URL)
	assert.Equal(t, 7, cfg.Endpoint.TimeoutSecs)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad scheme", func(c *Config) { c.Endpoint.URL = "ftp://host/chat" }, "endpoint.url"},
		{"no host", func(c *Config) { c.Endpoint.URL = "http:///chat" }, "endpoint.url"},
		{"timeout zero", func(c *Config) { c.Endpoint.TimeoutSecs = 0 }, "endpoint.timeout_secs"},
		{"timeout huge", func(c *Config) { c.Endpoint.TimeoutSecs = 10000 }, "endpoint.timeout_secs"},
		{"bad backend", func(c *Config) { c.Storage.Backend = "s3" }, "storage.backend"},
		{"redis without addr", func(c *Config) { c.Storage.Backend = BackendRedis; c.Storage.RedisAddr = "" }, "storage.redis_addr"},
		{"blank key", func(c *Config) { c.Storage.Key = "  " }, "storage.key"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			fields := make([]string, 0, len(verrs))
			for _, v := range verrs {
				fields = append(fields, v.Field)
			}
			assert.Contains(t, fields, tc.field)
		})
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Endpoint.URL = "https://saved.example.com/chat"
	cfg.UI.Markdown = false
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Endpoint, loaded.Endpoint)
	assert.False(t, loaded.UI.Markdown)
}

func TestStoragePath(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	p, err := cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), p)

	cfg.Storage.Backend = BackendSQLite
	p, err = cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transcript.db"), p)

	cfg.Storage.Path = "/explicit"
	p, err = cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, "/explicit", p)
}

func TestConfig_String(t *testing.T) {
	out := Default().String()
	assert.Contains(t, out, "[endpoint]")
	assert.Contains(t, out, "localhost:8000")
}
