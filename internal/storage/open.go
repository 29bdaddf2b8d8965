// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jeranaias/chatbot-tui/internal/config"
)

// Open creates the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (KV, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemoryKV(), nil
	case config.BackendRedis:
		return NewRedisKV(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisPrefix)
	case config.BackendFile, config.BackendSQLite:
		path, err := cfg.StoragePath()
		if err != nil {
			return nil, err
		}
		if cfg.Storage.Backend == config.BackendSQLite {
			return NewSQLiteKV(ctx, path)
		}
		return NewFileKV(path)
	default:
		return nil, errors.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Describe returns a short human-readable location of the backend.
func Describe(cfg *config.Config) string {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return "memory"
	case config.BackendRedis:
		return "redis://" + cfg.Storage.RedisAddr + "/" + cfg.Storage.RedisPrefix + cfg.Storage.Key
	default:
		path, err := cfg.StoragePath()
		if err != nil {
			return cfg.Storage.Backend
		}
		return cfg.Storage.Backend + ":" + path
	}
}
