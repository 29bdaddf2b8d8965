// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisKV stores values as plain redis strings under Prefix+key.
type RedisKV struct {
	client *redis.Client
	Prefix string
}

// NewRedisKV connects to addr and verifies the connection with PING.
func NewRedisKV(ctx context.Context, addr, prefix string) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, backendErr("redis", "open", errors.Wrapf(err, "ping %s", addr))
	}
	return &RedisKV{client: client, Prefix: prefix}, nil
}

// Get implements KV.
func (s *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.Prefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, backendErr("redis", "get", err)
	}
	return value, nil
}

// Set implements KV. Values never expire.
func (s *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return backendErr("redis", "set", s.client.Set(ctx, s.Prefix+key, value, 0).Err())
}

// Delete implements KV.
func (s *RedisKV) Delete(ctx context.Context, key string) error {
	return backendErr("redis", "delete", s.client.Del(ctx, s.Prefix+key).Err())
}

// Close implements KV.
func (s *RedisKV) Close() error {
	return s.client.Close()
}

var _ KV = (*RedisKV)(nil)
