// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ghibli/internal/platform/constants"
)

// swapScript replaces KEYS[1] with ARGV[2] only while it still holds ARGV[1].
var swapScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
	return 1
end
return 0
`)

// RedisSessionCache implements SessionCache using Redis.
//
// Every entry expires after ttl, which callers set to the refresh token lifetime.
type RedisSessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new Redis-backed SessionCache.
func NewSessionCache(client *redis.Client, ttl time.Duration) *RedisSessionCache {
	return &RedisSessionCache{client: client, ttl: ttl}
}

func (cache *RedisSessionCache) key(key string) string {
	return constants.RedisPrefixSession + key
}

/*
Set stores the refresh token of a user, replacing any previous one.

Parameters:
  - context: context.Context
  - key: string (Session key)
  - value: string (Refresh token)

Returns:
  - error: Execution errors
*/
func (cache *RedisSessionCache) Set(context context.Context, key, value string) error {
	if err := cache.client.Set(context, cache.key(key), value, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the stored refresh token of a user.

Returns:
  - string: Refresh token
  - bool: false if no session exists
  - error: Connectivity errors
*/
func (cache *RedisSessionCache) Get(context context.Context, key string) (string, bool, error) {
	value, err := cache.client.Get(context, cache.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_session_get_failed: %w", err)
	}
	return value, true, nil
}

/*
Del removes the session of a user.

Returns:
  - error: Deletion failures
*/
func (cache *RedisSessionCache) Del(context context.Context, key string) error {
	if err := cache.client.Del(context, cache.key(key)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

/*
Swap atomically rotates the stored refresh token.

Description: Runs a Lua script so that the comparison and the write happen
as one Redis command. The new entry gets a fresh TTL.

Returns:
  - bool: true if old was still current and has been replaced
  - error: Execution failures
*/
func (cache *RedisSessionCache) Swap(context context.Context, key, old, next string) (bool, error) {
	swapped, err := swapScript.Run(context, cache.client,
		[]string{cache.key(key)},
		old, next, cache.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis_session_swap_failed: %w", err)
	}
	return swapped == 1, nil
}
