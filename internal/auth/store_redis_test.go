// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestRedisSessionCache_SetGetDel covers the basic contract and key namespacing.
*/
func TestRedisSessionCache_SetGetDel(t *testing.T) {
	server, client := newTestRedis(t)
	cache := NewSessionCache(client, time.Hour)
	ctx := context.Background()

	// 1. Absent key
	_, found, err := cache.Get(ctx, "1")
	require.NoError(t, err)
	assert.False(t, found)

	// 2. Set overwrites
	require.NoError(t, cache.Set(ctx, "1", "first"))
	require.NoError(t, cache.Set(ctx, "1", "second"))

	value, found, err := cache.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", value)
	assert.True(t, server.Exists("auth:session:1"))

	// 3. Del is idempotent
	require.NoError(t, cache.Del(ctx, "1"))
	require.NoError(t, cache.Del(ctx, "1"))

	_, found, err = cache.Get(ctx, "1")
	require.NoError(t, err)
	assert.False(t, found)
}

/*
TestRedisSessionCache_Expiry checks that entries vanish after the session TTL.
*/
func TestRedisSessionCache_Expiry(t *testing.T) {
	server, client := newTestRedis(t)
	cache := NewSessionCache(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "7", "token"))
	server.FastForward(time.Hour + time.Second)

	_, found, err := cache.Get(ctx, "7")
	require.NoError(t, err)
	assert.False(t, found)
}

/*
TestRedisSessionCache_Swap verifies compare-and-swap semantics.
*/
func TestRedisSessionCache_Swap(t *testing.T) {
	server, client := newTestRedis(t)
	cache := NewSessionCache(client, time.Hour)
	ctx := context.Background()

	// 1. Nothing stored: no swap
	swapped, err := cache.Swap(ctx, "3", "old", "new")
	require.NoError(t, err)
	assert.False(t, swapped)
	assert.False(t, server.Exists("auth:session:3"))

	// 2. Matching value: swapped with a fresh TTL
	require.NoError(t, cache.Set(ctx, "3", "old"))
	server.FastForward(30 * time.Minute)

	swapped, err = cache.Swap(ctx, "3", "old", "new")
	require.NoError(t, err)
	assert.True(t, swapped)
	assert.Equal(t, time.Hour, server.TTL("auth:session:3"))

	// 3. Stale value: untouched
	swapped, err = cache.Swap(ctx, "3", "old", "newer")
	require.NoError(t, err)
	assert.False(t, swapped)

	value, _, err := cache.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "new", value)
}

/*
TestRedisSessionCache_Unavailable surfaces store failures as errors.
*/
func TestRedisSessionCache_Unavailable(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	defer client.Close()

	cache := NewSessionCache(client, time.Hour)
	server.Close()

	ctx := context.Background()
	assert.Error(t, cache.Set(ctx, "1", "x"))
	_, _, err = cache.Get(ctx, "1")
	assert.Error(t, err)
	assert.Error(t, cache.Del(ctx, "1"))
	_, err = cache.Swap(ctx, "1", "x", "y")
	assert.Error(t, err)
}

/*
TestSessionKey formats the decimal user ID.
*/
func TestSessionKey(t *testing.T) {
	assert.Equal(t, "1", SessionKey(1))
	assert.Equal(t, "9007199254740993", SessionKey(9007199254740993))
}
