// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ghibli/internal/platform/sec"
)

// memoryUserRepository is an in-memory UserRepository.
type memoryUserRepository struct {
	mu      sync.Mutex
	users   []*User
	nextID  int64
	findErr error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{nextID: 1}
}

func (repository *memoryUserRepository) FindByID(_ context.Context, id int64) (*User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.findErr != nil {
		return nil, repository.findErr
	}

	for _, user := range repository.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (repository *memoryUserRepository) FindByEmailOrUsername(_ context.Context, identifier string) (*User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.findErr != nil {
		return nil, repository.findErr
	}

	var match *User
	for _, user := range repository.users {
		if user.Email == identifier {
			match = user
			break
		}
		if match == nil && user.Username == identifier {
			match = user
		}
	}

	if match == nil {
		return nil, ErrUserNotFound
	}
	copied := *match
	return &copied, nil
}

func (repository *memoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}

	now := time.Now()
	user.ID = repository.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	repository.nextID++

	copied := *user
	repository.users = append(repository.users, &copied)
	return nil
}

func (repository *memoryUserRepository) remove(id int64) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for i, user := range repository.users {
		if user.ID == id {
			repository.users = append(repository.users[:i], repository.users[i+1:]...)
			return
		}
	}
}

var errStoreDown = errors.New("store unavailable")

// testEnv bundles a Service with the doubles behind it.
type testEnv struct {
	service *Service
	users   *memoryUserRepository
	cache   *RedisSessionCache
	codec   *sec.TokenCodec
	redis   *miniredis.Miniredis
}

func newTestCodec(t *testing.T) *sec.TokenCodec {
	t.Helper()

	codec, err := sec.NewTokenCodec(sec.TokenConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "ghibli-test",
	})
	require.NoError(t, err)
	return codec
}

func newTestHasher(t *testing.T) *sec.Argon2Hasher {
	t.Helper()

	hasher, err := sec.NewArgon2Hasher(sec.Argon2Params{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	require.NoError(t, err)
	return hasher
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return server, client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	server, client := newTestRedis(t)
	env := &testEnv{
		users: newMemoryUserRepository(),
		cache: NewSessionCache(client, 7*24*time.Hour),
		codec: newTestCodec(t),
		redis: server,
	}
	env.service = NewService(env.users, env.cache, env.codec, newTestHasher(t))

	return env
}

// signUpAndLogin registers an account and opens a session for it.
func (env *testEnv) signUpAndLogin(t *testing.T, email, username, password string) *LoginResult {
	t.Helper()

	_, err := env.service.SignUp(context.Background(), SignUpInput{Email: email, Username: username, Password: password})
	require.NoError(t, err)

	result, err := env.service.Login(context.Background(), LoginInput{Identifier: username, Password: password})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	return result
}
