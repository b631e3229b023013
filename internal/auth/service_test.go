// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ghibli/internal/platform/apperr"
	"github.com/taibuivan/ghibli/internal/platform/sec"
)

/*
TestService_Scenario walks the full session lifecycle of a single user:
sign up, log in by username, refresh once, then replay the old cookie.
*/
func TestService_Scenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 1. Sign up
	user, err := env.service.SignUp(ctx, SignUpInput{Email: "a@x.com", Username: "a", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEqual(t, "p1", user.PasswordHash)

	// 2. Log in
	login, err := env.service.Login(ctx, LoginInput{Identifier: "a", Password: "p1"})
	require.NoError(t, err)
	require.Empty(t, login.Errors)
	assert.Equal(t, int64(1), login.User.ID)
	assert.NotEmpty(t, login.AccessToken)
	require.NotNil(t, login.RefreshCookie)
	require.NotEmpty(t, login.RefreshCookie.Value)

	// 3. Refresh rotates the cookie
	refreshed, err := env.service.RefreshAccessToken(ctx, login.RefreshCookie.Value)
	require.NoError(t, err)
	require.NotNil(t, refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)
	require.NotNil(t, refreshed.RefreshCookie)
	assert.NotEqual(t, login.RefreshCookie.Value, refreshed.RefreshCookie.Value)

	// 4. The old cookie is now worthless
	replayed, err := env.service.RefreshAccessToken(ctx, login.RefreshCookie.Value)
	require.NoError(t, err)
	assert.Nil(t, replayed)

	// 5. The rotated cookie still works
	again, err := env.service.RefreshAccessToken(ctx, refreshed.RefreshCookie.Value)
	require.NoError(t, err)
	assert.NotNil(t, again)
}

/*
TestService_LoginByEmailMatchesSignUp checks that the logged-in user is the one created.
*/
func TestService_LoginByEmailMatchesSignUp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, input := range []SignUpInput{
		{Email: "chihiro@aburaya.jp", Username: "chihiro", Password: "sen"},
		{Email: "haku@aburaya.jp", Username: "haku", Password: "kohaku-river"},
	} {
		created, err := env.service.SignUp(ctx, input)
		require.NoError(t, err)

		result, err := env.service.Login(ctx, LoginInput{Identifier: input.Email, Password: input.Password})
		require.NoError(t, err)
		require.Empty(t, result.Errors)
		assert.Equal(t, created.ID, result.User.ID)
	}
}

/*
TestService_LoginFieldErrors verifies that each failure names exactly one field.
*/
func TestService_LoginFieldErrors(t *testing.T) {
	env := newTestEnv(t)
	env.signUpAndLogin(t, "totoro@forest.jp", "totoro", "acorn")

	tests := []struct {
		name       string
		identifier string
		password   string
		field      string
	}{
		{"wrong_password_by_username", "totoro", "pinecone", FieldPassword},
		{"wrong_password_by_email", "totoro@forest.jp", "", FieldPassword},
		{"unknown_identifier", "catbus", "acorn", FieldIdentifier},
		{"unknown_identifier_any_password", "mei@forest.jp", "whatever", FieldIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := env.service.Login(context.Background(), LoginInput{Identifier: tt.identifier, Password: tt.password})
			require.NoError(t, err)

			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.field, result.Errors[0].Field)
			assert.Nil(t, result.User)
			assert.Empty(t, result.AccessToken)
			assert.Nil(t, result.RefreshCookie)
		})
	}
}

/*
TestService_EmailMatchWinsOverUsername resolves an identifier that is one
user's email and another user's username.
*/
func TestService_EmailMatchWinsOverUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.SignUp(ctx, SignUpInput{Email: "first@x.com", Username: "kiki@x.com", Password: "broom"})
	require.NoError(t, err)
	owner, err := env.service.SignUp(ctx, SignUpInput{Email: "kiki@x.com", Username: "kiki", Password: "jiji"})
	require.NoError(t, err)

	result, err := env.service.Login(ctx, LoginInput{Identifier: "kiki@x.com", Password: "jiji"})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	assert.Equal(t, owner.ID, result.User.ID)
}

/*
TestService_SignUpDuplicateEmail surfaces the uniqueness failure with a field error.
*/
func TestService_SignUpDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.SignUp(ctx, SignUpInput{Email: "san@forest.jp", Username: "san", Password: "wolf"})
	require.NoError(t, err)

	_, err = env.service.SignUp(ctx, SignUpInput{Email: "san@forest.jp", Username: "mononoke", Password: "wolf"})
	require.ErrorIs(t, err, ErrEmailTaken)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeConflict, appError.Code)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, FieldEmail, appError.Details[0].Field)
}

/*
TestService_LogoutInvalidatesRefresh checks that a logged-out refresh token is refused.
*/
func TestService_LogoutInvalidatesRefresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	login := env.signUpAndLogin(t, "howl@castle.jp", "howl", "calcifer")

	cookie := env.service.Logout(ctx, &sec.Claims{UserID: login.User.ID})
	require.NotNil(t, cookie)
	assert.True(t, cookie.Cleared())

	result, err := env.service.RefreshAccessToken(ctx, login.RefreshCookie.Value)
	require.NoError(t, err)
	assert.Nil(t, result)

	// Logging out twice is fine.
	assert.NotNil(t, env.service.Logout(ctx, &sec.Claims{UserID: login.User.ID}))
}

/*
TestService_LogoutNeverFails covers anonymous callers and an unreachable cache.
*/
func TestService_LogoutNeverFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Nil(t, env.service.Logout(ctx, nil))

	env.redis.Close()
	cookie := env.service.Logout(ctx, &sec.Claims{UserID: 42})
	require.NotNil(t, cookie)
	assert.True(t, cookie.Cleared())
}

/*
TestService_LoginReplacesPreviousSession ensures a second login revokes the first refresh token.
*/
func TestService_LoginReplacesPreviousSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.signUpAndLogin(t, "sophie@hatter.jp", "sophie", "hats")

	second, err := env.service.Login(ctx, LoginInput{Identifier: "sophie", Password: "hats"})
	require.NoError(t, err)

	result, err := env.service.RefreshAccessToken(ctx, first.RefreshCookie.Value)
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = env.service.RefreshAccessToken(ctx, second.RefreshCookie.Value)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

/*
TestService_RefreshFailsClosed lists every rejection that must yield nil without an error.
*/
func TestService_RefreshFailsClosed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	login := env.signUpAndLogin(t, "porco@adriatic.it", "porco", "savoia")

	// A refresh token with a valid signature for a user without a session.
	orphan, err := env.codec.MintRefreshToken(999)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"access_token", login.AccessToken},
		{"no_session", orphan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := env.service.RefreshAccessToken(ctx, tt.token)
			require.NoError(t, err)
			assert.Nil(t, result)
		})
	}

	// The legitimate token is unaffected by the rejected attempts.
	result, err := env.service.RefreshAccessToken(ctx, login.RefreshCookie.Value)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

/*
TestService_RefreshDeletedUser fails closed once the account is gone.
*/
func TestService_RefreshDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	login := env.signUpAndLogin(t, "nausicaa@valley.jp", "nausicaa", "ohmu")

	env.users.remove(login.User.ID)

	result, err := env.service.RefreshAccessToken(context.Background(), login.RefreshCookie.Value)
	require.NoError(t, err)
	assert.Nil(t, result)
}

/*
TestService_RefreshStoreFailure propagates cache and repository failures.
*/
func TestService_RefreshStoreFailure(t *testing.T) {
	t.Run("cache", func(t *testing.T) {
		env := newTestEnv(t)
		login := env.signUpAndLogin(t, "jiji@x.com", "jiji", "cat")

		env.redis.Close()
		_, err := env.service.RefreshAccessToken(context.Background(), login.RefreshCookie.Value)
		assert.Error(t, err)
	})

	t.Run("repository", func(t *testing.T) {
		env := newTestEnv(t)
		login := env.signUpAndLogin(t, "tombo@x.com", "tombo", "bike")

		env.users.findErr = errStoreDown
		_, err := env.service.RefreshAccessToken(context.Background(), login.RefreshCookie.Value)
		assert.ErrorIs(t, err, errStoreDown)
	})
}

/*
TestService_ConcurrentRefresh races many refreshes with one token: exactly one wins.
*/
func TestService_ConcurrentRefresh(t *testing.T) {
	env := newTestEnv(t)
	login := env.signUpAndLogin(t, "ashitaka@emishi.jp", "ashitaka", "yakul")

	const workers = 8
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		failures  atomic.Int32
	)

	start := make(chan struct{})
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			result, err := env.service.RefreshAccessToken(context.Background(), login.RefreshCookie.Value)
			if err != nil {
				failures.Add(1)
				return
			}
			if result != nil {
				successes.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(0), failures.Load())
	assert.Equal(t, int32(1), successes.Load())
}

/*
TestService_Me resolves the caller and tolerates anonymous or deleted users.
*/
func TestService_Me(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	login := env.signUpAndLogin(t, "pazu@laputa.jp", "pazu", "sheeta")

	user, err := env.service.Me(ctx, &sec.Claims{UserID: login.User.ID})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "pazu", user.Username)

	user, err = env.service.Me(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = env.service.Me(ctx, &sec.Claims{UserID: 404})
	require.NoError(t, err)
	assert.Nil(t, user)
}
