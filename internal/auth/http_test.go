// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ghibli/internal/platform/constants"
	"github.com/taibuivan/ghibli/internal/platform/middleware"
)

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Details []struct {
		Field string `json:"field"`
	} `json:"details"`
}

func newTestRouter(t *testing.T) (http.Handler, *testEnv) {
	t.Helper()

	env := newTestEnv(t)
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(env.codec))
	router.Mount("/auth", NewHandler(env.service, CookieWriter{Secure: true}).Routes())

	return router, env
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, modify func(*http.Request)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if modify != nil {
		modify(request)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var decoded envelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

func refreshCookieOf(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.RefreshTokenCookieName {
			return cookie
		}
	}
	return nil
}

func withCookie(value string) func(*http.Request) {
	return func(request *http.Request) {
		request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: value})
	}
}

func withBearer(token string) func(*http.Request) {
	return func(request *http.Request) {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
}

/*
TestHandler_SignUp covers creation, validation, and the duplicate email conflict.
*/
func TestHandler_SignUp(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder, body := doRequest(t, router, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","username":"a","password":"p1"}`, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, string(body.Data), `"id":1`)
	assert.NotContains(t, recorder.Body.String(), "argon2id")

	recorder, body = doRequest(t, router, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","username":"b","password":"p2"}`, nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, FieldEmail, body.Details[0].Field)

	recorder, body = doRequest(t, router, http.MethodPost, "/auth/signup",
		`{"email":"not-an-email","username":"c","password":"p3"}`, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	recorder, _ = doRequest(t, router, http.MethodPost, "/auth/signup", `{`, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHandler_SessionLifecycle drives login, me, refresh, replay, and logout over HTTP.
*/
func TestHandler_SessionLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","username":"a","password":"p1"}`, nil)

	// 1. Login sets the cookie; the token never appears in the body
	recorder, body := doRequest(t, router, http.MethodPost, "/auth/login",
		`{"identifier":"a","password":"p1"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	cookie := refreshCookieOf(recorder)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.NotContains(t, recorder.Body.String(), cookie.Value)

	var login loginResponse
	require.NoError(t, json.Unmarshal(body.Data, &login))
	assert.Equal(t, int64(1), login.User.ID)
	require.NotEmpty(t, login.AccessToken)

	// 2. Me with the access token
	recorder, _ = doRequest(t, router, http.MethodGet, "/auth/me", "", withBearer(login.AccessToken))
	assert.Equal(t, http.StatusOK, recorder.Code)

	// 3. Refresh rotates
	recorder, body = doRequest(t, router, http.MethodPost, "/auth/refresh", "", withCookie(cookie.Value))
	require.Equal(t, http.StatusOK, recorder.Code)
	rotated := refreshCookieOf(recorder)
	require.NotNil(t, rotated)
	assert.NotEqual(t, cookie.Value, rotated.Value)
	assert.Contains(t, string(body.Data), "accessToken")

	// 4. Replay is refused without detail
	recorder, body = doRequest(t, router, http.MethodPost, "/auth/refresh", "", withCookie(cookie.Value))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, body.Details)

	// 5. Logout clears the cookie and kills the rotated token
	recorder, _ = doRequest(t, router, http.MethodPost, "/auth/logout", "", withBearer(login.AccessToken))
	require.Equal(t, http.StatusOK, recorder.Code)
	cleared := refreshCookieOf(recorder)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	recorder, _ = doRequest(t, router, http.MethodPost, "/auth/refresh", "", withCookie(rotated.Value))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_LoginFailures returns one detail naming the failing field.
*/
func TestHandler_LoginFailures(t *testing.T) {
	router, _ := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","username":"a","password":"p1"}`, nil)

	recorder, body := doRequest(t, router, http.MethodPost, "/auth/login",
		`{"identifier":"a@x.com","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, FieldPassword, body.Details[0].Field)
	assert.Nil(t, refreshCookieOf(recorder))

	recorder, body = doRequest(t, router, http.MethodPost, "/auth/login",
		`{"identifier":"ghost","password":"p1"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, FieldIdentifier, body.Details[0].Field)

	recorder, body = doRequest(t, router, http.MethodPost, "/auth/login", `{"identifier":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Len(t, body.Details, 2)
}

/*
TestHandler_AnonymousAccess checks the protected and never-failing routes without a token.
*/
func TestHandler_AnonymousAccess(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder, _ := doRequest(t, router, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, _ = doRequest(t, router, http.MethodGet, "/auth/me", "", withBearer("forged"))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, body := doRequest(t, router, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "true", string(body.Data))
	assert.Nil(t, refreshCookieOf(recorder))

	recorder, _ = doRequest(t, router, http.MethodPost, "/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
