// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/taibuivan/ghibli/internal/platform/constants"
)

// # Cookie Directive

// RefreshCookie tells the transport how to update the refresh token cookie.
//
// An empty Value clears the cookie. A nil *RefreshCookie leaves it untouched.
type RefreshCookie struct {
	Value     string
	ExpiresAt time.Time
}

// clearRefreshCookie is the directive returned by logout.
func clearRefreshCookie() *RefreshCookie {
	return &RefreshCookie{}
}

// Cleared reports whether the directive removes the cookie.
func (cookie *RefreshCookie) Cleared() bool {
	return cookie.Value == ""
}

// # Cookie Writer

// CookieWriter applies [RefreshCookie] directives to HTTP responses.
type CookieWriter struct {
	// Secure marks the cookie HTTPS-only; enabled in production.
	Secure bool
}

// Write sets or clears the refresh token cookie. A nil directive is a no-op.
func (writer CookieWriter) Write(response http.ResponseWriter, directive *RefreshCookie) {
	if directive == nil {
		return
	}

	cookie := &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    directive.Value,
		Path:     constants.RefreshTokenCookiePath,
		HttpOnly: true,
		Secure:   writer.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	if directive.Cleared() {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.Expires = directive.ExpiresAt
	}

	http.SetCookie(response, cookie)
}
