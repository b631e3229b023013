// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"context"
	"sync"

	"github.com/taibuivan/ghibli/internal/auth"
)

type cookieJarKey struct{}

// cookieJar carries the refresh cookie into an operation and the resulting
// directive back out to the [Handler].
type cookieJar struct {
	incoming string

	mu       sync.Mutex
	outgoing *auth.RefreshCookie
}

func withCookieJar(ctx context.Context, jar *cookieJar) context.Context {
	return context.WithValue(ctx, cookieJarKey{}, jar)
}

// jarFrom returns the jar of the operation, or an empty one when the schema
// is executed outside of [Handler].
func jarFrom(ctx context.Context) *cookieJar {
	jar, ok := ctx.Value(cookieJarKey{}).(*cookieJar)
	if !ok {
		return &cookieJar{}
	}
	return jar
}

// set records a directive; the last mutation of an operation wins.
func (jar *cookieJar) set(directive *auth.RefreshCookie) {
	if directive == nil {
		return
	}

	jar.mu.Lock()
	defer jar.mu.Unlock()
	jar.outgoing = directive
}

func (jar *cookieJar) directive() *auth.RefreshCookie {
	jar.mu.Lock()
	defer jar.mu.Unlock()
	return jar.outgoing
}
