// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys for the values the DreckTrack
// middleware chain attaches to each request: the correlation id, the
// request-scoped logger and the caller's access-token claims.
//
// Each key has its own empty struct type, so no other package can build an
// equal key. Read and write the values through package ctxutil.
package ctxkey

type (
	requestIDKey struct{}
	userKey      struct{}
	loggerKey    struct{}
)

var (
	// KeyRequestID carries the X-Request-ID value (a UUIDv7 unless the client sent one).
	KeyRequestID = requestIDKey{}

	// KeyUser carries the verified [sec.AuthClaims] of the collection owner.
	KeyUser = userKey{}

	// KeyLogger carries the request logger tagged with request id, method and path.
	KeyLogger = loggerKey{}
)
