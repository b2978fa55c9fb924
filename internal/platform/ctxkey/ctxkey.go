// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the unexported key type and the keys used to
// store values in a [context.Context], keeping them collision-free
// across packages.
package ctxkey

// key is an unexported type so that values set by this package cannot
// collide with keys defined by other packages.
type key int

const (
	// KeyRequestID stores the inbound request id.
	KeyRequestID key = iota
	// KeyLogger stores a request-scoped *slog.Logger.
	KeyLogger
)
