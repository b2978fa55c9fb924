// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values shared across the
repository and its collaborators.

Using this package ensures magic strings and magic numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "hoarder"
	AppVersion = "0.1.0-dev"
)

// # Timeouts

const (
	// GlobalQueryTimeout is the per-connection statement_timeout applied by
	// the Postgres pool.
	GlobalQueryTimeout = 30 * time.Second

	// ShutdownTimeout is how long callers should wait for in-flight
	// repository calls to finish before forcing a pool close.
	ShutdownTimeout = 30 * time.Second
)

// # Database Schema

const (
	// SchemaMedia is the Postgres schema namespacing all tables in §6.1.
	SchemaMedia = "media"
)

// # Hydration Defaults

const (
	// DefaultFetchLimit bounds a keyset page when the caller supplies no limit.
	DefaultFetchLimit = 50

	// MaxFetchLimit is the hard ceiling enforced on any caller-supplied limit.
	MaxFetchLimit = 200
)
