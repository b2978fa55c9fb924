// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dbtx defines the narrow database-execution surface shared by the
media repository and its collaborators (tag, source, replica).

Both *pgxpool.Pool and pgx.Tx satisfy [Querier]; accepting the interface
instead of a concrete type lets a collaborator run either against the
pool directly (for standalone reads) or inside a caller's transaction
(for compound writes), without the collaborator ever choosing which.
*/
package dbtx

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
