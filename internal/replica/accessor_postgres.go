// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package replica

import (
	"context"
	"sort"

	"github.com/taibuivan/hoarder/internal/platform/apperr"
	"github.com/taibuivan/hoarder/internal/platform/dberr"
	"github.com/taibuivan/hoarder/pkg/dbtx"
)

type postgresAccessor struct {
	db dbtx.Querier
}

// NewAccessor constructs an [Accessor] over db, which may be a
// *pgxpool.Pool for standalone listing or a pgx.Tx so that Reorder
// participates in a caller's compound update_by_id transaction.
func NewAccessor(db dbtx.Querier) Accessor {
	return &postgresAccessor{db: db}
}

const listQuery = `
SELECT r.id, r.medium_id, r.display_order, r.original_url, r.mime_type,
       r.created_at, r.updated_at,
       EXISTS (SELECT 1 FROM media.thumbnails th WHERE th.replica_id = r.id) AS has_thumbnail
FROM media.replicas r
WHERE r.medium_id = $1
ORDER BY r.display_order ASC`

func (a *postgresAccessor) List(ctx context.Context, mediumID string) ([]Replica, error) {
	rows, err := a.db.Query(ctx, listQuery, mediumID)
	if err != nil {
		return nil, dberr.Wrap(err, "Medium", mediumID)
	}
	defer rows.Close()

	var out []Replica
	for rows.Next() {
		var r Replica
		if err := rows.Scan(&r.ID, &r.MediumID, &r.DisplayOrder, &r.OriginalURL, &r.MimeType, &r.CreatedAt, &r.UpdatedAt, &r.HasThumbnail); err != nil {
			return nil, dberr.Wrap(err, "Medium", mediumID)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Medium", mediumID)
	}
	return out, nil
}

func (a *postgresAccessor) Reorder(ctx context.Context, mediumID string, orderedReplicaIDs []string) error {
	current, err := a.currentIDs(ctx, mediumID)
	if err != nil {
		return err
	}

	if !isPermutation(current, orderedReplicaIDs) {
		return apperr.ReplicaOrderMismatch(mediumID)
	}

	// Pass 1: move every replica to a temporary negative offset so that
	// no intermediate state can collide with another row's existing
	// display_order under the unique(medium_id, display_order) index.
	for i, id := range orderedReplicaIDs {
		if _, err := a.db.Exec(ctx, `UPDATE media.replicas SET display_order = $1, updated_at = now() WHERE id = $2 AND medium_id = $3`, -(i + 1), id, mediumID); err != nil {
			return dberr.Wrap(err, "Medium", mediumID)
		}
	}

	// Pass 2: move every replica to its final 1-based position.
	for i, id := range orderedReplicaIDs {
		if _, err := a.db.Exec(ctx, `UPDATE media.replicas SET display_order = $1, updated_at = now() WHERE id = $2 AND medium_id = $3`, i+1, id, mediumID); err != nil {
			return dberr.Wrap(err, "Medium", mediumID)
		}
	}

	return nil
}

const currentIDsQuery = `SELECT id FROM media.replicas WHERE medium_id = $1`

func (a *postgresAccessor) currentIDs(ctx context.Context, mediumID string) ([]string, error) {
	rows, err := a.db.Query(ctx, currentIDsQuery, mediumID)
	if err != nil {
		return nil, dberr.Wrap(err, "Medium", mediumID)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "Medium", mediumID)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Medium", mediumID)
	}
	return ids, nil
}

// isPermutation reports whether candidate contains exactly the elements
// of current, once each, regardless of order.
func isPermutation(current, candidate []string) bool {
	if len(current) != len(candidate) {
		return false
	}

	a := append([]string(nil), current...)
	b := append([]string(nil), candidate...)
	sort.Strings(a)
	sort.Strings(b)

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
