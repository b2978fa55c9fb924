// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"context"

	"github.com/taibuivan/hoarder/internal/platform/apperr"
	"github.com/taibuivan/hoarder/internal/platform/dberr"
	"github.com/taibuivan/hoarder/pkg/dbtx"
)

type postgresHydrator struct {
	db dbtx.Querier
}

// NewHydrator constructs a [Hydrator] over db, which may be a
// *pgxpool.Pool for standalone calls or a pgx.Tx to participate in a
// caller's transaction.
func NewHydrator(db dbtx.Querier) Hydrator {
	return &postgresHydrator{db: db}
}

const hydrateQuery = `
SELECT s.id, s.external_metadata, s.created_at, s.updated_at,
       es.id, es.slug, es.name
FROM media.sources s
JOIN media.external_services es ON es.id = s.external_service_id
WHERE s.id = ANY($1)`

func (h *postgresHydrator) Hydrate(ctx context.Context, ids []string) ([]Source, error) {
	ids = dedup(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := h.db.Query(ctx, hydrateQuery, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "Source", "")
	}
	defer rows.Close()

	out := make([]Source, 0, len(ids))
	for rows.Next() {
		var (
			s        Source
			rawMeta  []byte
			service  ExternalService
		)
		if err := rows.Scan(&s.ID, &rawMeta, &s.CreatedAt, &s.UpdatedAt, &service.ID, &service.Slug, &service.Name); err != nil {
			return nil, dberr.Wrap(err, "Source", "")
		}

		meta, err := decodeMetadata(service.Slug, rawMeta)
		if err != nil {
			return nil, apperr.Serialization("malformed external_metadata for source "+s.ID, err)
		}

		s.ExternalService = service
		s.ExternalMetadata = meta
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Source", "")
	}
	return out, nil
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
