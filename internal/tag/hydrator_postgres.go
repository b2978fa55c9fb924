// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"sort"

	"github.com/taibuivan/hoarder/internal/platform/dberr"
	"github.com/taibuivan/hoarder/pkg/dbtx"
)

// postgresHydrator implements [Hydrator] against the media.tags /
// media.tag_aliases tables, using a recursive common-table-expression
// per direction (ancestor, descendant) rather than one query per tree
// level — a single round trip strictly dominates the "one query per
// level, not per node" batching requirement.
type postgresHydrator struct {
	db dbtx.Querier
}

// NewHydrator constructs a [Hydrator] over db, which may be a
// *pgxpool.Pool for standalone calls or a pgx.Tx to participate in a
// caller's transaction (e.g. from create/update_by_id).
func NewHydrator(db dbtx.Querier) Hydrator {
	return &postgresHydrator{db: db}
}

type record struct {
	Tag
	ParentID *string
}

func (h *postgresHydrator) Hydrate(ctx context.Context, ids []string, depth Depth) ([]Materialized, error) {
	roots := dedup(ids)
	if len(roots) == 0 {
		return nil, nil
	}

	// Fetched sequentially, not concurrently: db may be a pgx.Tx bound to
	// a single physical connection (create/update_by_id hydrate inside
	// their own transaction), and pgx transactions are not safe for
	// concurrent use by multiple goroutines.
	ancestorEdges, err := h.fetchEdges(ctx, ancestorQuery, roots, depth.Parent)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag", "")
	}
	descendantEdges, err := h.fetchEdges(ctx, descendantQuery, roots, depth.Child)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag", "")
	}

	needed := make(map[string]struct{}, len(roots))
	for _, id := range roots {
		needed[id] = struct{}{}
	}
	for _, e := range ancestorEdges {
		needed[e.ID] = struct{}{}
	}
	for _, e := range descendantEdges {
		needed[e.ID] = struct{}{}
	}

	allIDs := make([]string, 0, len(needed))
	for id := range needed {
		allIDs = append(allIDs, id)
	}

	records, err := h.fetchRecords(ctx, allIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag", "")
	}

	ancestorsByRoot := groupByRoot(ancestorEdges)
	descendantsByRoot := groupByRoot(descendantEdges)

	childrenOf := make(map[string][]string)
	for id, rec := range records {
		if rec.ParentID != nil {
			childrenOf[*rec.ParentID] = append(childrenOf[*rec.ParentID], id)
		}
	}

	out := make([]Materialized, 0, len(roots))
	for _, rootID := range roots {
		rec, ok := records[rootID]
		if !ok {
			// Root id itself does not exist; silently skip, mirroring
			// fetch_by_ids' "missing ids are silently skipped".
			continue
		}

		m := Materialized{Tag: rec.Tag}
		m.Parent = buildAncestorChain(ancestorsByRoot[rootID], records)

		allowed := make(map[string]int, len(descendantsByRoot[rootID]))
		for _, e := range descendantsByRoot[rootID] {
			allowed[e.ID] = e.Distance
		}
		m.Children = buildDescendantChildren(rootID, 0, depth.Child, childrenOf, allowed, records)

		out = append(out, m)
	}

	return out, nil
}

// edge is one row of either the ancestor or descendant recursive query.
type edge struct {
	RootID   string
	ID       string
	Distance int
}

const ancestorQuery = `
WITH RECURSIVE ancestors AS (
	SELECT id AS root_id, id, parent_id, 0 AS distance
	FROM media.tags
	WHERE id = ANY($1)

	UNION ALL

	SELECT a.root_id, t.id, t.parent_id, a.distance + 1
	FROM media.tags t
	JOIN ancestors a ON t.id = a.parent_id
	WHERE a.distance < $2
)
SELECT root_id, id, distance FROM ancestors WHERE distance > 0`

const descendantQuery = `
WITH RECURSIVE descendants AS (
	SELECT id AS root_id, id, 0 AS distance
	FROM media.tags
	WHERE id = ANY($1)

	UNION ALL

	SELECT d.root_id, t.id, d.distance + 1
	FROM media.tags t
	JOIN descendants d ON t.parent_id = d.id
	WHERE d.distance < $2
)
SELECT root_id, id, distance FROM descendants WHERE distance > 0`

func (h *postgresHydrator) fetchEdges(ctx context.Context, query string, roots []string, maxDepth int) ([]edge, error) {
	if maxDepth <= 0 {
		return nil, nil
	}

	rows, err := h.db.Query(ctx, query, roots, maxDepth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []edge
	for rows.Next() {
		var e edge
		if err := rows.Scan(&e.RootID, &e.ID, &e.Distance); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

const recordsQuery = `
SELECT t.id, t.name, t.kana, t.parent_id, t.created_at, t.updated_at,
       COALESCE(array_agg(a.alias) FILTER (WHERE a.alias IS NOT NULL), '{}')
FROM media.tags t
LEFT JOIN media.tag_aliases a ON a.tag_id = t.id
WHERE t.id = ANY($1)
GROUP BY t.id`

func (h *postgresHydrator) fetchRecords(ctx context.Context, ids []string) (map[string]record, error) {
	if len(ids) == 0 {
		return map[string]record{}, nil
	}

	rows, err := h.db.Query(ctx, recordsQuery, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]record, len(ids))
	for rows.Next() {
		var r record
		if err := rows.Scan(&r.ID, &r.Name, &r.Kana, &r.ParentID, &r.CreatedAt, &r.UpdatedAt, &r.Aliases); err != nil {
			return nil, err
		}
		out[r.ID] = r
	}
	return out, rows.Err()
}

func groupByRoot(edges []edge) map[string][]edge {
	out := make(map[string][]edge)
	for _, e := range edges {
		out[e.RootID] = append(out[e.RootID], e)
	}
	return out
}

// buildAncestorChain builds the linked ancestor chain for one root from
// its edge list, ordered by increasing distance. Each tag has at most
// one parent, so at most one edge exists per distance level; an orphan
// parent (a parent_id with no matching row) simply yields no edge past
// that distance and the chain stops there.
func buildAncestorChain(edges []edge, records map[string]record) *Ancestor {
	sort.Slice(edges, func(i, j int) bool { return edges[i].Distance < edges[j].Distance })

	var chain *Ancestor
	for i := len(edges) - 1; i >= 0; i-- {
		rec, ok := records[edges[i].ID]
		if !ok {
			continue
		}
		chain = &Ancestor{Tag: rec.Tag, Parent: chain}
	}
	return chain
}

// buildDescendantChildren recursively assembles the subtree rooted at
// nodeID, restricted to ids present in allowed (the root's descendant
// edge set) and bounded by maxDepth.
func buildDescendantChildren(nodeID string, currentDistance, maxDepth int, childrenOf map[string][]string, allowed map[string]int, records map[string]record) []Descendant {
	if currentDistance >= maxDepth {
		return nil
	}

	childIDs := childrenOf[nodeID]
	if len(childIDs) == 0 {
		return nil
	}

	out := make([]Descendant, 0, len(childIDs))
	for _, childID := range childIDs {
		if _, ok := allowed[childID]; !ok {
			continue
		}
		rec, ok := records[childID]
		if !ok {
			continue
		}

		out = append(out, Descendant{
			Tag:      rec.Tag,
			Children: buildDescendantChildren(childID, currentDistance+1, maxDepth, childrenOf, allowed, records),
		})
	}

	sortTags(out)
	return out
}

// sortTags orders a Descendant slice by (kana, name, id) ascending, the
// canonical ordering for tags within a level.
func sortTags(tags []Descendant) {
	sort.Slice(tags, func(i, j int) bool {
		a, b := tags[i], tags[j]
		if a.Kana != b.Kana {
			return a.Kana < b.Kana
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
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
