// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import "context"

// # Tag Hydration

// Hydrator expands a set of tag ids into materialized tags as defined in
// this package's Materialized type.
type Hydrator interface {

	/*
		Hydrate returns the materialized form of every id in ids that still
		exists, each expanded to depth.Parent ancestor levels and
		depth.Child descendant levels.

		Parameters:
		  - context: context.Context
		  - ids: []string (tag ids to materialize; duplicates collapsed)
		  - depth: Depth (ancestor/descendant expansion bound)

		Returns:
		  - []Materialized: one entry per id found, in no particular order
		    (callers re-key and re-sort per the aggregate they are building)
		  - error: Internal on storage failure; ids that do not exist are
		    silently omitted rather than erroring, consistent with
		    fetch_by_ids' "missing ids are silently skipped"
	*/
	Hydrate(context context.Context, ids []string, depth Depth) ([]Materialized, error)
}
