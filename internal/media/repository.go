// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"time"

	"github.com/taibuivan/hoarder/pkg/cursor"
)

// # Media Data Access

// Repository defines the data access contract for the catalog's
// aggregate root.
//
// Open question resolution: a Medium's tags are always hydrated, on
// every method below, never gated behind an include flag the way
// sources and replicas are. A nil FetchOptions.TagDepth (or
// UpdateParams.TagDepth) does not mean "tags not requested" — it means
// "hydrate to Depth{0, 0}", ids and scalar fields only, no
// parent/children expansion. This applies uniformly to fetch_by_ids,
// fetch_by_source_ids, fetch_by_tag_ids, fetch_all, create and
// update_by_id alike.
type Repository interface {

	/*
		Create persists a new medium and its initial associations in a
		single transaction.

		Parameters:
		  - context: context.Context
		  - sourceIDs: []string (duplicates collapsed; order not significant)
		  - createdAt: *time.Time (nil assigns now)
		  - tagPairs: []TagPair (duplicates collapsed)
		  - opts: FetchOptions (tags are always hydrated, to TagDepth or the
		    Depth{0,0} default; IncludeReplicas is accepted for symmetry — a
		    fresh medium always has zero replicas; sources are hydrated
		    whenever sourceIDs is non-empty, whatever IncludeSources says)

		Returns:
		  - *Medium: the fully hydrated aggregate per opts
		  - error: NotFound(Source) / NotFound(Tag) / NotFound(TagType) for a
		    dangling reference; Internal on storage failure
	*/
	Create(context context.Context, sourceIDs []string, createdAt *time.Time, tagPairs []TagPair, opts FetchOptions) (*Medium, error)

	/*
		FetchByIDs returns the media whose ids appear in ids, hydrated per
		opts, ordered by (created_at, id) ascending. No transaction is
		opened: this method composes no statements that require snapshot
		consistency across each other.

		Parameters:
		  - context: context.Context
		  - ids: []string (duplicates collapsed)
		  - opts: FetchOptions

		Returns:
		  - []Medium: one entry per id found; missing ids are silently skipped
		  - error: Internal on storage failure
	*/
	FetchByIDs(context context.Context, ids []string, opts FetchOptions) ([]Medium, error)

	/*
		FetchBySourceIDs returns media associated with at least one of
		sourceIDs (disjunction), keyset-paginated per the contract on
		Window.

		Parameters:
		  - context: context.Context
		  - sourceIDs: []string
		  - window: Window (since/until/direction/limit)
		  - opts: FetchOptions

		Returns:
		  - []Medium: page of matching media in the order Window specifies
		  - error: Internal on storage failure
	*/
	FetchBySourceIDs(context context.Context, sourceIDs []string, window Window, opts FetchOptions) ([]Medium, error)

	/*
		FetchByTagIDs returns media associated with every (tag_id,
		tag_type_id) pair in tagPairs (conjunction), keyset-paginated per
		the contract on Window.

		Parameters:
		  - context: context.Context
		  - tagPairs: []TagPair
		  - window: Window
		  - opts: FetchOptions

		Returns:
		  - []Medium: page of matching media in the order Window specifies
		  - error: Internal on storage failure
	*/
	FetchByTagIDs(context context.Context, tagPairs []TagPair, window Window, opts FetchOptions) ([]Medium, error)

	/*
		FetchAll returns all media, keyset-paginated per the contract on
		Window.

		Parameters:
		  - context: context.Context
		  - window: Window
		  - opts: FetchOptions

		Returns:
		  - []Medium: page of matching media in the order Window specifies
		  - error: Internal on storage failure
	*/
	FetchAll(context context.Context, window Window, opts FetchOptions) ([]Medium, error)

	/*
		UpdateByID applies a compound mutation atomically, in order:
		  1. overwrite created_at if params.CreatedAt is set
		  2. remove params.RemoveSourceIDs, then add params.AddSourceIDs
		  3. remove params.RemoveTagPairs, then add params.AddTagPairs
		  4. if params.ReplicaOrder is non-nil, reorder replicas to match it
		  5. stamp updated_at to now, strictly after its prior value

		Parameters:
		  - context: context.Context
		  - id: string
		  - params: UpdateParams

		Returns:
		  - *Medium: the hydrated medium per params' FetchOptions fields
		  - error: NotFound(Medium) if id does not exist;
		    ReplicaOrderMismatch if params.ReplicaOrder is not a permutation
		    of the medium's current replicas; NotFound(...) for a dangling
		    reference in params; Internal on storage failure
	*/
	UpdateByID(context context.Context, id string, params UpdateParams) (*Medium, error)

	/*
		DeleteByID removes a medium and cascades to its replicas and
		association rows, atomically.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - DeleteResult: Deleted(1) on success
		  - error: NotFound(Medium) if id does not exist
	*/
	DeleteByID(context context.Context, id string) (DeleteResult, error)
}

// Window bounds a keyset-paginated read per the contract of §4.1.a:
// sort key (created_at, id), an open range bounded exclusively by
// Since/Until, scanned in Direction and capped at Limit.
type Window struct {
	Since     *cursor.Cursor
	Until     *cursor.Cursor
	Direction Direction
	Limit     int
}
