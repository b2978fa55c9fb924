// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media implements the media repository: the aggregate root of the
catalog, its compound mutations, and its three keyset-paginated readers.

Core Responsibility:

  - Identity: Medium, the aggregate of sources, tags and replicas.
  - Persistence: create, fetch_by_ids, fetch_by_source_ids,
    fetch_by_tag_ids, fetch_all, update_by_id, delete_by_id.
  - Composition: on-demand hydration via the tag/source/replica
    collaborators; sources and replicas are gated by include flags,
    tags are always hydrated.

This package owns none of sources, tags or replicas directly — it wires
and unwires associations to rows owned by sibling repositories.
*/
package media

import (
	"time"

	"github.com/taibuivan/hoarder/internal/replica"
	"github.com/taibuivan/hoarder/internal/source"
	"github.com/taibuivan/hoarder/internal/tag"
	"github.com/taibuivan/hoarder/pkg/cursor"
)

// # Core Entity

// Medium is the aggregate root of the catalog.
type Medium struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Sources is ordered by source id ascending.
	Sources []source.Source `json:"sources,omitempty"`
	// Replicas is ordered by display_order ascending.
	Replicas []replica.Replica `json:"replicas,omitempty"`
	// Tags is ordered by (TagType.Slug, TagType.ID) ascending; each
	// group's Tags is ordered by (Kana, Name, ID) ascending.
	Tags []TagGroup `json:"tags,omitempty"`
}

// TagGroup is one entry of Medium.Tags: the materialized tags a medium
// carries under a single [tag.TagType].
type TagGroup struct {
	Type tag.TagType         `json:"type"`
	Tags []tag.Materialized `json:"tags"`
}

// # Pagination Controls

// Direction re-exports [cursor.Direction] so callers of this package
// need not import pkg/cursor directly for the common case.
type Direction = cursor.Direction

const (
	Ascending  = cursor.Ascending
	Descending = cursor.Descending
)

// TagDepth re-exports [tag.Depth].
type TagDepth = tag.Depth

// TagPair re-exports [tag.Pair].
type TagPair = tag.Pair

// FetchOptions controls hydration and hydration depth for every
// repository method. Tags are never gated behind an include flag the
// way sources and replicas are: a Medium's tags are part of its
// canonical aggregate and are always populated. TagDepth only controls
// how deep the parent/children expansion goes; a nil TagDepth hydrates
// to Depth{0, 0} (ids and scalar fields only), per the open-question
// resolution documented on [Repository].
type FetchOptions struct {
	TagDepth        *TagDepth
	IncludeReplicas bool
	IncludeSources  bool
}

// # Compound Mutation Input

// UpdateParams describes the compound mutation applied by update_by_id,
// executed in the order documented on [Repository.UpdateByID].
type UpdateParams struct {
	AddSourceIDs    []string
	RemoveSourceIDs []string
	AddTagPairs     []TagPair
	RemoveTagPairs  []TagPair
	// ReplicaOrder, when non-nil, must be a permutation of the medium's
	// current replica ids; nil means "leave replica order untouched".
	ReplicaOrder []string
	// CreatedAt, when non-nil, overwrites the medium's creation timestamp.
	CreatedAt *time.Time

	TagDepth        *TagDepth
	IncludeReplicas bool
	IncludeSources  bool
}

// # Deletion Result

// DeleteResult reports the outcome of delete_by_id.
type DeleteResult struct {
	// Deleted is 1 on success, 0 when the id did not exist (in which
	// case the repository also returns a NotFound error).
	Deleted int
}
