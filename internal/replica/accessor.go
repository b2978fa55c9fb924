// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package replica

import "context"

// Accessor lists and reorders a medium's replicas.
type Accessor interface {

	/*
		List returns the replicas of mediumID ordered by display_order
		ascending.

		Parameters:
		  - context: context.Context
		  - mediumID: string

		Returns:
		  - []Replica: ordered replicas, empty if the medium has none
		  - error: Internal on storage failure
	*/
	List(context context.Context, mediumID string) ([]Replica, error)

	/*
		Reorder rewrites display_order so that each replica in
		orderedReplicaIDs gets its 1-based position in that slice.
		orderedReplicaIDs must be a permutation of the medium's current
		replica id multiset.

		Parameters:
		  - context: context.Context
		  - mediumID: string
		  - orderedReplicaIDs: []string (target order, 1-based)

		Returns:
		  - error: ReplicaOrderMismatch if orderedReplicaIDs is not a
		    permutation of the current replicas; Internal on storage failure
	*/
	Reorder(context context.Context, mediumID string, orderedReplicaIDs []string) error
}
