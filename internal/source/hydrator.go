// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import "context"

// Hydrator expands source ids into full [Source] records joined to
// their [ExternalService].
type Hydrator interface {

	/*
		Hydrate returns the fully hydrated sources for ids that still exist.

		Parameters:
		  - context: context.Context
		  - ids: []string (source ids; duplicates collapsed)

		Returns:
		  - []Source: one entry per id found, in no particular order
		  - error: Internal on storage failure; Serialization when a row's
		    external_metadata does not decode for its service slug
	*/
	Hydrate(context context.Context, ids []string) ([]Source, error)
}
