// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package replica defines the Replica Accessor: listing a medium's
replicas in display order, and reordering them without ever violating
the unique(medium_id, display_order) constraint mid-transaction.
*/
package replica

import "time"

// Replica is a concrete file representation of a medium.
type Replica struct {
	ID           string    `json:"id"`
	MediumID     string    `json:"medium_id"`
	DisplayOrder int       `json:"display_order"`
	HasThumbnail bool      `json:"has_thumbnail"`
	OriginalURL  string    `json:"original_url"`
	MimeType     string    `json:"mime_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
