// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package source defines external sources: references to a medium's
identifier on a third-party service (Twitter, Pixiv, Skeb, ...), plus
the Source Hydrator that expands source ids into full records joined to
their [ExternalService].
*/
package source

import (
	"encoding/json"
	"time"
)

// ExternalService is a named third-party system with a stable slug and
// a display name.
type ExternalService struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Metadata is the closed sum of known external-metadata shapes, keyed by
// ExternalService.Slug. Unknown slugs decode to [Custom] rather than
// producing an error.
type Metadata interface {
	isMetadata()
}

// Pixiv is the metadata shape for the "pixiv" external service.
type Pixiv struct {
	ID uint64 `json:"id"`
}

func (Pixiv) isMetadata() {}

// Twitter is the metadata shape for the "twitter" external service.
type Twitter struct {
	ID uint64 `json:"id"`
}

func (Twitter) isMetadata() {}

// Skeb is the metadata shape for the "skeb" external service.
type Skeb struct {
	ID        uint64 `json:"id"`
	CreatorID string `json:"creator_id"`
}

func (Skeb) isMetadata() {}

// Custom is the escape hatch for an external service whose slug this
// package does not know how to decode a specific shape for. Value holds
// the raw jsonb payload verbatim.
type Custom struct {
	Slug  string          `json:"-"`
	Value json.RawMessage `json:"value"`
}

func (Custom) isMetadata() {}

// Source is a reference to a third-party identifier for a medium.
type Source struct {
	ID                string          `json:"id"`
	ExternalService   ExternalService `json:"external_service"`
	ExternalMetadata  Metadata        `json:"external_metadata"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
