// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestDecodeMetadata_KnownSlugs verifies Pixiv, Twitter and Skeb payloads
decode into their typed variants.
*/
func TestDecodeMetadata_KnownSlugs(t *testing.T) {
	tests := []struct {
		name string
		slug string
		raw  string
		want Metadata
	}{
		{"pixiv", "pixiv", `{"type":"pixiv","id":2222222}`, Pixiv{ID: 2222222}},
		{"twitter", "twitter", `{"type":"twitter","id":111111111111}`, Twitter{ID: 111111111111}},
		{"skeb", "skeb", `{"type":"skeb","id":42,"creator_id":"artist-1"}`, Skeb{ID: 42, CreatorID: "artist-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeMetadata(tt.slug, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestDecodeMetadata_UnknownSlug verifies an unrecognized external service
slug decodes to Custom rather than erroring.
*/
func TestDecodeMetadata_UnknownSlug(t *testing.T) {
	raw := `{"type":"fanbox","id":9}`

	got, err := decodeMetadata("fanbox", []byte(raw))

	require.NoError(t, err)
	custom, ok := got.(Custom)
	require.True(t, ok)
	assert.Equal(t, "fanbox", custom.Slug)
	assert.JSONEq(t, raw, string(custom.Value))
}

/*
TestEncodeMetadata_StampsType verifies the "type" discriminator is
always present on encode, even though decode does not require it.
*/
func TestEncodeMetadata_StampsType(t *testing.T) {
	raw, err := encodeMetadata("pixiv", Pixiv{ID: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pixiv","id":7}`, string(raw))
}

/*
TestEncodeMetadata_Custom verifies a Custom value's raw payload is
passed through opaquely.
*/
func TestEncodeMetadata_Custom(t *testing.T) {
	raw, err := encodeMetadata("fanbox", Custom{Slug: "fanbox", Value: []byte(`{"type":"fanbox","id":9}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"fanbox","id":9}`, string(raw))
}
