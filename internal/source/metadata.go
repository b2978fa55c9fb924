// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import "encoding/json"

// decodeMetadata decodes raw jsonb bytes into the [Metadata] variant
// matching slug. Unknown slugs produce a [Custom] variant rather than
// an error, per §4.3/§6.2.
func decodeMetadata(slug string, raw []byte) (Metadata, error) {
	switch slug {
	case "pixiv":
		var m Pixiv
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	case "twitter":
		var m Twitter
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	case "skeb":
		var m Skeb
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return Custom{Slug: slug, Value: json.RawMessage(raw)}, nil
	}
}

// encodeMetadata serializes m back to the jsonb payload stored in
// media.sources.external_metadata, re-stamping the "type" discriminator
// from slug so the stored shape always matches §6.2 even though decode
// trusts the joined external_services.slug column instead of re-reading it.
func encodeMetadata(slug string, m Metadata) ([]byte, error) {
	if c, ok := m.(Custom); ok {
		return c.Value, nil
	}

	fields, err := toFieldMap(m)
	if err != nil {
		return nil, err
	}
	fields["type"] = slug

	return json.Marshal(fields)
}

func toFieldMap(m Metadata) (map[string]any, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
