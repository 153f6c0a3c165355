package domain

import (
	"encoding/json"
	"sort"
)

// DecodeSections converts a persisted section payload into a section list.
// Stored data may arrive as a decoded array of maps (the canonical Firestore
// shape), as a JSON string or byte slice written by older clients, or as an
// already-typed slice. The second return value reports whether the payload
// was well formed; callers treat a malformed payload as an empty list rather
// than failing the load.
func DecodeSections(raw any) ([]SectionInstance, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case []SectionInstance:
		return CloneSections(v), true
	case string:
		if v == "" {
			return nil, true
		}
		return decodeSectionsJSON([]byte(v))
	case []byte:
		if len(v) == 0 {
			return nil, true
		}
		return decodeSectionsJSON(v)
	case []any:
		out := make([]SectionInstance, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			sec, ok := decodeSectionMap(m)
			if !ok {
				return nil, false
			}
			out = append(out, sec)
		}
		return out, true
	case []map[string]any:
		out := make([]SectionInstance, 0, len(v))
		for _, m := range v {
			sec, ok := decodeSectionMap(m)
			if !ok {
				return nil, false
			}
			out = append(out, sec)
		}
		return out, true
	default:
		return nil, false
	}
}

func decodeSectionsJSON(data []byte) ([]SectionInstance, bool) {
	var out []SectionInstance
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	for i := range out {
		if out[i].ID == "" || out[i].Type == "" {
			return nil, false
		}
		if out[i].Props == nil {
			out[i].Props = PropBag{}
		}
	}
	return out, true
}

func decodeSectionMap(m map[string]any) (SectionInstance, bool) {
	sec := SectionInstance{Props: PropBag{}}

	id, ok := m["id"].(string)
	if !ok || id == "" {
		return SectionInstance{}, false
	}
	sec.ID = id

	typ, ok := m["type"].(string)
	if !ok || typ == "" {
		return SectionInstance{}, false
	}
	sec.Type = typ

	switch order := m["order"].(type) {
	case int64:
		sec.Order = int(order)
	case int:
		sec.Order = order
	case float64:
		sec.Order = int(order)
	case nil:
	default:
		return SectionInstance{}, false
	}

	if enabled, present := m["enabled"]; present {
		b, ok := enabled.(bool)
		if !ok {
			return SectionInstance{}, false
		}
		sec.Enabled = b
	}

	if props, present := m["props"]; present && props != nil {
		pm, ok := props.(map[string]any)
		if !ok {
			return SectionInstance{}, false
		}
		sec.Props = PropBag(pm).Clone()
	}

	return sec, true
}

// SortSections orders a list ascending by Order, breaking ties by ID so the
// result is deterministic even when persisted order values collide.
func SortSections(sections []SectionInstance) {
	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].Order != sections[j].Order {
			return sections[i].Order < sections[j].Order
		}
		return sections[i].ID < sections[j].ID
	})
}

// EncodeSections produces the canonical persisted shape for a section list,
// an array of plain maps suitable for a Firestore document field.
func EncodeSections(sections []SectionInstance) []map[string]any {
	out := make([]map[string]any, 0, len(sections))
	for _, sec := range sections {
		out = append(out, map[string]any{
			"id":      sec.ID,
			"type":    sec.Type,
			"order":   sec.Order,
			"enabled": sec.Enabled,
			"props":   map[string]any(sec.Props.Clone()),
		})
	}
	return out
}
