package domain

import (
	"reflect"
	"testing"
)

func TestDecodeSectionsFromJSONString(t *testing.T) {
	raw := `[{"id":"sec-1","type":"hero-banner","order":2,"enabled":true,"props":{"title":"Hi"}},
	{"id":"sec-2","type":"faq","order":1,"enabled":false}]`

	sections, ok := DecodeSections(raw)
	if !ok {
		t.Fatalf("expected payload to decode")
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].ID != "sec-1" || sections[0].Order != 2 {
		t.Fatalf("unexpected first section: %#v", sections[0])
	}
	if sections[0].Props["title"] != "Hi" {
		t.Fatalf("expected title prop, got %#v", sections[0].Props)
	}
	if sections[1].Props == nil {
		t.Fatalf("expected empty props bag, got nil")
	}
}

func TestDecodeSectionsFromFirestoreMaps(t *testing.T) {
	raw := []any{
		map[string]any{"id": "sec-1", "type": "hero-banner", "order": int64(1), "enabled": true, "props": map[string]any{"title": "Hi"}},
		map[string]any{"id": "sec-2", "type": "faq", "order": float64(2)},
	}

	sections, ok := DecodeSections(raw)
	if !ok {
		t.Fatalf("expected payload to decode")
	}
	if sections[0].Order != 1 || sections[1].Order != 2 {
		t.Fatalf("unexpected orders: %d, %d", sections[0].Order, sections[1].Order)
	}
	if sections[1].Enabled {
		t.Fatalf("expected enabled to default to false when absent")
	}
}

func TestDecodeSectionsEmptyPayloadsAreValid(t *testing.T) {
	for _, raw := range []any{nil, "", []byte(nil), []any{}} {
		sections, ok := DecodeSections(raw)
		if !ok {
			t.Fatalf("expected %#v to be valid", raw)
		}
		if len(sections) != 0 {
			t.Fatalf("expected empty list for %#v, got %d sections", raw, len(sections))
		}
	}
}

func TestDecodeSectionsMalformedPayloads(t *testing.T) {
	cases := map[string]any{
		"not json":          "{broken",
		"wrong top type":    map[string]any{"id": "sec-1"},
		"missing id":        []any{map[string]any{"type": "faq"}},
		"missing type":      []any{map[string]any{"id": "sec-1"}},
		"bad order":         []any{map[string]any{"id": "sec-1", "type": "faq", "order": "first"}},
		"bad enabled":       []any{map[string]any{"id": "sec-1", "type": "faq", "enabled": "yes"}},
		"bad props":         []any{map[string]any{"id": "sec-1", "type": "faq", "props": "nope"}},
		"non-map element":   []any{"sec-1"},
		"json missing type": `[{"id":"sec-1"}]`,
	}
	for name, raw := range cases {
		if _, ok := DecodeSections(raw); ok {
			t.Fatalf("%s: expected payload to be rejected", name)
		}
	}
}

func TestDecodeSectionsClonesTypedInput(t *testing.T) {
	src := []SectionInstance{{ID: "sec-1", Type: "faq", Props: PropBag{"title": "FAQ"}}}
	out, ok := DecodeSections(src)
	if !ok {
		t.Fatalf("expected typed slice to decode")
	}
	out[0].Props["title"] = "changed"
	if src[0].Props["title"] != "FAQ" {
		t.Fatalf("decode must not alias the input props")
	}
}

func TestSortSectionsBreaksTiesByID(t *testing.T) {
	sections := []SectionInstance{
		{ID: "b", Order: 1},
		{ID: "a", Order: 1},
		{ID: "c", Order: 0},
	}
	SortSections(sections)

	got := []string{sections[0].ID, sections[1].ID, sections[2].ID}
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
}

func TestEncodeSectionsRoundTrips(t *testing.T) {
	sections := []SectionInstance{
		{ID: "sec-1", Type: "hero-banner", Order: 1, Enabled: true, Props: PropBag{"title": "Hi"}},
		{ID: "sec-2", Type: "faq", Order: 2, Enabled: false, Props: PropBag{}},
	}

	encoded := EncodeSections(sections)
	if len(encoded) != 2 {
		t.Fatalf("expected 2 encoded sections, got %d", len(encoded))
	}
	if encoded[0]["id"] != "sec-1" || encoded[0]["enabled"] != true {
		t.Fatalf("unexpected encoded section: %#v", encoded[0])
	}

	raw := make([]any, len(encoded))
	for i, m := range encoded {
		raw[i] = m
	}
	decoded, ok := DecodeSections(raw)
	if !ok {
		t.Fatalf("expected encoded payload to decode")
	}
	if !reflect.DeepEqual(decoded, sections) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", decoded, sections)
	}
}
