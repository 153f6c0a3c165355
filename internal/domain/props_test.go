package domain

import "testing"

func TestPropBagCloneIsDeep(t *testing.T) {
	original := PropBag{
		"title": "Hello",
		"items": []any{"one", map[string]any{"name": "nested"}},
		"meta":  map[string]any{"count": 3},
	}

	clone := original.Clone()
	clone["title"] = "Changed"
	clone["items"].([]any)[0] = "replaced"
	clone["items"].([]any)[1].(map[string]any)["name"] = "mutated"
	clone["meta"].(map[string]any)["count"] = 9

	if original["title"] != "Hello" {
		t.Fatalf("clone aliased top-level value")
	}
	if original["items"].([]any)[0] != "one" {
		t.Fatalf("clone aliased slice element")
	}
	if original["items"].([]any)[1].(map[string]any)["name"] != "nested" {
		t.Fatalf("clone aliased nested map inside slice")
	}
	if original["meta"].(map[string]any)["count"] != 3 {
		t.Fatalf("clone aliased nested map")
	}
}

func TestPropBagMergeReplacesOnlyPatchedKeys(t *testing.T) {
	base := PropBag{"title": "Hello", "subtitle": "World"}
	patch := PropBag{"title": "Hi", "ctaText": "Buy"}

	merged := base.Merge(patch)

	if merged["title"] != "Hi" {
		t.Fatalf("expected patched title, got %v", merged["title"])
	}
	if merged["subtitle"] != "World" {
		t.Fatalf("expected untouched subtitle, got %v", merged["subtitle"])
	}
	if merged["ctaText"] != "Buy" {
		t.Fatalf("expected new key from patch, got %v", merged["ctaText"])
	}
	if base["title"] != "Hello" {
		t.Fatalf("merge mutated the receiver")
	}
}

func TestPropBagMergeOnNilReceiver(t *testing.T) {
	var base PropBag
	merged := base.Merge(PropBag{"title": "Hi"})
	if merged["title"] != "Hi" {
		t.Fatalf("expected merge onto nil bag to work, got %#v", merged)
	}
}

func TestCloneSectionsPreservesNil(t *testing.T) {
	if CloneSections(nil) != nil {
		t.Fatalf("expected nil clone of nil list")
	}
}
