package services

import (
	"reflect"
	"testing"

	"github.com/storeforge/api/internal/catalog"
	"github.com/storeforge/api/internal/domain"
)

func sectionIDs(sections []domain.SectionInstance) []string {
	ids := make([]string, len(sections))
	for i, sec := range sections {
		ids[i] = sec.ID
	}
	return ids
}

func assertContiguousOrder(t *testing.T, sections []domain.SectionInstance) {
	t.Helper()
	for i, sec := range sections {
		if sec.Order != i+1 {
			t.Fatalf("section %q at index %d has order %d", sec.ID, i, sec.Order)
		}
	}
}

func sampleList() []domain.SectionInstance {
	return []domain.SectionInstance{
		{ID: "a", Type: "hero-banner", Order: 1, Enabled: true, Props: domain.PropBag{"title": "A"}},
		{ID: "b", Type: "faq", Order: 2, Enabled: true, Props: domain.PropBag{"title": "B"}},
		{ID: "c", Type: "footer-links", Order: 3, Enabled: false, Props: domain.PropBag{}},
	}
}

func TestAppendSectionAddsAtEndWithDefaults(t *testing.T) {
	registry := catalog.NewRegistry()
	def, _ := registry.Lookup("newsletter-signup")

	out := AppendSection(sampleList(), def, "d")

	if len(out) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(out))
	}
	added := out[3]
	if added.ID != "d" || added.Type != "newsletter-signup" {
		t.Fatalf("unexpected appended section: %#v", added)
	}
	if !added.Enabled {
		t.Fatalf("new sections start enabled")
	}
	if !reflect.DeepEqual(added.Props, def.DefaultProps) {
		t.Fatalf("expected default props, got %#v", added.Props)
	}
	assertContiguousOrder(t, out)
}

func TestRemoveSectionClosesTheGap(t *testing.T) {
	out := RemoveSection(sampleList(), "b")

	if got, want := sectionIDs(out), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	assertContiguousOrder(t, out)
}

func TestRemoveSectionMissingIDIsNoOp(t *testing.T) {
	in := sampleList()
	out := RemoveSection(in, "zz")

	if !reflect.DeepEqual(out, in) {
		t.Fatalf("expected unchanged list, got %#v", out)
	}
}

func TestToggleSectionKeepsSlot(t *testing.T) {
	out := ToggleSection(sampleList(), "c")

	if !out[2].Enabled {
		t.Fatalf("expected section c to be re-enabled")
	}
	if got, want := sectionIDs(out), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("toggle must not reorder: got %v", got)
	}
	assertContiguousOrder(t, out)
}

func TestMoveSectionSwapsNeighbors(t *testing.T) {
	up := MoveSection(sampleList(), "b", domain.MoveUp)
	if got, want := sectionIDs(up), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("move up: expected %v, got %v", want, got)
	}
	assertContiguousOrder(t, up)

	down := MoveSection(sampleList(), "b", domain.MoveDown)
	if got, want := sectionIDs(down), []string{"a", "c", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("move down: expected %v, got %v", want, got)
	}
	assertContiguousOrder(t, down)
}

func TestMoveSectionAtBoundaryIsNoOp(t *testing.T) {
	in := sampleList()

	if out := MoveSection(in, "a", domain.MoveUp); !reflect.DeepEqual(sectionIDs(out), sectionIDs(in)) {
		t.Fatalf("moving the first section up must not reorder")
	}
	if out := MoveSection(in, "c", domain.MoveDown); !reflect.DeepEqual(sectionIDs(out), sectionIDs(in)) {
		t.Fatalf("moving the last section down must not reorder")
	}
	if out := MoveSection(in, "zz", domain.MoveUp); !reflect.DeepEqual(out, in) {
		t.Fatalf("moving a missing section must be a no-op")
	}
}

func TestUpdateSectionPropsMergesPatch(t *testing.T) {
	out := UpdateSectionProps(sampleList(), "a", domain.PropBag{"subtitle": "New", "title": "A2"})

	if out[0].Props["title"] != "A2" || out[0].Props["subtitle"] != "New" {
		t.Fatalf("unexpected merged props: %#v", out[0].Props)
	}
}

func TestMutationsDoNotAliasInput(t *testing.T) {
	in := sampleList()
	out := UpdateSectionProps(in, "a", domain.PropBag{"title": "Changed"})

	if in[0].Props["title"] != "A" {
		t.Fatalf("input list was mutated")
	}
	out[1].Props["title"] = "Sneaky"
	if in[1].Props["title"] != "B" {
		t.Fatalf("output aliases input props")
	}
}

func TestAvailableSectionTypesExcludesPresent(t *testing.T) {
	registry := catalog.NewRegistry()
	sections := []domain.SectionInstance{
		{ID: "a", Type: "hero-banner"},
		{ID: "b", Type: "faq"},
	}

	available := AvailableSectionTypes(registry, domain.StoreKindSingleProduct, sections)
	for _, def := range available {
		if def.Type == "hero-banner" || def.Type == "faq" {
			t.Fatalf("type %q already present but still offered", def.Type)
		}
		if def.Type == "product-grid" {
			t.Fatalf("product-grid must not be offered to single-product stores")
		}
	}
}
