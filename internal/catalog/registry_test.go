package catalog

import (
	"testing"

	"github.com/storeforge/api/internal/domain"
)

func TestRegistryLookupKnownType(t *testing.T) {
	registry := NewRegistry()

	def, ok := registry.Lookup("hero-banner")
	if !ok {
		t.Fatalf("expected hero-banner to be registered")
	}
	if def.Name == "" || len(def.Settings) == 0 {
		t.Fatalf("expected a fully described definition, got %#v", def)
	}
	if _, ok := registry.Lookup("does-not-exist"); ok {
		t.Fatalf("expected unknown type to be absent")
	}
}

func TestRegistryListForKindFilters(t *testing.T) {
	registry := NewRegistry()

	single := registry.ListForKind(domain.StoreKindSingleProduct)
	multi := registry.ListForKind(domain.StoreKindMultiProduct)

	inList := func(defs []domain.SectionTypeDefinition, sectionType string) bool {
		for _, def := range defs {
			if def.Type == sectionType {
				return true
			}
		}
		return false
	}

	if !inList(single, "featured-product") {
		t.Fatalf("featured-product should be offered to single-product stores")
	}
	if inList(single, "product-grid") {
		t.Fatalf("product-grid must not be offered to single-product stores")
	}
	if !inList(multi, "product-grid") {
		t.Fatalf("product-grid should be offered to multi-product stores")
	}
	if inList(multi, "featured-product") {
		t.Fatalf("featured-product must not be offered to multi-product stores")
	}
	if !inList(single, "hero-banner") || !inList(multi, "hero-banner") {
		t.Fatalf("hero-banner should be offered to every kind")
	}
}

func TestRegistryDefaultPropsAreIsolated(t *testing.T) {
	registry := NewRegistry()

	first, ok := registry.DefaultProps("hero-banner")
	if !ok {
		t.Fatalf("expected defaults for hero-banner")
	}
	first["title"] = "mutated"

	second, _ := registry.DefaultProps("hero-banner")
	if second["title"] == "mutated" {
		t.Fatalf("default props must be copied per call")
	}
}

func TestRegistryDropsDuplicateAndEmptyTypes(t *testing.T) {
	registry := newRegistryFrom([]domain.SectionTypeDefinition{
		{Type: "faq", Name: "First"},
		{Type: "faq", Name: "Second"},
		{Type: "", Name: "Anonymous"},
	})

	defs := registry.List()
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	if defs[0].Name != "First" {
		t.Fatalf("expected the first duplicate to win, got %q", defs[0].Name)
	}
}
