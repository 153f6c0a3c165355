// Package catalog holds the static section type registry and the template
// catalog that seed and constrain store composition. Both are immutable after
// construction and injected explicitly into the services that need them.
package catalog

import (
	"github.com/storeforge/api/internal/domain"
)

// Registry is the immutable lookup table of known section types.
type Registry struct {
	ordered []domain.SectionTypeDefinition
	byType  map[string]domain.SectionTypeDefinition
}

// NewRegistry constructs the registry from the built-in section type catalog.
func NewRegistry() *Registry {
	return newRegistryFrom(builtinSectionTypes)
}

func newRegistryFrom(definitions []domain.SectionTypeDefinition) *Registry {
	registry := &Registry{
		ordered: make([]domain.SectionTypeDefinition, 0, len(definitions)),
		byType:  make(map[string]domain.SectionTypeDefinition, len(definitions)),
	}
	for _, def := range definitions {
		if def.Type == "" {
			continue
		}
		if _, exists := registry.byType[def.Type]; exists {
			// Type keys are globally unique; a duplicate entry is a
			// programming error in the catalog data and the first wins.
			continue
		}
		registry.byType[def.Type] = def
		registry.ordered = append(registry.ordered, def)
	}
	return registry
}

// Lookup returns the definition for the given type key. Callers must treat an
// absent type as "not renderable / not editable": persisted data can reference
// a type removed from a later registry version.
func (r *Registry) Lookup(sectionType string) (domain.SectionTypeDefinition, bool) {
	if r == nil {
		return domain.SectionTypeDefinition{}, false
	}
	def, ok := r.byType[sectionType]
	return def, ok
}

// List returns every registered section type in catalog order.
func (r *Registry) List() []domain.SectionTypeDefinition {
	if r == nil {
		return nil
	}
	out := make([]domain.SectionTypeDefinition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ListForKind returns the section types applicable to stores of the given kind.
func (r *Registry) ListForKind(kind domain.StoreKind) []domain.SectionTypeDefinition {
	if r == nil {
		return nil
	}
	out := make([]domain.SectionTypeDefinition, 0, len(r.ordered))
	for _, def := range r.ordered {
		if def.AppliesTo(kind) {
			out = append(out, def)
		}
	}
	return out
}

// DefaultProps returns a deep copy of the default props for the given type,
// safe for the caller to mutate. The second result is false for unknown types.
func (r *Registry) DefaultProps(sectionType string) (domain.PropBag, bool) {
	def, ok := r.Lookup(sectionType)
	if !ok {
		return nil, false
	}
	return def.DefaultProps.Clone(), true
}
