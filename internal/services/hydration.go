package services

import (
	"github.com/storeforge/api/internal/catalog"
	"github.com/storeforge/api/internal/domain"
)

// HydrationSource reports where a hydrated section list came from.
type HydrationSource string

const (
	// HydrationSourceStored means a valid non-empty persisted list was used.
	HydrationSourceStored HydrationSource = "stored"
	// HydrationSourceTemplate means the persisted list was valid but empty
	// and the store's template supplied the sections.
	HydrationSourceTemplate HydrationSource = "template"
	// HydrationSourceEmpty means the persisted payload was malformed and
	// was replaced with an empty list. Template fallback is deliberately
	// not applied here: a corrupt payload hides an unknown prior state,
	// and silently reseeding could discard sections the vendor still
	// expects to recover.
	HydrationSourceEmpty HydrationSource = "empty"
)

// HydrateSections produces the working section list for a store from its
// persisted payload.
//
// A valid non-empty payload is sorted ascending by order and renumbered.
// A valid empty payload falls back to the store's template seed so a fresh
// store opens with content in place. A malformed payload yields an empty
// list; the builder stays usable and the vendor starts from a blank page.
func HydrateSections(raw any, templates *catalog.Templates, templateID string) ([]domain.SectionInstance, HydrationSource) {
	decoded, ok := domain.DecodeSections(raw)
	if !ok {
		return []domain.SectionInstance{}, HydrationSourceEmpty
	}
	if len(decoded) == 0 {
		seeded := templates.SeedSections(templateID)
		if len(seeded) == 0 {
			return []domain.SectionInstance{}, HydrationSourceTemplate
		}
		return RenumberSections(seeded), HydrationSourceTemplate
	}
	domain.SortSections(decoded)
	return RenumberSections(decoded), HydrationSourceStored
}

// HydrateStore swaps the store's persisted section payload for the hydrated
// working list, applying the same fallback rules the builder uses on load.
// Render paths call this so a freshly created store never serves an empty
// page while the builder shows its template seed.
func HydrateStore(store *domain.Store, templates *catalog.Templates) HydrationSource {
	sections, source := HydrateSections(sectionsPayload(store), templates, store.TemplateID)
	store.Sections = sections
	store.SectionsRaw = nil
	return source
}

// sectionsPayload picks the hydration input for a store: the raw persisted
// payload when the repository preserved one, otherwise the decoded list.
func sectionsPayload(store *domain.Store) any {
	if store.SectionsRaw != nil {
		return store.SectionsRaw
	}
	return store.Sections
}
