package catalog

import (
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/storeforge/api/internal/domain"
)

// Templates is the immutable catalog of store templates.
type Templates struct {
	ordered []domain.StoreTemplate
	byID    map[string]domain.StoreTemplate
	newID   func() string
}

// TemplatesDeps groups constructor parameters for the template catalog.
type TemplatesDeps struct {
	// NewID generates unique section instance ids during seeding. Defaults to ULIDs.
	NewID func() string
}

// NewTemplates constructs the catalog from the built-in template bundles.
func NewTemplates(deps TemplatesDeps) *Templates {
	return newTemplatesFrom(builtinTemplates, deps)
}

func newTemplatesFrom(templates []domain.StoreTemplate, deps TemplatesDeps) *Templates {
	newID := deps.NewID
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	catalog := &Templates{
		ordered: make([]domain.StoreTemplate, 0, len(templates)),
		byID:    make(map[string]domain.StoreTemplate, len(templates)),
		newID:   newID,
	}
	for _, tpl := range templates {
		if tpl.ID == "" {
			continue
		}
		if _, exists := catalog.byID[tpl.ID]; exists {
			continue
		}
		catalog.byID[tpl.ID] = tpl
		catalog.ordered = append(catalog.ordered, tpl)
	}
	return catalog
}

// ListByStoreKind returns the templates scoped to the given store kind.
func (t *Templates) ListByStoreKind(kind domain.StoreKind) []domain.StoreTemplate {
	if t == nil {
		return nil
	}
	out := make([]domain.StoreTemplate, 0, len(t.ordered))
	for _, tpl := range t.ordered {
		if tpl.StoreKind == kind {
			out = append(out, tpl)
		}
	}
	return out
}

// GetByID returns the template with the given id.
func (t *Templates) GetByID(templateID string) (domain.StoreTemplate, bool) {
	if t == nil {
		return domain.StoreTemplate{}, false
	}
	tpl, ok := t.byID[strings.TrimSpace(templateID)]
	return tpl, ok
}

// SeedSections produces fresh section instances from the template's seed
// entries. Every instance gets a newly generated id (never the template's own,
// since many stores may be seeded from one template concurrently) and a deep
// copy of the seed props. An unknown template id yields an empty list; the
// caller falls back to an empty store rather than erroring.
func (t *Templates) SeedSections(templateID string) []domain.SectionInstance {
	tpl, ok := t.GetByID(templateID)
	if !ok {
		return []domain.SectionInstance{}
	}
	sections := make([]domain.SectionInstance, 0, len(tpl.Sections))
	for _, seed := range tpl.Sections {
		sections = append(sections, domain.SectionInstance{
			ID:      t.newID(),
			Type:    seed.Type,
			Order:   seed.Order,
			Enabled: seed.Enabled,
			Props:   seed.Props.Clone(),
		})
	}
	return sections
}
