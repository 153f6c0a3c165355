package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/storeforge/api/internal/catalog"
	"github.com/storeforge/api/internal/domain"
	"github.com/storeforge/api/internal/platform/httpx"
)

// CatalogHandlers serves the static section type registry and template gallery.
type CatalogHandlers struct {
	registry  *catalog.Registry
	templates *catalog.Templates
}

// NewCatalogHandlers constructs the catalog handlers.
func NewCatalogHandlers(registry *catalog.Registry, templates *catalog.Templates) (*CatalogHandlers, error) {
	if registry == nil {
		return nil, errors.New("catalog handlers: section registry is required")
	}
	if templates == nil {
		return nil, errors.New("catalog handlers: template catalog is required")
	}
	return &CatalogHandlers{registry: registry, templates: templates}, nil
}

// Routes registers the catalog endpoints.
func (h *CatalogHandlers) Routes(r chi.Router) {
	r.Get("/section-types", h.listSectionTypes)
	r.Get("/templates", h.listTemplates)
	r.Get("/templates/{templateID}", h.getTemplate)
}

func (h *CatalogHandlers) listSectionTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var defs []domain.SectionTypeDefinition
	if raw := strings.TrimSpace(r.URL.Query().Get("store_kind")); raw != "" {
		kind := domain.StoreKind(raw)
		if !kind.Valid() {
			writeBadRequest(ctx, w, "unknown store kind "+raw)
			return
		}
		defs = h.registry.ListForKind(kind)
	} else {
		defs = h.registry.List()
	}

	payload := make([]sectionTypePayload, 0, len(defs))
	for _, def := range defs {
		payload = append(payload, encodeSectionType(def))
	}
	writeJSON(w, http.StatusOK, map[string]any{"section_types": payload})
}

func (h *CatalogHandlers) listTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := strings.TrimSpace(r.URL.Query().Get("store_kind"))
	if raw == "" {
		writeBadRequest(ctx, w, "store_kind query parameter is required")
		return
	}
	kind := domain.StoreKind(raw)
	if !kind.Valid() {
		writeBadRequest(ctx, w, "unknown store kind "+raw)
		return
	}

	templates := h.templates.ListByStoreKind(kind)
	payload := make([]templateSummaryPayload, 0, len(templates))
	for _, tpl := range templates {
		payload = append(payload, encodeTemplateSummary(tpl))
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": payload})
}

func (h *CatalogHandlers) getTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	templateID := chi.URLParam(r, "templateID")
	tpl, ok := h.templates.GetByID(templateID)
	if !ok {
		httpx.WriteError(ctx, w, httpx.NewError("template_not_found", "template "+templateID+" not found", http.StatusNotFound))
		return
	}
	writeJSON(w, http.StatusOK, encodeTemplate(tpl))
}
