package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storeforge/api/internal/catalog"
	"github.com/storeforge/api/internal/domain"
	"github.com/storeforge/api/internal/render"
	"github.com/storeforge/api/internal/services"
)

// PublicHandlers serves the shopper-facing storefront pages. Only active
// stores are visible here; drafts and archived stores 404.
type PublicHandlers struct {
	stores    services.StoreService
	templates *catalog.Templates
	renderer  *render.Renderer
}

// NewPublicHandlers constructs the public storefront handlers.
func NewPublicHandlers(stores services.StoreService, templates *catalog.Templates, renderer *render.Renderer) (*PublicHandlers, error) {
	if stores == nil {
		return nil, errors.New("public handlers: store service is required")
	}
	if templates == nil {
		return nil, errors.New("public handlers: template catalog is required")
	}
	if renderer == nil {
		return nil, errors.New("public handlers: renderer is required")
	}
	return &PublicHandlers{stores: stores, templates: templates, renderer: renderer}, nil
}

// Routes registers the public storefront endpoints.
func (h *PublicHandlers) Routes(r chi.Router) {
	r.Get("/stores/{slug}", h.storefront)
}

func (h *PublicHandlers) storefront(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	store, err := h.stores.GetStoreBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if store.Status != domain.StoreStatusActive {
		writeServiceError(ctx, w, services.ErrStoreNotFound)
		return
	}
	services.HydrateStore(store, h.templates)

	var page bytes.Buffer
	if err := h.renderer.RenderPage(ctx, &page, store, render.PageOptions{Mode: render.ModePublic}); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page.Bytes())
}
