package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/storeforge/api/internal/catalog"
	"github.com/storeforge/api/internal/domain"
	"github.com/storeforge/api/internal/platform/requestctx"
	"github.com/storeforge/api/internal/render"
	"github.com/storeforge/api/internal/services"
)

// StoreHandlers serves the store lifecycle endpoints used by the builder.
type StoreHandlers struct {
	stores          services.StoreService
	templates       *catalog.Templates
	renderer        *render.Renderer
	defaultPageSize int
	maxPageSize     int
}

// StoreHandlersDeps carries the dependencies for NewStoreHandlers.
type StoreHandlersDeps struct {
	Stores          services.StoreService
	Templates       *catalog.Templates
	Renderer        *render.Renderer
	DefaultPageSize int
	MaxPageSize     int
}

// NewStoreHandlers constructs the store handlers.
func NewStoreHandlers(deps StoreHandlersDeps) (*StoreHandlers, error) {
	if deps.Stores == nil {
		return nil, errors.New("store handlers: store service is required")
	}
	if deps.Templates == nil {
		return nil, errors.New("store handlers: template catalog is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("store handlers: renderer is required")
	}
	if deps.DefaultPageSize <= 0 {
		deps.DefaultPageSize = 20
	}
	if deps.MaxPageSize < deps.DefaultPageSize {
		deps.MaxPageSize = deps.DefaultPageSize
	}
	return &StoreHandlers{
		stores:          deps.Stores,
		templates:       deps.Templates,
		renderer:        deps.Renderer,
		defaultPageSize: deps.DefaultPageSize,
		maxPageSize:     deps.MaxPageSize,
	}, nil
}

// Routes registers the store endpoints.
func (h *StoreHandlers) Routes(r chi.Router) {
	r.Post("/", h.createStore)
	r.Get("/", h.listStores)
	r.Get("/{storeID}", h.getStore)
	r.Patch("/{storeID}", h.updateStore)
	r.Delete("/{storeID}", h.deleteStore)
	r.Post("/{storeID}:publish", h.publishStore)
	r.Post("/{storeID}:archive", h.archiveStore)
	r.Get("/{storeID}/preview", h.previewStore)
}

type createStoreRequest struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	TemplateID string `json:"template_id"`
}

func (h *StoreHandlers) createStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createStoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	store, err := h.stores.CreateStore(ctx, services.CreateStoreInput{
		VendorID:   requestctx.VendorID(ctx),
		Name:       req.Name,
		Kind:       domain.StoreKind(req.Kind),
		TemplateID: req.TemplateID,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, encodeStore(store))
}

func (h *StoreHandlers) listStores(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pageSize := h.defaultPageSize
	if raw := strings.TrimSpace(r.URL.Query().Get("page_size")); raw != "" {
		parsed, ok := parsePositiveInt(raw)
		if !ok {
			writeBadRequest(ctx, w, "page_size must be a positive integer")
			return
		}
		pageSize = parsed
	}
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	page, err := h.stores.ListStores(ctx, services.ListStoresInput{
		VendorID: requestctx.VendorID(ctx),
		Status:   domain.StoreStatus(strings.TrimSpace(r.URL.Query().Get("status"))),
		Pagination: domain.Pagination{
			PageSize:  pageSize,
			PageToken: strings.TrimSpace(r.URL.Query().Get("page_token")),
		},
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	items := make([]storePayload, 0, len(page.Items))
	for _, store := range page.Items {
		items = append(items, encodeStore(store))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stores":          items,
		"next_page_token": page.NextPageToken,
	})
}

func (h *StoreHandlers) getStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	store, err := h.stores.GetStore(ctx, chi.URLParam(r, "storeID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeStore(store))
}

type updateStoreRequest struct {
	Name  *string       `json:"name"`
	Theme *themePayload `json:"theme"`
}

func (h *StoreHandlers) updateStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateStoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	input := services.UpdateStoreInput{Name: req.Name}
	if req.Theme != nil {
		input.Theme = &domain.Theme{
			PrimaryColor:   req.Theme.PrimaryColor,
			SecondaryColor: req.Theme.SecondaryColor,
			FontFamily:     req.Theme.FontFamily,
		}
	}

	store, err := h.stores.UpdateStore(ctx, chi.URLParam(r, "storeID"), input)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeStore(store))
}

func (h *StoreHandlers) deleteStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.stores.DeleteStore(ctx, chi.URLParam(r, "storeID")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StoreHandlers) publishStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	store, err := h.stores.PublishStore(ctx, chi.URLParam(r, "storeID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeStore(store))
}

func (h *StoreHandlers) archiveStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	store, err := h.stores.ArchiveStore(ctx, chi.URLParam(r, "storeID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeStore(store))
}

// previewStore renders the persisted state of a store with the same section
// markup the public page uses.
func (h *StoreHandlers) previewStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	store, err := h.stores.GetStore(ctx, chi.URLParam(r, "storeID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	services.HydrateStore(store, h.templates)

	var page bytes.Buffer
	if err := h.renderer.RenderPage(ctx, &page, store, render.PageOptions{Mode: render.ModePreview}); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page.Bytes())
}

func parsePositiveInt(raw string) (int, bool) {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}
