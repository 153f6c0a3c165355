package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storeforge/api/internal/domain"
	"github.com/storeforge/api/internal/render"
	"github.com/storeforge/api/internal/services"
)

// BuilderHandlers serves the editing session endpoints: session lifecycle,
// section mutations, selection, and the live builder preview.
type BuilderHandlers struct {
	builder  services.BuilderService
	renderer *render.Renderer
}

// NewBuilderHandlers constructs the builder handlers.
func NewBuilderHandlers(builder services.BuilderService, renderer *render.Renderer) (*BuilderHandlers, error) {
	if builder == nil {
		return nil, errors.New("builder handlers: builder service is required")
	}
	if renderer == nil {
		return nil, errors.New("builder handlers: renderer is required")
	}
	return &BuilderHandlers{builder: builder, renderer: renderer}, nil
}

// Routes registers the builder session endpoints.
func (h *BuilderHandlers) Routes(r chi.Router) {
	r.Post("/sessions", h.openSession)
	r.Delete("/sessions/{sessionID}", h.closeSession)
	r.Post("/sessions/{sessionID}:switch-store", h.switchStore)
	r.Post("/sessions/{sessionID}:apply-remote", h.applyRemote)
	r.Post("/sessions/{sessionID}:flush", h.flush)

	r.Put("/sessions/{sessionID}/selection", h.selectSection)
	r.Delete("/sessions/{sessionID}/selection", h.clearSelection)

	r.Get("/sessions/{sessionID}/available-sections", h.availableSections)
	r.Post("/sessions/{sessionID}/sections", h.addSection)
	r.Delete("/sessions/{sessionID}/sections/{sectionID}", h.removeSection)
	r.Patch("/sessions/{sessionID}/sections/{sectionID}", h.updateSectionProps)
	r.Post("/sessions/{sessionID}/sections/{sectionID}:toggle", h.toggleSection)
	r.Post("/sessions/{sessionID}/sections/{sectionID}:move", h.moveSection)

	r.Post("/sessions/{sessionID}/sections/{sectionID}:attach-media", h.attachMedia)
	r.Post("/sessions/{sessionID}/sections/{sectionID}:add-record", h.addArrayRecord)
	r.Post("/sessions/{sessionID}/sections/{sectionID}:remove-record", h.removeArrayRecord)
	r.Post("/sessions/{sessionID}/sections/{sectionID}:move-record", h.moveArrayRecord)
	r.Post("/sessions/{sessionID}/sections/{sectionID}:edit-record", h.editArrayRecord)

	r.Get("/sessions/{sessionID}/preview", h.preview)
}

type openSessionRequest struct {
	StoreID string `json:"store_id"`
}

func (h *BuilderHandlers) openSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req openSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	state, err := h.builder.OpenSession(ctx, req.StoreID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, encodeBuilderState(state))
}

func (h *BuilderHandlers) closeSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.builder.CloseSession(ctx, chi.URLParam(r, "sessionID")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type switchStoreRequest struct {
	StoreID string `json:"store_id"`
}

func (h *BuilderHandlers) switchStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req switchStoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	state, err := h.builder.SwitchStore(ctx, chi.URLParam(r, "sessionID"), req.StoreID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

type applyRemoteRequest struct {
	Name     *string       `json:"name"`
	Theme    *themePayload `json:"theme"`
	Sections any           `json:"sections"`
}

func (h *BuilderHandlers) applyRemote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req applyRemoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	update := services.RemoteStoreUpdate{Name: req.Name, Sections: req.Sections}
	if req.Theme != nil {
		update.Theme = &domain.Theme{
			PrimaryColor:   req.Theme.PrimaryColor,
			SecondaryColor: req.Theme.SecondaryColor,
			FontFamily:     req.Theme.FontFamily,
		}
	}

	state, err := h.builder.ApplyRemote(ctx, chi.URLParam(r, "sessionID"), update)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

func (h *BuilderHandlers) flush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.builder.Flush(ctx, chi.URLParam(r, "sessionID")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type selectSectionRequest struct {
	SectionID string `json:"section_id"`
}

func (h *BuilderHandlers) selectSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req selectSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	state, err := h.builder.SelectSection(ctx, chi.URLParam(r, "sessionID"), req.SectionID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

func (h *BuilderHandlers) clearSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.builder.ClearSelection(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

func (h *BuilderHandlers) availableSections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defs, err := h.builder.AvailableSections(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	payload := make([]sectionTypePayload, 0, len(defs))
	for _, def := range defs {
		payload = append(payload, encodeSectionType(def))
	}
	writeJSON(w, http.StatusOK, map[string]any{"section_types": payload})
}

type addSectionRequest struct {
	Type string `json:"type"`
}

func (h *BuilderHandlers) addSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	state, err := h.builder.AddSection(ctx, chi.URLParam(r, "sessionID"), req.Type)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, encodeBuilderState(state))
}

func (h *BuilderHandlers) removeSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.builder.RemoveSection(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "sectionID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

type updateSectionPropsRequest struct {
	Props map[string]any `json:"props"`
}

func (h *BuilderHandlers) updateSectionProps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateSectionPropsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}
	if len(req.Props) == 0 {
		writeBadRequest(ctx, w, "props patch is required")
		return
	}

	state, err := h.builder.UpdateSectionProps(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "sectionID"), domain.PropBag(req.Props))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

func (h *BuilderHandlers) toggleSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.builder.ToggleSection(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "sectionID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

type moveSectionRequest struct {
	Direction string `json:"direction"`
}

func (h *BuilderHandlers) moveSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req moveSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	state, err := h.builder.MoveSection(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "sectionID"), domain.MoveDirection(req.Direction))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

type attachMediaRequest struct {
	Prop string `json:"prop"`
	URI  string `json:"uri"`
}

func (h *BuilderHandlers) attachMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req attachMediaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	state, err := h.builder.AttachMedia(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "sectionID"), req.Prop, req.URI)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

type addArrayRecordRequest struct {
	Prop string `json:"prop"`
}

func (h *BuilderHandlers) addArrayRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addArrayRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	state, err := h.builder.AddArrayRecord(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "sectionID"), req.Prop)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

type removeArrayRecordRequest struct {
	Prop  string `json:"prop"`
	Index int    `json:"index"`
}

func (h *BuilderHandlers) removeArrayRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req removeArrayRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	state, err := h.builder.RemoveArrayRecord(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "sectionID"), req.Prop, req.Index)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

type moveArrayRecordRequest struct {
	Prop string `json:"prop"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

func (h *BuilderHandlers) moveArrayRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req moveArrayRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	state, err := h.builder.MoveArrayRecord(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "sectionID"), req.Prop, req.From, req.To)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

type editArrayRecordRequest struct {
	Prop  string `json:"prop"`
	Index int    `json:"index"`
	Field string `json:"field"`
	Value any    `json:"value"`
}

func (h *BuilderHandlers) editArrayRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req editArrayRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	state, err := h.builder.UpdateArrayRecordField(ctx, chi.URLParam(r, "sessionID"), chi.URLParam(r, "sectionID"), req.Prop, req.Index, req.Field, req.Value)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBuilderState(state))
}

// preview renders the session's working state, including unsaved edits and
// disabled sections, with the current selection highlighted.
func (h *BuilderHandlers) preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.builder.State(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	var page bytes.Buffer
	if err := h.renderer.RenderPage(ctx, &page, state.Store, render.PageOptions{
		Mode:              render.ModePreview,
		SelectedSectionID: state.SelectedSectionID,
	}); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page.Bytes())
}
