package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/storeforge/api/internal/services"
)

// maxUploadBytes caps the multipart body. Large enough for the biggest
// accepted video plus form overhead.
const maxUploadBytes = 52 << 20

// MediaHandlers serves media ingestion and blob retrieval for section props.
type MediaHandlers struct {
	media services.MediaService
}

// NewMediaHandlers constructs the media handlers.
func NewMediaHandlers(media services.MediaService) (*MediaHandlers, error) {
	if media == nil {
		return nil, errors.New("media handlers: media service is required")
	}
	return &MediaHandlers{media: media}, nil
}

// Routes registers the media endpoints.
func (h *MediaHandlers) Routes(r chi.Router) {
	r.Post("/", h.ingest)
	r.Get("/{blobKey}", h.getBlob)
}

func (h *MediaHandlers) ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(ctx, w, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeBadRequest(ctx, w, "failed to read upload")
		return
	}

	asset, err := h.media.Ingest(ctx, services.MediaUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, encodeMediaAsset(asset))
}

func (h *MediaHandlers) getBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contentType, data, err := h.media.GetBlob(ctx, chi.URLParam(r, "blobKey"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	_, _ = w.Write(data)
}
