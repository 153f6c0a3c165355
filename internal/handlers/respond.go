package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/storeforge/api/internal/platform/httpx"
	"github.com/storeforge/api/internal/repositories"
	"github.com/storeforge/api/internal/services"
)

const maxJSONBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is required")
		}
		return err
	}
	return nil
}

// writeServiceError maps service-level errors onto the JSON error envelope.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrStoreNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("store_not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, services.ErrSessionNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("session_not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, services.ErrMediaNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("media_not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, services.ErrSlugTaken):
		httpx.WriteError(ctx, w, httpx.NewError("slug_conflict", err.Error(), http.StatusConflict))
	case errors.Is(err, services.ErrMediaTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("media_too_large", err.Error(), http.StatusRequestEntityTooLarge))
	case errors.Is(err, services.ErrMediaUnsupported):
		httpx.WriteError(ctx, w, httpx.NewError("media_unsupported", err.Error(), http.StatusUnsupportedMediaType))
	case errors.Is(err, services.ErrInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, context.DeadlineExceeded):
		httpx.WriteError(ctx, w, httpx.NewError("request_timeout", "the operation timed out", http.StatusGatewayTimeout))
	case isRepoUnavailable(err):
		httpx.WriteError(ctx, w, httpx.NewError("storage_unavailable", "storage is temporarily unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "internal server error", http.StatusInternalServerError))
	}
}

func isRepoUnavailable(err error) bool {
	var repoErr repositories.RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsUnavailable()
}

func writeBadRequest(ctx context.Context, w http.ResponseWriter, message string) {
	httpx.WriteError(ctx, w, httpx.NewError("invalid_request", message, http.StatusBadRequest))
}
