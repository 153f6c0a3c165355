package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/storeforge/api/internal/domain"
	"github.com/storeforge/api/internal/repositories"
)

const (
	// MaxImageBytes is the ceiling for inline image uploads. Images are
	// embedded in section props as data URIs, so the ceiling bounds
	// document size rather than transfer size.
	MaxImageBytes = 10 << 20
	// MaxVideoBytes is the ceiling for video uploads held as in-process blobs.
	MaxVideoBytes = 50 << 20
)

var (
	// ErrMediaTooLarge reports an upload over the per-kind size ceiling.
	ErrMediaTooLarge = errors.New("media upload exceeds size limit")
	// ErrMediaUnsupported reports a content type outside the allow list.
	ErrMediaUnsupported = errors.New("unsupported media type")
	// ErrMediaNotFound reports an unknown or expired blob key. Video blobs
	// do not survive process restarts.
	ErrMediaNotFound = errors.New("media blob not found")
)

var imageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

var videoTypes = map[string]struct{}{
	"video/mp4":       {},
	"video/webm":      {},
	"video/ogg":       {},
	"video/quicktime": {},
}

// MediaServiceDeps carries the dependencies for NewMediaService.
type MediaServiceDeps struct {
	Blobs  repositories.MediaBlobRepository
	NewID  func() string
	Logger func(ctx context.Context, event string, fields map[string]any)
}

type mediaService struct {
	blobs  repositories.MediaBlobRepository
	newID  func() string
	logger func(ctx context.Context, event string, fields map[string]any)
}

// NewMediaService builds the upload ingestion service.
func NewMediaService(deps MediaServiceDeps) (MediaService, error) {
	if deps.Blobs == nil {
		return nil, fmt.Errorf("media service: blob repository is required")
	}
	if deps.NewID == nil {
		deps.NewID = func() string { return ulid.Make().String() }
	}
	if deps.Logger == nil {
		deps.Logger = func(context.Context, string, map[string]any) {}
	}
	return &mediaService{blobs: deps.Blobs, newID: deps.NewID, logger: deps.Logger}, nil
}

func (m *mediaService) Ingest(ctx context.Context, upload MediaUpload) (*MediaAsset, error) {
	if len(upload.Data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrInvalidInput)
	}
	contentType := normalizeContentType(upload.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = normalizeContentType(http.DetectContentType(upload.Data))
	}

	switch {
	case isImageType(contentType):
		return m.ingestImage(ctx, upload, contentType)
	case isVideoType(contentType):
		return m.ingestVideo(ctx, upload, contentType)
	default:
		return nil, fmt.Errorf("%w: %s", ErrMediaUnsupported, contentType)
	}
}

func (m *mediaService) ingestImage(ctx context.Context, upload MediaUpload, contentType string) (*MediaAsset, error) {
	if len(upload.Data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: image is %d bytes, limit is %d", ErrMediaTooLarge, len(upload.Data), MaxImageBytes)
	}
	uri := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(upload.Data)
	m.logger(ctx, "media.image_ingested", map[string]any{
		"content_type": contentType,
		"size_bytes":   len(upload.Data),
	})
	return &MediaAsset{
		Kind:        domain.MediaKindImage,
		ContentType: contentType,
		SizeBytes:   len(upload.Data),
		URI:         uri,
	}, nil
}

func (m *mediaService) ingestVideo(ctx context.Context, upload MediaUpload, contentType string) (*MediaAsset, error) {
	if len(upload.Data) > MaxVideoBytes {
		return nil, fmt.Errorf("%w: video is %d bytes, limit is %d", ErrMediaTooLarge, len(upload.Data), MaxVideoBytes)
	}
	key := m.newID()
	if err := m.blobs.Put(ctx, key, contentType, upload.Data); err != nil {
		return nil, fmt.Errorf("store video blob: %w", err)
	}
	m.logger(ctx, "media.video_ingested", map[string]any{
		"content_type": contentType,
		"size_bytes":   len(upload.Data),
		"blob_key":     key,
	})
	return &MediaAsset{
		Kind:        domain.MediaKindVideo,
		ContentType: contentType,
		SizeBytes:   len(upload.Data),
		URI:         "/api/v1/media/" + key,
		BlobKey:     key,
	}, nil
}

func (m *mediaService) GetBlob(ctx context.Context, key string) (string, []byte, error) {
	contentType, data, err := m.blobs.Get(ctx, key)
	if err != nil {
		if isRepoNotFound(err) {
			return "", nil, fmt.Errorf("%w: %s", ErrMediaNotFound, key)
		}
		return "", nil, fmt.Errorf("load media blob: %w", err)
	}
	return contentType, data, nil
}

func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

func isImageType(ct string) bool {
	_, ok := imageTypes[ct]
	return ok
}

func isVideoType(ct string) bool {
	_, ok := videoTypes[ct]
	return ok
}
