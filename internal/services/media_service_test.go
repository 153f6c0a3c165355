package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/storeforge/api/internal/domain"
	"github.com/storeforge/api/internal/repositories/memory"
)

func newMediaServiceForTest(t *testing.T) MediaService {
	t.Helper()
	service, err := NewMediaService(MediaServiceDeps{
		Blobs: memory.NewMediaBlobRepository(),
		NewID: sequentialTestIDs("blob"),
	})
	if err != nil {
		t.Fatalf("unexpected error constructing media service: %v", err)
	}
	return service
}

// pngHeader is enough of a real PNG for content sniffing to identify it.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestIngestImageReturnsDataURI(t *testing.T) {
	service := newMediaServiceForTest(t)

	asset, err := service.Ingest(context.Background(), MediaUpload{
		Filename:    "hero.png",
		ContentType: "image/png",
		Data:        pngHeader,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if asset.Kind != domain.MediaKindImage {
		t.Fatalf("expected image kind, got %s", asset.Kind)
	}
	if !strings.HasPrefix(asset.URI, "data:image/png;base64,") {
		t.Fatalf("expected data URI, got %q", asset.URI)
	}
	if asset.BlobKey != "" {
		t.Fatalf("images must not allocate blob keys")
	}
	if asset.SizeBytes != len(pngHeader) {
		t.Fatalf("expected size %d, got %d", len(pngHeader), asset.SizeBytes)
	}
}

func TestIngestImageOverLimit(t *testing.T) {
	service := newMediaServiceForTest(t)

	data := append(bytes.Clone(pngHeader), make([]byte, MaxImageBytes)...)
	_, err := service.Ingest(context.Background(), MediaUpload{ContentType: "image/png", Data: data})
	if !errors.Is(err, ErrMediaTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}
}

func TestIngestVideoStoresBlob(t *testing.T) {
	service := newMediaServiceForTest(t)

	data := []byte("not really a video but typed as one")
	asset, err := service.Ingest(context.Background(), MediaUpload{
		Filename:    "demo.mp4",
		ContentType: "video/mp4",
		Data:        data,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if asset.Kind != domain.MediaKindVideo {
		t.Fatalf("expected video kind, got %s", asset.Kind)
	}
	if asset.BlobKey == "" {
		t.Fatalf("expected a blob key")
	}
	if asset.URI != "/api/v1/media/"+asset.BlobKey {
		t.Fatalf("expected blob reference URI, got %q", asset.URI)
	}

	contentType, blob, err := service.GetBlob(context.Background(), asset.BlobKey)
	if err != nil {
		t.Fatalf("unexpected error fetching blob: %v", err)
	}
	if contentType != "video/mp4" {
		t.Fatalf("expected stored content type, got %q", contentType)
	}
	if !bytes.Equal(blob, data) {
		t.Fatalf("blob data mismatch")
	}
}

func TestIngestVideoOverLimit(t *testing.T) {
	service := newMediaServiceForTest(t)

	_, err := service.Ingest(context.Background(), MediaUpload{
		ContentType: "video/mp4",
		Data:        make([]byte, MaxVideoBytes+1),
	})
	if !errors.Is(err, ErrMediaTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}
}

func TestIngestRejectsUnsupportedType(t *testing.T) {
	service := newMediaServiceForTest(t)

	_, err := service.Ingest(context.Background(), MediaUpload{
		Filename:    "notes.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.7"),
	})
	if !errors.Is(err, ErrMediaUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestIngestSniffsMissingContentType(t *testing.T) {
	service := newMediaServiceForTest(t)

	asset, err := service.Ingest(context.Background(), MediaUpload{Data: pngHeader})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if asset.ContentType != "image/png" {
		t.Fatalf("expected sniffed image/png, got %q", asset.ContentType)
	}
}

func TestIngestRejectsEmptyUpload(t *testing.T) {
	service := newMediaServiceForTest(t)

	if _, err := service.Ingest(context.Background(), MediaUpload{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestGetBlobUnknownKey(t *testing.T) {
	service := newMediaServiceForTest(t)

	if _, _, err := service.GetBlob(context.Background(), "missing"); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected media not found, got %v", err)
	}
}
