// Package services contains the application logic for store composition:
// store lifecycle, the builder editing session, section list operations,
// hydration of persisted layouts, media ingestion, and save scheduling.
package services

import (
	"context"
	"errors"

	"github.com/storeforge/api/internal/domain"
	"github.com/storeforge/api/internal/repositories"
)

// CreateStoreInput carries the fields needed to create a store. The section
// list is seeded from the template; callers never supply sections directly.
type CreateStoreInput struct {
	VendorID   string
	Name       string
	Kind       domain.StoreKind
	TemplateID string
}

// UpdateStoreInput updates store identity fields. Nil pointers leave the
// corresponding field untouched.
type UpdateStoreInput struct {
	Name  *string
	Theme *domain.Theme
}

// ListStoresInput filters and pages the store listing for a vendor.
type ListStoresInput struct {
	VendorID   string
	Status     domain.StoreStatus
	Pagination domain.Pagination
}

// StoreService owns the store lifecycle and persisted section writes.
type StoreService interface {
	CreateStore(ctx context.Context, input CreateStoreInput) (*domain.Store, error)
	GetStore(ctx context.Context, storeID string) (*domain.Store, error)
	GetStoreBySlug(ctx context.Context, slug string) (*domain.Store, error)
	ListStores(ctx context.Context, input ListStoresInput) (domain.CursorPage[*domain.Store], error)
	UpdateStore(ctx context.Context, storeID string, input UpdateStoreInput) (*domain.Store, error)
	PublishStore(ctx context.Context, storeID string) (*domain.Store, error)
	ArchiveStore(ctx context.Context, storeID string) (*domain.Store, error)
	DeleteStore(ctx context.Context, storeID string) error
	// ReplaceSections overwrites the persisted section list. The list is
	// renumbered before writing so stored order always matches position.
	ReplaceSections(ctx context.Context, storeID string, sections []domain.SectionInstance) (*domain.Store, error)
}

// RemoteStoreUpdate carries a partial store update observed from outside the
// current editing session, for example another device saving the same store.
// Sections is the raw persisted payload; it replaces the working list only
// when it decodes to a non-empty section list.
type RemoteStoreUpdate struct {
	Name     *string
	Theme    *domain.Theme
	Sections any
}

// BuilderState is a snapshot of an editing session returned to handlers
// after every builder operation.
type BuilderState struct {
	SessionID         string
	Store             *domain.Store
	Sections          []domain.SectionInstance
	SelectedSectionID string
	Source            HydrationSource
}

// BuilderService manages store editing sessions. A session holds the working
// section list and the current selection; every mutation schedules a
// persisted save through the store's save queue.
type BuilderService interface {
	OpenSession(ctx context.Context, storeID string) (*BuilderState, error)
	// State returns the current session snapshot without mutating it.
	State(ctx context.Context, sessionID string) (*BuilderState, error)
	// SwitchStore repoints an existing session at a different store,
	// discarding unsaved edits and rehydrating from persisted data.
	SwitchStore(ctx context.Context, sessionID, storeID string) (*BuilderState, error)
	// ApplyRemote folds a concurrent out-of-session update into the
	// session without discarding local edits the update does not cover.
	ApplyRemote(ctx context.Context, sessionID string, update RemoteStoreUpdate) (*BuilderState, error)
	CloseSession(ctx context.Context, sessionID string) error

	SelectSection(ctx context.Context, sessionID, sectionID string) (*BuilderState, error)
	ClearSelection(ctx context.Context, sessionID string) (*BuilderState, error)

	AddSection(ctx context.Context, sessionID, sectionType string) (*BuilderState, error)
	RemoveSection(ctx context.Context, sessionID, sectionID string) (*BuilderState, error)
	ToggleSection(ctx context.Context, sessionID, sectionID string) (*BuilderState, error)
	MoveSection(ctx context.Context, sessionID, sectionID string, dir domain.MoveDirection) (*BuilderState, error)
	UpdateSectionProps(ctx context.Context, sessionID, sectionID string, patch domain.PropBag) (*BuilderState, error)

	// AttachMedia writes an ingested asset URI into a media-kind setting
	// of the section.
	AttachMedia(ctx context.Context, sessionID, sectionID, prop, uri string) (*BuilderState, error)

	// Array-of-record props are edited one record at a time; the prop must
	// name a setting of an array kind on the section's type.
	AddArrayRecord(ctx context.Context, sessionID, sectionID, prop string) (*BuilderState, error)
	RemoveArrayRecord(ctx context.Context, sessionID, sectionID, prop string, index int) (*BuilderState, error)
	MoveArrayRecord(ctx context.Context, sessionID, sectionID, prop string, from, to int) (*BuilderState, error)
	UpdateArrayRecordField(ctx context.Context, sessionID, sectionID, prop string, index int, field string, value any) (*BuilderState, error)

	AvailableSections(ctx context.Context, sessionID string) ([]domain.SectionTypeDefinition, error)
	// Flush waits for any pending save of the session's store to complete.
	Flush(ctx context.Context, sessionID string) error
}

// MediaUpload is an in-memory upload received from the builder.
type MediaUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MediaAsset is the result of ingesting an upload. Images are returned as a
// self-contained data URI; videos are stored as process-local blobs and
// referenced by URL.
type MediaAsset struct {
	Kind        domain.MediaKind
	ContentType string
	SizeBytes   int
	// URI is a data URI for images and a blob reference URL for videos.
	URI string
	// BlobKey is set for videos only.
	BlobKey string
}

// MediaService validates and ingests uploads destined for section props.
type MediaService interface {
	Ingest(ctx context.Context, upload MediaUpload) (*MediaAsset, error)
	GetBlob(ctx context.Context, key string) (contentType string, data []byte, err error)
}

var (
	// ErrStoreNotFound reports that the requested store does not exist.
	ErrStoreNotFound = errors.New("store not found")
	// ErrSessionNotFound reports an unknown or expired builder session.
	ErrSessionNotFound = errors.New("builder session not found")
	// ErrSlugTaken reports that the derived store slug is already in use.
	ErrSlugTaken = errors.New("store slug already in use")
	// ErrInvalidInput reports a request that failed domain validation.
	ErrInvalidInput = errors.New("invalid input")
)

func isRepoNotFound(err error) bool {
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.IsNotFound()
	}
	return false
}

func isRepoConflict(err error) bool {
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.IsConflict()
	}
	return false
}
