// Package repositories defines persistence contracts for storefront data.
// Implementations live in subpackages; services depend only on these
// interfaces so storage can be swapped or stubbed in tests.
package repositories

import (
	"context"

	"github.com/storeforge/api/internal/domain"
)

// RepositoryError allows callers to classify persistence failures without
// depending on the underlying driver.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// StoreListFilter narrows and pages a store listing.
type StoreListFilter struct {
	VendorID   string
	Status     domain.StoreStatus
	Pagination domain.Pagination
}

// StoreRepository persists stores together with their section lists.
type StoreRepository interface {
	// Insert creates a new store. Returns a conflict error when the id or
	// slug is already taken.
	Insert(ctx context.Context, store *domain.Store) error
	// Update overwrites an existing store document.
	Update(ctx context.Context, store *domain.Store) error
	// FindByID loads a store by id.
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	// FindBySlug loads a store by its public slug.
	FindBySlug(ctx context.Context, slug string) (*domain.Store, error)
	// List returns a page of stores ordered by most recently updated.
	List(ctx context.Context, filter StoreListFilter) (domain.CursorPage[*domain.Store], error)
	// Delete removes a store document.
	Delete(ctx context.Context, id string) error
}

// MediaBlobRepository holds uploaded video blobs for the lifetime of the
// process. Blobs are referenced from section props by an opaque key and are
// not persisted across restarts.
type MediaBlobRepository interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	Get(ctx context.Context, key string) (contentType string, data []byte, err error)
	Delete(ctx context.Context, key string) error
}
