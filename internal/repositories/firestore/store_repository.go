// Package firestore provides Firestore-backed implementations of the
// repository contracts.
package firestore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/storeforge/api/internal/domain"
	pfirestore "github.com/storeforge/api/internal/platform/firestore"
	"github.com/storeforge/api/internal/repositories"
)

const storesCollection = "stores"

// StoreRepository persists store documents including their section lists.
type StoreRepository struct {
	provider *pfirestore.Provider
	base     *pfirestore.BaseRepository[storeDocument]
}

// NewStoreRepository constructs a Firestore-backed store repository.
func NewStoreRepository(provider *pfirestore.Provider) (*StoreRepository, error) {
	if provider == nil {
		return nil, errors.New("store repository: firestore provider is required")
	}
	base := pfirestore.NewBaseRepository[storeDocument](provider, storesCollection)
	return &StoreRepository{provider: provider, base: base}, nil
}

// Insert stores a new store document. The write runs in a transaction that
// checks the slug is unclaimed, so concurrent creates with the same slug
// cannot both succeed.
func (r *StoreRepository) Insert(ctx context.Context, store *domain.Store) error {
	if r == nil || r.base == nil {
		return errors.New("store repository not initialised")
	}
	if store == nil {
		return errors.New("store repository: store is required")
	}
	storeID := strings.TrimSpace(store.ID)
	if storeID == "" {
		return errors.New("store repository: store id is required")
	}

	client, err := r.provider.Client(ctx)
	if err != nil {
		return err
	}
	coll := client.Collection(storesCollection)
	return pfirestore.RunTransaction(ctx, client, func(ctx context.Context, tx *firestore.Transaction) error {
		slug := strings.TrimSpace(store.Slug)
		if slug != "" {
			matches, err := tx.Documents(coll.Where("slug", "==", slug).Limit(1)).GetAll()
			if err != nil {
				return err
			}
			if len(matches) > 0 {
				return status.Errorf(codes.AlreadyExists, "slug %q already claimed by %s", slug, matches[0].Ref.ID)
			}
		}
		return tx.Create(coll.Doc(storeID), encodeStoreDocument(store))
	})
}

// Update replaces the persisted store state with the provided snapshot.
func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	if r == nil || r.base == nil {
		return errors.New("store repository not initialised")
	}
	if store == nil {
		return errors.New("store repository: store is required")
	}
	storeID := strings.TrimSpace(store.ID)
	if storeID == "" {
		return errors.New("store repository: store id is required")
	}
	if _, err := r.base.Set(ctx, storeID, encodeStoreDocument(store)); err != nil {
		return err
	}
	return nil
}

// FindByID fetches a single store.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	if r == nil || r.base == nil {
		return nil, errors.New("store repository not initialised")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("store repository: store id is required")
	}
	doc, err := r.base.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeStoreDocument(id, doc.Data, doc.CreateTime, doc.UpdateTime), nil
}

// FindBySlug fetches the store claiming the given public slug.
func (r *StoreRepository) FindBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	if r == nil || r.base == nil {
		return nil, errors.New("store repository not initialised")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.New("store repository: slug is required")
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("slug", "==", slug).Limit(1)
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, pfirestore.NotFoundError("stores.find_by_slug", fmt.Errorf("slug %q not found", slug))
	}
	doc := docs[0]
	return decodeStoreDocument(doc.ID, doc.Data, doc.CreateTime, doc.UpdateTime), nil
}

// List returns stores ordered by most recent update, optionally filtered by
// vendor and status.
func (r *StoreRepository) List(ctx context.Context, filter repositories.StoreListFilter) (domain.CursorPage[*domain.Store], error) {
	if r == nil || r.base == nil {
		return domain.CursorPage[*domain.Store]{}, errors.New("store repository not initialised")
	}

	limit := filter.Pagination.PageSize
	if limit < 0 {
		limit = 0
	}
	fetchLimit := limit
	if limit > 0 {
		fetchLimit = limit + 1
	}

	var startAfter []any
	if token := strings.TrimSpace(filter.Pagination.PageToken); token != "" {
		tokenTime, tokenID, err := decodeStoreListToken(token)
		if err != nil {
			return domain.CursorPage[*domain.Store]{}, fmt.Errorf("store repository: invalid page token: %w", err)
		}
		startAfter = []any{tokenTime, tokenID}
	}

	vendorID := strings.TrimSpace(filter.VendorID)
	status := strings.TrimSpace(string(filter.Status))

	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		if vendorID != "" {
			q = q.Where("vendorId", "==", vendorID)
		}
		if status != "" {
			q = q.Where("status", "==", status)
		}
		q = q.OrderBy("updatedAt", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Desc)
		if len(startAfter) == 2 {
			q = q.StartAfter(startAfter...)
		}
		if fetchLimit > 0 {
			q = q.Limit(fetchLimit)
		}
		return q
	})
	if err != nil {
		return domain.CursorPage[*domain.Store]{}, err
	}

	valueDocs := docs
	nextToken := ""
	if limit > 0 && len(valueDocs) == fetchLimit {
		last := valueDocs[len(valueDocs)-1]
		tokenTime := last.Data.UpdatedAt
		if tokenTime.IsZero() {
			tokenTime = last.UpdateTime
		}
		nextToken = encodeStoreListToken(tokenTime, last.ID)
		valueDocs = valueDocs[:len(valueDocs)-1]
	}

	items := make([]*domain.Store, 0, len(valueDocs))
	for _, doc := range valueDocs {
		items = append(items, decodeStoreDocument(doc.ID, doc.Data, doc.CreateTime, doc.UpdateTime))
	}

	return domain.CursorPage[*domain.Store]{
		Items:         items,
		NextPageToken: nextToken,
	}, nil
}

// Delete removes a store document.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.base == nil {
		return errors.New("store repository not initialised")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("store repository: store id is required")
	}
	if _, err := r.base.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

// storeDocument is the persisted shape of a store. Sections is typed as any
// so documents written by older clients as a JSON string still load; the
// decode path hands the raw value to the hydration layer untouched.
type storeDocument struct {
	VendorID    string        `firestore:"vendorId"`
	Name        string        `firestore:"name"`
	Slug        string        `firestore:"slug"`
	Kind        string        `firestore:"kind"`
	Status      string        `firestore:"status"`
	TemplateID  string        `firestore:"templateId"`
	Theme       themeDocument `firestore:"theme"`
	Sections    any           `firestore:"sections"`
	CreatedAt   time.Time     `firestore:"createdAt"`
	UpdatedAt   time.Time     `firestore:"updatedAt"`
	PublishedAt *time.Time    `firestore:"publishedAt,omitempty"`
}

type themeDocument struct {
	PrimaryColor   string `firestore:"primaryColor"`
	SecondaryColor string `firestore:"secondaryColor"`
	FontFamily     string `firestore:"fontFamily"`
}

func encodeStoreDocument(store *domain.Store) storeDocument {
	return storeDocument{
		VendorID:   strings.TrimSpace(store.VendorID),
		Name:       strings.TrimSpace(store.Name),
		Slug:       strings.TrimSpace(store.Slug),
		Kind:       string(store.Kind),
		Status:     string(store.Status),
		TemplateID: strings.TrimSpace(store.TemplateID),
		Theme: themeDocument{
			PrimaryColor:   strings.TrimSpace(store.Theme.PrimaryColor),
			SecondaryColor: strings.TrimSpace(store.Theme.SecondaryColor),
			FontFamily:     strings.TrimSpace(store.Theme.FontFamily),
		},
		Sections:    domain.EncodeSections(store.Sections),
		CreatedAt:   store.CreatedAt.UTC(),
		UpdatedAt:   store.UpdatedAt.UTC(),
		PublishedAt: normalizeTimePointer(store.PublishedAt),
	}
}

func decodeStoreDocument(id string, doc storeDocument, createdAt, updatedAt time.Time) *domain.Store {
	sections, ok := domain.DecodeSections(doc.Sections)
	if !ok {
		sections = nil
	} else {
		domain.SortSections(sections)
	}
	return &domain.Store{
		ID:         strings.TrimSpace(id),
		VendorID:   strings.TrimSpace(doc.VendorID),
		Name:       strings.TrimSpace(doc.Name),
		Slug:       strings.TrimSpace(doc.Slug),
		Kind:       domain.StoreKind(strings.TrimSpace(doc.Kind)),
		Status:     domain.StoreStatus(strings.TrimSpace(doc.Status)),
		TemplateID: strings.TrimSpace(doc.TemplateID),
		Theme: domain.Theme{
			PrimaryColor:   strings.TrimSpace(doc.Theme.PrimaryColor),
			SecondaryColor: strings.TrimSpace(doc.Theme.SecondaryColor),
			FontFamily:     strings.TrimSpace(doc.Theme.FontFamily),
		},
		Sections:    sections,
		SectionsRaw: doc.Sections,
		CreatedAt:   chooseTime(doc.CreatedAt, createdAt),
		UpdatedAt:   chooseTime(doc.UpdatedAt, updatedAt),
		PublishedAt: normalizeTimePointer(doc.PublishedAt),
	}
}

func chooseTime(primary time.Time, fallback time.Time) time.Time {
	if !primary.IsZero() {
		return primary.UTC()
	}
	if !fallback.IsZero() {
		return fallback.UTC()
	}
	return time.Time{}
}

func normalizeTimePointer(value *time.Time) *time.Time {
	if value == nil || value.IsZero() {
		return nil
	}
	ts := value.UTC()
	return &ts
}

func encodeStoreListToken(updatedAt time.Time, docID string) string {
	payload := fmt.Sprintf("%s|%s", updatedAt.UTC().Format(time.RFC3339Nano), docID)
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

func decodeStoreListToken(token string) (time.Time, string, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", err
	}
	parts := strings.SplitN(string(data), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", errors.New("invalid token structure")
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", err
	}
	return ts, parts[1], nil
}
