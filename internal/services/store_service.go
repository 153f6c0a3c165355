package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/storeforge/api/internal/catalog"
	"github.com/storeforge/api/internal/domain"
	"github.com/storeforge/api/internal/repositories"
)

const (
	eventStoreCreated   = "store.created"
	eventStorePublished = "store.published"
	eventStoreArchived  = "store.archived"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// EventPublisher emits domain events for downstream consumers. Publishing is
// best effort; a failed publish never fails the originating operation.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload map[string]any) error
}

// StoreServiceDeps carries the dependencies for NewStoreService.
type StoreServiceDeps struct {
	Stores    repositories.StoreRepository
	Templates *catalog.Templates
	Events    EventPublisher
	Clock     func() time.Time
	NewID     func() string
	Logger    func(ctx context.Context, event string, fields map[string]any)
}

type storeService struct {
	stores    repositories.StoreRepository
	templates *catalog.Templates
	events    EventPublisher
	clock     func() time.Time
	newID     func() string
	logger    func(ctx context.Context, event string, fields map[string]any)
}

// NewStoreService builds the store lifecycle service.
func NewStoreService(deps StoreServiceDeps) (StoreService, error) {
	if deps.Stores == nil {
		return nil, fmt.Errorf("store service: store repository is required")
	}
	if deps.Templates == nil {
		return nil, fmt.Errorf("store service: template catalog is required")
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = func() string { return ulid.Make().String() }
	}
	if deps.Logger == nil {
		deps.Logger = func(context.Context, string, map[string]any) {}
	}
	return &storeService{
		stores:    deps.Stores,
		templates: deps.Templates,
		events:    deps.Events,
		clock:     deps.Clock,
		newID:     deps.NewID,
		logger:    deps.Logger,
	}, nil
}

func (s *storeService) CreateStore(ctx context.Context, input CreateStoreInput) (*domain.Store, error) {
	if strings.TrimSpace(input.VendorID) == "" {
		return nil, fmt.Errorf("%w: vendor id is required", ErrInvalidInput)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: store name is required", ErrInvalidInput)
	}
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown store kind %q", ErrInvalidInput, input.Kind)
	}
	tpl, ok := s.templates.GetByID(input.TemplateID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown template %q", ErrInvalidInput, input.TemplateID)
	}
	if tpl.StoreKind != input.Kind {
		return nil, fmt.Errorf("%w: template %q targets %s stores", ErrInvalidInput, tpl.ID, tpl.StoreKind)
	}

	slug := Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: store name yields an empty slug", ErrInvalidInput)
	}
	if _, err := s.stores.FindBySlug(ctx, slug); err == nil {
		return nil, ErrSlugTaken
	} else if !isRepoNotFound(err) {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	now := s.clock().UTC()
	store := &domain.Store{
		ID:         s.newID(),
		VendorID:   input.VendorID,
		Name:       name,
		Slug:       slug,
		Kind:       input.Kind,
		Status:     domain.StoreStatusDraft,
		TemplateID: tpl.ID,
		Theme:      tpl.Theme,
		Sections:   RenumberSections(s.templates.SeedSections(tpl.ID)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.stores.Insert(ctx, store); err != nil {
		if isRepoConflict(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}

	s.publish(ctx, eventStoreCreated, map[string]any{
		"store_id":  store.ID,
		"vendor_id": store.VendorID,
		"template":  tpl.ID,
	})
	s.logger(ctx, "store.created", map[string]any{
		"store_id": store.ID,
		"template": tpl.ID,
		"sections": len(store.Sections),
	})
	return store, nil
}

func (s *storeService) GetStore(ctx context.Context, storeID string) (*domain.Store, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if isRepoNotFound(err) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("load store: %w", err)
	}
	return store, nil
}

func (s *storeService) GetStoreBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	store, err := s.stores.FindBySlug(ctx, slug)
	if err != nil {
		if isRepoNotFound(err) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("load store by slug: %w", err)
	}
	return store, nil
}

func (s *storeService) ListStores(ctx context.Context, input ListStoresInput) (domain.CursorPage[*domain.Store], error) {
	page, err := s.stores.List(ctx, repositories.StoreListFilter{
		VendorID:   input.VendorID,
		Status:     input.Status,
		Pagination: input.Pagination,
	})
	if err != nil {
		return domain.CursorPage[*domain.Store]{}, fmt.Errorf("list stores: %w", err)
	}
	return page, nil
}

func (s *storeService) UpdateStore(ctx context.Context, storeID string, input UpdateStoreInput) (*domain.Store, error) {
	store, err := s.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: store name cannot be empty", ErrInvalidInput)
		}
		store.Name = name
	}
	if input.Theme != nil {
		if err := validateTheme(*input.Theme); err != nil {
			return nil, err
		}
		store.Theme = *input.Theme
	}
	store.UpdatedAt = s.clock().UTC()
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	return store, nil
}

func (s *storeService) PublishStore(ctx context.Context, storeID string) (*domain.Store, error) {
	store, err := s.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !hasEnabledSection(store.Sections) {
		return nil, fmt.Errorf("%w: store has no enabled sections to publish", ErrInvalidInput)
	}
	now := s.clock().UTC()
	store.Status = domain.StoreStatusActive
	store.PublishedAt = &now
	store.UpdatedAt = now
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("publish store: %w", err)
	}
	s.publish(ctx, eventStorePublished, map[string]any{
		"store_id":  store.ID,
		"vendor_id": store.VendorID,
		"slug":      store.Slug,
	})
	s.logger(ctx, "store.published", map[string]any{"store_id": store.ID, "slug": store.Slug})
	return store, nil
}

func (s *storeService) ArchiveStore(ctx context.Context, storeID string) (*domain.Store, error) {
	store, err := s.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	store.Status = domain.StoreStatusArchived
	store.UpdatedAt = s.clock().UTC()
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("archive store: %w", err)
	}
	s.publish(ctx, eventStoreArchived, map[string]any{"store_id": store.ID})
	return store, nil
}

func (s *storeService) DeleteStore(ctx context.Context, storeID string) error {
	if err := s.stores.Delete(ctx, storeID); err != nil {
		if isRepoNotFound(err) {
			return ErrStoreNotFound
		}
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}

func (s *storeService) ReplaceSections(ctx context.Context, storeID string, sections []domain.SectionInstance) (*domain.Store, error) {
	store, err := s.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	store.Sections = RenumberSections(sections)
	store.UpdatedAt = s.clock().UTC()
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("save sections: %w", err)
	}
	return store, nil
}

func (s *storeService) publish(ctx context.Context, event string, payload map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event, payload); err != nil {
		s.logger(ctx, "store.event_publish_failed", map[string]any{
			"event": event,
			"error": err.Error(),
		})
	}
}

func validateTheme(theme domain.Theme) error {
	if theme.PrimaryColor != "" && !hexColorPattern.MatchString(theme.PrimaryColor) {
		return fmt.Errorf("%w: primary color %q is not a hex color", ErrInvalidInput, theme.PrimaryColor)
	}
	if theme.SecondaryColor != "" && !hexColorPattern.MatchString(theme.SecondaryColor) {
		return fmt.Errorf("%w: secondary color %q is not a hex color", ErrInvalidInput, theme.SecondaryColor)
	}
	return nil
}

func hasEnabledSection(sections []domain.SectionInstance) bool {
	for _, sec := range sections {
		if sec.Enabled {
			return true
		}
	}
	return false
}
