package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/storeforge/api/internal/catalog"
	"github.com/storeforge/api/internal/domain"
)

// BuilderServiceDeps carries the dependencies for NewBuilderService.
type BuilderServiceDeps struct {
	Stores    StoreService
	Registry  *catalog.Registry
	Templates *catalog.Templates
	Queue     *SaveQueue
	Clock     func() time.Time
	NewID     func() string
	Logger    func(ctx context.Context, event string, fields map[string]any)
}

type builderService struct {
	stores    StoreService
	registry  *catalog.Registry
	templates *catalog.Templates
	queue     *SaveQueue
	clock     func() time.Time
	newID     func() string
	logger    func(ctx context.Context, event string, fields map[string]any)

	mu       sync.Mutex
	sessions map[string]*builderSession
}

type builderSession struct {
	id         string
	store      *domain.Store
	sections   []domain.SectionInstance
	selectedID string
	source     HydrationSource
}

// NewBuilderService builds the editing session service.
func NewBuilderService(deps BuilderServiceDeps) (BuilderService, error) {
	if deps.Stores == nil {
		return nil, fmt.Errorf("builder service: store service is required")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("builder service: section registry is required")
	}
	if deps.Templates == nil {
		return nil, fmt.Errorf("builder service: template catalog is required")
	}
	if deps.Queue == nil {
		return nil, fmt.Errorf("builder service: save queue is required")
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
	return &builderService{
		stores:    deps.Stores,
		registry:  deps.Registry,
		templates: deps.Templates,
		queue:     deps.Queue,
		clock:     deps.Clock,
		newID:     deps.NewID,
		logger:    deps.Logger,
		sessions:  make(map[string]*builderSession),
	}, nil
}

func (b *builderService) OpenSession(ctx context.Context, storeID string) (*BuilderState, error) {
	store, err := b.stores.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	session := &builderSession{id: b.newID()}
	b.hydrate(ctx, session, store)

	b.mu.Lock()
	b.sessions[session.id] = session
	b.mu.Unlock()

	return b.snapshot(session), nil
}

func (b *builderService) State(ctx context.Context, sessionID string) (*BuilderState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	session, ok := b.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return b.snapshot(session), nil
}

func (b *builderService) SwitchStore(ctx context.Context, sessionID, storeID string) (*BuilderState, error) {
	store, err := b.stores.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	session, ok := b.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.store != nil && session.store.ID == storeID {
		return b.snapshot(session), nil
	}
	// Unsaved edits belong to the previous store and are discarded; the new
	// store hydrates entirely from persisted data.
	b.hydrate(ctx, session, store)
	return b.snapshot(session), nil
}

func (b *builderService) ApplyRemote(ctx context.Context, sessionID string, update RemoteStoreUpdate) (*BuilderState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	session, ok := b.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if update.Name != nil {
		session.store.Name = *update.Name
	}
	if update.Theme != nil {
		if err := validateTheme(*update.Theme); err != nil {
			return nil, err
		}
		session.store.Theme = *update.Theme
	}
	if update.Sections != nil {
		// A remote payload replaces the working list only when it decodes
		// to a non-empty list. Empty and malformed payloads are ignored so
		// a lagging writer cannot wipe out local edits.
		decoded, ok := domain.DecodeSections(update.Sections)
		if ok && len(decoded) > 0 {
			domain.SortSections(decoded)
			session.sections = RenumberSections(decoded)
			session.source = HydrationSourceStored
			b.clearStaleSelection(session)
			b.logger(ctx, "builder.remote_sections_applied", map[string]any{
				"session_id": session.id,
				"store_id":   session.store.ID,
				"sections":   len(decoded),
			})
		} else {
			b.logger(ctx, "builder.remote_sections_ignored", map[string]any{
				"session_id": session.id,
				"store_id":   session.store.ID,
				"valid":      ok,
			})
		}
	}
	return b.snapshot(session), nil
}

func (b *builderService) CloseSession(ctx context.Context, sessionID string) error {
	b.mu.Lock()
	session, ok := b.sessions[sessionID]
	if ok {
		delete(b.sessions, sessionID)
	}
	b.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	return b.queue.Flush(ctx, session.store.ID)
}

func (b *builderService) SelectSection(ctx context.Context, sessionID, sectionID string) (*BuilderState, error) {
	return b.withSession(sessionID, func(session *builderSession) error {
		if _, ok := FindSection(session.sections, sectionID); !ok {
			return fmt.Errorf("%w: section %q is not in the list", ErrInvalidInput, sectionID)
		}
		session.selectedID = sectionID
		return nil
	})
}

func (b *builderService) ClearSelection(ctx context.Context, sessionID string) (*BuilderState, error) {
	return b.withSession(sessionID, func(session *builderSession) error {
		session.selectedID = ""
		return nil
	})
}

func (b *builderService) AddSection(ctx context.Context, sessionID, sectionType string) (*BuilderState, error) {
	return b.mutate(ctx, sessionID, func(session *builderSession) error {
		def, ok := b.registry.Lookup(sectionType)
		if !ok {
			return fmt.Errorf("%w: unknown section type %q", ErrInvalidInput, sectionType)
		}
		if !def.AppliesTo(session.store.Kind) {
			return fmt.Errorf("%w: section %q does not apply to %s stores", ErrInvalidInput, sectionType, session.store.Kind)
		}
		for _, sec := range session.sections {
			if sec.Type == sectionType {
				return fmt.Errorf("%w: section %q is already present", ErrInvalidInput, sectionType)
			}
		}
		session.sections = AppendSection(session.sections, def, b.newID())
		return nil
	})
}

func (b *builderService) RemoveSection(ctx context.Context, sessionID, sectionID string) (*BuilderState, error) {
	return b.mutate(ctx, sessionID, func(session *builderSession) error {
		session.sections = RemoveSection(session.sections, sectionID)
		b.clearStaleSelection(session)
		return nil
	})
}

func (b *builderService) ToggleSection(ctx context.Context, sessionID, sectionID string) (*BuilderState, error) {
	return b.mutate(ctx, sessionID, func(session *builderSession) error {
		session.sections = ToggleSection(session.sections, sectionID)
		return nil
	})
}

func (b *builderService) MoveSection(ctx context.Context, sessionID, sectionID string, dir domain.MoveDirection) (*BuilderState, error) {
	return b.mutate(ctx, sessionID, func(session *builderSession) error {
		if dir != domain.MoveUp && dir != domain.MoveDown {
			return fmt.Errorf("%w: unknown move direction %q", ErrInvalidInput, dir)
		}
		session.sections = MoveSection(session.sections, sectionID, dir)
		return nil
	})
}

func (b *builderService) UpdateSectionProps(ctx context.Context, sessionID, sectionID string, patch domain.PropBag) (*BuilderState, error) {
	return b.mutate(ctx, sessionID, func(session *builderSession) error {
		session.sections = UpdateSectionProps(session.sections, sectionID, patch)
		return nil
	})
}

func (b *builderService) AttachMedia(ctx context.Context, sessionID, sectionID, prop, uri string) (*BuilderState, error) {
	return b.mutate(ctx, sessionID, func(session *builderSession) error {
		section, ok := FindSection(session.sections, sectionID)
		if !ok {
			return fmt.Errorf("%w: section %q is not in the list", ErrInvalidInput, sectionID)
		}
		def, ok := b.registry.Lookup(section.Type)
		if !ok {
			return fmt.Errorf("%w: section type %q is not in the catalog", ErrInvalidInput, section.Type)
		}
		setting, ok := def.Setting(prop)
		if !ok || !setting.Kind.IsMedia() {
			return fmt.Errorf("%w: %q is not a media prop of %s sections", ErrInvalidInput, prop, section.Type)
		}
		if strings.TrimSpace(uri) == "" {
			return fmt.Errorf("%w: media uri is required", ErrInvalidInput)
		}
		session.sections = UpdateSectionProps(session.sections, sectionID, domain.PropBag{prop: uri})
		return nil
	})
}

func (b *builderService) AddArrayRecord(ctx context.Context, sessionID, sectionID, prop string) (*BuilderState, error) {
	return b.editArrayProp(ctx, sessionID, sectionID, prop, func(setting domain.SettingDescriptor, records []any) ([]any, error) {
		return AppendRecord(records, setting), nil
	})
}

func (b *builderService) RemoveArrayRecord(ctx context.Context, sessionID, sectionID, prop string, index int) (*BuilderState, error) {
	return b.editArrayProp(ctx, sessionID, sectionID, prop, func(_ domain.SettingDescriptor, records []any) ([]any, error) {
		return RemoveRecord(records, index)
	})
}

func (b *builderService) MoveArrayRecord(ctx context.Context, sessionID, sectionID, prop string, from, to int) (*BuilderState, error) {
	return b.editArrayProp(ctx, sessionID, sectionID, prop, func(_ domain.SettingDescriptor, records []any) ([]any, error) {
		return MoveRecord(records, from, to)
	})
}

func (b *builderService) UpdateArrayRecordField(ctx context.Context, sessionID, sectionID, prop string, index int, field string, value any) (*BuilderState, error) {
	return b.editArrayProp(ctx, sessionID, sectionID, prop, func(_ domain.SettingDescriptor, records []any) ([]any, error) {
		return SetRecordField(records, index, field, value)
	})
}

func (b *builderService) AvailableSections(ctx context.Context, sessionID string) ([]domain.SectionTypeDefinition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	session, ok := b.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return AvailableSectionTypes(b.registry, session.store.Kind, session.sections), nil
}

func (b *builderService) Flush(ctx context.Context, sessionID string) error {
	b.mu.Lock()
	session, ok := b.sessions[sessionID]
	b.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	return b.queue.Flush(ctx, session.store.ID)
}

// editArrayProp resolves the section's setting descriptor, applies the record
// edit, and writes the new array back as a single-key props patch.
func (b *builderService) editArrayProp(ctx context.Context, sessionID, sectionID, prop string, edit func(domain.SettingDescriptor, []any) ([]any, error)) (*BuilderState, error) {
	return b.mutate(ctx, sessionID, func(session *builderSession) error {
		section, ok := FindSection(session.sections, sectionID)
		if !ok {
			return fmt.Errorf("%w: section %q is not in the list", ErrInvalidInput, sectionID)
		}
		def, ok := b.registry.Lookup(section.Type)
		if !ok {
			return fmt.Errorf("%w: section type %q is not in the catalog", ErrInvalidInput, section.Type)
		}
		setting, ok := def.Setting(prop)
		if !ok || !setting.Kind.IsArray() {
			return fmt.Errorf("%w: %q is not an array prop of %s sections", ErrInvalidInput, prop, section.Type)
		}
		next, err := edit(setting, RecordsForSetting(section.Props, setting))
		if err != nil {
			return err
		}
		session.sections = UpdateSectionProps(session.sections, sectionID, domain.PropBag{prop: next})
		return nil
	})
}

// mutate applies a structural edit and schedules a save of the new list.
func (b *builderService) mutate(ctx context.Context, sessionID string, fn func(*builderSession) error) (*BuilderState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	session, ok := b.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	b.queue.Enqueue(ctx, session.store.ID, session.sections)
	return b.snapshot(session), nil
}

func (b *builderService) withSession(sessionID string, fn func(*builderSession) error) (*BuilderState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	session, ok := b.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	return b.snapshot(session), nil
}

func (b *builderService) hydrate(ctx context.Context, session *builderSession, store *domain.Store) {
	sections, source := HydrateSections(sectionsPayload(store), b.templates, store.TemplateID)
	session.store = store
	session.sections = sections
	session.selectedID = ""
	session.source = source
	b.logger(ctx, "builder.hydrated", map[string]any{
		"session_id": session.id,
		"store_id":   store.ID,
		"source":     string(source),
		"sections":   len(sections),
	})
}

func (b *builderService) clearStaleSelection(session *builderSession) {
	if session.selectedID == "" {
		return
	}
	if _, ok := FindSection(session.sections, session.selectedID); !ok {
		session.selectedID = ""
	}
}

func (b *builderService) snapshot(session *builderSession) *BuilderState {
	storeCopy := *session.store
	storeCopy.Sections = domain.CloneSections(session.sections)
	storeCopy.SectionsRaw = nil
	return &BuilderState{
		SessionID:         session.id,
		Store:             &storeCopy,
		Sections:          domain.CloneSections(session.sections),
		SelectedSectionID: session.selectedID,
		Source:            session.source,
	}
}
