package domain

import (
	"time"
)

// Pagination defines standard cursor-based paging inputs for list operations.
type Pagination struct {
	PageSize  int
	PageToken string
}

// CursorPage packages list results with an encoded next token.
type CursorPage[T any] struct {
	Items         []T
	NextPageToken string
}

// StoreKind classifies a store as single-product or multi-product. It is
// supplied by the account layer and used only to filter templates and the
// catalog of section types applicable to a store.
type StoreKind string

const (
	// StoreKindSingleProduct marks stores built around one hero product.
	StoreKindSingleProduct StoreKind = "single-product"
	// StoreKindMultiProduct marks stores carrying a product catalog.
	StoreKindMultiProduct StoreKind = "multi-product"
)

// Valid reports whether the store kind is one of the known values.
func (k StoreKind) Valid() bool {
	return k == StoreKindSingleProduct || k == StoreKindMultiProduct
}

// StoreStatus enumerates the lifecycle states of a store.
type StoreStatus string

const (
	// StoreStatusDraft indicates the store is being built and is not publicly visible.
	StoreStatusDraft StoreStatus = "draft"
	// StoreStatusActive indicates the store has been published.
	StoreStatusActive StoreStatus = "active"
	// StoreStatusArchived indicates the store has been retired by its vendor.
	StoreStatusArchived StoreStatus = "archived"
)

// PropBag holds the free-form properties of a section instance. The shape is
// dictated by the owning section type's default props and settings but is not
// schema-enforced at this layer; persisted data referencing fields unknown to
// the current build round-trips untouched.
type PropBag map[string]any

// SettingKind identifies the editor widget used for one configurable field of
// a section type.
type SettingKind string

const (
	SettingKindText     SettingKind = "text"
	SettingKindTextarea SettingKind = "textarea"
	SettingKindURL      SettingKind = "url"
	SettingKindSelect   SettingKind = "select"
	SettingKindToggle   SettingKind = "toggle"
	SettingKindColor    SettingKind = "color"
	SettingKindRange    SettingKind = "range"
	SettingKindImage    SettingKind = "image"
	SettingKindVideo    SettingKind = "video"

	SettingKindTestimonialsArray SettingKind = "testimonials-array"
	SettingKindBadgesArray       SettingKind = "badges-array"
	SettingKindFeaturesArray     SettingKind = "features-array"
	SettingKindFAQsArray         SettingKind = "faqs-array"
	SettingKindStatsArray        SettingKind = "stats-array"
	SettingKindCollectionsArray  SettingKind = "collections-array"
	SettingKindFeaturesList      SettingKind = "features-list"
	SettingKindComparisonColumns SettingKind = "comparison-columns"
	SettingKindStepsArray        SettingKind = "steps-array"
	SettingKindLinksArray        SettingKind = "links-array"
)

// IsArray reports whether the kind edits an array-of-record prop.
func (k SettingKind) IsArray() bool {
	switch k {
	case SettingKindTestimonialsArray, SettingKindBadgesArray, SettingKindFeaturesArray,
		SettingKindFAQsArray, SettingKindStatsArray, SettingKindCollectionsArray,
		SettingKindFeaturesList, SettingKindComparisonColumns, SettingKindStepsArray,
		SettingKindLinksArray:
		return true
	}
	return false
}

// IsMedia reports whether the kind ingests an uploaded file.
func (k SettingKind) IsMedia() bool {
	return k == SettingKindImage || k == SettingKindVideo
}

// EmptyValue returns the fallback value the editor substitutes when a section's
// props are missing the key a setting references.
func (k SettingKind) EmptyValue() any {
	switch {
	case k == SettingKindToggle:
		return false
	case k == SettingKindRange:
		return float64(0)
	case k.IsArray():
		return []any{}
	default:
		return ""
	}
}

// EmptyRecord returns the blank record an array editor appends. The field set
// mirrors what the section templates read per kind; list kinds that hold
// plain strings append an empty string.
func (k SettingKind) EmptyRecord() any {
	switch k {
	case SettingKindTestimonialsArray:
		return map[string]any{"quote": "", "author": "", "rating": float64(5)}
	case SettingKindBadgesArray:
		return map[string]any{"icon": "", "text": ""}
	case SettingKindFeaturesArray:
		return map[string]any{"icon": "", "title": "", "description": ""}
	case SettingKindFAQsArray:
		return map[string]any{"question": "", "answer": ""}
	case SettingKindStatsArray:
		return map[string]any{"label": "", "value": ""}
	case SettingKindCollectionsArray:
		return map[string]any{"name": "", "image": "", "link": ""}
	case SettingKindComparisonColumns:
		return map[string]any{"name": "", "rows": []any{}}
	case SettingKindStepsArray:
		return map[string]any{"title": "", "description": ""}
	case SettingKindLinksArray:
		return map[string]any{"label": "", "url": ""}
	case SettingKindFeaturesList:
		return ""
	}
	return nil
}

// SettingDescriptor describes one editable field of a section type.
type SettingDescriptor struct {
	Name    string
	Kind    SettingKind
	Label   string
	Options []string
	Min     float64
	Max     float64
	Step    float64
}

// SectionTypeDefinition is an immutable registry entry describing a kind of
// configurable page section.
type SectionTypeDefinition struct {
	Type          string
	Name          string
	Description   string
	Category      string
	ApplicableFor []StoreKind
	DefaultProps  PropBag
	Settings      []SettingDescriptor
}

// Setting returns the descriptor for the named editable field.
func (d SectionTypeDefinition) Setting(name string) (SettingDescriptor, bool) {
	for _, setting := range d.Settings {
		if setting.Name == name {
			return setting, true
		}
	}
	return SettingDescriptor{}, false
}

// AppliesTo reports whether the section type is offered to stores of the given kind.
func (d SectionTypeDefinition) AppliesTo(kind StoreKind) bool {
	for _, k := range d.ApplicableFor {
		if k == kind {
			return true
		}
	}
	return false
}

// TemplateSection is one seed entry in a store template.
type TemplateSection struct {
	Type    string
	Order   int
	Enabled bool
	Props   PropBag
}

// StoreTemplate is a named, store-kind-scoped starter bundle of sections used
// to seed new stores.
type StoreTemplate struct {
	ID          string
	Name        string
	Description string
	StoreKind   StoreKind
	BestFor     []string
	Theme       Theme
	Sections    []TemplateSection
}

// SectionInstance is the mutable, persisted unit of store composition. IDs are
// generated at creation and never recomputed from position; Order equals the
// 1-based list position after any structural mutation.
type SectionInstance struct {
	ID      string
	Type    string
	Order   int
	Enabled bool
	Props   PropBag
}

// Theme carries the store-wide visual settings passed to every section renderer.
type Theme struct {
	PrimaryColor   string
	SecondaryColor string
	FontFamily     string
}

// Store owns one ordered section list plus a theme. Sections may be persisted
// as a structured array or as a JSON-stringified array; the hydration layer
// accepts both.
type Store struct {
	ID          string
	VendorID    string
	Name        string
	Slug        string
	Kind        StoreKind
	Status      StoreStatus
	TemplateID  string
	Theme       Theme
	Sections    []SectionInstance
	// SectionsRaw holds the persisted sections payload before tolerant
	// decoding. Repositories populate it on reads; hydration consumes it so
	// a malformed payload can be told apart from a valid empty list.
	SectionsRaw any
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// MoveDirection selects the neighbour a section swaps with.
type MoveDirection string

const (
	// MoveUp swaps the section with its predecessor.
	MoveUp MoveDirection = "up"
	// MoveDown swaps the section with its successor.
	MoveDown MoveDirection = "down"
)

// MediaKind distinguishes the two upload families with different ceilings and
// persistable representations.
type MediaKind string

const (
	// MediaKindImage is stored inline with section props as a data URI.
	MediaKindImage MediaKind = "image"
	// MediaKindVideo is held as an ephemeral in-process reference valid only
	// for the current process lifetime; large video should use an external URL.
	MediaKindVideo MediaKind = "video"
)
