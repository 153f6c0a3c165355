package handlers

import (
	"time"

	"github.com/storeforge/api/internal/domain"
	"github.com/storeforge/api/internal/services"
)

type themePayload struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	FontFamily     string `json:"font_family"`
}

type sectionPayload struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Order   int            `json:"order"`
	Enabled bool           `json:"enabled"`
	Props   map[string]any `json:"props"`
}

type storePayload struct {
	ID          string           `json:"id"`
	VendorID    string           `json:"vendor_id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Kind        string           `json:"kind"`
	Status      string           `json:"status"`
	TemplateID  string           `json:"template_id,omitempty"`
	Theme       themePayload     `json:"theme"`
	Sections    []sectionPayload `json:"sections"`
	CreatedAt   string           `json:"created_at,omitempty"`
	UpdatedAt   string           `json:"updated_at,omitempty"`
	PublishedAt string           `json:"published_at,omitempty"`
}

type settingPayload struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
	Min     float64  `json:"min,omitempty"`
	Max     float64  `json:"max,omitempty"`
	Step    float64  `json:"step,omitempty"`
}

type sectionTypePayload struct {
	Type          string           `json:"type"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	ApplicableFor []string         `json:"applicable_for"`
	DefaultProps  map[string]any   `json:"default_props"`
	Settings      []settingPayload `json:"settings"`
}

type templateSummaryPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	StoreKind   string   `json:"store_kind"`
	BestFor     []string `json:"best_for,omitempty"`
	Sections    int      `json:"sections"`
}

type templatePayload struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	StoreKind   string                   `json:"store_kind"`
	BestFor     []string                 `json:"best_for,omitempty"`
	Theme       themePayload             `json:"theme"`
	Sections    []templateSectionPayload `json:"sections"`
}

type templateSectionPayload struct {
	Type    string         `json:"type"`
	Order   int            `json:"order"`
	Enabled bool           `json:"enabled"`
	Props   map[string]any `json:"props"`
}

type builderStatePayload struct {
	SessionID         string           `json:"session_id"`
	Store             storePayload     `json:"store"`
	Sections          []sectionPayload `json:"sections"`
	// A cleared selection is serialized as an explicit empty string so
	// clients (and response decoders) never keep a stale id around.
	SelectedSectionID string           `json:"selected_section_id"`
	Source            string           `json:"source"`
}

type mediaAssetPayload struct {
	Kind        string `json:"kind"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
	URI         string `json:"uri"`
	BlobKey     string `json:"blob_key,omitempty"`
}

func encodeTheme(theme domain.Theme) themePayload {
	return themePayload{
		PrimaryColor:   theme.PrimaryColor,
		SecondaryColor: theme.SecondaryColor,
		FontFamily:     theme.FontFamily,
	}
}

func encodeSections(sections []domain.SectionInstance) []sectionPayload {
	out := make([]sectionPayload, 0, len(sections))
	for _, sec := range sections {
		out = append(out, sectionPayload{
			ID:      sec.ID,
			Type:    sec.Type,
			Order:   sec.Order,
			Enabled: sec.Enabled,
			Props:   map[string]any(sec.Props.Clone()),
		})
	}
	return out
}

func encodeStore(store *domain.Store) storePayload {
	payload := storePayload{
		ID:         store.ID,
		VendorID:   store.VendorID,
		Name:       store.Name,
		Slug:       store.Slug,
		Kind:       string(store.Kind),
		Status:     string(store.Status),
		TemplateID: store.TemplateID,
		Theme:      encodeTheme(store.Theme),
		Sections:   encodeSections(store.Sections),
		CreatedAt:  formatTime(store.CreatedAt),
		UpdatedAt:  formatTime(store.UpdatedAt),
	}
	if store.PublishedAt != nil {
		payload.PublishedAt = formatTime(*store.PublishedAt)
	}
	return payload
}

func encodeSectionType(def domain.SectionTypeDefinition) sectionTypePayload {
	kinds := make([]string, 0, len(def.ApplicableFor))
	for _, kind := range def.ApplicableFor {
		kinds = append(kinds, string(kind))
	}
	settings := make([]settingPayload, 0, len(def.Settings))
	for _, setting := range def.Settings {
		settings = append(settings, settingPayload{
			Name:    setting.Name,
			Kind:    string(setting.Kind),
			Label:   setting.Label,
			Options: setting.Options,
			Min:     setting.Min,
			Max:     setting.Max,
			Step:    setting.Step,
		})
	}
	return sectionTypePayload{
		Type:          def.Type,
		Name:          def.Name,
		Description:   def.Description,
		Category:      def.Category,
		ApplicableFor: kinds,
		DefaultProps:  map[string]any(def.DefaultProps.Clone()),
		Settings:      settings,
	}
}

func encodeTemplateSummary(tpl domain.StoreTemplate) templateSummaryPayload {
	return templateSummaryPayload{
		ID:          tpl.ID,
		Name:        tpl.Name,
		Description: tpl.Description,
		StoreKind:   string(tpl.StoreKind),
		BestFor:     tpl.BestFor,
		Sections:    len(tpl.Sections),
	}
}

func encodeTemplate(tpl domain.StoreTemplate) templatePayload {
	sections := make([]templateSectionPayload, 0, len(tpl.Sections))
	for _, sec := range tpl.Sections {
		sections = append(sections, templateSectionPayload{
			Type:    sec.Type,
			Order:   sec.Order,
			Enabled: sec.Enabled,
			Props:   map[string]any(sec.Props.Clone()),
		})
	}
	return templatePayload{
		ID:          tpl.ID,
		Name:        tpl.Name,
		Description: tpl.Description,
		StoreKind:   string(tpl.StoreKind),
		BestFor:     tpl.BestFor,
		Theme:       encodeTheme(tpl.Theme),
		Sections:    sections,
	}
}

func encodeBuilderState(state *services.BuilderState) builderStatePayload {
	return builderStatePayload{
		SessionID:         state.SessionID,
		Store:             encodeStore(state.Store),
		Sections:          encodeSections(state.Sections),
		SelectedSectionID: state.SelectedSectionID,
		Source:            string(state.Source),
	}
}

func encodeMediaAsset(asset *services.MediaAsset) mediaAssetPayload {
	return mediaAssetPayload{
		Kind:        string(asset.Kind),
		ContentType: asset.ContentType,
		SizeBytes:   asset.SizeBytes,
		URI:         asset.URI,
		BlobKey:     asset.BlobKey,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
