// Package render turns a store's section list into storefront HTML. The
// public page and the builder preview share the same per-type section
// templates; the preview only adds an editing wrapper around each section,
// so the two surfaces can never drift apart in markup.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/storeforge/api/internal/domain"
)

// Mode selects the rendering surface.
type Mode string

const (
	// ModePublic renders the storefront as shoppers see it.
	ModePublic Mode = "public"
	// ModePreview renders the builder preview with editing wrappers.
	ModePreview Mode = "preview"
)

// PageOptions configures one page render.
type PageOptions struct {
	Mode Mode
	// SelectedSectionID marks one section as selected in preview mode.
	SelectedSectionID string
}

// RendererDeps carries the dependencies for NewRenderer.
type RendererDeps struct {
	Logger func(ctx context.Context, event string, fields map[string]any)
}

// Renderer holds the parsed section templates and the sanitization policy
// applied to rich text props.
type Renderer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
	logger func(ctx context.Context, event string, fields map[string]any)
}

// NewRenderer parses the built-in section templates.
func NewRenderer(deps RendererDeps) (*Renderer, error) {
	if deps.Logger == nil {
		deps.Logger = func(context.Context, string, map[string]any) {}
	}
	r := &Renderer{
		policy: bluemonday.UGCPolicy(),
		logger: deps.Logger,
	}
	tmpl, err := template.New("storefront").Funcs(r.funcs()).Parse(sectionTemplates)
	if err != nil {
		return nil, fmt.Errorf("parse section templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// sectionData is the execution context for one section template.
type sectionData struct {
	Section domain.SectionInstance
	Theme   domain.Theme
}

type pageData struct {
	Store *domain.Store
	Body  template.HTML
}

// CanRender reports whether a template exists for the section type.
func (r *Renderer) CanRender(sectionType string) bool {
	return r.tmpl.Lookup("section/"+sectionType) != nil
}

// RenderSection writes the markup for a single section. Unknown types return
// an error; page-level rendering skips them instead.
func (r *Renderer) RenderSection(w *bytes.Buffer, sec domain.SectionInstance, theme domain.Theme) error {
	name := "section/" + sec.Type
	if r.tmpl.Lookup(name) == nil {
		return fmt.Errorf("no renderer for section type %q", sec.Type)
	}
	return r.tmpl.ExecuteTemplate(w, name, sectionData{Section: sec, Theme: theme})
}

// RenderPage writes the full page for a store. Sections render ascending by
// order. Public mode includes enabled sections only; preview mode includes
// every section so disabled ones stay visible to the vendor, and wraps each
// section in an editing shell carrying its id. Section types without a
// registered renderer are skipped with a warning rather than failing the page.
func (r *Renderer) RenderPage(ctx context.Context, w *bytes.Buffer, store *domain.Store, opts PageOptions) error {
	sections := domain.CloneSections(store.Sections)
	domain.SortSections(sections)

	var body bytes.Buffer
	for _, sec := range sections {
		if opts.Mode == ModePublic && !sec.Enabled {
			continue
		}
		if !r.CanRender(sec.Type) {
			r.logger(ctx, "render.unknown_section_skipped", map[string]any{
				"store_id":     store.ID,
				"section_id":   sec.ID,
				"section_type": sec.Type,
			})
			continue
		}
		var markup bytes.Buffer
		if err := r.RenderSection(&markup, sec, store.Theme); err != nil {
			return fmt.Errorf("render section %s: %w", sec.ID, err)
		}
		if opts.Mode == ModePreview {
			writePreviewWrapper(&body, sec, opts.SelectedSectionID, markup.Bytes())
		} else {
			body.Write(markup.Bytes())
		}
	}

	shell := "page/public"
	if opts.Mode == ModePreview {
		shell = "page/preview"
	}
	return r.tmpl.ExecuteTemplate(w, shell, pageData{
		Store: store,
		Body:  template.HTML(body.String()),
	})
}

func writePreviewWrapper(body *bytes.Buffer, sec domain.SectionInstance, selectedID string, markup []byte) {
	classes := []string{"builder-section"}
	if !sec.Enabled {
		classes = append(classes, "builder-section--disabled")
	}
	if sec.ID == selectedID {
		classes = append(classes, "builder-section--selected")
	}
	fmt.Fprintf(body, `<div class="%s" data-section-id="%s" data-section-type="%s">`,
		strings.Join(classes, " "), template.HTMLEscapeString(sec.ID), template.HTMLEscapeString(sec.Type))
	body.Write(markup)
	body.WriteString("</div>")
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		// prop reads a named prop, substituting an empty string when absent.
		"prop": func(bag domain.PropBag, key string) any {
			if v, ok := bag[key]; ok && v != nil {
				return v
			}
			return ""
		},
		// rich sanitizes a rich text prop and emits it as HTML.
		"rich": func(bag domain.PropBag, key string) template.HTML {
			s, _ := bag[key].(string)
			return template.HTML(r.policy.Sanitize(s))
		},
		// items coerces an array prop into a slice for ranging.
		"items": func(bag domain.PropBag, key string) []any {
			switch v := bag[key].(type) {
			case []any:
				return v
			case []string:
				out := make([]any, len(v))
				for i, s := range v {
					out[i] = s
				}
				return out
			default:
				return nil
			}
		},
		// fieldItems coerces an array field of a record into a slice.
		"fieldItems": func(item any, key string) []any {
			m, ok := item.(map[string]any)
			if !ok {
				return nil
			}
			switch v := m[key].(type) {
			case []any:
				return v
			case []string:
				out := make([]any, len(v))
				for i, s := range v {
					out[i] = s
				}
				return out
			default:
				return nil
			}
		},
		// field reads a key from one record of an array prop.
		"field": func(item any, key string) any {
			if m, ok := item.(map[string]any); ok {
				if v, ok := m[key]; ok && v != nil {
					return v
				}
			}
			return ""
		},
		// href admits link targets: fragments, site-relative paths, and
		// http(s) URLs. Everything else renders as an empty href.
		"href": func(v any) template.URL {
			s, _ := v.(string)
			switch {
			case strings.HasPrefix(s, "#"),
				strings.HasPrefix(s, "/"),
				strings.HasPrefix(s, "https://"),
				strings.HasPrefix(s, "http://"),
				strings.HasPrefix(s, "mailto:"):
				return template.URL(s)
			}
			return ""
		},
		// mediaURL admits data URIs, local blob references, and http(s)
		// URLs; anything else renders as an empty source.
		"mediaURL": func(v any) template.URL {
			s, _ := v.(string)
			switch {
			case strings.HasPrefix(s, "data:image/"),
				strings.HasPrefix(s, "data:video/"),
				strings.HasPrefix(s, "/api/v1/media/"),
				strings.HasPrefix(s, "https://"),
				strings.HasPrefix(s, "http://"):
				return template.URL(s)
			}
			return ""
		},
		// color admits hex colors only; used for inline theme styles.
		"color": func(s string) template.CSS {
			if len(s) == 7 && s[0] == '#' {
				valid := true
				for _, c := range s[1:] {
					if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
						valid = false
						break
					}
				}
				if valid {
					return template.CSS(s)
				}
			}
			return ""
		},
	}
}
