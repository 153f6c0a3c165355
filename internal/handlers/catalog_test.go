package handlers

import (
	"net/http"
	"testing"
)

func TestListSectionTypesEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/catalog/section-types", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		SectionTypes []sectionTypePayload `json:"section_types"`
	}
	decodeBody(t, rec, &payload)
	if len(payload.SectionTypes) == 0 {
		t.Fatalf("expected registry section types")
	}
	for _, def := range payload.SectionTypes {
		if def.Type == "" || len(def.ApplicableFor) == 0 {
			t.Fatalf("incomplete section type payload: %+v", def)
		}
	}
}

func TestListSectionTypesFiltersByKind(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/catalog/section-types?store_kind=single-product", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		SectionTypes []sectionTypePayload `json:"section_types"`
	}
	decodeBody(t, rec, &payload)
	for _, def := range payload.SectionTypes {
		if def.Type == "product-grid" {
			t.Fatalf("product-grid should not be offered to single-product stores")
		}
	}
}

func TestListSectionTypesRejectsUnknownKind(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/catalog/section-types?store_kind=mega", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListTemplatesRequiresStoreKind(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/catalog/templates", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_request" {
		t.Fatalf("error code = %q, want invalid_request", code)
	}
}

func TestListTemplatesByKind(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/catalog/templates?store_kind=multi-product", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Templates []templateSummaryPayload `json:"templates"`
	}
	decodeBody(t, rec, &payload)
	if len(payload.Templates) == 0 {
		t.Fatalf("expected multi-product templates")
	}
	for _, tpl := range payload.Templates {
		if tpl.StoreKind != "multi-product" {
			t.Fatalf("template %s kind = %q, want multi-product", tpl.ID, tpl.StoreKind)
		}
		if tpl.Sections == 0 {
			t.Fatalf("template %s reports zero sections", tpl.ID)
		}
	}
}

func TestGetTemplateEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/catalog/templates/launch-pad", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var tpl templatePayload
	decodeBody(t, rec, &tpl)
	if tpl.ID != "launch-pad" {
		t.Fatalf("template id = %q, want launch-pad", tpl.ID)
	}
	if len(tpl.Sections) == 0 {
		t.Fatalf("expected template sections in detail payload")
	}
	for i, section := range tpl.Sections {
		if section.Order != i+1 {
			t.Fatalf("section %d order = %d, want %d", i, section.Order, i+1)
		}
	}
}

func TestGetTemplateNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/catalog/templates/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := errorCode(t, rec); code != "template_not_found" {
		t.Fatalf("error code = %q, want template_not_found", code)
	}
}
