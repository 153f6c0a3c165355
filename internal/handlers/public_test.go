package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestStorefrontHidesDraftStores(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")

	rec := env.do(t, http.MethodGet, "/api/v1/public/stores/"+store.Slug, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := errorCode(t, rec); code != "store_not_found" {
		t.Fatalf("error code = %q, want store_not_found", code)
	}
}

func TestStorefrontUnknownSlug(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/public/stores/nowhere", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestStorefrontRendersPublishedStore(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	rec := env.do(t, http.MethodPost, "/api/v1/stores/"+store.ID+":publish", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/public/stores/"+store.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Maple Goods") {
		t.Fatalf("page does not mention the store name")
	}
	// The launch-pad faq section ships disabled and stays off the public page.
	if strings.Contains(body, "section-faq") {
		t.Fatalf("disabled section leaked into the public page")
	}
	if strings.Contains(body, "builder-section") {
		t.Fatalf("builder wrappers leaked into the public page")
	}
}

func TestStorefrontReflectsFlushedEdits(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	rec := env.do(t, http.MethodPost, "/api/v1/stores/"+store.ID+":publish", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish status = %d", rec.Code)
	}

	state := env.openTestSession(t, store.ID)
	faqID := ""
	for _, section := range state.Sections {
		if section.Type == "faq" {
			faqID = section.ID
		}
	}
	if faqID == "" {
		t.Fatalf("launch-pad session is missing its faq section")
	}

	rec = env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+faqID+":toggle", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+":flush", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("flush status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/public/stores/"+store.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("storefront status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "section-faq") {
		t.Fatalf("enabled faq section missing from the public page")
	}
}

func TestStorefrontFallsBackToTemplateSections(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	rec := env.do(t, http.MethodPost, "/api/v1/stores/"+store.ID+":publish", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish status = %d", rec.Code)
	}

	// Strip the store down to an empty persisted list.
	state := env.openTestSession(t, store.ID)
	for _, section := range state.Sections {
		rec = env.do(t, http.MethodDelete, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+section.ID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("remove status = %d", rec.Code)
		}
	}
	rec = env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+":flush", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("flush status = %d", rec.Code)
	}

	// An empty persisted list hydrates from the template on every load, so
	// the public page and a reopened builder session agree on what renders.
	rec = env.do(t, http.MethodGet, "/api/v1/public/stores/"+store.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("storefront status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "section-hero") {
		t.Fatalf("template sections missing from the public page: %s", body)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/stores/"+store.ID+"/preview", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("store preview status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "section-hero") {
		t.Fatalf("template sections missing from the store preview")
	}
}
