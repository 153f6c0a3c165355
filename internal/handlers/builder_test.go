package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func (e *testEnv) openTestSession(t *testing.T, storeID string) builderStatePayload {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/v1/builder/sessions", map[string]any{"store_id": storeID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("open session status = %d, body %s", rec.Code, rec.Body.String())
	}
	var state builderStatePayload
	decodeBody(t, rec, &state)
	return state
}

func TestOpenSessionEndpoint(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)

	if state.SessionID == "" {
		t.Fatalf("expected a session id")
	}
	if state.Source != "stored" {
		t.Fatalf("source = %q, want stored", state.Source)
	}
	if len(state.Sections) != len(store.Sections) {
		t.Fatalf("len(sections) = %d, want %d", len(state.Sections), len(store.Sections))
	}
	if state.SelectedSectionID != "" {
		t.Fatalf("fresh session should carry no selection, got %q", state.SelectedSectionID)
	}
}

func TestOpenSessionUnknownStore(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/builder/sessions", map[string]any{"store_id": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := errorCode(t, rec); code != "store_not_found" {
		t.Fatalf("error code = %q, want store_not_found", code)
	}
}

func TestAddSectionEndpoint(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	before := len(state.Sections)

	rec := env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+"/sections", map[string]any{
		"type": "newsletter-signup",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	if len(state.Sections) != before+1 {
		t.Fatalf("len(sections) = %d, want %d", len(state.Sections), before+1)
	}
	added := state.Sections[len(state.Sections)-1]
	if added.Type != "newsletter-signup" {
		t.Fatalf("appended type = %q, want newsletter-signup", added.Type)
	}
	if added.Order != len(state.Sections) {
		t.Fatalf("appended order = %d, want %d", added.Order, len(state.Sections))
	}
	if !added.Enabled {
		t.Fatalf("new sections start enabled")
	}
}

func TestAddSectionRejectsKindMismatch(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)

	rec := env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+"/sections", map[string]any{
		"type": "product-grid",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSelectionEndpoints(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	target := state.Sections[0].ID

	rec := env.do(t, http.MethodPut, "/api/v1/builder/sessions/"+state.SessionID+"/selection", map[string]any{
		"section_id": target,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("select status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	if state.SelectedSectionID != target {
		t.Fatalf("selected = %q, want %q", state.SelectedSectionID, target)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/builder/sessions/"+state.SessionID+"/selection", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d, body %s", rec.Code, rec.Body.String())
	}
	// The cleared id must be explicit on the wire; an omitted field would
	// leave stale state in any decoder that reuses its target struct.
	if !strings.Contains(rec.Body.String(), `"selected_section_id":""`) {
		t.Fatalf("cleared selection missing from body: %s", rec.Body.String())
	}
	decodeBody(t, rec, &state)
	if state.SelectedSectionID != "" {
		t.Fatalf("selection not cleared, got %q", state.SelectedSectionID)
	}
}

func TestSelectionRejectsUnknownSection(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)

	rec := env.do(t, http.MethodPut, "/api/v1/builder/sessions/"+state.SessionID+"/selection", map[string]any{
		"section_id": "ghost",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestToggleAndMoveSectionEndpoints(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	second := state.Sections[1]

	rec := env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+second.ID+":toggle", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	if state.Sections[1].ID != second.ID {
		t.Fatalf("toggle moved the section")
	}
	if state.Sections[1].Enabled == second.Enabled {
		t.Fatalf("enabled flag did not flip")
	}

	rec = env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+second.ID+":move", map[string]any{
		"direction": "up",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("move status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	if state.Sections[0].ID != second.ID {
		t.Fatalf("section did not move up, head is %q", state.Sections[0].ID)
	}
	for i, section := range state.Sections {
		if section.Order != i+1 {
			t.Fatalf("order not contiguous after move: %+v", state.Sections)
		}
	}
}

func TestUpdateSectionPropsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	target := state.Sections[0].ID

	rec := env.do(t, http.MethodPatch, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+target, map[string]any{
		"props": map[string]any{"title": "New headline"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	if state.Sections[0].Props["title"] != "New headline" {
		t.Fatalf("title = %v, want New headline", state.Sections[0].Props["title"])
	}
	// Unpatched props survive the merge.
	if state.Sections[0].Props["ctaText"] == "" {
		t.Fatalf("merge dropped untouched props")
	}
}

func TestUpdateSectionPropsRejectsEmptyPatch(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	target := state.Sections[0].ID

	rec := env.do(t, http.MethodPatch, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+target, map[string]any{
		"props": map[string]any{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRemoveSectionEndpoint(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	target := state.Sections[0].ID
	before := len(state.Sections)

	rec := env.do(t, http.MethodDelete, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+target, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	if len(state.Sections) != before-1 {
		t.Fatalf("len(sections) = %d, want %d", len(state.Sections), before-1)
	}
	for i, section := range state.Sections {
		if section.ID == target {
			t.Fatalf("removed section still present")
		}
		if section.Order != i+1 {
			t.Fatalf("order not renumbered after removal: %+v", state.Sections)
		}
	}
}

func TestAvailableSectionsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)

	rec := env.do(t, http.MethodGet, "/api/v1/builder/sessions/"+state.SessionID+"/available-sections", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		SectionTypes []sectionTypePayload `json:"section_types"`
	}
	decodeBody(t, rec, &payload)

	inUse := make(map[string]bool, len(state.Sections))
	for _, section := range state.Sections {
		inUse[section.Type] = true
	}
	for _, def := range payload.SectionTypes {
		if inUse[def.Type] {
			t.Fatalf("type %q already in use but offered", def.Type)
		}
		if def.Type == "product-grid" {
			t.Fatalf("product-grid offered to a single-product store")
		}
	}
}

func TestFlushPersistsEdits(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)

	rec := env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+"/sections", map[string]any{
		"type": "newsletter-signup",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add section status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+":flush", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("flush status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/stores/"+store.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get store status = %d", rec.Code)
	}
	var persisted storePayload
	decodeBody(t, rec, &persisted)
	if len(persisted.Sections) != len(store.Sections)+1 {
		t.Fatalf("persisted %d sections, want %d", len(persisted.Sections), len(store.Sections)+1)
	}
	last := persisted.Sections[len(persisted.Sections)-1]
	if last.Type != "newsletter-signup" {
		t.Fatalf("persisted tail type = %q, want newsletter-signup", last.Type)
	}
}

func TestApplyRemoteEndpoint(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)

	rec := env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+":apply-remote", map[string]any{
		"name": "Maple Goods Live",
		"sections": []map[string]any{
			{"id": "r-1", "type": "hero-banner", "order": 2, "enabled": true, "props": map[string]any{"title": "Remote"}},
			{"id": "r-2", "type": "faq", "order": 1, "enabled": true, "props": map[string]any{}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	if state.Store.Name != "Maple Goods Live" {
		t.Fatalf("name = %q, want Maple Goods Live", state.Store.Name)
	}
	if len(state.Sections) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(state.Sections))
	}
	if state.Sections[0].ID != "r-2" || state.Sections[1].ID != "r-1" {
		t.Fatalf("remote sections not sorted by order: %+v", state.Sections)
	}
}

func TestBuilderPreviewEndpoint(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	target := state.Sections[0].ID

	rec := env.do(t, http.MethodPut, "/api/v1/builder/sessions/"+state.SessionID+"/selection", map[string]any{
		"section_id": target,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("select status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/builder/sessions/"+state.SessionID+"/preview", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-section-id="`+target+`"`) {
		t.Fatalf("preview missing wrapper for section %q", target)
	}
	if !strings.Contains(body, "builder-section--selected") {
		t.Fatalf("preview missing selected marker")
	}
}

func TestCloseSessionEndpoint(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)

	rec := env.do(t, http.MethodDelete, "/api/v1/builder/sessions/"+state.SessionID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("close status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/builder/sessions/"+state.SessionID+"/preview", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status after close = %d, want 404", rec.Code)
	}
	if code := errorCode(t, rec); code != "session_not_found" {
		t.Fatalf("error code = %q, want session_not_found", code)
	}
}

func sectionByType(t *testing.T, state builderStatePayload, sectionType string) sectionPayload {
	t.Helper()
	for _, sec := range state.Sections {
		if sec.Type == sectionType {
			return sec
		}
	}
	t.Fatalf("no %s section in session", sectionType)
	return sectionPayload{}
}

func sectionRecords(t *testing.T, state builderStatePayload, sectionID, prop string) []any {
	t.Helper()
	for _, sec := range state.Sections {
		if sec.ID == sectionID {
			records, _ := sec.Props[prop].([]any)
			return records
		}
	}
	t.Fatalf("section %s not in session", sectionID)
	return nil
}

func TestArrayRecordLifecycle(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	section := sectionByType(t, state, "testimonials")
	base := "/api/v1/builder/sessions/" + state.SessionID + "/sections/" + section.ID

	// The seed props carry no testimonials key, so the first add builds on
	// the kind's empty list rather than failing on the missing prop.
	rec := env.do(t, http.MethodPost, base+":add-record", map[string]any{"prop": "testimonials"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add record status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	records := sectionRecords(t, state, section.ID, "testimonials")
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	blank, ok := records[0].(map[string]any)
	if !ok {
		t.Fatalf("record type = %T, want map", records[0])
	}
	if blank["quote"] != "" || blank["author"] != "" {
		t.Fatalf("blank record not empty: %+v", blank)
	}
	if blank["rating"] != float64(5) {
		t.Fatalf("default rating = %v, want 5", blank["rating"])
	}

	rec = env.do(t, http.MethodPost, base+":edit-record", map[string]any{
		"prop": "testimonials", "index": 0, "field": "quote", "value": "Best purchase this year.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("edit record status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	records = sectionRecords(t, state, section.ID, "testimonials")
	if got := records[0].(map[string]any)["quote"]; got != "Best purchase this year." {
		t.Fatalf("quote = %v", got)
	}

	rec = env.do(t, http.MethodPost, base+":add-record", map[string]any{"prop": "testimonials"})
	if rec.Code != http.StatusOK {
		t.Fatalf("second add status = %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, base+":edit-record", map[string]any{
		"prop": "testimonials", "index": 1, "field": "author", "value": "Dana",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("second edit status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, base+":move-record", map[string]any{
		"prop": "testimonials", "from": 1, "to": 0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("move record status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	records = sectionRecords(t, state, section.ID, "testimonials")
	if got := records[0].(map[string]any)["author"]; got != "Dana" {
		t.Fatalf("record 0 author = %v, want Dana", got)
	}

	rec = env.do(t, http.MethodPost, base+":remove-record", map[string]any{
		"prop": "testimonials", "index": 0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("remove record status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	records = sectionRecords(t, state, section.ID, "testimonials")
	if len(records) != 1 {
		t.Fatalf("records after remove = %d, want 1", len(records))
	}
	if got := records[0].(map[string]any)["quote"]; got != "Best purchase this year." {
		t.Fatalf("surviving record quote = %v", got)
	}
}

func TestArrayRecordStringListEditing(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	section := sectionByType(t, state, "benefits-list")
	base := "/api/v1/builder/sessions/" + state.SessionID + "/sections/" + section.ID

	seeded := len(sectionRecords(t, state, section.ID, "items"))

	rec := env.do(t, http.MethodPost, base+":add-record", map[string]any{"prop": "items"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	items := sectionRecords(t, state, section.ID, "items")
	if len(items) != seeded+1 {
		t.Fatalf("items = %d, want %d", len(items), seeded+1)
	}
	if items[len(items)-1] != "" {
		t.Fatalf("appended item = %v, want empty string", items[len(items)-1])
	}

	// String list entries have no named fields; an empty field name
	// replaces the entry itself.
	rec = env.do(t, http.MethodPost, base+":edit-record", map[string]any{
		"prop": "items", "index": seeded, "field": "", "value": "Two-day delivery",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	items = sectionRecords(t, state, section.ID, "items")
	if items[seeded] != "Two-day delivery" {
		t.Fatalf("item = %v, want Two-day delivery", items[seeded])
	}
}

func TestArrayRecordRejectsNonArrayProp(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	section := sectionByType(t, state, "testimonials")

	rec := env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+section.ID+":add-record", map[string]any{
		"prop": "title",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_request" {
		t.Fatalf("error code = %q, want invalid_request", code)
	}
}

func TestArrayRecordRejectsOutOfRangeIndex(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	section := sectionByType(t, state, "testimonials")

	rec := env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+section.ID+":remove-record", map[string]any{
		"prop": "testimonials", "index": 3,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_request" {
		t.Fatalf("error code = %q, want invalid_request", code)
	}
}

func TestAttachMediaEndpoint(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	section := sectionByType(t, state, "hero-banner")

	rec := env.upload(t, "hero.png", "image/png", pngBytes)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}
	var asset mediaAssetPayload
	decodeBody(t, rec, &asset)

	rec = env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+section.ID+":attach-media", map[string]any{
		"prop": "backgroundImage", "uri": asset.URI,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("attach status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &state)
	attached := sectionByType(t, state, "hero-banner")
	if attached.Props["backgroundImage"] != asset.URI {
		t.Fatalf("backgroundImage = %v, want the uploaded uri", attached.Props["backgroundImage"])
	}
}

func TestAttachMediaRejectsNonMediaProp(t *testing.T) {
	env := newTestEnv(t)

	store := env.createTestStore(t, "Maple Goods", "single-product", "launch-pad")
	state := env.openTestSession(t, store.ID)
	section := sectionByType(t, state, "hero-banner")

	rec := env.do(t, http.MethodPost, "/api/v1/builder/sessions/"+state.SessionID+"/sections/"+section.ID+":attach-media", map[string]any{
		"prop": "title", "uri": "data:image/png;base64,AAAA",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_request" {
		t.Fatalf("error code = %q, want invalid_request", code)
	}
}
