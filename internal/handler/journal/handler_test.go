package journal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	journalmodel "github.com/meltyapp/backend/internal/model/journal"
	journalservice "github.com/meltyapp/backend/internal/service/journal"
)

func setup() *chi.Mux {
	handler := New(journalservice.NewMemoryStore())
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func createEntry(t *testing.T, r http.Handler, userID, content string) journalmodel.Entry {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"content": content, "mood": "HAPPY"})
	req := httptest.NewRequest(http.MethodPost, "/journal", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", userID)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var entry journalmodel.Entry
	if err := json.Unmarshal(resp.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	return entry
}

func TestCreateAndListEntries(t *testing.T) {
	r := setup()

	createEntry(t, r, "stu-1", "今天跑了五公里")
	createEntry(t, r, "stu-2", "别人的日记")

	req := httptest.NewRequest(http.MethodGet, "/journal", nil)
	req.Header.Set("X-User-Id", "stu-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var entries []journalmodel.Entry
	if err := json.Unmarshal(resp.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "今天跑了五公里" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestCreateEntryRequiresContent(t *testing.T) {
	r := setup()

	payload := []byte(`{"mood":"SAD"}`)
	req := httptest.NewRequest(http.MethodPost, "/journal", bytes.NewReader(payload))
	req.Header.Set("X-User-Id", "stu-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestDeleteEntryScopedToOwner(t *testing.T) {
	r := setup()
	entry := createEntry(t, r, "stu-1", "要删除的日记")

	// 他人不能删除。
	req := httptest.NewRequest(http.MethodDelete, "/journal/"+entry.ID, nil)
	req.Header.Set("X-User-Id", "stu-2")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign delete, got %d", resp.Code)
	}

	// 本人可以。
	req = httptest.NewRequest(http.MethodDelete, "/journal/"+entry.ID, nil)
	req.Header.Set("X-User-Id", "stu-1")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
