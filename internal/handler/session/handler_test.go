package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/meltyapp/backend/internal/model/chat"
	chatservice "github.com/meltyapp/backend/internal/service/chat"
)

func setup(t *testing.T) (*chi.Mux, *chatservice.MemoryStore) {
	t.Helper()
	store := chatservice.NewMemoryStore()
	handler := New(store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func TestListSessionsRequiresIdentity(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without X-User-Id, got %d", resp.Code)
	}
}

func TestListSessionsScopedToCaller(t *testing.T) {
	r, store := setup(t)
	ctx := context.Background()

	if _, err := store.CreateSession(ctx, "stu-1", "healing"); err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if _, err := store.CreateSession(ctx, "stu-2", "fun"); err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req.Header.Set("X-User-Id", "stu-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var sessions []chatmodel.Session
	if err := json.Unmarshal(resp.Body.Bytes(), &sessions); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(sessions) != 1 || sessions[0].UserID != "stu-1" {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
}

func TestListMessagesUnknownSession(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/sessions/missing/messages", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListMessagesReturnsTranscript(t *testing.T) {
	r, store := setup(t)
	ctx := context.Background()

	session, err := store.CreateSession(ctx, "stu-1", "healing")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if err := store.SaveMessage(ctx, chatmodel.Message{
		SessionID:    session.ID,
		Role:         chatmodel.RoleUser,
		Content:      "我有点焦虑",
		MoodDetected: "ANXIOUS",
	}); err != nil {
		t.Fatalf("SaveMessage err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+session.ID+"/messages", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var messages []chatmodel.Message
	if err := json.Unmarshal(resp.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(messages) != 1 || messages[0].MoodDetected != "ANXIOUS" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
}
