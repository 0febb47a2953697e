package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meltyapp/backend/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.AIConfig{
		BaseURL:         baseURL,
		APIKey:          "test-key",
		Model:           "gemini-2.5-flash",
		Temperature:     0.7,
		MaxOutputTokens: 2048,
	})
}

func TestStreamGenerateRequestShape(t *testing.T) {
	var captured generateRequest
	var path, key string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		io.WriteString(w, `[{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}]`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	history := []Turn{
		{Role: "user", Text: "你好"},
		{Role: "model", Text: "你好呀"},
	}
	body, err := client.StreamGenerate(context.Background(), "系统指令", history, "新消息")
	if err != nil {
		t.Fatalf("StreamGenerate err: %v", err)
	}
	defer body.Close()

	if path != "/v1beta/models/gemini-2.5-flash:streamGenerateContent" {
		t.Fatalf("unexpected path: %s", path)
	}
	if key != "test-key" {
		t.Fatalf("api key not passed, got %q", key)
	}
	if captured.SystemInstruction == nil || captured.SystemInstruction.Parts[0].Text != "系统指令" {
		t.Fatalf("system instruction missing: %+v", captured.SystemInstruction)
	}
	if len(captured.Contents) != 3 {
		t.Fatalf("expected history plus new message, got %d contents", len(captured.Contents))
	}
	last := captured.Contents[len(captured.Contents)-1]
	if last.Role != "user" || last.Parts[0].Text != "新消息" {
		t.Fatalf("new message should be the last content: %+v", last)
	}
	if captured.Contents[1].Role != "model" {
		t.Fatalf("assistant history turn should map to model role, got %s", captured.Contents[1].Role)
	}
}

func TestStreamGenerateNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.StreamGenerate(context.Background(), "p", nil, "m"); err == nil {
		t.Fatal("expected error for non-200 upstream status")
	} else if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error should mention the status, got %v", err)
	}
}

func TestGenerateOnceParsesCandidateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":" 一句总结 "}]}}]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.GenerateOnce(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateOnce err: %v", err)
	}
	if text != " 一句总结 " {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestSummarizeJournalFallsBackOnEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	summary, err := client.SummarizeJournal(context.Background(), "今天很累")
	if err != nil {
		t.Fatalf("SummarizeJournal err: %v", err)
	}
	if summary != summaryFallback {
		t.Fatalf("expected fallback sentence, got %q", summary)
	}
}
