package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vrusha-mor/yojanasaathi/internal/llm"
)

func completionBody(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}

func TestInvokeReturnsCompletionJSON(t *testing.T) {
	var gotAuth, gotReferer, gotTitle string
	var gotReq struct {
		Model          string `json:"model"`
		ResponseFormat struct {
			Type string `json:"type"`
		} `json:"response_format"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody(`{"message":"hi","schemes":[]}`)))
	}))
	defer server.Close()

	client, err := New("test-key",
		WithBaseURL(server.URL),
		WithModel("google/gemini-2.0-flash-001"),
		WithAttribution("http://localhost:3000", "YojanaSaathi"),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	raw, err := client.Invoke(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if string(raw) != `{"message":"hi","schemes":[]}` {
		t.Fatalf("unexpected completion %s", raw)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotReferer != "http://localhost:3000" || gotTitle != "YojanaSaathi" {
		t.Fatalf("attribution headers = %q / %q", gotReferer, gotTitle)
	}
	if gotReq.Model != "google/gemini-2.0-flash-001" {
		t.Fatalf("model = %q", gotReq.Model)
	}
	if gotReq.ResponseFormat.Type != "json_object" {
		t.Fatalf("response_format = %q", gotReq.ResponseFormat.Type)
	}
}

func TestInvokeErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := New("test-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Invoke(context.Background(), "prompt")
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if upstream.Status != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", upstream.Status)
	}
}

func TestInvokeMissingChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client, err := New("test-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Invoke(context.Background(), "prompt")
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestInvokeNonJSONContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionBody("Sorry, I cannot answer in JSON.")))
	}))
	defer server.Close()

	client, err := New("test-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Invoke(context.Background(), "prompt")
	var parseErr *llm.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestInvokeRetriesUpstreamFailures(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(completionBody(`{"ok":true}`)))
	}))
	defer server.Close()

	client, err := New("test-key",
		WithBaseURL(server.URL),
		WithPolicy(llm.Policy{MaxAttempts: 3, Backoff: time.Millisecond}),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	raw, err := client.Invoke(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if string(raw) != `{"ok":true}` {
		t.Fatalf("unexpected completion %s", raw)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestInvokeDoesNotRetryParseFailures(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(completionBody("not json")))
	}))
	defer server.Close()

	client, err := New("test-key",
		WithBaseURL(server.URL),
		WithPolicy(llm.Policy{MaxAttempts: 3, Backoff: time.Millisecond}),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := client.Invoke(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("parse failures must be terminal, got %d attempts", got)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for blank api key")
	}
}
