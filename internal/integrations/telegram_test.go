package integrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessageWithMarkup(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotPayload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewTelegramClient("test-token")
	client.baseURL = srv.URL

	markup := SingleButton("✅ Confirm Order", "confirm_42")
	if err := client.SendMessageWithMarkup(context.Background(), -100500, "hello", markup); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotPayload["parse_mode"] != "Markdown" {
		t.Fatalf("expected Markdown parse_mode, got %v", gotPayload["parse_mode"])
	}
	if gotPayload["chat_id"].(float64) != -100500 {
		t.Fatalf("unexpected chat_id %v", gotPayload["chat_id"])
	}
	if _, ok := gotPayload["reply_markup"]; !ok {
		t.Fatalf("expected reply_markup in payload: %v", gotPayload)
	}
}

func TestSendMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewTelegramClient("test-token")
	client.baseURL = srv.URL

	if err := client.SendMessage(context.Background(), 42, "hello"); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}

func TestAnswerCallbackQueryEmptyID(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewTelegramClient("test-token")
	client.baseURL = srv.URL

	if err := client.AnswerCallbackQuery(context.Background(), "  ", ""); err != nil {
		t.Fatalf("empty id must be a no-op, got %v", err)
	}
	if called {
		t.Fatalf("expected no API call for empty callback id")
	}
}
