package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"larismanis/internal/domain"
	"larismanis/internal/domain/models"
	"larismanis/internal/functions"
)

func chatStreamServer(t *testing.T, intent string, parts ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generateChatStream" {
			t.Errorf("path = %q, want /generateChatStream", r.URL.Path)
		}
		w.Header().Set(functions.ActionIntentHeader, intent)
		flusher := w.(http.Flusher)
		for _, part := range parts {
			_, _ = io.WriteString(w, part)
			flusher.Flush()
		}
	}))
}

func TestSendMessagePersistsFinalizedExchange(t *testing.T) {
	srv := chatStreamServer(t, "generate_image", "Ide poster: ", "diskon 20%")
	defer srv.Close()

	sessions := newFakeSessionRepo()
	svc := NewChatService(sessions, functions.NewClient(srv.URL, testLogger()), testLogger())

	var (
		chunks    []string
		assistant models.ChatMessage
		completed bool
	)
	svc.SendMessage(context.Background(), "token-123", "user-1",
		&SendMessageRequest{Content: "buatkan poster diskon"},
		StreamEvents{
			OnChunk:    func(text string) { chunks = append(chunks, text) },
			OnComplete: func(a models.ChatMessage) { assistant, completed = a, true },
			OnError:    func(err error) { t.Fatalf("OnError fired: %v", err) },
		},
	)

	if !completed {
		t.Fatal("OnComplete never fired")
	}
	if assistant.Content != "Ide poster: diskon 20%" {
		t.Errorf("assistant content = %q", assistant.Content)
	}
	if assistant.Role != models.RoleAssistant {
		t.Errorf("assistant role = %q", assistant.Role)
	}
	if assistant.Action == nil || assistant.Action.Type != models.ActionGenerateImage {
		t.Errorf("assistant action = %+v, want generate_image", assistant.Action)
	}
	if assistant.Action.Prompt != "buatkan poster diskon" {
		t.Errorf("action prompt = %q, want the user's input", assistant.Action.Prompt)
	}
	if got := strings.Join(chunks, ""); got != assistant.Content {
		t.Errorf("joined chunks = %q, want the finalized content", got)
	}

	// Persisted once, at finalization, with both sides of the exchange.
	if sessions.upserts != 1 {
		t.Errorf("session upserted %d times, want 1", sessions.upserts)
	}
	stored := sessions.sessions["user-1"]
	if stored == nil || len(stored.Messages) != 2 {
		t.Fatalf("stored session = %+v, want user + assistant messages", stored)
	}
	if stored.Messages[0].Role != models.RoleUser || stored.Messages[0].Content != "buatkan poster diskon" {
		t.Errorf("stored user message = %+v", stored.Messages[0])
	}
	if stored.Messages[1].ID != assistant.ID || stored.Messages[1].Content != assistant.Content {
		t.Errorf("stored assistant message = %+v, want %+v", stored.Messages[1], assistant)
	}
}

func TestSendMessageAppendsToExistingHistory(t *testing.T) {
	srv := chatStreamServer(t, "consult_more", "Tentu, lanjut.")
	defer srv.Close()

	sessions := newFakeSessionRepo()
	sessions.sessions["user-1"] = &models.ChatSession{
		ID:     "sess-user-1",
		UserID: "user-1",
		Messages: []models.ChatMessage{
			{ID: "m1", Role: models.RoleUser, Content: "halo"},
			{ID: "m2", Role: models.RoleAssistant, Content: "Halo! Ada yang bisa dibantu?"},
		},
	}

	svc := NewChatService(sessions, functions.NewClient(srv.URL, testLogger()), testLogger())

	svc.SendMessage(context.Background(), "token-123", "user-1",
		&SendMessageRequest{Content: "lanjut konsultasi"},
		StreamEvents{
			OnChunk:    func(string) {},
			OnComplete: func(models.ChatMessage) {},
			OnError:    func(err error) { t.Fatalf("OnError fired: %v", err) },
		},
	)

	stored := sessions.sessions["user-1"]
	if len(stored.Messages) != 4 {
		t.Fatalf("stored %d messages, want history plus the new exchange", len(stored.Messages))
	}
	if stored.Messages[0].ID != "m1" || stored.Messages[1].ID != "m2" {
		t.Error("existing history was not preserved in order")
	}
}

func TestSendMessageValidation(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := NewChatService(sessions, functions.NewClient("http://functions.invalid", testLogger()), testLogger())

	var gotErr error
	svc.SendMessage(context.Background(), "token-123", "user-1",
		&SendMessageRequest{},
		StreamEvents{
			OnChunk:    func(string) { t.Fatal("OnChunk fired for an invalid request") },
			OnComplete: func(models.ChatMessage) { t.Fatal("OnComplete fired for an invalid request") },
			OnError:    func(err error) { gotErr = err },
		},
	)

	var verr *domain.ValidationError
	if !errors.As(gotErr, &verr) {
		t.Errorf("error = %v, want a validation error", gotErr)
	}
	if sessions.upserts != 0 {
		t.Errorf("session upserted %d times on a failed exchange, want 0", sessions.upserts)
	}
}

func TestSendMessageStreamErrorSkipsPersist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"model unavailable"}`)
	}))
	defer srv.Close()

	sessions := newFakeSessionRepo()
	svc := NewChatService(sessions, functions.NewClient(srv.URL, testLogger()), testLogger())

	var gotErr error
	svc.SendMessage(context.Background(), "token-123", "user-1",
		&SendMessageRequest{Content: "halo"},
		StreamEvents{
			OnChunk:    func(text string) { t.Fatalf("OnChunk fired: %q", text) },
			OnComplete: func(models.ChatMessage) { t.Fatal("OnComplete fired on a failed stream") },
			OnError:    func(err error) { gotErr = err },
		},
	)

	var upstream *domain.UpstreamError
	if !errors.As(gotErr, &upstream) {
		t.Fatalf("error = %v, want *domain.UpstreamError", gotErr)
	}
	if sessions.upserts != 0 {
		t.Errorf("session upserted %d times on a failed exchange, want 0", sessions.upserts)
	}
}

func TestConsult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{
			"success": true,
			"data": {"action": "open_planner", "geminiResponse": "Mari susun jadwalnya."}
		}`)
	}))
	defer srv.Close()

	sessions := newFakeSessionRepo()
	svc := NewChatService(sessions, functions.NewClient(srv.URL, testLogger()), testLogger())

	assistant, err := svc.Consult(context.Background(), "token-123", "user-1", &SendMessageRequest{Content: "bantu jadwal konten"})
	if err != nil {
		t.Fatalf("Consult() error: %v", err)
	}

	if assistant.Content != "Mari susun jadwalnya." {
		t.Errorf("assistant content = %q", assistant.Content)
	}
	if assistant.Action == nil || assistant.Action.Type != models.ActionOpenPlanner {
		t.Errorf("assistant action = %+v, want open_planner", assistant.Action)
	}
	if len(sessions.sessions["user-1"].Messages) != 2 {
		t.Errorf("stored %d messages, want the full exchange", len(sessions.sessions["user-1"].Messages))
	}
}

func TestGetSessionReturnsEmptySessionWhenAbsent(t *testing.T) {
	svc := NewChatService(newFakeSessionRepo(), functions.NewClient("http://functions.invalid", testLogger()), testLogger())

	session, err := svc.GetSession(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if session == nil {
		t.Fatal("GetSession() = nil, want an empty session")
	}
	if session.UserID != "user-1" {
		t.Errorf("session user = %q", session.UserID)
	}
	if session.Messages == nil || len(session.Messages) != 0 {
		t.Errorf("messages = %v, want an empty non-nil list", session.Messages)
	}
}

func TestClearSession(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.sessions["user-1"] = &models.ChatSession{ID: "sess-user-1", UserID: "user-1"}

	svc := NewChatService(sessions, functions.NewClient("http://functions.invalid", testLogger()), testLogger())

	if err := svc.ClearSession(context.Background(), "user-1"); err != nil {
		t.Fatalf("ClearSession() error: %v", err)
	}
	if sessions.sessions["user-1"] != nil {
		t.Error("session still present after ClearSession")
	}

	// Clearing again is a no-op.
	if err := svc.ClearSession(context.Background(), "user-1"); err != nil {
		t.Errorf("second ClearSession() error: %v", err)
	}
}
