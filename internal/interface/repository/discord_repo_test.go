package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"farecast-service/internal/domain/entity"
	"farecast-service/pkg/logger"
)

func TestPostMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/channels/123/messages" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bot secret" {
			t.Errorf("unexpected authorization %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["content"] != "hola" {
			t.Errorf("unexpected content %q", body["content"])
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	repo := NewDiscordRepository(srv.URL, "secret", "123", srv.Client(), logger.NewNopLogger())
	if err := repo.PostMessage(context.Background(), "hola"); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
}

func TestPostMessageErrorIncludesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Missing Access"}`))
	}))
	defer srv.Close()

	repo := NewDiscordRepository(srv.URL, "secret", "123", srv.Client(), logger.NewNopLogger())
	err := repo.PostMessage(context.Background(), "hola")
	var ue *entity.UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 UpstreamError, got %v", err)
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "Missing Access") {
		t.Fatalf("error should carry status and body: %q", err)
	}
}

func TestRegisterGuildCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/applications/app/guilds/guild/commands" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var cmds []entity.ApplicationCommand
		if err := json.NewDecoder(r.Body).Decode(&cmds); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(cmds) != 1 || cmds[0].Name != "ping" {
			t.Errorf("unexpected commands %+v", cmds)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repo := NewDiscordRepository(srv.URL, "secret", "", srv.Client(), logger.NewNopLogger())
	if err := repo.RegisterGuildCommands(context.Background(), "app", "guild", []entity.ApplicationCommand{{Name: "ping", Description: "Responde pong!"}}); err != nil {
		t.Fatalf("RegisterGuildCommands: %v", err)
	}
}

func TestPostMessageHonorsCancelledContext(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	repo := NewDiscordRepository(srv.URL, "secret", "123", srv.Client(), logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.PostMessage(ctx, "hola"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	if calls != 0 {
		t.Fatalf("no request may be sent after cancellation")
	}
}

func TestPostMessagePacesPastBurst(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	repo := NewDiscordRepository(srv.URL, "secret", "123", srv.Client(), logger.NewNopLogger())
	for i := 0; i < postBurst; i++ {
		if err := repo.PostMessage(context.Background(), "hola"); err != nil {
			t.Fatalf("post %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := repo.PostMessage(ctx, "hola"); err == nil {
		t.Fatalf("expected the post after the burst to wait past the deadline")
	}
	if calls != postBurst {
		t.Fatalf("expected %d requests, got %d", postBurst, calls)
	}
}
