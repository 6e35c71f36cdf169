package tutor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAskRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sekret" {
			t.Errorf("auth header=%q", got)
		}
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Message != "Berapa 7 × 8?" {
			t.Errorf("message=%q", req.Message)
		}
		if req.Grade != "5" {
			t.Errorf("grade=%q", req.Grade)
		}
		_ = json.NewEncoder(w).Encode(askResponse{Text: "7 × 8 = *56*"})
	}))
	defer srv.Close()

	t.Setenv("GPM_TUTOR_URL", srv.URL)
	t.Setenv("GPM_TUTOR_KEY", "sekret")

	c, err := NewFromEnv("5", nil)
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	reply, err := c.Ask(context.Background(), "Berapa 7 × 8?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != "7 × 8 = *56*" {
		t.Fatalf("reply=%q", reply)
	}
}

func TestNewFromEnvRequiresURL(t *testing.T) {
	t.Setenv("GPM_TUTOR_URL", "")
	if _, err := NewFromEnv("4", nil); err == nil {
		t.Fatalf("expected error without GPM_TUTOR_URL")
	}
}

func TestAskWithFallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	t.Setenv("GPM_TUTOR_URL", srv.URL)
	c, err := NewFromEnv("4", nil)
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}

	got := AskWithFallback(context.Background(), c, "halo", nil)
	if got != FallbackMessage {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestAskWithFallbackOnEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(askResponse{})
	}))
	defer srv.Close()

	t.Setenv("GPM_TUTOR_URL", srv.URL)
	c, err := NewFromEnv("4", nil)
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}

	if got := AskWithFallback(context.Background(), c, "halo", nil); got != FallbackMessage {
		t.Fatalf("got %q, want fallback", got)
	}
}
