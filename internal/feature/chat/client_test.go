package chat

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

func TestAskNotConfigured(t *testing.T) {
	c := NewClient(Config{}, zap.NewNop(), nil)
	if _, err := c.Ask(context.Background(), Input{Message: "hi"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v", err)
	}
}

func TestAskForwardsConversation(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-ID") != "rid-1" {
			t.Errorf("request id = %q", r.Header.Get("X-Request-ID"))
		}
		if r.Header.Get("Authorization") != "Bearer k" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		_, _ = io.WriteString(w, `{"model":"m1","choices":[{"message":{"role":"assistant","content":"Arena is open"}}]}`)
	}))
	defer srv.Close()

	c := NewClient(Config{
		Endpoint:     srv.URL,
		APIKey:       "k",
		SystemPrompt: "be brief",
		RequestID:    func(context.Context) string { return "rid-1" },
	}, zap.NewNop(), nil)
	out, err := c.Ask(context.Background(), Input{
		Message: " when? ",
		History: []Message{{Role: "user", Content: "hello"}, {Role: "assistant", Content: "hi"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Reply != "Arena is open" || out.Model != "m1" {
		t.Fatalf("reply = %+v", out)
	}
	if len(got.Messages) != 4 || got.Messages[0].Role != "system" || got.Messages[3].Content != "when?" {
		t.Fatalf("forwarded = %+v", got.Messages)
	}
}

func TestAskUpstreamFailureTripsBreaker(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL}, zap.NewNop(), nil)
	for i := 0; i < 5; i++ {
		_, err := c.Ask(context.Background(), Input{Message: "x"})
		var ue *UpstreamError
		if !errors.As(err, &ue) || ue.Status != http.StatusInternalServerError {
			t.Fatalf("call %d: err = %v", i, err)
		}
	}
	if c.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v", c.State())
	}
	_, err := c.Ask(context.Background(), Input{Message: "x"})
	if !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("open breaker: err = %v", err)
	}
	if calls != 5 {
		t.Fatalf("upstream calls = %d", calls)
	}
}

func TestAskMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL}, zap.NewNop(), nil)
	_, err := c.Ask(context.Background(), Input{Message: "x"})
	var ue *UpstreamError
	if !errors.As(err, &ue) || !strings.Contains(err.Error(), "empty choices") {
		t.Fatalf("err = %v", err)
	}
}
