package coach

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/registry"
	"github.com/vovakirdan/typestrike/internal/stats"
)

func sampleRequest() stats.FeedbackRequest {
	return stats.FeedbackRequest{
		LevelName:   "F & J",
		Outcome:     stats.OutcomeComplete,
		Duration:    30 * time.Second,
		Score:       240,
		Total:       40,
		Accuracy:    95,
		WPM:         32,
		PreviousWPM: 28,
		WeakLetters: []string{"J"},
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(sampleRequest())
	for _, want := range []string{
		"Duration: 30s",
		"Letters typed: 40",
		"Accuracy: 95%",
		"WPM: 32",
		"Weak letters: J",
		"Previous WPM: 28",
		"Improvement: +4 WPM",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}

	req := sampleRequest()
	req.WeakLetters = nil
	if !strings.Contains(BuildPrompt(req), "Weak letters: None") {
		t.Error("empty weak letters not rendered as None")
	}
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "template tokens",
			in:       "<start_of_turn>model\n**Great** work!<end_of_turn>",
			expected: "Great work!",
		},
		{
			name:     "sentence cap",
			in:       "One. Two! Three? Four.",
			expected: "One. Two! Three?",
		},
		{
			name:     "no terminator",
			in:       "  keep going  ",
			expected: "keep going",
		},
		{
			name:     "empty",
			in:       "<end_of_turn>",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanResponse(tt.in); got != tt.expected {
				t.Errorf("CleanResponse(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestLocalProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if gjson.GetBytes(body, "model").String() != "tiny" {
			t.Errorf("model = %s", gjson.GetBytes(body, "model"))
		}
		if gjson.GetBytes(body, "stream").Bool() {
			t.Error("stream should be false")
		}
		if !strings.Contains(gjson.GetBytes(body, "prompt").String(), "WPM: 32") {
			t.Error("prompt not sent")
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"response":"**Solid** accuracy. Try relaxing your J finger. You will get faster. Extra.","done":true}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := NewLocal(config.CoachConfig{Endpoint: srv.URL, Model: "tiny", Timeout: time.Second})
	text, err := c.RequestFeedback(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("RequestFeedback() error = %v", err)
	}
	expected := "Solid accuracy. Try relaxing your J finger. You will get faster."
	if text != expected {
		t.Errorf("text = %q, expected %q", text, expected)
	}
}

func TestLocalProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"model error", http.StatusOK, `{"error":"model not found"}`},
		{"empty", http.StatusOK, `{"response":"  "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body) //nolint:errcheck
			}))
			defer srv.Close()

			c := NewLocal(config.CoachConfig{Endpoint: srv.URL, Timeout: time.Second})
			if _, err := c.RequestFeedback(context.Background(), sampleRequest()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLocalProviderHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	c := NewLocal(config.CoachConfig{Endpoint: srv.URL})
	if _, err := c.RequestFeedback(ctx, sampleRequest()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, expected deadline exceeded", err)
	}
}

func TestRemoteProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		msgs := gjson.GetBytes(body, "messages").Array()
		if len(msgs) != 2 || msgs[0].Get("role").String() != "system" || msgs[1].Get("role").String() != "user" {
			t.Errorf("messages = %s", gjson.GetBytes(body, "messages").Raw)
		}
		if gjson.GetBytes(body, "max_tokens").Int() != 64 {
			t.Errorf("max_tokens = %s", gjson.GetBytes(body, "max_tokens").Raw)
		}
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"Nice pace! Keep it up."}}]}`) //nolint:errcheck
	}))
	defer srv.Close()

	t.Setenv("TYPESTRIKE_TEST_COACH_KEY", "secret")
	c, err := NewRemote(config.CoachConfig{
		Endpoint:  srv.URL,
		Model:     "gpt-test",
		APIKeyEnv: "TYPESTRIKE_TEST_COACH_KEY",
		MaxTokens: 64,
		Timeout:   time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	text, err := c.RequestFeedback(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("RequestFeedback() error = %v", err)
	}
	if text != "Nice pace! Keep it up." {
		t.Errorf("text = %q", text)
	}
}

func TestRemoteRequiresEndpoint(t *testing.T) {
	if _, err := NewRemote(config.CoachConfig{}); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("NewRemote() error = %v, expected ErrNoEndpoint", err)
	}
}

func TestRegisteredProviders(t *testing.T) {
	for _, name := range []string{"local", "remote", "disabled"} {
		if !registry.Exists(name) {
			t.Errorf("provider %q not registered", name)
		}
	}

	c, err := registry.Create(config.CoachConfig{Provider: "disabled"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.RequestFeedback(context.Background(), sampleRequest()); !errors.Is(err, ErrDisabled) {
		t.Errorf("disabled error = %v, expected ErrDisabled", err)
	}
}
