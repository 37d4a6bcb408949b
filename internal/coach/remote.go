package coach

import (
	"context"
	"errors"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/stats"
)

// ErrNoEndpoint is returned when the remote provider has no endpoint.
var ErrNoEndpoint = errors.New("coach: remote endpoint not configured")

// Remote talks to an OpenAI-compatible chat completions endpoint.
type Remote struct {
	endpoint    string
	model       string
	apiKey      string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// NewRemote creates a remote provider. The API key is resolved from the
// environment variable named in the config, then the inline value.
func NewRemote(cfg config.CoachConfig) (*Remote, error) {
	if cfg.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	r := &Remote{
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		apiKey:      cfg.ResolveAPIKey(),
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: cfg.Timeout},
	}
	if r.maxTokens <= 0 {
		r.maxTokens = 100
	}
	return r, nil
}

// Name returns "remote".
func (r *Remote) Name() string { return "remote" }

// RequestFeedback sends a system and a user message and returns the first
// choice.
func (r *Remote) RequestFeedback(ctx context.Context, req stats.FeedbackRequest) (string, error) {
	body, err := r.requestBody(req)
	if err != nil {
		return "", err
	}

	data, err := post(ctx, r.client, r.endpoint, r.apiKey, body)
	if err != nil {
		return "", err
	}

	if msg := gjson.GetBytes(data, "error.message"); msg.Exists() {
		return "", errors.New("coach: remote model: " + msg.String())
	}
	text := CleanResponse(gjson.GetBytes(data, "choices.0.message.content").String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (r *Remote) requestBody(req stats.FeedbackRequest) ([]byte, error) {
	body := []byte(`{"messages":[]}`)
	var err error

	for _, m := range []struct{ role, content string }{
		{"system", SystemPrompt},
		{"user", BuildPrompt(req)},
	} {
		msg, err := sjson.SetBytes([]byte(`{}`), "role", m.role)
		if err != nil {
			return nil, err
		}
		if msg, err = sjson.SetBytes(msg, "content", m.content); err != nil {
			return nil, err
		}
		if body, err = sjson.SetRawBytes(body, "messages.-1", msg); err != nil {
			return nil, err
		}
	}

	if r.model != "" {
		if body, err = sjson.SetBytes(body, "model", r.model); err != nil {
			return nil, err
		}
	}
	if body, err = sjson.SetBytes(body, "max_tokens", r.maxTokens); err != nil {
		return nil, err
	}
	if body, err = sjson.SetBytes(body, "temperature", r.temperature); err != nil {
		return nil, err
	}
	return body, nil
}
