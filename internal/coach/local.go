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

// DefaultLocalEndpoint is the generate endpoint of a local Ollama server.
const DefaultLocalEndpoint = "http://localhost:11434/api/generate"

// Local talks to a model server on the player's machine.
type Local struct {
	endpoint    string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// NewLocal creates a local provider. Empty fields fall back to defaults.
func NewLocal(cfg config.CoachConfig) *Local {
	l := &Local{
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: cfg.Timeout},
	}
	if l.endpoint == "" {
		l.endpoint = DefaultLocalEndpoint
	}
	if l.model == "" {
		l.model = config.DefaultConfig().Coach.Model
	}
	if l.maxTokens <= 0 {
		l.maxTokens = 100
	}
	return l
}

// Name returns "local".
func (l *Local) Name() string { return "local" }

// RequestFeedback asks the local model for coaching text.
func (l *Local) RequestFeedback(ctx context.Context, req stats.FeedbackRequest) (string, error) {
	body, err := l.requestBody(req)
	if err != nil {
		return "", err
	}

	data, err := post(ctx, l.client, l.endpoint, "", body)
	if err != nil {
		return "", err
	}

	if msg := gjson.GetBytes(data, "error"); msg.Exists() {
		return "", errors.New("coach: local model: " + msg.String())
	}
	text := CleanResponse(gjson.GetBytes(data, "response").String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (l *Local) requestBody(req stats.FeedbackRequest) ([]byte, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"model", l.model},
		{"system", SystemPrompt},
		{"prompt", BuildPrompt(req)},
		{"stream", false},
		{"options.temperature", l.temperature},
		{"options.num_predict", l.maxTokens},
	}

	body := []byte(`{}`)
	for _, f := range fields {
		var err error
		if body, err = sjson.SetBytes(body, f.path, f.value); err != nil {
			return nil, err
		}
	}
	return body, nil
}
