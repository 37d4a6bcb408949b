// Package coach implements the coaching providers behind registry.Coach:
// a local model server (Ollama-style /api/generate), a remote
// OpenAI-compatible chat endpoint, and a disabled provider.
package coach

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/registry"
	"github.com/vovakirdan/typestrike/internal/stats"
)

var (
	// ErrDisabled is returned by the disabled provider.
	ErrDisabled = errors.New("coach: disabled")

	// ErrEmptyResponse is returned when a model answers with no usable text.
	ErrEmptyResponse = errors.New("coach: empty response")
)

// SystemPrompt sets the coach persona for every provider.
const SystemPrompt = "You are TypeBot, a helpful and encouraging typing coach. " +
	"Give brief, specific feedback in 2-3 sentences. Be positive and actionable."

// maxSentences bounds the cleaned response.
const maxSentences = 3

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 1 << 20

func init() {
	registry.Register("local", func(cfg config.CoachConfig) (registry.Coach, error) {
		return NewLocal(cfg), nil
	})
	registry.Register("remote", func(cfg config.CoachConfig) (registry.Coach, error) {
		return NewRemote(cfg)
	})
	registry.Register("disabled", func(config.CoachConfig) (registry.Coach, error) {
		return Disabled{}, nil
	})
}

// BuildPrompt renders the session statistics as the user prompt.
func BuildPrompt(req stats.FeedbackRequest) string {
	weak := "None"
	if len(req.WeakLetters) > 0 {
		weak = strings.Join(req.WeakLetters, ", ")
	}
	improvement := fmt.Sprintf("%d", req.Improvement())
	if req.Improvement() > 0 {
		improvement = "+" + improvement
	}

	var b strings.Builder
	b.WriteString("Session Performance:\n")
	fmt.Fprintf(&b, "- Level: %s (%s)\n", req.LevelName, req.Outcome)
	fmt.Fprintf(&b, "- Duration: %.0fs\n", req.Duration.Seconds())
	fmt.Fprintf(&b, "- Letters typed: %d\n", req.Total)
	fmt.Fprintf(&b, "- Accuracy: %d%%\n", req.Accuracy)
	fmt.Fprintf(&b, "- WPM: %d\n", req.WPM)
	fmt.Fprintf(&b, "- Weak letters: %s\n", weak)
	fmt.Fprintf(&b, "- Previous WPM: %d\n", req.PreviousWPM)
	fmt.Fprintf(&b, "- Improvement: %s WPM\n\n", improvement)
	b.WriteString("Provide encouraging feedback highlighting one strength and one specific tip for improvement.")
	return b.String()
}

var (
	templateTokens = strings.NewReplacer(
		"<start_of_turn>", "",
		"<end_of_turn>", "",
		"<|im_start|>", "",
		"<|im_end|>", "",
		"**", "",
	)
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)
)

// CleanResponse strips chat template artifacts and markdown emphasis and
// keeps at most three sentences.
func CleanResponse(text string) string {
	cleaned := strings.TrimSpace(templateTokens.Replace(text))
	cleaned = strings.TrimPrefix(cleaned, "model\n")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return ""
	}

	sentences := sentencePattern.FindAllString(cleaned, maxSentences)
	if len(sentences) == 0 {
		if r := []rune(cleaned); len(r) > 200 {
			return string(r[:200])
		}
		return cleaned
	}
	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}
	return strings.Join(sentences, " ")
}

// post sends a JSON body and returns the response body of a 2xx answer.
func post(ctx context.Context, client *http.Client, url, apiKey string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("coach: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coach: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("coach: cannot read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("coach: %s returned %s", url, resp.Status)
	}
	return data, nil
}

// Disabled never produces feedback; callers fall back to their template.
type Disabled struct{}

// Name returns "disabled".
func (Disabled) Name() string { return "disabled" }

// RequestFeedback always returns ErrDisabled.
func (Disabled) RequestFeedback(context.Context, stats.FeedbackRequest) (string, error) {
	return "", ErrDisabled
}
