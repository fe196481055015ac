// internal/ai/text.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TextGenerator wraps an OpenAI-compatible chat completion API to draft
// post copy for a brand.
type TextGenerator struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

func NewTextGenerator(endpoint, model, apiKey string) *TextGenerator {
	return &TextGenerator{
		endpoint:   endpoint,
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate returns a single post draft for the given platform and prompt.
func (g *TextGenerator) Generate(ctx context.Context, platform, tone, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("text generator misconfigured")
	}

	system := fmt.Sprintf(
		"You write short social media posts for %s. Tone of voice: %s. Reply with the post text only.",
		platform, safeTone(tone),
	)

	body, err := json.Marshal(map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("text api error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("text api returned no choices")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func safeTone(tone string) string {
	tone = strings.TrimSpace(tone)
	if tone == "" {
		return "friendly and professional"
	}
	return tone
}
