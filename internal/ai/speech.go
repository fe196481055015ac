// internal/ai/speech.go
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

// SpeechSynthesizer wraps a text-to-speech API and returns raw audio.
type SpeechSynthesizer struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewSpeechSynthesizer(endpoint, apiKey string) *SpeechSynthesizer {
	return &SpeechSynthesizer{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Synthesize returns MP3 audio for the given text.
func (s *SpeechSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("speech synthesizer misconfigured")
	}
	if voice == "" {
		voice = "alloy"
	}

	body, err := json.Marshal(map[string]any{
		"model":           "tts-1",
		"input":           text,
		"voice":           voice,
		"response_format": "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("speech api error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}
