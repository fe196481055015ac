// internal/controller/generate_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/brandcasthq/brandcast-backend/internal/ai"
)

// GenerateController exposes the AI wrappers. These are thin proxies: the
// generated content comes back to the client, which decides whether to
// save it as a post.
type GenerateController struct {
	Text   *ai.TextGenerator
	Image  *ai.ImageGenerator
	Speech *ai.SpeechSynthesizer
}

func (c *GenerateController) GenerateText(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Platform string `json:"platform"`
		Tone     string `json:"tone"`
		Prompt   string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	text, err := c.Text.Generate(r.Context(), body.Platform, body.Tone, body.Prompt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (c *GenerateController) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	url, err := c.Image.Generate(r.Context(), body.Prompt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (c *GenerateController) GenerateSpeech(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text  string `json:"text"`
		Voice string `json:"voice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	audio, err := c.Speech.Synthesize(r.Context(), body.Text, body.Voice)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Write(audio)
}
