package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"weatherreport.app/config"
	"weatherreport.app/pkg/errors"
)

// OllamaGenerator produces weather prose through a local Ollama instance.
// Failures here are expected and absorbed by the composer's fallback.
type OllamaGenerator struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaGenerator creates a new model-backed text generator
func NewOllamaGenerator(cfg *config.GeneratorConfig) *OllamaGenerator {
	return &OllamaGenerator{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate requests free-form prose for the prompt
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", errors.NewGenerationError("failed to encode generation request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", errors.NewGenerationError("failed to build generation request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", errors.NewGenerationError("text generation request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewGenerationError(
			fmt.Sprintf("text generation service returned status code %d", resp.StatusCode), nil)
	}

	var result ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.NewGenerationError("failed to decode generation response", err)
	}

	if result.Response == "" {
		return "", errors.NewGenerationError("text generation service returned an empty response", nil)
	}

	return result.Response, nil
}
