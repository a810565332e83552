package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaClient wraps a local Ollama server for prompt-driven field
// extraction. The HTTP client carries a hard timeout so a stuck model call
// fails instead of hanging the request.
type OllamaClient struct {
	client *api.Client
	model  string
}

// NewOllamaClient creates a client for the given Ollama base URL and model.
// An empty baseURL defaults to the local Ollama daemon.
func NewOllamaClient(baseURL, model string, timeout time.Duration) (*OllamaClient, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base URL: %w", err)
	}

	hc := &http.Client{
		Timeout: timeout,
	}

	log.Printf("Ollama client initialized for model %q at %s", model, baseURL)

	return &OllamaClient{
		client: api.NewClient(parsedURL, hc),
		model:  model,
	}, nil
}

// Complete sends the prompt with deterministic decoding (temperature 0) and
// a strict-JSON response format, and returns the raw completion text.
func (o *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	stream := false
	var out strings.Builder

	err := o.client.Generate(ctx, &api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
		Format: json.RawMessage(`"json"`),
		Options: map[string]any{
			"temperature": 0.0,
		},
	}, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generation failed: %w", err)
	}

	return out.String(), nil
}
