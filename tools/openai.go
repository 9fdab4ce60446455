package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"creava/config"
)

// completionTemperature is fixed by convention of every caller.
const completionTemperature = 0.7

// OpenAIClient talks to an OpenAI-compatible chat-completions endpoint
// (the base URL may point at any compatible provider).
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewOpenAIClient(p config.Providers) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  p.OpenAIAPIKey,
		baseURL: strings.TrimRight(p.OpenAIBaseURL, "/"),
		model:   p.OpenAIModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Complete sends a single-turn completion request and returns the assistant
// text. No streaming, no retries.
func (o *OpenAIClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqBody := map[string]any{
		"model": o.model,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
		"temperature": completionTemperature,
		"max_tokens":  maxTokens,
	}

	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		o.baseURL+"/chat/completions",
		bytes.NewReader(b),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion error %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from model (no choices)")
	}
	out := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("empty response from model (blank content)")
	}
	return out, nil
}
