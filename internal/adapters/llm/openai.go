package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com"
	defaultOpenAIModel   = "gpt-4o"
)

// OpenAIClient talks to an OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	log        logger.Logger
}

// NewOpenAI creates a client for the given model. baseURL may point at any
// OpenAI-compatible server; empty selects the public API.
func NewOpenAI(apiKey, model, baseURL string, log logger.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		httpClient: newHTTPClient(),
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		log:        log.Named("openai"),
	}, nil
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends prompt as a single user message and returns the first
// choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(openAIRequest{
		Model:       c.model,
		Messages:    []openAIMessage{{Role: "user", Content: prompt}},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordLLMCall(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordLLMError()
		return "", fmt.Errorf("calling chat completions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		metrics.RecordLLMError()
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RecordLLMError()
		c.log.Error(ctx, "chat completion failed",
			logger.Int("status", resp.StatusCode),
			logger.String("body", truncate(string(payload), 512)))
		return "", fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		metrics.RecordLLMError()
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if parsed.Error != nil {
		metrics.RecordLLMError()
		return "", fmt.Errorf("%w: %s", ErrRequestFailed, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		metrics.RecordLLMEmptyResponse()
		return "", ErrEmptyResponse
	}

	return parsed.Choices[0].Message.Content, nil
}

const maxResponseBytes = 4 << 20

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
