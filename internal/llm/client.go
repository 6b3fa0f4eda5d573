package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Message is one turn in an OpenAI-style chat payload
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer issues one chat-completion call. The coach consumes this
// interface so tests can inject fakes.
type Completer interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Client talks to an OpenAI-compatible /v1/chat/completions endpoint
type Client struct {
	url         string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	http        *http.Client
}

func NewClient(url, apiKey, model string, maxTokens int, temperature float64, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:         url,
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		http:        &http.Client{Timeout: timeout},
	}
}

// Chat sends one non-streaming completion request and returns the first
// choice's content. Provider error bodies go into the wrapped error for
// logging, never into user-facing messages.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	payload := map[string]interface{}{
		"model":    c.model,
		"messages": messages,
	}
	if c.maxTokens > 0 {
		payload["max_tokens"] = c.maxTokens
	}
	if c.temperature > 0 {
		payload["temperature"] = c.temperature
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal completion payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return "", goerr.Wrap(err, "failed to build completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "completion request failed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return "", goerr.New("completion endpoint returned non-200",
			goerr.V("status", res.StatusCode), goerr.V("body", string(detail)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", goerr.Wrap(err, "failed to decode completion response")
	}
	if len(parsed.Choices) == 0 {
		return "", goerr.New("completion response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
