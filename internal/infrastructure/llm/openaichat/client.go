package openaichat

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gourmetline/catalog-ingest/internal/infrastructure/resilience"
)

// Client talks to an OpenAI-compatible chat-completions endpoint. Each
// call is bounded by the configured timeout and is never retried; the
// optional executor adds a circuit breaker in front.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, apiKey, model string, timeout time.Duration, executor *resilience.Executor) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a system+user prompt pair and returns the raw response
// text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.3,
	}

	var response chatResponse
	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/chat/completions", request, &response, "complete")
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "llm.complete", call, classifyCompletionError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("llm complete: response contains no choices")
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
