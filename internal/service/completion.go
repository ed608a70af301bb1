package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pageza/dietplan/backend/internal/logging"
)

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest represents a request to the chat completions API
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 4 << 20

// CompletionResponse is the subset of the chat completions response we read.
// Content is a pointer so a null or missing message is told apart from text.
type CompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompletionConfig configures a CompletionClient.
type CompletionConfig struct {
	APIKey  string
	APIURL  string
	Timeout time.Duration
}

// CompletionClient sends chat completion requests over HTTP with bearer auth.
type CompletionClient struct {
	apiKey  string
	apiURL  string
	timeout time.Duration
	client  *http.Client
}

// NewCompletionClient creates a new CompletionClient instance
func NewCompletionClient(cfg CompletionConfig) *CompletionClient {
	return &CompletionClient{
		apiKey:  cfg.APIKey,
		apiURL:  cfg.APIURL,
		timeout: cfg.Timeout,
		client:  &http.Client{},
	}
}

// Complete sends req and returns the content of the first choice. A non-200
// answer yields *UpstreamError; exceeding the timeout yields *TimeoutError.
func (c *CompletionClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	logger := logging.FromContext(ctx)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	logger.WithField("payload", string(jsonData)).Debug("Sending request to completion API")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	completionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if isTimeout(ctx, err) {
			completionRequests.WithLabelValues("timeout").Inc()
			return "", &TimeoutError{Timeout: c.timeout, Cause: err}
		}
		completionRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if isTimeout(ctx, err) {
			completionRequests.WithLabelValues("timeout").Inc()
			return "", &TimeoutError{Timeout: c.timeout, Cause: err}
		}
		completionRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		completionRequests.WithLabelValues("upstream_error").Inc()
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result CompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		completionRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		completionRequests.WithLabelValues("error").Inc()
		return "", ErrNoChoices
	}

	content := result.Choices[0].Message.Content
	if content == nil || strings.TrimSpace(*content) == "" {
		completionRequests.WithLabelValues("error").Inc()
		return "", ErrNoContent
	}

	completionRequests.WithLabelValues("success").Inc()
	return *content, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
