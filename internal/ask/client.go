// Package ask is the question-answering boundary: a client for a remote
// answer service and a local keyword answerer over allocation records.
package ask

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds one question round trip.
const DefaultTimeout = 15 * time.Second

// FallbackAnswer is returned whenever the remote service cannot answer.
const FallbackAnswer = "Sorry, the assistant is unavailable right now. Please try again later."

// Request is the wire form of a question.
type Request struct {
	Period   string `json:"period"`
	Question string `json:"question"`
}

// Response is the wire form of an answer.
type Response struct {
	Answer string `json:"answer"`
}

// Client posts questions to a remote answer endpoint.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
	fallback string
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithLogger sets the logger used to record failed round trips.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithFallback replaces FallbackAnswer.
func WithFallback(text string) ClientOption {
	return func(c *Client) {
		c.fallback = text
	}
}

// NewClient creates a client for endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
		logger:   zap.NewNop(),
		fallback: FallbackAnswer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ask sends the question and returns the answer. It never fails: any
// transport, status or decoding problem yields the fallback answer.
func (c *Client) Ask(ctx context.Context, period, question string) string {
	answer, err := c.roundTrip(ctx, Request{Period: period, Question: question})
	if err != nil {
		c.logger.Warn("ask failed",
			zap.String("endpoint", c.endpoint),
			zap.String("period", period),
			zap.Error(err),
		)
		return c.fallback
	}
	return answer
}

func (c *Client) roundTrip(ctx context.Context, q Request) (string, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if r.Answer == "" {
		return "", fmt.Errorf("empty answer")
	}
	return r.Answer, nil
}
