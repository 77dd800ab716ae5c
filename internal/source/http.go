package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds one HTTP fetch.
const DefaultTimeout = 10 * time.Second

// DefaultMaxBytes caps the size of a fetched dataset.
const DefaultMaxBytes = 32 << 20

// HTTPSource fetches datasets relative to a base URL.
type HTTPSource struct {
	baseURL  *url.URL
	client   *http.Client
	maxBytes int64
}

// HTTPOption configures HTTPSource.
type HTTPOption func(*HTTPSource)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// WithMaxBytes caps the response body size.
func WithMaxBytes(n int64) HTTPOption {
	return func(s *HTTPSource) {
		s.maxBytes = n
	}
}

// NewHTTPSource creates a source that resolves dataset paths against baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPOption) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	s := &HTTPSource{
		baseURL:  u,
		client:   &http.Client{Timeout: DefaultTimeout},
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Kind implements Source.
func (s *HTTPSource) Kind() string { return KindHTTP }

// Fetch GETs the dataset. Any non-2xx status is an error; 404 wraps ErrNotFound.
func (s *HTTPSource) Fetch(ctx context.Context, ref DatasetRef) (string, error) {
	rel, err := url.Parse(strings.TrimPrefix(ref.Path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse dataset path: %w", err)
	}
	target := s.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%s: %w", target, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%s: unexpected status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > s.maxBytes {
		return "", fmt.Errorf("%s: dataset larger than %d bytes", target, s.maxBytes)
	}
	return string(body), nil
}
