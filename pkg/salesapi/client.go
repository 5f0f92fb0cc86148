package salesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/vitorarj/sales-manager/pkg/errors"
	"github.com/vitorarj/sales-manager/pkg/metrics"
)

const (
	defaultBaseURL      = "https://sales-management-backend-iapk.onrender.com/api"
	defaultTimeout      = 15 * time.Second
	requestIDHeader     = "X-Request-Id"
	errorBodyReadLimit  = 4096
	defaultMutationVerb = http.MethodGet
)

// TokenSource yields the bearer token for the active session, or the
// empty string when no session exists.
type TokenSource interface {
	Token() string
}

// Client is the typed wrapper over the sales-management REST API. Every
// request flows through a single shaping step that attaches the bearer
// credential and a request ID; there are no retries and no caching.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	metrics        *metrics.RequestMetrics
	mutationMethod string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithTokenSource wires the session store the client reads tokens from.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithMetrics attaches request instrumentation.
func WithMetrics(m *metrics.RequestMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithMutationMethod overrides the verb used for approve/reject/complete.
// The deployed backend expects GET for these state-changing calls; this
// is the single point where that contract quirk can be fixed.
func WithMutationMethod(method string) Option {
	return func(c *Client) {
		trimmed := strings.ToUpper(strings.TrimSpace(method))
		if trimmed != "" {
			c.mutationMethod = trimmed
		}
	}
}

// NewClient builds an API client for the given base URL. An empty base
// URL falls back to the hosted default.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:        defaultBaseURL,
		httpClient:     &http.Client{Timeout: defaultTimeout},
		mutationMethod: defaultMutationVerb,
	}

	trimmed := strings.TrimSpace(baseURL)
	if trimmed != "" {
		client.baseURL = strings.TrimRight(trimmed, "/")
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return client
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
}

// do executes one request and decodes the response into out (skipped for
// nil out). Failures collapse to a typed error carrying the backend's
// message when its error body could be decoded.
func (c *Client) do(ctx context.Context, resource, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(resource, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(resource)
		return pkgerrors.Wrap(pkgerrors.CodeAPI, err, fmt.Sprintf("execute %s %s", method, path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.metrics.IncFailure(resource)
		return c.errorFromResponse(resp, method, path)
	}

	if out != nil {
		if err := decodeBody(resp.Body, out); err != nil {
			c.metrics.IncFailure(resource)
			return pkgerrors.Wrap(pkgerrors.CodeAPI, err, fmt.Sprintf("decode %s %s response", method, path))
		}
	}

	c.metrics.IncSuccess(resource)
	return nil
}

// getJSON issues a read and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, resource, path string, out any) error {
	return c.do(ctx, resource, http.MethodGet, path, nil, out)
}

// postJSON issues a JSON POST and decodes the response.
func (c *Client) postJSON(ctx context.Context, resource, path string, body, out any) error {
	return c.do(ctx, resource, http.MethodPost, path, body, out)
}

// mutate issues a state-changing call using the configured verb.
func (c *Client) mutate(ctx context.Context, resource, path string, out any) error {
	return c.do(ctx, resource, c.mutationMethod, path, nil, out)
}

// getText issues a read whose response body is a plain string (the count
// and demo-seed endpoints answer with human-readable text).
func (c *Client) getText(ctx context.Context, resource, path string) (string, error) {
	var text textBody
	if err := c.do(ctx, resource, http.MethodGet, path, nil, &text); err != nil {
		return "", err
	}
	return text.value, nil
}

func (c *Client) errorFromResponse(resp *http.Response, method, path string) error {
	code := pkgerrors.CodeAPI
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = pkgerrors.CodeUnauthorized
	case http.StatusNotFound:
		code = pkgerrors.CodeNotFound
	}

	apiErr := pkgerrors.New(code, fmt.Sprintf("%s %s: status %d", method, path, resp.StatusCode))

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		apiErr = apiErr.WithServerMessage(payload.Error)
	}
	return apiErr
}

// textBody accepts either a raw text body or a JSON-encoded string.
type textBody struct {
	value string
}

func (t *textBody) decode(raw []byte) {
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		t.value = quoted
		return
	}
	t.value = strings.TrimSpace(string(raw))
}

func decodeBody(body io.Reader, out any) error {
	if text, ok := out.(*textBody); ok {
		raw, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		text.decode(raw)
		return nil
	}
	return json.NewDecoder(body).Decode(out)
}
