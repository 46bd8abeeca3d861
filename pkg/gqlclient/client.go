package gqlclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Config configures the GraphQL HTTP client.
type Config struct {
	// Endpoint is the full URL of the GraphQL endpoint, e.g.
	// http://localhost:8000/graphql.
	Endpoint string

	// Retries is the number of transport-level retries before a connection
	// error is surfaced.
	Retries int

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// Timeout bounds a single request attempt. Zero means no timeout.
	Timeout time.Duration
}

// Client executes GraphQL operations against a single endpoint.
type Client struct {
	endpoint string
	http     *retryablehttp.Client
}

// New creates a client with a fixed transport retry count.
func New(cfg Config) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.Retries
	rc.Logger = nil
	rc.HTTPClient.Timeout = cfg.Timeout

	if cfg.InsecureSkipVerify {
		rc.HTTPClient.Transport = &http.Transport{
			//nolint:gosec
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		endpoint: cfg.Endpoint,
		http:     rc,
	}
}

// Request is a single GraphQL operation.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type responseEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []ResponseError `json:"errors"`
}

// ResponseError is one entry of the GraphQL errors array.
type ResponseError struct {
	Message string `json:"message"`
}

// APIError is returned when the server answered but the operation failed.
type APIError struct {
	Errors []ResponseError
}

func (e *APIError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Message)
	}
	return fmt.Sprintf("graphql: %s", strings.Join(msgs, "; "))
}

// Execute runs the operation and unmarshals the data payload into out.
// out may be nil when the caller does not need the payload.
func (c *Client) Execute(ctx context.Context, req Request, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody)
	}

	var envelope responseEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return &APIError{Errors: envelope.Errors}
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("unmarshal data: %w", err)
		}
	}

	return nil
}
