// Package api provides the HTTP client for the VeriWise analysis service.
package api

import (
	"fmt"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// Service endpoints, relative to the configured base URL.
const (
	PathAnalyze  = "/api/analyze"
	PathVerify   = "/api/verify"
	PathDeepfake = "/api/deepfake"
)

// VerifyTimeout is the fixed client-side deadline applied to the narrower
// claim-verification flow. The primary analyze flow intentionally carries
// no deadline beyond the transport ceiling.
const VerifyTimeout = 120 * time.Second

// transportCeiling bounds any single request at the transport level.
const transportCeiling = 600 // seconds

// Client talks to the analysis service.
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func WithHTTPClient(hc tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new analysis service client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(transportCeiling),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
