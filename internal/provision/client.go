// internal/provision/client.go

// Package provision is the HTTP client for the per-product provisioning
// services. Enrollment asks the service mapped from a product code to create
// tenant resources for an account and hands back the opaque resource id.
package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Config represents the configuration for the provisioning client.
type Config struct {
	// ServiceURLs maps product codes to service base URLs. Codes without a
	// mapping fall back to the conventional http://{code}-service host.
	ServiceURLs map[string]string
	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client
	// Timeout bounds each provisioning call.
	Timeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ServiceURLs: map[string]string{},
		HTTPClient:  http.DefaultClient,
		Timeout:     10 * time.Second,
	}
}

type Client struct {
	config *Config
	client *http.Client
}

func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}

	return &Client{
		config: config,
		client: client,
	}
}

// Request is the payload POSTed to {base}/internal/provision.
type Request struct {
	AccountID   string `json:"account_id"`
	AccountType string `json:"account_type"`
	Code        string `json:"code"`
	Name        string `json:"name"`
}

// Response carries the provisioned tenant's opaque resource id.
type Response struct {
	ResourceID string `json:"resource_id"`
	Error      string `json:"error,omitempty"`
}

// BaseURL resolves the service endpoint for a product code.
func (c *Client) BaseURL(productCode string) string {
	if url, ok := c.config.ServiceURLs[productCode]; ok && url != "" {
		return url
	}
	return fmt.Sprintf("http://%s-service", productCode)
}

// Provision asks the product's service to create tenant resources. Any
// non-2xx status, transport error or timeout is a provisioning failure; a 2xx
// response must carry a resource_id.
func (c *Client) Provision(ctx context.Context, productCode string, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.AccountID == "" || req.AccountType == "" {
		return nil, errors.New("account_id and account_type are required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding provisioning request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/internal/provision", c.BaseURL(productCode))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building provisioning request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling provisioning service: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, fmt.Errorf("provisioning failed with status %d", httpResp.StatusCode)
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding provisioning response: %w", err)
	}

	if resp.ResourceID == "" {
		return nil, errors.New("provisioning response missing resource_id")
	}

	return &resp, nil
}
