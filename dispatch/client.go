// Package dispatch implements the client for the internal workflow
// dispatcher service: shared-storage provisioning and execution
// identity lookups.
//
// The dispatcher owns retry policy for its own operations; this client
// never retries. Provisioning failures are fatal to the run and occur
// before any subprocess is launched.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/justapithecus/foldrun/iox"
	"github.com/justapithecus/foldrun/types"
)

// DefaultTimeout is the per-request timeout for dispatcher calls.
const DefaultTimeout = 30 * time.Second

// provisionVersion is the storage provisioning protocol version.
const provisionVersion = 2

// maxResponseBody caps how much of a dispatcher response is read;
// all dispatcher payloads are small JSON objects.
const maxResponseBody = 4096

// Config configures the dispatcher client.
type Config struct {
	// URL is the dispatcher base URL (required).
	URL string
	// Token is the execution token identifying this managed execution.
	Token string
	// ExecutionID is the platform execution identifier.
	ExecutionID string
	// Timeout is the per-request timeout (default 30s).
	Timeout time.Duration
}

// Client calls the workflow dispatcher service.
type Client struct {
	config Config
	client *http.Client
}

// New creates a dispatcher client.
// A missing execution token is a MissingCredential error: the run must
// abort before provisioning is even attempted.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, types.NewRunError(types.ErrMissingCredential, "dispatch", nil)
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("dispatcher URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// provisionRequest is the provision-storage request body.
type provisionRequest struct {
	StorageExpirationHours int `json:"storage_expiration_hours"`
	Version                int `json:"version"`
}

// provisionResponse is the provision-storage response body.
// Name is the opaque volume handle.
type provisionResponse struct {
	Name string `json:"name"`
}

// Provision reserves a shared storage volume for the run and returns
// its opaque handle. One synchronous request, no retries: any non-2xx
// status is a fatal ProvisioningFailed error carrying the upstream
// status and response body.
func (c *Client) Provision(ctx context.Context) (string, error) {
	body, err := c.post(ctx, "/provision-storage", provisionRequest{
		StorageExpirationHours: 0,
		Version:                provisionVersion,
	})
	if err != nil {
		return "", types.NewRunError(types.ErrProvisioningFailed, "provision", err)
	}

	var resp provisionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", types.NewRunError(types.ErrMalformedResponse, "provision", err)
	}
	if resp.Name == "" {
		return "", types.NewRunError(types.ErrMalformedResponse, "provision",
			fmt.Errorf("response missing volume handle field %q", "name"))
	}

	return resp.Name, nil
}

// renameRequest is the rename-execution request body.
type renameRequest struct {
	ExecutionID string `json:"execution_id"`
	Name        string `json:"name"`
}

// RenameExecution renames the current managed execution to name.
// Cosmetic: callers treat failure as a warning, not a fatal error.
func (c *Client) RenameExecution(ctx context.Context, name string) error {
	_, err := c.post(ctx, "/rename-execution", renameRequest{
		ExecutionID: c.config.ExecutionID,
		Name:        name,
	})
	return err
}

// nameRequest is the execution-name request body.
type nameRequest struct {
	ExecutionID string `json:"execution_id"`
}

// nameResponse is the execution-name response body.
type nameResponse struct {
	Name string `json:"name"`
}

// ExecutionName resolves the display name of the current execution,
// used to namespace the uploaded run log.
func (c *Client) ExecutionName(ctx context.Context) (string, error) {
	body, err := c.post(ctx, "/execution-name", nameRequest{ExecutionID: c.config.ExecutionID})
	if err != nil {
		return "", err
	}

	var resp nameResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode execution name: %w", err)
	}
	if resp.Name == "" {
		return "", fmt.Errorf("response missing execution name")
	}
	return resp.Name, nil
}

// usageRequest is the nextflow-used-storage request body.
type usageRequest struct {
	ExecutionID string `json:"execution_id"`
	UsedBytes   int64  `json:"used_bytes"`
}

// ReportStorageUsage reports the measured workspace size for billing.
// Single attempt; callers treat failure as a warning.
func (c *Client) ReportStorageUsage(ctx context.Context, usedBytes int64) error {
	_, err := c.post(ctx, "/nextflow-used-storage", usageRequest{
		ExecutionID: c.config.ExecutionID,
		UsedBytes:   usedBytes,
	})
	return err
}

// StatusError is returned for non-2xx dispatcher responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("dispatcher returned status %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("dispatcher returned status %d", e.Code)
}

// post performs a single JSON POST and returns the response body on 2xx.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Latch-Execution-Token "+c.config.Token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dispatcher request: %w", err)
	}
	defer iox.DiscardClose(resp.Body)

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(respBody))}
	}

	return respBody, nil
}
