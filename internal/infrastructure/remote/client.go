package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"go.uber.org/zap"
)

// DefaultTimeout applies when Config.Timeout is zero
const DefaultTimeout = 30 * time.Second

// HTTPClient is the subset of *http.Client used by the adapter
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures the REST backend
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements port.RemoteStore against the REST backend.
// Authenticated calls carry the token persisted under the "jwt" key.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	storage    port.KeyValueStore
	logger     *zap.Logger
}

// NewClient creates a new REST adapter
func NewClient(cfg Config, storage port.KeyValueStore, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		storage:    storage,
		logger:     logger,
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *Client) WithHTTPClient(httpClient HTTPClient) *Client {
	c.httpClient = httpClient
	return c
}

// Bills returns the bills collection
func (c *Client) Bills() port.BillCollection {
	return &billCollection{client: c}
}

// Users returns the users collection
func (c *Client) Users() port.UserCollection {
	return &userCollection{client: c}
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, creds entity.Credentials) (*entity.LoginResult, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	var result entity.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", bytes.NewReader(body), "application/json", false, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do sends one request and decodes a JSON response into out when non-nil
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, auth bool, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if auth {
		token, ok, err := c.storage.GetItem(entity.StorageKeyJWT)
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		if ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("failed to %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &payload)
		return newError(resp.StatusCode, payload.Message)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

var _ port.RemoteStore = (*Client)(nil)
