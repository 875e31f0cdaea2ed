package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sagarc03/schedsync"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 10 * time.Second

// Client talks to a schedsync gateway.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()

	c := &Client{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the normalized gateway URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// List returns the documents currently held by the gateway.
func (c *Client) List(ctx context.Context) (*schedsync.ListResult, error) {
	var result schedsync.ListResult
	if err := c.getJSON(ctx, "/list", &result); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return &result, nil
}

// Upload stores content under filename.
func (c *Client) Upload(ctx context.Context, filename, content string) (*schedsync.UploadResult, error) {
	if filename == "" {
		return nil, fmt.Errorf("upload: %w", ErrEmptyFilename)
	}

	payload, err := json.Marshal(schedsync.UploadRequest{Filename: filename, Content: content})
	if err != nil {
		return nil, fmt.Errorf("upload: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/upload", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("upload: create request: %w", err)
	}
	req.Header.Set("Content-Type", schedsync.JSONContentType)

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}

	var result schedsync.UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("upload: parse response: %w", err)
	}
	return &result, nil
}

// Download returns the raw content stored under filename. A missing
// document yields an error matching ErrNotFound.
func (c *Client) Download(ctx context.Context, filename string) ([]byte, error) {
	if filename == "" {
		return nil, fmt.Errorf("download: %w", ErrEmptyFilename)
	}

	u := c.endpoint + "/download/" + url.PathEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("download: create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", filename, err)
	}
	return body, nil
}

// Describe fetches the service description served at the root path.
func (c *Client) Describe(ctx context.Context) (*schedsync.ServiceDescription, error) {
	var desc schedsync.ServiceDescription
	if err := c.getJSON(ctx, "/", &desc); err != nil {
		return nil, fmt.Errorf("describe: %w", err)
	}
	return &desc, nil
}

// Ping returns nil when the gateway answers /list with 200.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/list", http.NoBody)
	if err != nil {
		return fmt.Errorf("ping: create request: %w", err)
	}

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// do executes req and returns the body of a 200 response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseServerError(resp.StatusCode, body)
	}
	return body, nil
}

// parseServerError extracts the error message from a gateway response.
func parseServerError(statusCode int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
	}
}
