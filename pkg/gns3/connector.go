package gns3

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	apiVersionPrefix = "/v2"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "gns3facts/1.0"
)

// APIError is returned when the server answers with a status code >= 400.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Option configures a Connector.
type Option func(*Connector)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Connector) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Connector) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Connector) {
		c.userAgent = userAgent
	}
}

// Connector is an authenticated handle to the REST API of a GNS3 server.
type Connector struct {
	baseURL    string
	user       string
	cred       string
	userAgent  string
	httpClient *http.Client
}

// NewConnector creates a connector for the server at url ("http://host:port").
// Basic auth is applied when user is non-empty. No request is made.
func NewConnector(url, user, cred string, opts ...Option) *Connector {
	c := &Connector{
		baseURL:    strings.TrimSuffix(url, "/"),
		user:       user,
		cred:       cred,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server URL the connector was created with.
func (c *Connector) BaseURL() string {
	return c.baseURL
}

// APIURL returns the versioned API root, e.g. http://localhost:3080/v2.
func (c *Connector) APIURL() string {
	return c.baseURL + apiVersionPrefix
}

// Get performs a GET on path (relative to the API root) and decodes the JSON body into out.
func (c *Connector) Get(ctx context.Context, path string, out any) error {
	target := c.APIURL() + "/" + strings.TrimPrefix(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.user != "" {
		req.SetBasicAuth(c.user, c.cred)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     http.MethodGet,
			URL:        target,
			Message:    errorMessage(body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", target, err)
	}
	return nil
}

// errorMessage extracts the "message" field GNS3 puts in error bodies.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

// ServerVersion returns the version reported by the server.
func (c *Connector) ServerVersion(ctx context.Context) (*Version, error) {
	var version Version
	if err := c.Get(ctx, "/version", &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// Projects lists every project known to the server.
func (c *Connector) Projects(ctx context.Context) ([]ProjectInfo, error) {
	var projects []ProjectInfo
	if err := c.Get(ctx, "/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
