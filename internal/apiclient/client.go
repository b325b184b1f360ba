package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lexportal/pkg/logger"
)

// Client is a typed wrapper over the practice-management REST API. It does
// pure request/response mapping: no retries, no backoff, no caching. The
// backend session cookie is carried on every call through the cookie jar the
// client is bound to.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// New creates a client without a cookie jar, suitable as a template for
// per-session clients created with WithJar.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// WithJar returns a copy of the client bound to the given cookie jar. Each
// gateway session gets its own jar so backend session cookies never leak
// between users.
func (c *Client) WithJar(jar http.CookieJar) *Client {
	httpClient := *c.http
	httpClient.Jar = jar
	return &Client{
		baseURL: c.baseURL,
		http:    &httpClient,
		log:     c.log,
	}
}

// BaseURL returns the backend base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping probes backend reachability. Any HTTP response counts as reachable;
// only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return &NetworkError{Endpoint: "/", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: "/", Err: err}
	}
	resp.Body.Close()
	return nil
}

// backendPayload is the structured error body the backend returns on
// failures: {"detail": "..."} or {"message": "..."}.
type backendPayload struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do performs one request and maps the outcome to the error taxonomy:
// transport failures become NetworkError, non-2xx responses with a parseable
// {detail|message} body become BackendError with the message verbatim, and
// any other non-2xx becomes NetworkError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Endpoint: path, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Endpoint: path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if c.log != nil {
		c.log.BackendLogger(method, path, resp.StatusCode, time.Since(start))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Endpoint: path, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return &NetworkError{Endpoint: path, Err: fmt.Errorf("decoding response: %w", err)}
			}
		}
		return nil
	}

	var payload backendPayload
	if err := json.Unmarshal(data, &payload); err == nil {
		msg := payload.Detail
		if msg == "" {
			msg = payload.Message
		}
		if msg != "" {
			return &BackendError{StatusCode: resp.StatusCode, Message: msg}
		}
	}

	return &NetworkError{
		Endpoint: path,
		Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
