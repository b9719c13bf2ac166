// Package client is a typed HTTP client for the todo JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dreamware/todolist/internal/storage"
)

// DefaultTimeout bounds every request made with the default HTTP client.
const DefaultTimeout = 5 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to one todo server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 5s-timeout client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the server at baseURL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches all items in display order.
func (c *Client) List(ctx context.Context) ([]storage.Item, error) {
	var items []storage.Item
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create adds an item with the given title.
func (c *Client) Create(ctx context.Context, title string) (storage.Item, error) {
	var item storage.Item
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	if err := c.do(ctx, http.MethodPost, "/todos", body, &item); err != nil {
		return storage.Item{}, err
	}
	return item, nil
}

// Delete removes the item with the given id and returns it.
func (c *Client) Delete(ctx context.Context, id int) (storage.Item, error) {
	var resp struct {
		Message string       `json:"message"`
		Todo    storage.Item `json:"todo"`
	}
	if err := c.do(ctx, http.MethodDelete, "/todos/"+strconv.Itoa(id), nil, &resp); err != nil {
		return storage.Item{}, err
	}
	return resp.Todo, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, url, err)
	}
	return nil
}

// decodeError turns an error response into an *APIError, falling back to
// the raw body when it is not the usual {"error": "..."} payload.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
