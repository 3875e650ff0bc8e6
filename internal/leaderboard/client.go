package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultURL is the service address used when none is configured.
const DefaultURL = "http://localhost:3000"

// APIError is a non-2xx response from the service.
// 404 matches ErrNotFound and 400 matches ErrValidation under errors.Is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("leaderboard: %d %s", e.Status, e.Message)
}

// Is maps HTTP statuses onto the store's sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrValidation:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// Client talks to a leaderboard Server. Requests are sent once, never retried.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit records a finished run.
func (c *Client) Submit(ctx context.Context, e Entry) (Entry, error) {
	var resp successResponse
	if err := c.do(ctx, http.MethodPost, "/api/leaderboard", e, http.StatusCreated, &resp); err != nil {
		return Entry{}, err
	}
	return entryOf(resp)
}

// List returns every entry in insertion order.
func (c *Client) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Ranked returns every entry, longest survival first.
func (c *Client) Ranked(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard?sort=time", nil, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Get returns the entry at index.
func (c *Client) Get(ctx context.Context, index int) (Entry, error) {
	var e Entry
	if err := c.do(ctx, http.MethodGet, entryPath(index), nil, http.StatusOK, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Update applies a partial update to the entry at index.
func (c *Client) Update(ctx context.Context, index int, p Patch) (Entry, error) {
	var resp successResponse
	if err := c.do(ctx, http.MethodPut, entryPath(index), p, http.StatusOK, &resp); err != nil {
		return Entry{}, err
	}
	return entryOf(resp)
}

// Delete removes the entry at index.
func (c *Client) Delete(ctx context.Context, index int) error {
	return c.do(ctx, http.MethodDelete, entryPath(index), nil, http.StatusOK, nil)
}

func entryPath(index int) string {
	return "/api/leaderboard/" + strconv.Itoa(index)
}

func entryOf(resp successResponse) (Entry, error) {
	if resp.Entry == nil {
		return Entry{}, fmt.Errorf("leaderboard: response without entry")
	}
	return *resp.Entry, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("leaderboard: marshal: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("leaderboard: new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("leaderboard: decode: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body errorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxRequestBody))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
