package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/blessedav/FINALGO/pkg/logger"
)

// Client talks to the Remote API. It holds no session state; the bearer
// token is passed on every protected call.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, log logger.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  log.With("component", "api"),
	}
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges email and password for a bearer token.
//
// The call succeeds whenever the response carries a token. Otherwise the
// returned *APIError holds the server message, if any.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "login", "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	return c.authenticate(ctx, "register", "/auth/register", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
}

func (c *Client) authenticate(ctx context.Context, op, path string, body interface{}) (string, error) {
	status, data, err := c.do(ctx, op, http.MethodPost, path, "", body)
	if err != nil {
		return "", err
	}

	var resp authResponse
	if jsonErr := json.Unmarshal(data, &resp); jsonErr != nil {
		c.logger.Debug("unparseable auth response", "op", op, "status", status, "error", jsonErr)
	}

	if resp.Token == "" {
		return "", &APIError{Op: op, StatusCode: status, Message: resp.Error}
	}

	return resp.Token, nil
}

// ListBooks returns the full collection visible to token.
//
// Both {"books": [...]} and a bare array are accepted; the result is never nil.
func (c *Client) ListBooks(ctx context.Context, token string) ([]Book, error) {
	const op = "list books"

	status, data, err := c.do(ctx, op, http.MethodGet, "/books", token, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, c.rejection(op, status, data)
	}

	books, err := normalizeBooks(data)
	if err != nil {
		c.logger.Warn("unparseable book list", "status", status, "error", err)
		return nil, &APIError{Op: op, StatusCode: status}
	}

	return books, nil
}

// GetBook fetches a single book by id.
func (c *Client) GetBook(ctx context.Context, token, id string) (Book, error) {
	const op = "get book"

	status, data, err := c.do(ctx, op, http.MethodGet, bookPath(id), token, nil)
	if err != nil {
		return Book{}, err
	}
	if !isSuccess(status) {
		return Book{}, c.rejection(op, status, data)
	}

	return c.decodeBook(op, data), nil
}

// CreateBook creates a book; the server assigns its id.
func (c *Client) CreateBook(ctx context.Context, token string, in BookInput) (Book, error) {
	const op = "create book"

	status, data, err := c.do(ctx, op, http.MethodPost, "/books", token, withTags(in))
	if err != nil {
		return Book{}, err
	}
	if !isSuccess(status) {
		return Book{}, c.rejection(op, status, data)
	}

	return c.decodeBook(op, data), nil
}

// UpdateBook replaces the fields of the book with the given id.
func (c *Client) UpdateBook(ctx context.Context, token, id string, in BookInput) (Book, error) {
	const op = "update book"

	status, data, err := c.do(ctx, op, http.MethodPut, bookPath(id), token, withTags(in))
	if err != nil {
		return Book{}, err
	}
	if !isSuccess(status) {
		return Book{}, c.rejection(op, status, data)
	}

	return c.decodeBook(op, data), nil
}

// DeleteBook deletes the book with the given id.
func (c *Client) DeleteBook(ctx context.Context, token, id string) error {
	const op = "delete book"

	status, data, err := c.do(ctx, op, http.MethodDelete, bookPath(id), token, nil)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return c.rejection(op, status, data)
	}

	return nil
}

// do sends one request and reads the whole body. Transport and body read
// failures are reported as *NetworkError.
func (c *Client) do(ctx context.Context, op, method, path, token string, body interface{}) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("request", "op", op, "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "op", op, "error", err)
		return 0, nil, &NetworkError{Op: op, Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("failed to close response body", "error", closeErr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &NetworkError{Op: op, Err: err}
	}

	c.logger.Debug("response", "op", op, "status", resp.StatusCode, "bytes", len(data))

	return resp.StatusCode, data, nil
}

// rejection builds an *APIError from a non-2xx response.
func (c *Client) rejection(op string, status int, data []byte) error {
	var payload errorResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		c.logger.Debug("unparseable error body", "op", op, "status", status)
	}

	c.logger.Warn("request rejected", "op", op, "status", status, "message", payload.Error)
	return &APIError{Op: op, StatusCode: status, Message: payload.Error}
}

// decodeBook tolerates a success body that is not a book.
func (c *Client) decodeBook(op string, data []byte) Book {
	var book Book
	if err := json.Unmarshal(data, &book); err != nil {
		c.logger.Debug("unparseable book body", "op", op, "error", err)
		return Book{}
	}
	return book
}

// normalizeBooks accepts {"books": [...]}, a bare array, null or an empty body.
func normalizeBooks(data []byte) ([]Book, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Book{}, nil
	}

	var books []Book
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &books); err != nil {
			return nil, err
		}
	case '{':
		var wrapped struct {
			Books []Book `json:"books"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		books = wrapped.Books
	default:
		return nil, fmt.Errorf("unexpected book list payload starting with %q", trimmed[0])
	}

	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// withTags makes sure tags encode as an array, never null.
func withTags(in BookInput) BookInput {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	return in
}

func bookPath(id string) string {
	return "/books/" + url.PathEscape(id)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
