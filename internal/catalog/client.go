package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Catalog is the set of remote operations the UI depends on. *Client
// implements it; tests substitute fakes.
type Catalog interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id ID) (Book, error)
	Create(ctx context.Context, fields Fields) (*Book, error)
	Update(ctx context.Context, id ID, fields Fields) (*Book, error)
	Delete(ctx context.Context, id ID) error
}

var _ Catalog = (*Client)(nil)

// Client talks to the books HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	// DefaultBaseURL is the public books service.
	DefaultBaseURL = "https://books-api-jbci.onrender.com"

	defaultUserAgent = "bookshelf/0.1"
	defaultTimeout   = 10 * time.Second
	resourcePath     = "/api/books"
	maxErrorBody     = 64 << 10
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. A client passed through
// WithHTTPClient is copied first and never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger routes request logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client for the service rooted at baseURL. Any path on
// baseURL is dropped; the resource always lives at /api/books.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List fetches the whole collection. Filtering happens client-side, so no
// query parameters are sent.
func (c *Client) List(ctx context.Context) ([]Book, error) {
	const op = "list books"
	resp, err := c.do(ctx, op, http.MethodGet, resourcePath, "", nil)
	if err != nil {
		return nil, err
	}
	var payload listResponse
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return nil, resp.invalid(op, fmt.Errorf("decode response: %w", err))
	}
	if payload.Data == nil || payload.Data.Books == nil {
		return nil, resp.invalid(op, fmt.Errorf("response missing data.books"))
	}
	return *payload.Data.Books, nil
}

// Get fetches one book. A missing id yields an error matching ErrNotFound.
func (c *Client) Get(ctx context.Context, id ID) (Book, error) {
	const op = "get book"
	if id == "" {
		return Book{}, fmt.Errorf("%s: book id required", op)
	}
	path, raw := itemPath(id)
	resp, err := c.do(ctx, op, http.MethodGet, path, raw, nil)
	if err != nil {
		return Book{}, err
	}
	var payload bookResponse
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return Book{}, resp.invalid(op, fmt.Errorf("decode response: %w", err))
	}
	if payload.Data == nil || payload.Data.Book == nil {
		return Book{}, resp.invalid(op, fmt.Errorf("response missing data.book"))
	}
	return *payload.Data.Book, nil
}

// Create posts a new book. The server assigns the id. The returned book is
// nil when the service only acknowledges the request.
func (c *Client) Create(ctx context.Context, fields Fields) (*Book, error) {
	const op = "create book"
	resp, err := c.do(ctx, op, http.MethodPost, resourcePath, "", fields)
	if err != nil {
		return nil, err
	}
	book, err := decodeRecord(resp.body)
	if err != nil {
		return nil, resp.invalid(op, err)
	}
	return book, nil
}

// Update replaces every field of the book with id.
func (c *Client) Update(ctx context.Context, id ID, fields Fields) (*Book, error) {
	const op = "update book"
	if id == "" {
		return nil, fmt.Errorf("%s: book id required", op)
	}
	path, raw := itemPath(id)
	resp, err := c.do(ctx, op, http.MethodPut, path, raw, fields)
	if err != nil {
		return nil, err
	}
	book, err := decodeRecord(resp.body)
	if err != nil {
		return nil, resp.invalid(op, err)
	}
	return book, nil
}

// Delete removes the book with id.
func (c *Client) Delete(ctx context.Context, id ID) error {
	const op = "delete book"
	if id == "" {
		return fmt.Errorf("%s: book id required", op)
	}
	path, raw := itemPath(id)
	_, err := c.do(ctx, op, http.MethodDelete, path, raw, nil)
	return err
}

type response struct {
	status int
	body   []byte
}

func (r response) invalid(op string, err error) error {
	return &RemoteError{Op: op, StatusCode: r.status, Err: err}
}

func (c *Client) do(ctx context.Context, op, method, path, rawPath string, body any) (response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path, RawPath: rawPath})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return response{}, fmt.Errorf("%s: create request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return response{}, &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("catalog request",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return response{}, &RemoteError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    extractMessage(raw),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	return response{status: resp.StatusCode, body: raw}, nil
}

// decodeRecord accepts the {data:{book}} envelope, a bare book, or an empty
// acknowledgement.
func decodeRecord(raw []byte) (*Book, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var payload bookResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Data != nil && payload.Data.Book != nil {
		return payload.Data.Book, nil
	}
	var book Book
	if err := json.Unmarshal(raw, &book); err == nil && book.ID != "" {
		return &book, nil
	}
	return nil, nil
}

func itemPath(id ID) (path, rawPath string) {
	return resourcePath + "/" + string(id), resourcePath + "/" + url.PathEscape(string(id))
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
