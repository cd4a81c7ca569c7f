package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/paging"
)

const (
	DefaultTimeout = 30 * time.Second

	// Error bodies are kept for diagnostics only
	maxErrorBody = 64 << 10
)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Jar         http.CookieJar
	Transport   http.RoundTripper
	Middlewares []Middleware
	Logger      logger.Logger
}

// Client is the shared HTTP client every resource client goes through
type Client struct {
	base   *url.URL
	http   *http.Client
	logger logger.Logger
}

func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute, got %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	rt := cfg.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	return &Client{
		base: base,
		http: &http.Client{
			Transport: Chain(rt, cfg.Middlewares...),
			Jar:       cfg.Jar,
			Timeout:   timeout,
		},
		logger: logger.OrNoOp(cfg.Logger),
	}, nil
}

func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// NewRequest builds a request against the base URL.
// params is a struct with `url` tags, url.Values or nil. body is encoded as JSON when not nil
func (c *Client) NewRequest(ctx context.Context, method string, path string, params any, body any) (*http.Request, error) {
	u := c.BaseURL()
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")

	q, err := encodeParams(params)
	if err != nil {
		return nil, err
	}
	u.RawQuery = q

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		// bytes.Reader lets http set GetBody so the request can be replayed
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func encodeParams(params any) (string, error) {
	switch p := params.(type) {
	case nil:
		return "", nil
	case url.Values:
		return p.Encode(), nil
	default:
		values, err := query.Values(params)
		if err != nil {
			return "", fmt.Errorf("encode query: %w", err)
		}
		return values.Encode(), nil
	}
}

// Do sends the request. Any status >= 400 comes back as *HTTPError with the body already closed
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, unwrapURLError(err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close() // nolint:errcheck
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     req.Method,
			URL:        req.URL.Path,
			Body:       bytes.TrimSpace(body),
		}
	}

	return resp, nil
}

// url.Error repeats method and url we already put into the message
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// JSON sends in (if any) and decodes the response into out (if any)
func (c *Client) JSON(ctx context.Context, method string, path string, params any, in any, out any) error {
	req, err := c.NewRequest(ctx, method, path, params, in)
	if err != nil {
		return err
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // nolint:errcheck

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil && !errors.Is(err, io.EOF) {
		c.logger.Warn("Failed to decode response", "method", method, "path", path, "error", err)
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Page fetches a paged list: items from the body and metadata from the pagination header
func Page[T any](ctx context.Context, c *Client, path string, params any) (models.Page[T], error) {
	req, err := c.NewRequest(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return models.Page[T]{}, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return models.Page[T]{}, err
	}
	defer resp.Body.Close() // nolint:errcheck

	page, err := paging.Decode[T](resp, c.logger)
	if err != nil {
		return page, fmt.Errorf("GET %s: %w", path, err)
	}
	return page, nil
}
