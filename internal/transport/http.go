// Package transport provides the default HTTP transport for exchange calls.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"cryptocom/pkg/core"
)

// Config configures the HTTP transport.
type Config struct {
	BaseURL   string            `validate:"required,url"`
	Timeout   time.Duration     `validate:"min=1ms"`
	UserAgent string            `validate:"omitempty"`
	Headers   map[string]string `validate:"omitempty"`
}

// Client implements core.Transport on resty. It never retries; a failed
// exchange is reported once and left to the caller.
type Client struct {
	client  *resty.Client
	baseURL string
	logger  zerolog.Logger
	mu      sync.RWMutex
	closed  bool
}

// NewClient creates a transport rooted at config.BaseURL. JSON bodies are
// encoded and decoded with sonic.
func NewClient(config *Config, logger zerolog.Logger) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid transport config: %w", err)
	}

	client := resty.New()
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(0)
	client.AddContentTypeEncoder("application/json", func(w io.Writer, v any) error {
		data, err := sonic.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	client.AddContentTypeDecoder("application/json", func(r io.Reader, v any) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return sonic.Unmarshal(data, v)
	})
	if config.UserAgent != "" {
		client.SetHeader("User-Agent", config.UserAgent)
	}
	for k, v := range config.Headers {
		client.SetHeader(k, v)
	}

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})

	return &Client{
		client:  client,
		baseURL: config.BaseURL,
		logger:  logger,
	}, nil
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins the base URL and an endpoint path with exactly one slash.
func (c *Client) URL(path string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Send executes req. GET carries Query in the URL; POST and DELETE carry
// Form as form data or Body as JSON. Non-2xx statuses are not errors here.
func (c *Client) Send(ctx context.Context, req *core.Request) (*core.Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, fmt.Errorf("transport is closed")
	}

	r := c.client.R().SetContext(ctx)
	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(core.FormatParams(req.Query))
	}

	switch req.Method {
	case http.MethodGet:
	case http.MethodPost, http.MethodDelete:
		switch {
		case req.Form != nil:
			r.SetFormData(core.FormatParams(req.Form))
		case req.Body != nil:
			r.SetHeader("Content-Type", "application/json")
			r.SetBody(req.Body)
		}
	default:
		return nil, fmt.Errorf("unsupported http method: %s", req.Method)
	}

	url := c.URL(req.Path)
	start := time.Now()
	resp, err := r.Execute(req.Method, url)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Error().Err(err).
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("http request failed")
		return nil, fmt.Errorf("http request: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode()).
		Int("size", len(resp.Bytes())).
		Dur("elapsed", elapsed).
		Msg("http response")

	headers := make(map[string]string)
	for k, v := range resp.Header() {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &core.Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
		Header:     headers,
		Elapsed:    elapsed,
	}, nil
}

// Close releases the underlying resty client. Further sends fail.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}
