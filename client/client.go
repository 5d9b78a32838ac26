package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	ProductionURL  = "https://book-app-backend-alpha.vercel.app"
	DevelopmentURL = "http://localhost:5000"
)

// BaseURL picks the API root: an explicit override wins, then the
// production deployment, then the local development server.
func BaseURL(production bool, override string) string {
	if override != "" {
		return strings.TrimRight(override, "/")
	}
	if production {
		return ProductionURL
	}
	return DevelopmentURL
}

// TokenSource supplies the bearer token attached to every request. An empty
// token sends no Authorization header.
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type Client struct {
	baseURL        string
	hc             *http.Client
	tokens         TokenSource
	onUnauthorized func()
	cache          *cache
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler sets fn to run whenever the server answers 401 or 403.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		cache:   newCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Watch calls fn each time the query cached under key is refetched after an
// invalidation. Keys come from the BooksKey, OrdersKey ... helpers.
func (c *Client) Watch(key string, fn func()) (cancel func()) {
	return c.cache.watch(key, fn)
}

// Invalidate drops cached queries providing any of tags.
func (c *Client) Invalidate(ctx context.Context, tags ...Tag) {
	c.cache.invalidate(ctx, tags...)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := errorFromResponse(resp)
		log.Debug().Int("status", e.Status).Str("path", path).Str("message", e.Message).Msg("request rejected")
		if (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden) && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return e
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "invalid response body: " + err.Error()}
	}
	return nil
}

// query runs a cached GET or POST lookup. tagsOf lists the tags the result
// provides.
func query[T any](ctx context.Context, c *Client, key string, fetch func(ctx context.Context) (T, error), tagsOf func(T) []Tag) (res T, err error) {
	v, err := c.cache.load(ctx, key, func(ctx context.Context) (any, []Tag, error) {
		r, err := fetch(ctx)
		if err != nil {
			return nil, nil, err
		}
		return r, tagsOf(r), nil
	})
	if err != nil {
		return
	}
	res, _ = v.(T)
	return
}
