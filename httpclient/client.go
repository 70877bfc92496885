package httpclient

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/kbukum/gofetch/logger"
)

// Client is the request façade. Every verb normalizes its arguments into a
// Descriptor and sends it through the configured hooks and middleware.
// A Client is safe for concurrent use.
type Client struct {
	config    Config
	resty     *RestyTransport
	transport Transport
	pipeline  *interceptor
	log       *logger.Logger

	mu       sync.Mutex
	inflight map[*CancelSource]struct{}
}

// New creates a client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:   cfg,
		log:      cfg.Logger,
		inflight: make(map[*CancelSource]struct{}),
	}

	transport := cfg.Transport
	if transport == nil {
		rt, err := NewRestyTransport(&c.config)
		if err != nil {
			return nil, err
		}
		c.resty = rt
		transport = rt
	}
	c.transport = Chain(cfg.Middleware...)(transport)
	c.initIntercept()

	return c, nil
}

// Name returns the configured client name.
func (c *Client) Name() string {
	return c.config.Name
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// Get sends a GET request. params is encoded in the query.
func (c *Client) Get(ctx context.Context, url string, params any, options ...Options) (*Response, error) {
	return c.Request(ctx, http.MethodGet, url, params, options...)
}

// Post sends a POST request. params is the body.
func (c *Client) Post(ctx context.Context, url string, params any, options ...Options) (*Response, error) {
	return c.Request(ctx, http.MethodPost, url, params, options...)
}

// Put sends a PUT request. params is the body.
func (c *Client) Put(ctx context.Context, url string, params any, options ...Options) (*Response, error) {
	return c.Request(ctx, http.MethodPut, url, params, options...)
}

// Delete sends a DELETE request. params is encoded in the query.
func (c *Client) Delete(ctx context.Context, url string, params any, options ...Options) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, url, params, options...)
}

// Fetch is an alias of Get.
func (c *Client) Fetch(ctx context.Context, url string, params any, options ...Options) (*Response, error) {
	return c.Get(ctx, url, params, options...)
}

// Request sends a request with any method. GET and DELETE carry params in
// the query, every other method sends them as the body.
func (c *Client) Request(ctx context.Context, method, url string, params any, options ...Options) (*Response, error) {
	token, release := c.acquireToken()
	defer release()

	bags := append([]Options{c.config.Options}, options...)
	d, err := Normalize(method, url, params, MergeOptions(bags...), token)
	if err != nil {
		return c.pipeline.requestFailed(err)
	}
	return c.pipeline.send(ctx, d)
}

// Cancel aborts requests reachable from this client's cancel scope.
// In the request scope that is this client's in-flight requests; in the
// global scope it is every in-flight request of every global-scope client,
// and the global token stays fired until RenewGlobalCancel.
func (c *Client) Cancel(message string) {
	if c.config.CancelScope == CancelScopeGlobal {
		GlobalCancelSource().Cancel(message)
		return
	}
	for _, src := range c.snapshot() {
		src.Cancel(message)
	}
}

// IsCancel reports whether err was caused by a cancellation.
func (c *Client) IsCancel(err error) bool {
	return IsCancel(err)
}

// Close cancels this client's in-flight requests and releases idle connections.
func (c *Client) Close(_ context.Context) error {
	for _, src := range c.snapshot() {
		src.Cancel("client closed")
	}
	if c.resty != nil {
		c.resty.Close()
	}
	return nil
}

// Unwrap returns the underlying resty client, or nil when a custom Transport is configured.
func (c *Client) Unwrap() *resty.Client {
	if c.resty == nil {
		return nil
	}
	return c.resty.Client()
}

// acquireToken returns the token for one request in the client's scope.
func (c *Client) acquireToken() (*CancelToken, func()) {
	if c.config.CancelScope == CancelScopeGlobal {
		return GlobalCancelSource().Token, func() {}
	}
	src := NewCancelSource()
	c.mu.Lock()
	c.inflight[src] = struct{}{}
	c.mu.Unlock()
	return src.Token, func() {
		c.mu.Lock()
		delete(c.inflight, src)
		c.mu.Unlock()
	}
}

func (c *Client) snapshot() []*CancelSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*CancelSource, 0, len(c.inflight))
	for src := range c.inflight {
		out = append(out, src)
	}
	return out
}
