package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/http2"

	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/validation"
)

// Transport sends a normalized request and returns its response.
// Status classification is part of sending: a non-2xx response is returned
// as an *Error with the response attached.
type Transport interface {
	Send(ctx context.Context, d *Descriptor) (*Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, d *Descriptor) (*Response, error)

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, d *Descriptor) (*Response, error) {
	return f(ctx, d)
}

type authKey struct{}

// RestyTransport sends requests through a resty client.
type RestyTransport struct {
	client *resty.Client
	auth   *AuthConfig
}

// NewRestyTransport builds a resty client from cfg. cfg must have defaults applied.
func NewRestyTransport(cfg *Config) (*RestyTransport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, fmt.Errorf("httpclient: %w", err)
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}
	if cfg.ForceHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, fmt.Errorf("httpclient: configure http2: %w", err)
		}
	}

	client := resty.New().
		SetTransport(transport).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeaders(cfg.Headers).
		SetDebug(cfg.Debug).
		SetLogger(logger.Printf{L: cfg.Logger})
	if cfg.BaseURL != "" {
		client.SetBaseURL(cfg.BaseURL)
	}
	if cfg.Retry != nil {
		client.SetRetryCount(cfg.Retry.Count)
		if cfg.Retry.WaitTime > 0 {
			client.SetRetryWaitTime(cfg.Retry.WaitTime)
		}
		if cfg.Retry.MaxWaitTime > 0 {
			client.SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime)
		}
	}
	client.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
		if auth, ok := req.Context().Value(authKey{}).(*AuthConfig); ok {
			auth.apply(req)
		}
		return nil
	})

	return &RestyTransport{client: client, auth: cfg.Auth}, nil
}

// Client returns the underlying resty client.
func (t *RestyTransport) Client() *resty.Client {
	return t.client
}

// Close releases idle connections.
func (t *RestyTransport) Close() {
	t.client.GetClient().CloseIdleConnections()
}

// Send implements Transport.
func (t *RestyTransport) Send(ctx context.Context, d *Descriptor) (*Response, error) {
	if appErr := validation.New().
		HTTPToken("method", d.Method).
		URL("url", d.URL).
		HeaderFields("headers", d.Headers).
		Validate(); appErr != nil {
		return nil, NewRequestError(appErr)
	}
	if err := checkBody(d.Data); err != nil {
		return nil, NewRequestError(err)
	}
	query, err := encodeParams(d.Params)
	if err != nil {
		return nil, NewRequestError(err)
	}
	auth := d.Auth
	if auth == nil {
		auth = t.auth
	}
	auth, err = auth.resolve(time.Now())
	if err != nil {
		return nil, NewRequestError(err)
	}

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	if auth != nil {
		ctx = context.WithValue(ctx, authKey{}, auth)
	}

	req := t.client.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", d.ID).
		SetHeaders(d.Headers)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	if d.Data != nil {
		req.SetBody(d.Data)
	}

	resp, err := req.Execute(strings.ToUpper(d.Method), d.URL)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	result := &Response{
		StatusCode: resp.StatusCode(),
		Headers:    flattenHeaders(resp.Header()),
		Body:       resp.Body(),
		Request:    d,
		Duration:   resp.Time(),
	}
	if classErr := ClassifyStatusCode(result.StatusCode, result.Body); classErr != nil {
		classErr.Response = result
		return nil, classErr
	}
	return result, nil
}

func classifyTransportError(ctx context.Context, err error) *Error {
	if reason := cancelReason(ctx); reason != nil {
		return NewCancelError(reason)
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Code: ErrCodeCanceled, Message: err.Error(), Err: err}
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

// flattenHeaders keeps the first value of every response header.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
