package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"

	"github.com/kbukum/gofetch/httpclient"
)

// New creates an httpclient.Client that asks for JSON unless cfg says otherwise.
func New(cfg httpclient.Config) (*httpclient.Client, error) {
	headers := maps.Clone(cfg.Headers)
	if headers == nil {
		headers = make(map[string]string)
	}
	if _, ok := headers["Accept"]; !ok {
		headers["Accept"] = "application/json"
	}
	cfg.Headers = headers
	return httpclient.New(cfg)
}

// Get performs a GET request and decodes the payload into T.
func Get[T any](ctx context.Context, c *httpclient.Client, url string, params any, options ...httpclient.Options) (*T, error) {
	return Do[T](ctx, c, http.MethodGet, url, params, options...)
}

// Post performs a POST request with params as the body and decodes the payload into T.
func Post[T any](ctx context.Context, c *httpclient.Client, url string, params any, options ...httpclient.Options) (*T, error) {
	return Do[T](ctx, c, http.MethodPost, url, params, options...)
}

// Put performs a PUT request with params as the body and decodes the payload into T.
func Put[T any](ctx context.Context, c *httpclient.Client, url string, params any, options ...httpclient.Options) (*T, error) {
	return Do[T](ctx, c, http.MethodPut, url, params, options...)
}

// Delete performs a DELETE request and decodes the payload into T.
func Delete[T any](ctx context.Context, c *httpclient.Client, url string, params any, options ...httpclient.Options) (*T, error) {
	return Do[T](ctx, c, http.MethodDelete, url, params, options...)
}

// Fetch is an alias of Get.
func Fetch[T any](ctx context.Context, c *httpclient.Client, url string, params any, options ...httpclient.Options) (*T, error) {
	return Get[T](ctx, c, url, params, options...)
}

// Do sends a request with any method and decodes the payload into T.
func Do[T any](ctx context.Context, c *httpclient.Client, method, url string, params any, options ...httpclient.Options) (*T, error) {
	resp, err := c.Request(ctx, method, url, params, options...)
	if err != nil {
		return nil, err
	}
	return Decode[T](resp)
}

// Decode returns the payload of resp as T.
//
// A nil response, a 204, or an empty body yield (nil, nil). A Data value
// already set by a hook is returned as is when it is a T or *T.
func Decode[T any](resp *httpclient.Response) (*T, error) {
	if resp == nil {
		return nil, nil
	}
	switch data := resp.Data.(type) {
	case T:
		return &data, nil
	case *T:
		return data, nil
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, nil
	}

	out := new(T)
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return nil, fmt.Errorf("httpclient/rest: decode response: %w", err)
	}
	return out, nil
}
