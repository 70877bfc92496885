package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/gofetch/version"
)

type seen struct {
	Method  string
	Path    string
	Query   string
	Body    string
	Headers http.Header
}

// echoServer records the last request and answers 200 with {"ok":true}.
func echoServer(t *testing.T) (*httptest.Server, *atomic.Pointer[seen]) {
	t.Helper()
	var last atomic.Pointer[seen]
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		last.Store(&seen{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.RawQuery,
			Body:    string(body),
			Headers: r.Header.Clone(),
		})
		switch r.URL.Path {
		case "/missing":
			http.Error(w, `{"error":"missing"}`, http.StatusNotFound)
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func newClient(t *testing.T, cfg Config) *Client {
	t.Helper()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func TestClient_GetParamsInQuery(t *testing.T) {
	srv, last := echoServer(t)
	c := newClient(t, Config{BaseURL: srv.URL})

	resp, err := c.Get(context.Background(), "/items", map[string]any{"page": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := last.Load()
	if got.Method != http.MethodGet || got.Path != "/items" {
		t.Errorf("expected GET /items, got %s %s", got.Method, got.Path)
	}
	if got.Query != "page=1" {
		t.Errorf("expected query page=1, got %q", got.Query)
	}
	if got.Body != "" {
		t.Errorf("expected no body, got %q", got.Body)
	}
	if resp.StatusCode != 200 || !resp.IsSuccess() {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("expected echo body, got %s", resp.Body)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("expected flattened content type, got %v", resp.Headers)
	}
}

func TestClient_PostParamsInBodyWithHeaderOption(t *testing.T) {
	srv, last := echoServer(t)
	c := newClient(t, Config{BaseURL: srv.URL})

	_, err := c.Post(context.Background(), "/items", map[string]any{"a": 1}, Options{
		"headers": map[string]string{"X-Test": "1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := last.Load()
	if got.Method != http.MethodPost {
		t.Errorf("expected POST, got %s", got.Method)
	}
	if got.Query != "" {
		t.Errorf("expected empty query, got %q", got.Query)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(got.Body), &body); err != nil {
		t.Fatalf("expected JSON body, got %q", got.Body)
	}
	if body["a"] != float64(1) {
		t.Errorf("expected a=1, got %v", body)
	}
	if got.Headers.Get("X-Test") != "1" {
		t.Errorf("expected X-Test header, got %v", got.Headers)
	}
}

func TestClient_VerbsPlacement(t *testing.T) {
	srv, last := echoServer(t)
	c := newClient(t, Config{BaseURL: srv.URL})
	ctx := context.Background()
	params := map[string]string{"k": "v"}

	tests := []struct {
		name      string
		call      func() (*Response, error)
		method    string
		wantQuery bool
	}{
		{"delete", func() (*Response, error) { return c.Delete(ctx, "/items/1", params) }, "DELETE", true},
		{"fetch", func() (*Response, error) { return c.Fetch(ctx, "/items", params) }, "GET", true},
		{"put", func() (*Response, error) { return c.Put(ctx, "/items/1", params) }, "PUT", false},
		{"patch", func() (*Response, error) { return c.Request(ctx, "patch", "/items/1", params) }, "PATCH", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.call(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := last.Load()
			if got.Method != tt.method {
				t.Errorf("expected %s, got %s", tt.method, got.Method)
			}
			if tt.wantQuery && (got.Query != "k=v" || got.Body != "") {
				t.Errorf("expected query k=v and no body, got %q / %q", got.Query, got.Body)
			}
			if !tt.wantQuery && (got.Query != "" || !strings.Contains(got.Body, `"k":"v"`)) {
				t.Errorf("expected body with k, got %q / %q", got.Query, got.Body)
			}
		})
	}
}

func TestClient_OptionsOverrideAndDefaults(t *testing.T) {
	srv, last := echoServer(t)
	c := newClient(t, Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Client": "default"},
		Options: Options{"headers": map[string]string{"X-Default": "1"}},
	})

	_, err := c.Get(context.Background(), "/items", nil, Options{"url": "/other"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := last.Load()
	if got.Path != "/other" {
		t.Errorf("expected url override, got %s", got.Path)
	}
	if got.Headers.Get("X-Default") != "1" || got.Headers.Get("X-Client") != "default" {
		t.Errorf("expected default headers, got %v", got.Headers)
	}

	_, err = c.Get(context.Background(), "/items", nil, Options{"headers": map[string]string{"X-Call": "1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got = last.Load()
	if got.Headers.Get("X-Default") != "" {
		t.Error("call headers must replace the default header option")
	}
	if got.Headers.Get("X-Call") != "1" {
		t.Errorf("expected X-Call, got %v", got.Headers)
	}
}

func TestClient_RequestIDAndUserAgent(t *testing.T) {
	srv, last := echoServer(t)
	c := newClient(t, Config{BaseURL: srv.URL})

	resp, err := c.Get(context.Background(), "/", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := last.Load()
	if got.Headers.Get("X-Request-Id") != resp.Request.ID {
		t.Errorf("expected X-Request-Id %s, got %s", resp.Request.ID, got.Headers.Get("X-Request-Id"))
	}
	if got.Headers.Get("User-Agent") != version.UserAgent() {
		t.Errorf("expected user agent %s, got %s", version.UserAgent(), got.Headers.Get("User-Agent"))
	}
}

func TestClient_StatusErrorCarriesResponse(t *testing.T) {
	srv, _ := echoServer(t)
	c := newClient(t, Config{BaseURL: srv.URL})

	resp, err := c.Get(context.Background(), "/missing", nil)
	if resp != nil {
		t.Errorf("expected nil response, got %v", resp)
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if r := ResponseOf(err); r == nil || r.StatusCode != 404 || !strings.Contains(string(r.Body), "missing") {
		t.Errorf("expected attached 404 response, got %v", r)
	}
}

func TestClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := newClient(t, Config{BaseURL: addr})
	_, err := c.Get(context.Background(), "/", nil)
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestClient_TimeoutOption(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	c := newClient(t, Config{BaseURL: srv.URL})

	_, err := c.Get(context.Background(), "/", nil, Options{"timeout": "50ms"})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if IsCancel(err) {
		t.Error("timeout must not be reported as cancel")
	}
}

func TestClient_InvalidMethodIsRequestError(t *testing.T) {
	srv, last := echoServer(t)
	c := newClient(t, Config{BaseURL: srv.URL})

	_, err := c.Request(context.Background(), "BAD METHOD", "/", nil)
	if !IsRequestError(err) {
		t.Fatalf("expected request error, got %v", err)
	}
	if last.Load() != nil {
		t.Error("nothing should have been sent")
	}
}

func TestClient_Auth(t *testing.T) {
	srv, last := echoServer(t)
	c := newClient(t, Config{BaseURL: srv.URL, Auth: BearerAuth("client-token")})

	if _, err := c.Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := last.Load().Headers.Get("Authorization"); got != "Bearer client-token" {
		t.Errorf("expected client bearer, got %q", got)
	}

	if _, err := c.Get(context.Background(), "/", nil, Options{"auth": APIKeyAuthQuery("k1", "api_key")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := last.Load()
	if got.Headers.Get("Authorization") != "" {
		t.Error("request auth must replace client auth")
	}
	if got.Query != "api_key=k1" {
		t.Errorf("expected api key in query, got %q", got.Query)
	}
}

func TestClient_JWTAuth(t *testing.T) {
	srv, last := echoServer(t)
	c := newClient(t, Config{BaseURL: srv.URL, Auth: JWTAuth("s3cret", time.Minute, jwt.MapClaims{"sub": "gofetch"})})

	if _, err := c.Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header := last.Load().Headers.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		t.Fatalf("expected bearer header, got %q", header)
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return []byte("s3cret"), nil }); err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims["sub"] != "gofetch" {
		t.Errorf("expected sub gofetch, got %v", claims["sub"])
	}

	_, err := c.Get(context.Background(), "/", nil, Options{"auth": JWTAuth("", 0, nil)})
	if !IsRequestError(err) {
		t.Errorf("expected request error for empty secret, got %v", err)
	}
}

func TestClient_Unwrap(t *testing.T) {
	c := newClient(t, Config{Timeout: 3 * time.Second})
	if c.Unwrap() == nil {
		t.Fatal("expected resty client")
	}
	if c.Unwrap().GetClient().Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %s", c.Unwrap().GetClient().Timeout)
	}

	custom := newClient(t, Config{Transport: TransportFunc(func(context.Context, *Descriptor) (*Response, error) {
		return &Response{StatusCode: 200}, nil
	})})
	if custom.Unwrap() != nil {
		t.Error("expected nil resty client with custom transport")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad scope", Config{CancelScope: "everything"}},
		{"bad base url", Config{BaseURL: "not a url"}},
		{"negative retry", Config{Retry: &RetryConfig{Count: -1}}},
		{"bad tls version", Config{TLS: &TLSConfig{MinVersion: "9.9"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Timeout != defaultTimeout {
		t.Errorf("expected %s, got %s", defaultTimeout, cfg.Timeout)
	}
	if cfg.Name != "httpclient" {
		t.Errorf("expected httpclient, got %s", cfg.Name)
	}
	if cfg.CancelScope != CancelScopeRequest {
		t.Errorf("expected request scope, got %s", cfg.CancelScope)
	}
	if cfg.UserAgent != version.UserAgent() {
		t.Errorf("expected %s, got %s", version.UserAgent(), cfg.UserAgent)
	}
	if cfg.Logger == nil {
		t.Error("expected default logger")
	}
}

func TestClient_CustomTransportSeesDescriptor(t *testing.T) {
	var got *Descriptor
	c := newClient(t, Config{Transport: TransportFunc(func(_ context.Context, d *Descriptor) (*Response, error) {
		got = d
		return &Response{StatusCode: 201, Request: d}, nil
	})})

	resp, err := c.Post(context.Background(), "/things", "raw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if got.Data != "raw" || got.Cancel == nil {
		t.Errorf("expected body and token on descriptor, got %+v", got)
	}
}

func TestClient_Concurrent(t *testing.T) {
	srv, _ := echoServer(t)
	c := newClient(t, Config{BaseURL: srv.URL})

	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() {
			_, err := c.Get(context.Background(), "/", nil)
			errs <- err
		}()
	}
	for i := 0; i < 20; i++ {
		if err := <-errs; err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if n := len(c.snapshot()); n != 0 {
		t.Errorf("expected no in-flight sources, got %d", n)
	}
}

var errHook = errors.New("hook failed")
