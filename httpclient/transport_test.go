package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/gofetch/config"
	"github.com/kbukum/gofetch/security/tlstest"
)

func TestRestyTransport_TLSWithServerCA(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newClient(t, Config{BaseURL: srv.URL, TLS: &TLSConfig{CAFile: tlstest.WriteServerCA(t, srv)}})
	if _, err := c.Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	untrusted := newClient(t, Config{BaseURL: srv.URL})
	if _, err := untrusted.Get(context.Background(), "/", nil); !IsConnection(err) {
		t.Errorf("expected connection error without CA, got %v", err)
	}
}

func TestRestyTransport_InvalidCA(t *testing.T) {
	_, err := New(Config{TLS: &TLSConfig{CAFile: tlstest.WriteInvalidPEM(t)}})
	if err == nil {
		t.Fatal("expected error for invalid CA")
	}
}

func TestRestyTransport_ForceHTTP2(t *testing.T) {
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Proto", r.Proto)
	}))
	srv.EnableHTTP2 = true
	srv.StartTLS()
	defer srv.Close()

	c := newClient(t, Config{
		BaseURL:    srv.URL,
		ForceHTTP2: true,
		TLS:        &TLSConfig{CAFile: tlstest.WriteServerCA(t, srv)},
	})
	resp, err := c.Get(context.Background(), "/", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Headers["X-Proto"] != "HTTP/2.0" {
		t.Errorf("expected HTTP/2.0, got %q", resp.Headers["X-Proto"])
	}
}

func TestRestyTransport_Retry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Error("expected hijacker")
				return
			}
			conn, _, _ := hj.Hijack()
			_ = conn.Close()
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newClient(t, Config{
		BaseURL: srv.URL,
		Retry:   &RetryConfig{Count: 2, WaitTime: time.Millisecond, MaxWaitTime: 5 * time.Millisecond},
	})
	if _, err := c.Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestRestyTransport_StringAndBytesBody(t *testing.T) {
	srv, last := echoServer(t)
	c := newClient(t, Config{BaseURL: srv.URL})

	if _, err := c.Post(context.Background(), "/", "plain text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := last.Load().Body; got != "plain text" {
		t.Errorf("expected plain text, got %q", got)
	}
	if _, err := c.Put(context.Background(), "/", []byte{'b'}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := last.Load().Body; got != "b" {
		t.Errorf("expected b, got %q", got)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.yml")
	content := `
http_client:
  name: orders
  base_url: http://orders.internal
  timeout: 5s
  cancel_scope: global
  headers:
    x-team: checkout
  retry:
    count: 3
    wait_time: 100ms
  tls:
    min_version: "1.3"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig("orders", config.WithConfigFile(path), config.WithEnvFile(filepath.Join(dir, ".env.none")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "orders" || cfg.BaseURL != "http://orders.internal" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.Timeout)
	}
	if cfg.CancelScope != CancelScopeGlobal {
		t.Errorf("expected global scope, got %s", cfg.CancelScope)
	}
	if cfg.Headers["x-team"] != "checkout" {
		t.Errorf("expected header, got %v", cfg.Headers)
	}
	if cfg.Retry == nil || cfg.Retry.Count != 3 || cfg.Retry.WaitTime != 100*time.Millisecond {
		t.Errorf("unexpected retry: %+v", cfg.Retry)
	}
	if cfg.TLS == nil || cfg.TLS.MinVersion != "1.3" {
		t.Errorf("unexpected tls: %+v", cfg.TLS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate, got %v", err)
	}
}
