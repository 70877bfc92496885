package httpclient

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestBearerAuth(t *testing.T) {
	auth := BearerAuth("my-token")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer my-token" {
		t.Errorf("got %q, want %q", got, "Bearer my-token")
	}
}

func TestBasicAuth(t *testing.T) {
	auth := BasicAuth("user", "pass")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	u, p, ok := req.BasicAuth()
	if !ok || u != "user" || p != "pass" {
		t.Errorf("basic auth not set correctly: user=%q pass=%q ok=%v", u, p, ok)
	}
}

func TestAPIKeyAuth_Header(t *testing.T) {
	auth := APIKeyAuth("secret-key")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("X-API-Key"); got != "secret-key" {
		t.Errorf("got %q, want %q", got, "secret-key")
	}
}

func TestAPIKeyAuthHeader_CustomName(t *testing.T) {
	auth := APIKeyAuthHeader("secret-key", "X-Custom-Key")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("X-Custom-Key"); got != "secret-key" {
		t.Errorf("got %q, want %q", got, "secret-key")
	}
}

func TestAPIKeyAuthQuery(t *testing.T) {
	auth := APIKeyAuthQuery("secret-key", "api_key")
	req, _ := http.NewRequest("GET", "http://example.com/path", nil)
	auth.apply(req)
	if got := req.URL.Query().Get("api_key"); got != "secret-key" {
		t.Errorf("got %q, want %q", got, "secret-key")
	}
}

func TestCustomAuth(t *testing.T) {
	auth := CustomAuth(func(req *http.Request) {
		req.Header.Set("X-Custom", "value")
	})
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("X-Custom"); got != "value" {
		t.Errorf("got %q, want %q", got, "value")
	}
}

func TestNilAuth(t *testing.T) {
	var auth *AuthConfig
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req) // should not panic
}

func TestAuthNone(t *testing.T) {
	auth := &AuthConfig{Type: AuthNone}
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req) // should not modify request
	if req.Header.Get("Authorization") != "" {
		t.Error("AuthNone should not set Authorization header")
	}
}

func TestJWTAuth_ResolvesToBearer(t *testing.T) {
	auth := JWTAuth("s3cret", time.Minute, jwt.MapClaims{"sub": "svc-a"})
	now := time.Now()

	resolved, err := auth.resolve(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Type != AuthBearer {
		t.Fatalf("expected bearer auth, got %v", resolved.Type)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resolved.Token, claims, func(*jwt.Token) (any, error) {
		return []byte("s3cret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims["sub"] != "svc-a" {
		t.Errorf("expected sub svc-a, got %v", claims["sub"])
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("expected exp claim, got %v (%v)", exp, err)
	}
	if exp.Unix() != now.Add(time.Minute).Unix() {
		t.Errorf("expected exp %d, got %d", now.Add(time.Minute).Unix(), exp.Unix())
	}
}

func TestJWTAuth_FreshTokenPerCall(t *testing.T) {
	auth := JWTAuth("s3cret", 0, nil)
	a, err := auth.resolve(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := auth.resolve(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Token == b.Token {
		t.Error("expected distinct tokens per call")
	}
	if auth.Claims != nil {
		t.Error("resolve must not mutate the configured claims")
	}
}

func TestJWTAuth_EmptySecret(t *testing.T) {
	_, err := JWTAuth("", time.Minute, nil).resolve(time.Now())
	if err == nil || !strings.Contains(err.Error(), "secret") {
		t.Errorf("expected secret error, got %v", err)
	}
}

func TestResolve_NonJWTUnchanged(t *testing.T) {
	auth := BasicAuth("u", "p")
	got, err := auth.resolve(time.Now())
	if err != nil || got != auth {
		t.Errorf("expected same config back, got %v (%v)", got, err)
	}
}
