package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

type clientFile struct {
	HTTPClient struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
		Debug   bool          `mapstructure:"debug"`
	} `mapstructure:"http_client"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
http_client:
  base_url: http://localhost:8080
  timeout: 5s
`)

	var cfg clientFile
	if err := LoadConfig("orders", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, ".env.none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.HTTPClient.BaseURL != "http://localhost:8080" {
		t.Errorf("expected base_url http://localhost:8080, got %q", cfg.HTTPClient.BaseURL)
	}
	if cfg.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.HTTPClient.Timeout)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
http_client:
  base_url: http://localhost:8080
  timeout: 5s
`)
	t.Setenv("HTTP_CLIENT_TIMEOUT", "250ms")

	var cfg clientFile
	if err := LoadConfig("orders", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, ".env.none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.HTTPClient.Timeout != 250*time.Millisecond {
		t.Errorf("expected timeout 250ms from env, got %v", cfg.HTTPClient.Timeout)
	}
	if cfg.HTTPClient.BaseURL != "http://localhost:8080" {
		t.Errorf("expected base_url from file, got %q", cfg.HTTPClient.BaseURL)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "HTTP_CLIENT_DEBUG=true\n")
	defer os.Unsetenv("HTTP_CLIENT_DEBUG")

	var cfg clientFile
	if err := LoadConfig("orders", &cfg, WithConfigFile(filepath.Join(dir, "none.yml")), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.HTTPClient.Debug {
		t.Error("expected debug=true from .env file")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg clientFile
	err := LoadConfig("nonexistent", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		filepath.Join("config", "orders.yml"): true,
		filepath.Join("config", "config.yml"): true,
		".env":                                true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("orders", LoaderConfig{})
	if files.ConfigFile != filepath.Join("config", "orders.yml") {
		t.Errorf("expected config/orders.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != ".env" {
		t.Errorf("expected .env, got %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("orders", LoaderConfig{ConfigFile: "x.yml", EnvFile: "y.env"})
	if explicit.ConfigFile != "x.yml" || explicit.EnvFile != "y.env" {
		t.Errorf("expected explicit paths, got %+v", explicit)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("HTTP_CLIENT_TIMEOUT")
	sort.Strings(got)
	want := []string{"http.client.timeout", "http.client_timeout", "http_client.timeout", "http_client_timeout"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %q, got %q", want[i], got[i])
		}
	}

	if got := envKeyVariants("PATH"); len(got) != 1 || got[0] != "path" {
		t.Errorf("expected [path], got %v", got)
	}
	if got := envKeyVariants("A_B_C_D_E_F_G_H"); len(got) != 1 {
		t.Errorf("expected a single variant past the split limit, got %d", len(got))
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem != fs {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}
