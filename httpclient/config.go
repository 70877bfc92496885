package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/gofetch/config"
	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/security"
	"github.com/kbukum/gofetch/validation"
	"github.com/kbukum/gofetch/version"
)

const (
	defaultTimeout = 30 * time.Second
	defaultName    = "httpclient"
)

// CancelScope selects which requests Client.Cancel reaches.
type CancelScope string

const (
	// CancelScopeRequest gives every request its own token. Cancel reaches this client's in-flight requests.
	CancelScopeRequest CancelScope = "request"
	// CancelScopeGlobal shares one process-wide token. Cancel reaches every global-scope client
	// and stays in effect until RenewGlobalCancel.
	CancelScopeGlobal CancelScope = "global"
)

// TLSConfig is an alias for the shared security TLS configuration.
type TLSConfig = security.TLSConfig

// RetryConfig is handed to resty's retry loop.
type RetryConfig struct {
	Count       int           `yaml:"count" mapstructure:"count" validate:"gte=0"`
	WaitTime    time.Duration `yaml:"wait_time" mapstructure:"wait_time"`
	MaxWaitTime time.Duration `yaml:"max_wait_time" mapstructure:"max_wait_time"`
}

// Config configures the HTTP client.
type Config struct {
	// Name identifies the client in logs and metrics. Defaults to "httpclient".
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to relative request URLs.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent defaults to "gofetch/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	Debug      bool `yaml:"debug" mapstructure:"debug"`
	ForceHTTP2 bool `yaml:"force_http2" mapstructure:"force_http2"`

	// CancelScope is "request" (default) or "global".
	CancelScope CancelScope `yaml:"cancel_scope" mapstructure:"cancel_scope" validate:"omitempty,oneof=request global"`

	// Retry is passed through to resty. Nil disables retry.
	Retry *RetryConfig `yaml:"retry" mapstructure:"retry"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Options is the default override bag, merged under per-call options.
	Options Options `yaml:"options" mapstructure:"options"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-" validate:"-"`

	Logger     *logger.Logger `yaml:"-" mapstructure:"-" validate:"-"`
	Middleware []Middleware   `yaml:"-" mapstructure:"-" validate:"-"`

	// Transport replaces the resty transport, mostly for tests.
	Transport Transport `yaml:"-" mapstructure:"-" validate:"-"`

	BeforeRequest  BeforeRequestHook  `yaml:"-" mapstructure:"-" validate:"-"`
	RequestError   RequestErrorHook   `yaml:"-" mapstructure:"-" validate:"-"`
	BeforeResponse BeforeResponseHook `yaml:"-" mapstructure:"-" validate:"-"`
	ResponseError  ResponseErrorHook  `yaml:"-" mapstructure:"-" validate:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
	if c.CancelScope == "" {
		c.CancelScope = CancelScopeRequest
	}
	if c.Logger == nil {
		c.Logger = logger.Get(defaultName)
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return fmt.Errorf("httpclient: %w", err)
		}
	}
	return nil
}

// LoadConfig reads the http_client section of the named service configuration.
//
//	# api.yml
//	http_client:
//	  base_url: https://api.example.com
//	  timeout: 5s
func LoadConfig(service string, opts ...config.LoaderOption) (Config, error) {
	var file struct {
		HTTPClient Config `mapstructure:"http_client"`
	}
	if err := config.LoadConfig(service, &file, opts...); err != nil {
		return Config{}, err
	}
	return file.HTTPClient, nil
}
