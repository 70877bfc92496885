package httpclient

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/gofetch/component"
)

// Component wraps a Client with lifecycle management.
type Component struct {
	client  *Client
	config  Config
	stopped atomic.Bool
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new HTTP client component.
// The client is created lazily in Start().
func NewComponent(cfg Config) *Component {
	return &Component{config: cfg}
}

// Name returns the component name.
func (c *Component) Name() string {
	if c.config.Name == "" {
		return defaultName
	}
	return c.config.Name
}

// Start creates the client.
func (c *Component) Start(_ context.Context) error {
	client, err := New(c.config)
	if err != nil {
		return err
	}
	c.client = client
	c.stopped.Store(false)
	return nil
}

// Stop cancels in-flight requests and releases connections.
func (c *Component) Stop(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	c.stopped.Store(true)
	return c.client.Close(ctx)
}

// Health reports healthy between Start and Stop.
func (c *Component) Health(_ context.Context) component.Health {
	status := component.StatusHealthy
	msg := ""
	switch {
	case c.client == nil:
		status, msg = component.StatusUnhealthy, "not started"
	case c.stopped.Load():
		status, msg = component.StatusUnhealthy, "stopped"
	}
	return component.Health{
		Name:    c.Name(),
		Status:  status,
		Message: msg,
	}
}

// Describe returns component description for the bootstrap summary.
func (c *Component) Describe() component.Description {
	cfg := c.config
	if c.client != nil {
		cfg = c.client.Config()
	}
	return component.Description{
		Name:    c.Name(),
		Type:    "http-client",
		Details: fmt.Sprintf("%s timeout=%s scope=%s", cfg.BaseURL, cfg.Timeout, cfg.CancelScope),
	}
}

// Client returns the underlying client. Must be called after Start().
func (c *Component) Client() *Client {
	return c.client
}
