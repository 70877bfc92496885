package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component represents a lifecycle-managed part of an application.
type Component interface {
	// Name returns the unique name of the component.
	Name() string

	// Start initializes and starts the component.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the component and releases resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description is a one-line summary a component reports about itself.
type Description struct {
	// Name is the display name. If empty, the component's Name() is used.
	Name string
	// Type categorizes the component, e.g. "http-client".
	Type string
	// Details is a short configuration summary, e.g. "http://api:8080 timeout=30s".
	Details string
}

// Describable is optionally implemented by Components to describe themselves.
type Describable interface {
	Describe() Description
}

// Summarize returns the description of c, falling back to its name.
func Summarize(c Component) Description {
	d := Description{Name: c.Name()}
	if describable, ok := c.(Describable); ok {
		d = describable.Describe()
		if d.Name == "" {
			d.Name = c.Name()
		}
	}
	return d
}
