package httpclient

import (
	"context"
	"slices"
	"sync"
)

// Binding names registered by Install.
const (
	BindingGet      = "$get"
	BindingPost     = "$post"
	BindingPut      = "$put"
	BindingDelete   = "$delete"
	BindingFetch    = "$fetch"
	BindingInstance = "$fetchInstance"
)

// VerbFunc is a verb bound to a client.
type VerbFunc func(ctx context.Context, url string, params any, options ...Options) (*Response, error)

// Namespace is where a host stores bindings.
type Namespace string

const (
	// NamespaceGlobal is shared by everything the host renders or runs.
	NamespaceGlobal Namespace = "global"
	// NamespacePrototype is inherited by every instance the host creates.
	NamespacePrototype Namespace = "prototype"
)

// Host receives bindings during Install.
// A host may also implement MajorVersion() int to report its version.
type Host interface {
	Register(ns Namespace, name string, value any)
}

type versioned interface {
	MajorVersion() int
}

// InstallOptions configures Install.
type InstallOptions struct {
	// Version is the host's major version. Zero defers to the host, then to 2.
	Version int
}

const defaultHostVersion = 2

// Bindings returns the verbs bound to c and the client itself, keyed by binding name.
func (c *Client) Bindings() map[string]any {
	return map[string]any{
		BindingGet:      VerbFunc(c.Get),
		BindingPost:     VerbFunc(c.Post),
		BindingPut:      VerbFunc(c.Put),
		BindingDelete:   VerbFunc(c.Delete),
		BindingFetch:    VerbFunc(c.Fetch),
		BindingInstance: c,
	}
}

// Install registers every binding on host. Hosts of major version 3 and up
// get them in the global namespace, older hosts in the prototype namespace.
func (c *Client) Install(host Host, opts ...InstallOptions) {
	version := defaultHostVersion
	if v, ok := host.(versioned); ok {
		version = v.MajorVersion()
	}
	if len(opts) > 0 && opts[0].Version != 0 {
		version = opts[0].Version
	}

	ns := NamespacePrototype
	if version >= 3 {
		ns = NamespaceGlobal
	}

	bindings := c.Bindings()
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		host.Register(ns, name, bindings[name])
	}
}

// MapHost is a Host backed by two plain maps.
type MapHost struct {
	mu               sync.RWMutex
	Version          int
	GlobalProperties map[string]any
	Prototype        map[string]any
}

// NewMapHost creates an empty host reporting the given major version.
func NewMapHost(version int) *MapHost {
	return &MapHost{
		Version:          version,
		GlobalProperties: make(map[string]any),
		Prototype:        make(map[string]any),
	}
}

// MajorVersion implements the optional version report.
func (h *MapHost) MajorVersion() int {
	if h.Version == 0 {
		return defaultHostVersion
	}
	return h.Version
}

// Register implements Host.
func (h *MapHost) Register(ns Namespace, name string, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	target := &h.Prototype
	if ns == NamespaceGlobal {
		target = &h.GlobalProperties
	}
	if *target == nil {
		*target = make(map[string]any)
	}
	(*target)[name] = value
}

// Lookup returns a registered value.
func (h *MapHost) Lookup(ns Namespace, name string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	m := h.Prototype
	if ns == NamespaceGlobal {
		m = h.GlobalProperties
	}
	v, ok := m[name]
	return v, ok
}
