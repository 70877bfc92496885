// Package ginhost installs httpclient bindings into a gin engine.
//
// The prototype namespace becomes per-request context values, set by a
// middleware on every *gin.Context. The global namespace becomes template
// functions, with the leading "$" dropped:
//
//	router := gin.New()
//	host := ginhost.New(router)
//	client.Install(host) // gin reports major version 1: prototype namespace
//
//	router.GET("/proxy", func(c *gin.Context) {
//	    get := c.MustGet("$get").(httpclient.VerbFunc)
//	    resp, err := get(c.Request.Context(), "/upstream", nil)
//	    ...
//	})
//
// Install must run before routes are registered, as gin binds middleware
// to routes at registration time.
package ginhost

import (
	"html/template"
	"maps"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/gofetch/httpclient"
)

// Host adapts a gin engine to httpclient.Host.
type Host struct {
	engine *gin.Engine

	mu        sync.RWMutex
	values    map[string]any
	funcs     template.FuncMap
	installed bool
}

var _ httpclient.Host = (*Host)(nil)

// New creates a host for engine.
func New(engine *gin.Engine) *Host {
	return &Host{
		engine: engine,
		values: make(map[string]any),
		funcs:  make(template.FuncMap),
	}
}

// MajorVersion reports gin's major version.
func (h *Host) MajorVersion() int {
	major, _, _ := strings.Cut(strings.TrimPrefix(gin.Version, "v"), ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return 0
	}
	return n
}

// Register implements httpclient.Host.
func (h *Host) Register(ns httpclient.Namespace, name string, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ns == httpclient.NamespaceGlobal {
		h.funcs[strings.TrimPrefix(name, "$")] = templateFunc(value)
		funcs := maps.Clone(h.engine.FuncMap)
		if funcs == nil {
			funcs = make(template.FuncMap)
		}
		maps.Copy(funcs, h.funcs)
		h.engine.SetFuncMap(funcs)
		return
	}

	h.values[name] = value
	if !h.installed {
		h.installed = true
		h.engine.Use(h.middleware)
	}
}

// Values returns a copy of the prototype bindings.
func (h *Host) Values() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.values)
}

func (h *Host) middleware(c *gin.Context) {
	h.mu.RLock()
	for name, value := range h.values {
		c.Set(name, value)
	}
	h.mu.RUnlock()
	c.Next()
}

// templateFunc wraps non-function values so templates can call them.
func templateFunc(value any) any {
	if _, ok := value.(httpclient.VerbFunc); ok {
		return value
	}
	return func() any { return value }
}
