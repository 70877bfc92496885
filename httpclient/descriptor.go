package httpclient

import (
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/gofetch/util"
)

// queryMethods carry their params in the URL query; every other method sends a body.
var queryMethods = []string{"GET", "DELETE"}

// Descriptor is the normalized form of one outgoing request.
type Descriptor struct {
	// ID identifies the request. Sent as X-Request-Id.
	ID string `mapstructure:"id"`
	// Method is the HTTP method as given by the caller.
	Method string `mapstructure:"method"`
	// URL is absolute or relative to the client's BaseURL.
	URL string `mapstructure:"url"`
	// Params is the query payload: url.Values, a string-keyed map, a raw query string, or a struct.
	Params any `mapstructure:"params"`
	// Data is the body payload: io.Reader, []byte, string, or a value encoded as JSON.
	Data any `mapstructure:"data"`
	// Headers are sent in addition to the client defaults. Never nil after Normalize.
	Headers map[string]string `mapstructure:"headers"`
	// Timeout bounds this request only. Zero keeps the client timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig `mapstructure:"auth"`

	// Options holds the overrides as the caller passed them.
	Options Options `mapstructure:"-"`
	// Extra holds option keys that match no field. It is for hooks and
	// middleware; the transport does not send it.
	Extra map[string]any `mapstructure:"-"`
	// Cancel is the token that aborts this request.
	Cancel *CancelToken `mapstructure:"-"`
}

// Normalize builds the descriptor for one call.
//
// GET and DELETE (case-insensitive) put params in the query; other methods
// send them as the body. Options are applied last and replace whole fields.
// Nothing else is checked here: a malformed URL or method is rejected by the transport.
func Normalize(method, url string, params any, options Options, token *CancelToken) (*Descriptor, error) {
	d := &Descriptor{
		ID:      uuid.NewString(),
		Method:  method,
		URL:     url,
		Options: options,
		Cancel:  token,
	}
	if util.Has(queryMethods, strings.ToUpper(method), "") {
		d.Params = params
	} else {
		d.Data = params
	}
	if err := options.apply(d); err != nil {
		return nil, NewRequestError(err)
	}
	d.own()
	return d, nil
}

// own detaches d from maps and configs shared with the option bags, so hooks
// may edit Headers and Auth without touching the client configuration.
func (d *Descriptor) own() {
	d.Headers = maps.Clone(d.Headers)
	if d.Headers == nil {
		d.Headers = make(map[string]string)
	}
	if d.Auth != nil {
		auth := *d.Auth
		auth.Claims = maps.Clone(d.Auth.Claims)
		d.Auth = &auth
	}
}

// Clone returns a copy of d with its own header map.
func (d *Descriptor) Clone() *Descriptor {
	out := *d
	out.Headers = maps.Clone(d.Headers)
	out.Extra = maps.Clone(d.Extra)
	return &out
}
