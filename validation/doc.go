// Package validation checks gofetch configuration and outgoing requests.
//
// Struct tag validation covers configuration types:
//
//	type Config struct {
//	    BaseURL string `validate:"omitempty,url"`
//	}
//	err := validation.Validate(cfg)
//
// The Validator builder covers values only known at request time:
//
//	v := validation.New().HTTPToken("method", d.Method).URL("url", d.URL)
//	if err := v.Validate(); err != nil { ... }
package validation
