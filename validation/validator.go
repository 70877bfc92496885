package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"

	"github.com/kbukum/gofetch/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}
	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// HTTPToken checks that value is a valid RFC 7230 token, as methods must be.
func (v *Validator) HTTPToken(field, value string) *Validator {
	if value == "" {
		v.AddError(field, "is required")
		return v
	}
	if !strings.ContainsFunc(value, func(r rune) bool { return !httpguts.IsTokenRune(r) }) {
		return v
	}
	v.AddError(field, fmt.Sprintf("%q is not a valid token", value))
	return v
}

// URL checks that value parses as a URL reference.
func (v *Validator) URL(field, value string) *Validator {
	if _, err := url.Parse(value); err != nil {
		v.AddError(field, "must be a valid URL")
	}
	return v
}

// HeaderFields checks header names and values.
func (v *Validator) HeaderFields(field string, headers map[string]string) *Validator {
	for name, value := range headers {
		if !httpguts.ValidHeaderFieldName(name) {
			v.AddError(field, fmt.Sprintf("%q is not a valid header name", name))
			continue
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			v.AddError(field, fmt.Sprintf("value of %q is not a valid header value", name))
		}
	}
	return v
}

// OptionalUUID checks if a non-empty string is a valid UUID.
func (v *Validator) OptionalUUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		v.AddError(field, "must be a valid UUID")
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}
