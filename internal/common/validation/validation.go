// internal/common/validation/validation.go
package validation

import (
	"fmt"
	"strings"
)

// ValidationResult collects the field errors for one request.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Collector accumulates validation errors across fields.
type Collector struct {
	errors []ValidationError
}

func NewCollector() *Collector {
	return &Collector{}
}

// Add records a field error.
func (c *Collector) Add(field, message, code string) {
	c.errors = append(c.errors, ValidationError{
		Field:   field,
		Message: message,
		Code:    code,
	})
}

// RequireNonEmpty records an error when the trimmed value is empty.
func (c *Collector) RequireNonEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.Add(field, "required field missing or empty", "REQUIRED_FIELD_MISSING")
	}
}

// OneOf records an error when value is not in allowed. Empty values pass;
// pair with RequireNonEmpty when the field is mandatory.
func (c *Collector) OneOf(field, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.Add(field,
		fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		"INVALID_ENUM_VALUE",
	)
}

// Result returns the accumulated outcome.
func (c *Collector) Result() *ValidationResult {
	return &ValidationResult{
		Valid:  len(c.errors) == 0,
		Errors: c.errors,
	}
}

// Details renders the errors as strings for response payloads.
func (r *ValidationResult) Details() []string {
	details := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return details
}

// ParseCSVSet splits a comma-separated parameter into a trimmed, de-duplicated
// list. Empty input yields an empty list (meaning: no constraint).
func ParseCSVSet(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		v := strings.TrimSpace(part)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
