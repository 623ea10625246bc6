package validation

import (
	"fmt"
	"strings"
)

// ValidationErrors collects every problem found while checking a value so they
// can be reported together instead of one at a time.
type ValidationErrors struct {
	errors []string
}

func (v *ValidationErrors) AddError(path, message string) {
	v.errors = append(v.errors, fmt.Sprintf("%s: %s", path, message))
}

// AddOneOf records an error when value is not one of allowed.
func (v *ValidationErrors) AddOneOf(path, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(path, fmt.Sprintf("%q is invalid, must be one of [%s]", value, strings.Join(allowed, ", ")))
}

// AddMin records an error when value is below min.
func (v *ValidationErrors) AddMin(path string, value, min int) {
	if value < min {
		v.AddError(path, fmt.Sprintf("%d is invalid, must be at least %d", value, min))
	}
}

// AddRequired records an error when value is empty or only whitespace.
func (v *ValidationErrors) AddRequired(path, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(path, "cannot be empty")
	}
}

func (v *ValidationErrors) Error() string {
	if len(v.errors) == 0 {
		return ""
	}
	return strings.Join(v.errors, "\n")
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.errors) > 0
}

// OrNil returns v as an error if it holds anything, nil otherwise.
// Returning a nil *ValidationErrors through the error interface would not compare equal to nil.
func (v *ValidationErrors) OrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}
