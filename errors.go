package vscroll

import "fmt"

// ConfigurationError reports a structurally invalid controller
// configuration. It is the only error the package surfaces, and only at
// construction time; steady-state operations clamp bad inputs instead of
// failing.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("vscroll: invalid configuration: %s: %s", e.Field, e.Reason)
}

func configErr(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}
