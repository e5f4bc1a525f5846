// Package diagnostic collects validation findings for definition files.
package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostics holds the findings of one validation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity SeverityEnum
	// Code identifies the kind of finding, e.g. "unknown_parent".
	Code    string
	Message string
	// Entity names the entity definition the finding belongs to, if any.
	Entity string
	// Path locates the offending value, e.g. "prototype.greet".
	Path string
	// Suggestions lists close matches for unknown names.
	Suggestions []string
}

// SeverityEnum orders findings.
type SeverityEnum int

const (
	SeverityWarning SeverityEnum = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s SeverityEnum) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError records an error finding and returns it for further decoration.
func (d *Diagnostics) AddError(code, message, entity, path string) *Diagnostic {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Entity:   entity,
		Path:     path,
	})

	return &d.Errors[len(d.Errors)-1]
}

// AddWarning records a warning finding and returns it for further decoration.
func (d *Diagnostics) AddWarning(code, message, entity, path string) *Diagnostic {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Entity:   entity,
		Path:     path,
	})

	return &d.Warnings[len(d.Warnings)-1]
}

// HasErrors reports whether any error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends the findings of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// All returns errors followed by warnings.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings))
	all = append(all, d.Errors...)

	return append(all, d.Warnings...)
}

// Err joins the error findings into one error, or returns nil.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, errors.New(e.String()))
	}

	return errors.Join(errs...)
}

// String formats the finding as "[entity] path: [code] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Entity != "" {
		prefix = append(prefix, "["+d.Entity+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
