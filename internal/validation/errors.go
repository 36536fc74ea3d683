package validation

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Severity groups findings by the layer that produced them.
type Severity int

const (
	SeverityStructural Severity = iota
	SeveritySemantic
	SeverityPolicy
)

func (s Severity) String() string {
	switch s {
	case SeverityStructural:
		return "structural"
	case SeveritySemantic:
		return "semantic"
	case SeverityPolicy:
		return "policy"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Level tells whether a finding blocks compilation.
type Level int

const (
	// LevelError blocks compilation.
	LevelError Level = iota
	// LevelWarning is reported but does not block compilation unless the
	// caller opts into strict mode.
	LevelWarning
)

func (l Level) String() string {
	if l == LevelWarning {
		return "warning"
	}
	return "error"
}

// Error is a single validation finding.
type Error struct {
	Field      *field.Path
	Severity   Severity
	Level      Level
	Message    string
	Suggestion string
}

// Error implements the error interface.
func (e Error) Error() string {
	var sb strings.Builder
	if e.Field != nil && e.Field.String() != "" {
		sb.WriteString(e.Field.String())
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// IsWarning reports whether the finding is non-blocking.
func (e Error) IsWarning() bool { return e.Level == LevelWarning }

// Result is the complete set of findings of a validation run.
// The zero value is an empty, valid result.
type Result struct {
	errs []Error
}

// NewResult wraps the given findings.
func NewResult(errs ...Error) Result {
	return Result{errs: append([]Error(nil), errs...)}
}

// All returns every finding in the order it was produced.
func (r Result) All() []Error {
	return append([]Error(nil), r.errs...)
}

// Errors returns the blocking findings.
func (r Result) Errors() []Error {
	return r.filter(LevelError)
}

// Warnings returns the non-blocking findings.
func (r Result) Warnings() []Error {
	return r.filter(LevelWarning)
}

// BySeverity returns all findings produced by one layer.
func (r Result) BySeverity(s Severity) []Error {
	var out []Error
	for _, e := range r.errs {
		if e.Severity == s {
			out = append(out, e)
		}
	}
	return out
}

// HasErrors reports whether any blocking finding exists.
func (r Result) HasErrors() bool {
	for _, e := range r.errs {
		if e.Level == LevelError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any non-blocking finding exists.
func (r Result) HasWarnings() bool {
	return len(r.Warnings()) > 0
}

// IsValid is the inverse of HasErrors.
func (r Result) IsValid() bool {
	return !r.HasErrors()
}

// Len returns the number of findings of both levels.
func (r Result) Len() int { return len(r.errs) }

// Merge returns a result holding the findings of r followed by other.
func (r Result) Merge(other Result) Result {
	out := make([]Error, 0, len(r.errs)+len(other.errs))
	out = append(out, r.errs...)
	out = append(out, other.errs...)
	return Result{errs: out}
}

// Err folds the blocking findings into one error, or returns nil.
// With strict set, warnings are folded in as well.
func (r Result) Err(strict bool) error {
	var errs []error
	for _, e := range r.errs {
		if e.Level == LevelError || strict {
			errs = append(errs, e)
		}
	}
	return errors.Join(errs...)
}

func (r Result) filter(l Level) []Error {
	var out []Error
	for _, e := range r.errs {
		if e.Level == l {
			out = append(out, e)
		}
	}
	return out
}
