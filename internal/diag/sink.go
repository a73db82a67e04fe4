// Package diag implements the error/warning accumulation sink shared by
// every ingest and build phase of the pedigree engine.
package diag

import "fmt"

// Severity classifies a diagnostic raised during a phase.
type Severity string

const (
	// SeverityWarning is non-fatal: synthesized parents, coerced sex, and
	// similar recoverable conditions.
	SeverityWarning Severity = "warning"
	// SeverityError is a record-level validation failure. Errors are
	// accumulated and only abort the run at the next phase boundary.
	SeverityError Severity = "error"
	// SeverityFatal aborts the run immediately: bad config, structural
	// violations, out-of-memory.
	SeverityFatal Severity = "fatal"
)

// Diagnostic is a single warning/error/fatal entry.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int // 0 if not line-addressable
	Context  string
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped directly.
func (d *Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", d.Severity, d.Message, d.Line)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Sink accumulates diagnostics for one run. It is not safe for concurrent
// use: the engine is single-threaded end to end (spec §5).
type Sink struct {
	entries []*Diagnostic
}

// NewSink creates an empty Sink.
func NewSink() *Sink {
	return &Sink{entries: make([]*Diagnostic, 0)}
}

// Warn records a warning.
func (s *Sink) Warn(context, format string, args ...interface{}) {
	s.entries = append(s.entries, &Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Context:  context,
	})
}

// WarnLine records a warning tied to an input line number.
func (s *Sink) WarnLine(context string, line int, format string, args ...interface{}) {
	s.entries = append(s.entries, &Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Context:  context,
	})
}

// Error records a record-level validation error.
func (s *Sink) Error(context, format string, args ...interface{}) {
	s.entries = append(s.entries, &Diagnostic{
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Context:  context,
	})
}

// ErrorLine records a record-level validation error tied to a line number.
func (s *Sink) ErrorLine(context string, line int, format string, args ...interface{}) {
	s.entries = append(s.entries, &Diagnostic{
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Context:  context,
	})
}

// Fatal builds a fatal diagnostic and returns it as an error. It does not
// itself terminate the process; callers propagate it up to the phase
// boundary (or, in the CLI, to os.Exit(1)).
func (s *Sink) Fatal(context, format string, args ...interface{}) error {
	d := &Diagnostic{
		Severity: SeverityFatal,
		Message:  fmt.Sprintf(format, args...),
		Context:  context,
	}
	s.entries = append(s.entries, d)
	return d
}

// Entries returns all accumulated diagnostics in recording order.
func (s *Sink) Entries() []*Diagnostic {
	out := make([]*Diagnostic, len(s.entries))
	copy(out, s.entries)
	return out
}

// HasErrors reports whether any error- or fatal-severity diagnostic has
// been recorded. Phase boundaries consult this before proceeding.
func (s *Sink) HasErrors() bool {
	for _, d := range s.entries {
		if d.Severity == SeverityError || d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics of exactly the given severity.
func (s *Sink) Count(sev Severity) int {
	n := 0
	for _, d := range s.entries {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Warnings returns only warning-severity diagnostics.
func (s *Sink) Warnings() []*Diagnostic {
	var out []*Diagnostic
	for _, d := range s.entries {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Errors returns error- and fatal-severity diagnostics.
func (s *Sink) Errors() []*Diagnostic {
	var out []*Diagnostic
	for _, d := range s.entries {
		if d.Severity == SeverityError || d.Severity == SeverityFatal {
			out = append(out, d)
		}
	}
	return out
}
