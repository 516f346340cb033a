// Package docxsdt implements the content-control discovery and rewriting
// engine: see api.go for an overview. This file provides the typed error
// kinds of §7 of the specification.
package docxsdt

import (
	"fmt"
	"strings"
)

// ArchiveError reports that the outer ZIP container could not be opened,
// read or written.
type ArchiveError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *ArchiveError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("archive error during %s of %q: %v", e.Operation, e.Path, e.Cause)
	}
	return fmt.Sprintf("archive error during %s: %v", e.Operation, e.Cause)
}

func (e *ArchiveError) Unwrap() error { return e.Cause }

// EncodingError reports that a part containing an SDT was not valid UTF-8.
type EncodingError struct {
	Part  string
	Cause error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("part %q is not valid UTF-8 XML: %v", e.Part, e.Cause)
}

func (e *EncodingError) Unwrap() error { return e.Cause }

// ParseError reports that the streaming XML reader rejected a part; it
// carries the byte offset at which the rejection occurred.
type ParseError struct {
	Part   string
	Offset int64
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("part %q: parse error at offset %d: %v", e.Part, e.Offset, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// StructuralError reports that positions derived from the scan violate the
// invariants of §3 of the specification — for example, an SDT left open at
// EOF.
type StructuralError struct {
	Part    string
	Message string
}

func (e *StructuralError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("part %q: structural error: %s", e.Part, e.Message)
	}
	return fmt.Sprintf("structural error: %s", e.Message)
}

// MultiError collects multiple per-part failures; used only by Describe's
// best-effort introspection mode, never by Map or Strip, which are
// fail-fast per §7's propagation policy.
type MultiError struct {
	errors []error
}

// Add appends err to the collection. A nil err is ignored.
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len reports how many errors have been added.
func (m *MultiError) Len() int { return len(m.errors) }

// Err returns nil if the collection is empty, the sole error if there is
// exactly one, or the MultiError itself otherwise.
func (m *MultiError) Err() error {
	switch len(m.errors) {
	case 0:
		return nil
	case 1:
		return m.errors[0]
	default:
		return m
	}
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}
	parts := make([]string, 0, len(m.errors)+1)
	parts = append(parts, fmt.Sprintf("%d errors occurred:", len(m.errors)))
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// IsArchiveError reports whether err is an *ArchiveError.
func IsArchiveError(err error) bool { _, ok := err.(*ArchiveError); return ok }

// IsEncodingError reports whether err is an *EncodingError.
func IsEncodingError(err error) bool { _, ok := err.(*EncodingError); return ok }

// IsParseError reports whether err is a *ParseError.
func IsParseError(err error) bool { _, ok := err.(*ParseError); return ok }

// IsStructuralError reports whether err is a *StructuralError.
func IsStructuralError(err error) bool { _, ok := err.(*StructuralError); return ok }
