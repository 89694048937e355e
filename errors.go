package envskema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedKind marks schema kinds that can never be read from a
	// string (any, unknown, void, never, lazy, function, map, set).
	ErrUnsupportedKind = errors.New("schema kind not supported")
	// ErrNotYetSupported marks schema kinds without string coercion yet
	// (union, intersection, native enum).
	ErrNotYetSupported = errors.New("schema kind not yet supported")
	// ErrNilSchema is returned for entries or wrappers without a schema.
	ErrNilSchema = errors.New("nil schema")
	// ErrInvalidEntry is returned for malformed entries.
	ErrInvalidEntry = errors.New("invalid entry")
)

// ConfigError reports a schema set that cannot be evaluated. It aborts the
// parse immediately and is never pooled with validation failures.
type ConfigError struct {
	Key  string // variable name, when known
	Kind string // schema kind, when relevant
	Err  error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("envskema: ")
	if e.Key != "" {
		fmt.Fprintf(&b, "key %q: ", e.Key)
	}
	b.WriteString(e.Err.Error())
	if e.Kind != "" {
		fmt.Fprintf(&b, ": %q", e.Kind)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Failure records why one variable failed.
type Failure struct {
	Key string
	// Received is the raw value, nil when the variable was absent.
	Received *string
	// Err is schema.Issues when validation failed.
	Err error
	// DefaultUsed reports whether a default was attempted.
	DefaultUsed bool
	// Default is the attempted default value.
	Default any
}

// ParseError is returned when one or more variables fail. Its message is the
// rendered report.
type ParseError struct {
	report string
	keys   []string
}

func (e *ParseError) Error() string { return e.report }

// Keys lists the failed variables in report order.
func (e *ParseError) Keys() []string { return append([]string(nil), e.keys...) }

// AsParseError extracts a *ParseError from err.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
