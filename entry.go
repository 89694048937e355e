package envskema

import (
	"fmt"
	"sort"

	"github.com/reoring/envskema/schema"
)

// Entry declares how one variable is validated. It is either Simple (a bare
// schema) or Detailed (a schema plus description and mode-keyed defaults).
type Entry struct {
	schema      schema.Schema
	detailed    bool
	description string
	defaults    Defaults
	err         error
}

// EntryOption configures a Detailed entry.
type EntryOption func(*Entry)

// Simple declares a variable validated by s alone.
func Simple(s schema.Schema) Entry {
	e := Entry{schema: s}
	if s == nil {
		e.err = ErrNilSchema
	}
	return e
}

// Detailed declares a variable with extra metadata.
func Detailed(s schema.Schema, opts ...EntryOption) Entry {
	e := Entry{schema: s, detailed: true}
	if s == nil {
		e.err = ErrNilSchema
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Description sets the help text shown when the variable fails validation.
func Description(text string) EntryOption {
	return func(e *Entry) { e.description = text }
}

// WithDefaults sets mode-keyed defaults, for example
// {"production": "db.internal", Wildcard: "localhost"}.
func WithDefaults(m map[string]any) EntryOption {
	return func(e *Entry) {
		d, err := ModeDefaults(m)
		if err != nil && e.err == nil {
			e.err = err
		}
		e.defaults = d
	}
}

// Fallback sets a default used in every mode.
func Fallback(v any) EntryOption {
	return WithDefaults(map[string]any{Wildcard: v})
}

// Schema returns the entry's schema.
func (e Entry) Schema() schema.Schema { return e.schema }

// IsDetailed reports the Detailed form.
func (e Entry) IsDetailed() bool { return e.detailed }

// Description returns the help text ("" when none).
func (e Entry) Description() string { return e.description }

// Defaults returns the mode-keyed defaults of a Detailed entry.
func (e Entry) Defaults() Defaults { return e.defaults }

// Validate reports construction problems.
func (e Entry) Validate() error {
	if e.err != nil {
		return e.err
	}
	if e.schema == nil {
		return ErrNilSchema
	}
	return nil
}

// SchemaSet maps variable names to entries.
type SchemaSet map[string]Entry

// Keys returns the declared names in ascending order.
func (s SchemaSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks every entry and returns the first problem as a
// *ConfigError.
func (s SchemaSet) Validate() error {
	for _, k := range s.Keys() {
		if k == "" {
			return &ConfigError{Err: fmt.Errorf("%w: empty variable name", ErrInvalidEntry)}
		}
		if err := s[k].Validate(); err != nil {
			return &ConfigError{Key: k, Err: err}
		}
	}
	return nil
}

// Schemas builds a SchemaSet of Simple entries.
func Schemas(m map[string]schema.Schema) SchemaSet {
	out := make(SchemaSet, len(m))
	for k, s := range m {
		out[k] = Simple(s)
	}
	return out
}
