package envskema

import (
	"fmt"
	"maps"
	"sort"
)

// Wildcard keys the default used when no mode-specific default matches.
const Wildcard = "_"

// Defaults is either "no defaults" (the zero value) or a mode-keyed map of
// fallback input values. A key stored with a nil value is an explicit
// "no value" for that mode and is different from a missing key.
type Defaults struct {
	values map[string]any
}

// ModeDefaults builds mode-keyed defaults. Keys are mode names or Wildcard.
func ModeDefaults(m map[string]any) (Defaults, error) {
	for k := range m {
		if k == "" {
			return Defaults{}, fmt.Errorf("%w: empty mode name", ErrInvalidEntry)
		}
	}
	if len(m) == 0 {
		return Defaults{}, nil
	}
	return Defaults{values: maps.Clone(m)}, nil
}

// IsZero reports "no defaults".
func (d Defaults) IsZero() bool { return d.values == nil }

// Modes returns the keys of the defaults map in ascending order.
func (d Defaults) Modes() []string {
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the value stored for mode.
func (d Defaults) Lookup(mode string) (any, bool) {
	v, ok := d.values[mode]
	return v, ok
}

// ResolveDefault picks the default for a missing key: the entry for the
// current mode name, then the Wildcard entry. used is false when neither
// exists.
func ResolveDefault(d Defaults, m Mode) (used bool, value any) {
	if d.IsZero() {
		return false, nil
	}
	if name := m.Name(); name != "" {
		if v, ok := d.values[name]; ok {
			return true, v
		}
	}
	if v, ok := d.values[Wildcard]; ok {
		return true, v
	}
	return false, nil
}
