package envskema

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"time"
)

// Env is the read-only result of a successful Parse. It holds exactly the
// declared variables. Accessors hand out copies: maps, slices and pointers
// are copied recursively, struct values are copied as a whole. Pointers
// held inside struct fields are shared.
type Env struct {
	values map[string]any
	mode   Mode
}

func newEnv(values map[string]any, mode Mode) *Env {
	return &Env{values: values, mode: mode}
}

// Mode returns the execution mode the values were resolved under.
func (e *Env) Mode() Mode { return e.mode }

// Len returns the number of variables.
func (e *Env) Len() int { return len(e.values) }

// Keys returns the variable names in ascending order.
func (e *Env) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns a copy of the value for key.
func (e *Env) Lookup(key string) (any, bool) {
	v, ok := e.values[key]
	if !ok {
		return nil, false
	}
	return deepCopy(v), true
}

// Get returns a copy of the value for key, or nil.
func (e *Env) Get(key string) any {
	v, _ := e.Lookup(key)
	return v
}

// Map returns a copy of all values.
func (e *Env) Map() map[string]any {
	return deepCopy(e.values).(map[string]any)
}

// String returns the value for key as a string.
func (e *Env) String(key string) string {
	v, _ := Value[string](e, key)
	return v
}

// Bool returns the value for key as a bool.
func (e *Env) Bool(key string) bool {
	v, _ := Value[bool](e, key)
	return v
}

// Int returns the value for key as an int. Integral float64 values are
// converted.
func (e *Env) Int(key string) int {
	switch n := e.values[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case *big.Int:
		if n.IsInt64() {
			return int(n.Int64())
		}
	}
	return 0
}

// Float returns the value for key as a float64.
func (e *Env) Float(key string) float64 {
	switch n := e.values[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// Time returns the value for key as a time.Time.
func (e *Env) Time(key string) time.Time {
	v, _ := Value[time.Time](e, key)
	return v
}

// BigInt returns a copy of the value for key as a *big.Int, or nil.
func (e *Env) BigInt(key string) *big.Int {
	v, _ := Value[*big.Int](e, key)
	return v
}

// Value returns the value for key converted to T. ok is false when the key
// is unknown or holds another type.
func Value[T any](e *Env, key string) (T, bool) {
	v, ok := e.Lookup(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// GoString renders the values for debugging.
func (e *Env) GoString() string {
	return fmt.Sprintf("envskema.Env{mode: %q, values: %v}", e.mode.String(), e.values)
}

func deepCopy(v any) any {
	if v == nil {
		return nil
	}
	return copyValue(reflect.ValueOf(v)).Interface()
}

func copyValue(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(copyValue(rv.Elem()))
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), copyValue(iter.Value()))
		}
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(copyValue(rv.Index(i)))
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return rv
		}
		if b, ok := rv.Interface().(*big.Int); ok {
			return reflect.ValueOf(new(big.Int).Set(b))
		}
		out := reflect.New(rv.Type().Elem())
		out.Elem().Set(copyValue(rv.Elem()))
		return out
	}
	return rv
}
