// Package schema is a small Zod-style schema engine tailored to
// environment-shaped input.
//
// Every schema implements Schema: Parse validates (and may convert) a value
// that has already been decoded from text, and Shape exposes enough
// structure for callers to decide how raw strings should be coerced before
// Parse sees them.
//
// Parse never reads strings as numbers, booleans or JSON on its own. A
// Number schema accepts Go numeric values only; turning "8080" into 8080 is
// the caller's job.
//
// Errors are returned as Issues with JSON Pointer paths. Composite schemas
// rebase child issues under the field or index that produced them, so
// "/db/port" points at the port field inside a DB object.
package schema

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"reflect"
)

// Kind names the structural family of a schema.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBigInt
	KindBoolean
	KindDate
	KindArray
	KindObject
	KindTuple
	KindRecord
	KindLiteral
	KindEnum
	KindNativeEnum
	KindNull
	KindUndefined
	KindOptional
	KindNullable
	KindEffects
	KindDefault
	KindUnion
	KindIntersection
	KindAny
	KindUnknown
	KindVoid
	KindNever
	KindLazy
	KindFunction
	KindMap
	KindSet
)

var kindNames = [...]string{
	KindString:       "string",
	KindNumber:       "number",
	KindBigInt:       "bigint",
	KindBoolean:      "boolean",
	KindDate:         "date",
	KindArray:        "array",
	KindObject:       "object",
	KindTuple:        "tuple",
	KindRecord:       "record",
	KindLiteral:      "literal",
	KindEnum:         "enum",
	KindNativeEnum:   "native_enum",
	KindNull:         "null",
	KindUndefined:    "undefined",
	KindOptional:     "optional",
	KindNullable:     "nullable",
	KindEffects:      "effects",
	KindDefault:      "default",
	KindUnion:        "union",
	KindIntersection: "intersection",
	KindAny:          "any",
	KindUnknown:      "unknown",
	KindVoid:         "void",
	KindNever:        "never",
	KindLazy:         "lazy",
	KindFunction:     "function",
	KindMap:          "map",
	KindSet:          "set",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Shape is the structural description of a schema.
type Shape struct {
	Kind Kind
	// Inner is the wrapped schema for optional, nullable, effects, default
	// and lazy schemas.
	Inner Schema
	// Value is the literal value for KindLiteral.
	Value any
	// Values lists the members of enum schemas.
	Values []any
}

// Schema validates a decoded value and returns its typed form.
type Schema interface {
	// Parse validates v and returns the output value. It returns Issues when
	// validation fails.
	Parse(ctx context.Context, v any) (any, error)
	// Shape describes the schema's structure.
	Shape() Shape
}

// Defaulter is implemented by default-wrapped schemas. DefaultValue produces
// the value substituted for a missing input.
type Defaulter interface {
	DefaultValue() any
}

// NullValue is the type of Null.
type NullValue struct{}

func (NullValue) String() string { return "null" }

// MarshalJSON encodes Null as JSON null.
func (NullValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Null is an explicit null, distinct from a missing (nil) value.
var Null NullValue

// InvalidDate carries text that could not be read as a date. Date schemas
// reject it with CodeInvalidDate.
type InvalidDate string

// isAbsent reports a missing value. A Null is not absent.
func isAbsent(v any) bool { return v == nil }

func isNull(v any) bool {
	_, ok := v.(NullValue)
	return ok
}

// typeName renders the dynamic type of v the way messages expect it.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "undefined"
	case NullValue:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case *big.Int:
		return "bigint"
	case InvalidDate:
		return "date"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Func:
		return "function"
	}
	return rv.Type().String()
}

func invalidType(expected string, v any) error {
	if isAbsent(v) {
		return fail(CodeRequired, nil)
	}
	return fail(CodeInvalidType, map[string]string{"expected": expected, "received": typeName(v)})
}

// toFloat converts any Go numeric value to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}
