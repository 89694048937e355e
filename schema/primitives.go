package schema

import (
	"context"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// formats checks string formats ("url", "email", "hostname", ...) using
// validator tags.
var formats = validator.New()

// StringSchema validates strings. Rules are applied in declaration order.
type StringSchema struct {
	min, max *int
	pattern  *regexp.Regexp
	formats  []string
}

// String returns a string schema.
func String() *StringSchema { return &StringSchema{} }

// Min requires at least n characters.
func (s *StringSchema) Min(n int) *StringSchema {
	c := *s
	c.min = &n
	return &c
}

// Max allows at most n characters.
func (s *StringSchema) Max(n int) *StringSchema {
	c := *s
	c.max = &n
	return &c
}

// NonEmpty is Min(1).
func (s *StringSchema) NonEmpty() *StringSchema { return s.Min(1) }

// Pattern requires the value to match re.
func (s *StringSchema) Pattern(re *regexp.Regexp) *StringSchema {
	c := *s
	c.pattern = re
	return &c
}

// Format requires the value to satisfy a validator tag such as "url",
// "email", "hostname_rfc1123" or "ip".
func (s *StringSchema) Format(tag string) *StringSchema {
	c := *s
	c.formats = append(append([]string(nil), s.formats...), tag)
	return &c
}

// URL is Format("url").
func (s *StringSchema) URL() *StringSchema { return s.Format("url") }

// Email is Format("email").
func (s *StringSchema) Email() *StringSchema { return s.Format("email") }

func (s *StringSchema) Shape() Shape { return Shape{Kind: KindString} }

func (s *StringSchema) Parse(_ context.Context, v any) (any, error) {
	str, ok := v.(string)
	if !ok {
		return nil, invalidType("string", v)
	}
	var iss Issues
	n := utf8.RuneCountInString(str)
	if s.min != nil && n < *s.min {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeTooShort,
			Message: fmt.Sprintf("String must contain at least %d character(s)", *s.min)})
	}
	if s.max != nil && n > *s.max {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeTooLong,
			Message: fmt.Sprintf("String must contain at most %d character(s)", *s.max)})
	}
	if s.pattern != nil && !s.pattern.MatchString(str) {
		iss = AppendIssues(iss, NewIssue(CodePattern, map[string]string{"pattern": s.pattern.String()}))
	}
	for _, tag := range s.formats {
		if err := formats.Var(str, tag); err != nil {
			iss = AppendIssues(iss, Issue{Path: "/", Code: CodeInvalidFormat,
				Message: NewIssue(CodeInvalidFormat, map[string]string{"format": tag}).Message, Cause: err})
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return str, nil
}

// NumberSchema validates numbers. Output is float64, or int once Int() is set.
type NumberSchema struct {
	min, max     *float64
	exclusiveMin bool
	integer      bool
}

// Number returns a float64 schema.
func Number() *NumberSchema { return &NumberSchema{} }

// Int returns an integer schema whose output is int.
func Int() *NumberSchema { return &NumberSchema{integer: true} }

// Int requires an integral value and switches the output to int.
func (n *NumberSchema) Int() *NumberSchema {
	c := *n
	c.integer = true
	return &c
}

// Min requires value >= f.
func (n *NumberSchema) Min(f float64) *NumberSchema {
	c := *n
	c.min, c.exclusiveMin = &f, false
	return &c
}

// Max requires value <= f.
func (n *NumberSchema) Max(f float64) *NumberSchema {
	c := *n
	c.max = &f
	return &c
}

// Nonnegative is Min(0).
func (n *NumberSchema) Nonnegative() *NumberSchema { return n.Min(0) }

// Positive requires value > 0.
func (n *NumberSchema) Positive() *NumberSchema {
	c := n.Min(0)
	c.exclusiveMin = true
	return c
}

func (n *NumberSchema) Shape() Shape { return Shape{Kind: KindNumber} }

func (n *NumberSchema) Parse(_ context.Context, v any) (any, error) {
	f, ok := toFloat(v)
	if !ok {
		return nil, invalidType("number", v)
	}
	var iss Issues
	if n.integer && !isIntegral(f) {
		iss = AppendIssues(iss, NewIssue(CodeNotInteger, nil))
	}
	if n.min != nil && (f < *n.min || (n.exclusiveMin && f == *n.min)) {
		op := "greater than or equal to"
		if n.exclusiveMin {
			op = "greater than"
		}
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeTooSmall,
			Message: fmt.Sprintf("Number must be %s %s", op, formatFloat(*n.min))})
	}
	if n.max != nil && f > *n.max {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeTooBig,
			Message: fmt.Sprintf("Number must be less than or equal to %s", formatFloat(*n.max))})
	}
	// integers beyond 2^53 are not exact as float64 and may not fit int
	if n.integer && f > maxSafeInt && (n.max == nil || *n.max > maxSafeInt) {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeTooBig,
			Message: fmt.Sprintf("Number must be less than or equal to %s", formatFloat(maxSafeInt))})
	}
	if n.integer && f < -maxSafeInt && (n.min == nil || *n.min < -maxSafeInt) {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeTooSmall,
			Message: fmt.Sprintf("Number must be greater than or equal to %s", formatFloat(-maxSafeInt))})
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if n.integer {
		return int(f), nil
	}
	return f, nil
}

// maxSafeInt bounds the integers a float64 holds exactly (2^53 - 1).
const maxSafeInt = 1<<53 - 1

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

type bigIntSchema struct{}

// BigInt returns a schema for arbitrary-precision integers. Output is *big.Int.
func BigInt() Schema { return bigIntSchema{} }

func (bigIntSchema) Shape() Shape { return Shape{Kind: KindBigInt} }

func (bigIntSchema) Parse(_ context.Context, v any) (any, error) {
	switch b := v.(type) {
	case *big.Int:
		if b == nil {
			return nil, fail(CodeRequired, nil)
		}
		return new(big.Int).Set(b), nil
	case big.Int:
		return new(big.Int).Set(&b), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	return nil, invalidType("bigint", v)
}

type boolSchema struct{}

// Bool returns a boolean schema.
func Bool() Schema { return boolSchema{} }

func (boolSchema) Shape() Shape { return Shape{Kind: KindBoolean} }

func (boolSchema) Parse(_ context.Context, v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, invalidType("boolean", v)
	}
	return b, nil
}

// dateLayouts are tried in order by ParseDate. Date-only forms, down to a
// bare year, are read as UTC midnight at the start of the period.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate reads text as a date.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type dateSchema struct{}

// Date returns a time.Time schema.
func Date() Schema { return dateSchema{} }

func (dateSchema) Shape() Shape { return Shape{Kind: KindDate} }

func (dateSchema) Parse(_ context.Context, v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t != nil {
			return *t, nil
		}
	case InvalidDate:
		return nil, fail(CodeInvalidDate, nil)
	}
	return nil, invalidType("date", v)
}

type literalSchema struct{ value any }

// Literal accepts exactly one value. Numeric literals compare by value, so
// Literal(3) accepts float64(3).
func Literal(v any) Schema { return literalSchema{value: v} }

func (l literalSchema) Shape() Shape { return Shape{Kind: KindLiteral, Value: l.value} }

func (l literalSchema) Parse(_ context.Context, v any) (any, error) {
	if want, ok := toFloat(l.value); ok {
		if got, ok := toFloat(v); ok && got == want {
			return l.value, nil
		}
	} else if reflect.TypeOf(v) == reflect.TypeOf(l.value) && reflect.DeepEqual(v, l.value) {
		return l.value, nil
	}
	if isAbsent(v) {
		return nil, fail(CodeRequired, nil)
	}
	return nil, fail(CodeInvalidLiteral, map[string]string{"expected": fmt.Sprintf("%#v", l.value)})
}

type enumSchema struct{ values []string }

// Enum accepts one of the given strings.
func Enum(values ...string) Schema { return enumSchema{values: values} }

func (e enumSchema) Shape() Shape {
	vals := make([]any, len(e.values))
	for i, v := range e.values {
		vals[i] = v
	}
	return Shape{Kind: KindEnum, Values: vals}
}

func (e enumSchema) Parse(_ context.Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, invalidType("string", v)
	}
	for _, want := range e.values {
		if s == want {
			return s, nil
		}
	}
	quoted := make([]string, len(e.values))
	for i, w := range e.values {
		quoted[i] = "'" + w + "'"
	}
	return nil, fail(CodeInvalidEnum, map[string]string{"expected": strings.Join(quoted, " | ")})
}

type nativeEnumSchema struct{ values []any }

// NativeEnum accepts one of the given values of any comparable type.
func NativeEnum(values ...any) Schema { return nativeEnumSchema{values: values} }

func (e nativeEnumSchema) Shape() Shape { return Shape{Kind: KindNativeEnum, Values: e.values} }

func (e nativeEnumSchema) Parse(_ context.Context, v any) (any, error) {
	for _, want := range e.values {
		if reflect.DeepEqual(v, want) {
			return v, nil
		}
	}
	if isAbsent(v) {
		return nil, fail(CodeRequired, nil)
	}
	return nil, fail(CodeInvalidEnum, map[string]string{"expected": fmt.Sprint(e.values...)})
}

type nullSchema struct{}

// NullSchema accepts only null and outputs nil.
func NullSchema() Schema { return nullSchema{} }

func (nullSchema) Shape() Shape { return Shape{Kind: KindNull} }

func (nullSchema) Parse(_ context.Context, v any) (any, error) {
	if isNull(v) {
		return nil, nil
	}
	return nil, fail(CodeInvalidType, map[string]string{"expected": "null", "received": typeName(v)})
}

type undefinedSchema struct{}

// Undefined accepts only a missing value.
func Undefined() Schema { return undefinedSchema{} }

func (undefinedSchema) Shape() Shape { return Shape{Kind: KindUndefined} }

func (undefinedSchema) Parse(_ context.Context, v any) (any, error) {
	if isAbsent(v) {
		return nil, nil
	}
	return nil, fail(CodeInvalidType, map[string]string{"expected": "undefined", "received": typeName(v)})
}
