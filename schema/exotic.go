package schema

import (
	"context"
	"reflect"
)

type anySchema struct{ kind Kind }

// Any accepts every value, including a missing one.
func Any() Schema { return anySchema{kind: KindAny} }

// Unknown accepts every value, including a missing one.
func Unknown() Schema { return anySchema{kind: KindUnknown} }

func (a anySchema) Shape() Shape { return Shape{Kind: a.kind} }

func (anySchema) Parse(_ context.Context, v any) (any, error) { return v, nil }

type voidSchema struct{}

// Void accepts only a missing value.
func Void() Schema { return voidSchema{} }

func (voidSchema) Shape() Shape { return Shape{Kind: KindVoid} }

func (voidSchema) Parse(ctx context.Context, v any) (any, error) {
	return undefinedSchema{}.Parse(ctx, v)
}

type neverSchema struct{}

// Never rejects every value.
func Never() Schema { return neverSchema{} }

func (neverSchema) Shape() Shape { return Shape{Kind: KindNever} }

func (neverSchema) Parse(_ context.Context, v any) (any, error) {
	return nil, fail(CodeInvalidType, map[string]string{"expected": "never", "received": typeName(v)})
}

type lazySchema struct{ get func() Schema }

// Lazy defers schema construction, which allows recursive definitions.
func Lazy(get func() Schema) Schema { return lazySchema{get: get} }

func (l lazySchema) Shape() Shape { return Shape{Kind: KindLazy, Inner: l.get()} }

func (l lazySchema) Parse(ctx context.Context, v any) (any, error) { return l.get().Parse(ctx, v) }

type funcSchema struct{}

// Func accepts Go function values.
func Func() Schema { return funcSchema{} }

func (funcSchema) Shape() Shape { return Shape{Kind: KindFunction} }

func (funcSchema) Parse(_ context.Context, v any) (any, error) {
	if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
		return v, nil
	}
	return nil, invalidType("function", v)
}

type mapSchema struct{ key, value Schema }

// Map validates every key and value of a Go map. Output is map[any]any.
func Map(key, value Schema) Schema { return mapSchema{key: key, value: value} }

func (m mapSchema) Shape() Shape { return Shape{Kind: KindMap} }

func (m mapSchema) Parse(ctx context.Context, v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, invalidType("map", v)
	}
	out := make(map[any]any, rv.Len())
	var iss Issues
	iter := rv.MapRange()
	for iter.Next() {
		k, err := m.key.Parse(ctx, iter.Key().Interface())
		if err != nil {
			iss = AppendIssues(iss, issuesFromErr("/", err)...)
			continue
		}
		val, err := m.value.Parse(ctx, iter.Value().Interface())
		if err != nil {
			iss = AppendIssues(iss, issuesFromErr("/", err)...)
			continue
		}
		out[k] = val
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

type setSchema struct{ elem Schema }

// Set validates a list of distinct elements.
func Set(elem Schema) Schema { return setSchema{elem: elem} }

func (s setSchema) Shape() Shape { return Shape{Kind: KindSet} }

func (s setSchema) Parse(ctx context.Context, v any) (any, error) {
	out, err := Array(s.elem).Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	items := out.([]any)
	for i := range items {
		for j := 0; j < i; j++ {
			if reflect.DeepEqual(items[i], items[j]) {
				return nil, Issues{{Path: "/", Code: CodeCustom, Message: "Set elements must be unique"}}
			}
		}
	}
	return items, nil
}
