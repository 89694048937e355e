package schema

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// ObjectSchema validates map[string]any values against a fixed set of
// fields. Unknown keys are dropped from the output.
type ObjectSchema struct {
	fields     map[string]Schema
	sortedKeys []string
}

// Object returns an object schema with the given fields.
func Object(fields map[string]Schema) *ObjectSchema {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &ObjectSchema{fields: fields, sortedKeys: keys}
}

// Fields returns the declared field names in ascending order.
func (o *ObjectSchema) Fields() []string { return append([]string(nil), o.sortedKeys...) }

func (o *ObjectSchema) Shape() Shape { return Shape{Kind: KindObject} }

func (o *ObjectSchema) Parse(ctx context.Context, v any) (any, error) {
	src, ok := asObject(v)
	if !ok {
		return nil, invalidType("object", v)
	}
	out := make(map[string]any, len(o.fields))
	var iss Issues
	for _, k := range o.sortedKeys {
		val, present := src[k]
		parsed, err := o.fields[k].Parse(ctx, val)
		if err != nil {
			iss = AppendIssues(iss, rebase(k, err)...)
			continue
		}
		// missing optional fields stay missing
		if parsed == nil && !present {
			continue
		}
		out[k] = parsed
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func asObject(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// ArraySchema validates homogeneous lists. Output is []any.
type ArraySchema struct {
	elem     Schema
	min, max *int
}

// Array returns an array schema whose elements are validated by elem.
func Array(elem Schema) *ArraySchema { return &ArraySchema{elem: elem} }

// Min requires at least n elements.
func (a *ArraySchema) Min(n int) *ArraySchema {
	c := *a
	c.min = &n
	return &c
}

// Max allows at most n elements.
func (a *ArraySchema) Max(n int) *ArraySchema {
	c := *a
	c.max = &n
	return &c
}

func (a *ArraySchema) Shape() Shape { return Shape{Kind: KindArray} }

func (a *ArraySchema) Parse(ctx context.Context, v any) (any, error) {
	items, ok := asSlice(v)
	if !ok {
		return nil, invalidType("array", v)
	}
	var iss Issues
	if a.min != nil && len(items) < *a.min {
		iss = AppendIssues(iss, NewIssue(CodeTooShort, map[string]string{"min": strconv.Itoa(*a.min)}))
	}
	if a.max != nil && len(items) > *a.max {
		iss = AppendIssues(iss, NewIssue(CodeTooLong, map[string]string{"max": strconv.Itoa(*a.max)}))
	}
	out := make([]any, len(items))
	for i, item := range items {
		parsed, err := a.elem.Parse(ctx, item)
		if err != nil {
			iss = AppendIssues(iss, rebase(strconv.Itoa(i), err)...)
			continue
		}
		out[i] = parsed
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

type tupleSchema struct{ elems []Schema }

// Tuple validates a fixed-length list with one schema per position.
func Tuple(elems ...Schema) Schema { return tupleSchema{elems: elems} }

func (t tupleSchema) Shape() Shape { return Shape{Kind: KindTuple} }

func (t tupleSchema) Parse(ctx context.Context, v any) (any, error) {
	items, ok := asSlice(v)
	if !ok {
		return nil, invalidType("array", v)
	}
	if len(items) != len(t.elems) {
		return nil, Issues{{Path: "/", Code: CodeInvalidType,
			Message: fmt.Sprintf("Expected a tuple of %d element(s), received %d", len(t.elems), len(items))}}
	}
	out := make([]any, len(items))
	var iss Issues
	for i, elem := range t.elems {
		parsed, err := elem.Parse(ctx, items[i])
		if err != nil {
			iss = AppendIssues(iss, rebase(strconv.Itoa(i), err)...)
			continue
		}
		out[i] = parsed
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

type recordSchema struct{ value Schema }

// Record validates a string-keyed map whose values all satisfy value.
func Record(value Schema) Schema { return recordSchema{value: value} }

func (r recordSchema) Shape() Shape { return Shape{Kind: KindRecord} }

func (r recordSchema) Parse(ctx context.Context, v any) (any, error) {
	src, ok := asObject(v)
	if !ok {
		return nil, invalidType("object", v)
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]any, len(src))
	var iss Issues
	for _, k := range keys {
		parsed, err := r.value.Parse(ctx, src[k])
		if err != nil {
			iss = AppendIssues(iss, rebase(k, err)...)
			continue
		}
		out[k] = parsed
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
