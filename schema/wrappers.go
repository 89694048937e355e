package schema

import (
	"context"
	"maps"
)

type optionalSchema struct{ inner Schema }

// Optional accepts a missing value (nil) in addition to inner's values.
func Optional(inner Schema) Schema { return optionalSchema{inner: inner} }

func (o optionalSchema) Shape() Shape { return Shape{Kind: KindOptional, Inner: o.inner} }

func (o optionalSchema) Parse(ctx context.Context, v any) (any, error) {
	if isAbsent(v) {
		return nil, nil
	}
	return o.inner.Parse(ctx, v)
}

type nullableSchema struct{ inner Schema }

// Nullable accepts Null in addition to inner's values. The output for Null
// is nil.
func Nullable(inner Schema) Schema { return nullableSchema{inner: inner} }

func (n nullableSchema) Shape() Shape { return Shape{Kind: KindNullable, Inner: n.inner} }

func (n nullableSchema) Parse(ctx context.Context, v any) (any, error) {
	if isNull(v) {
		return nil, nil
	}
	return n.inner.Parse(ctx, v)
}

type defaultSchema struct {
	inner Schema
	fn    func() any
}

// Default substitutes v when the input is missing.
func Default(inner Schema, v any) Schema {
	return defaultSchema{inner: inner, fn: func() any { return v }}
}

// DefaultFunc substitutes fn() when the input is missing. fn runs once per
// missing input.
func DefaultFunc(inner Schema, fn func() any) Schema {
	return defaultSchema{inner: inner, fn: fn}
}

func (d defaultSchema) Shape() Shape { return Shape{Kind: KindDefault, Inner: d.inner} }

func (d defaultSchema) DefaultValue() any { return d.fn() }

func (d defaultSchema) Parse(ctx context.Context, v any) (any, error) {
	if isAbsent(v) {
		v = d.fn()
	}
	return d.inner.Parse(ctx, v)
}

type transformSchema struct {
	inner Schema
	fn    func(ctx context.Context, v any) (any, error)
}

// Transform post-processes inner's output. An error from fn that is not
// Issues is reported with CodeCustom.
func Transform(inner Schema, fn func(ctx context.Context, v any) (any, error)) Schema {
	return transformSchema{inner: inner, fn: fn}
}

func (t transformSchema) Shape() Shape { return Shape{Kind: KindEffects, Inner: t.inner} }

func (t transformSchema) Parse(ctx context.Context, v any) (any, error) {
	out, err := t.inner.Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	out, err = t.fn(ctx, out)
	if err != nil {
		return nil, issuesFromErr("/", err)
	}
	return out, nil
}

type refineSchema struct {
	inner   Schema
	check   func(v any) bool
	message string
}

// Refine adds a custom check run after inner succeeds.
func Refine(inner Schema, check func(v any) bool, message string) Schema {
	return refineSchema{inner: inner, check: check, message: message}
}

func (r refineSchema) Shape() Shape { return Shape{Kind: KindEffects, Inner: r.inner} }

func (r refineSchema) Parse(ctx context.Context, v any) (any, error) {
	out, err := r.inner.Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	if !r.check(out) {
		return nil, Issues{{Path: "/", Code: CodeCustom, Message: r.message}}
	}
	return out, nil
}

type unionSchema struct{ options []Schema }

// Union accepts the first option that parses.
func Union(options ...Schema) Schema { return unionSchema{options: options} }

func (u unionSchema) Shape() Shape { return Shape{Kind: KindUnion} }

func (u unionSchema) Parse(ctx context.Context, v any) (any, error) {
	for _, o := range u.options {
		if out, err := o.Parse(ctx, v); err == nil {
			return out, nil
		}
	}
	return nil, fail(CodeInvalidUnion, nil)
}

type intersectionSchema struct{ left, right Schema }

// Intersection requires both schemas to accept the value. Object outputs are
// merged.
func Intersection(left, right Schema) Schema { return intersectionSchema{left: left, right: right} }

func (i intersectionSchema) Shape() Shape { return Shape{Kind: KindIntersection} }

func (i intersectionSchema) Parse(ctx context.Context, v any) (any, error) {
	l, lerr := i.left.Parse(ctx, v)
	r, rerr := i.right.Parse(ctx, v)
	var iss Issues
	if lerr != nil {
		iss = AppendIssues(iss, issuesFromErr("/", lerr)...)
	}
	if rerr != nil {
		iss = AppendIssues(iss, issuesFromErr("/", rerr)...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	lm, lok := l.(map[string]any)
	rm, rok := r.(map[string]any)
	if lok && rok {
		out := maps.Clone(lm)
		maps.Copy(out, rm)
		return out, nil
	}
	return l, nil
}
