package envskema_test

import (
	"errors"
	"testing"

	"github.com/reoring/envskema"
	"github.com/reoring/envskema/schema"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		s    schema.Schema
		want string
		base envskema.KindTag
	}{
		{"string", schema.String(), "string", envskema.KindString},
		{"enum", schema.Enum("a", "b"), "string", envskema.KindString},
		{"number", schema.Number(), "number", envskema.KindNumber},
		{"int", envskema.Port(), "number", envskema.KindNumber},
		{"bigint", schema.BigInt(), "bigint", envskema.KindBigInt},
		{"bool", schema.Bool(), "boolean", envskema.KindBoolean},
		{"date", schema.Date(), "date", envskema.KindDate},
		{"object", schema.Object(nil), "composite", envskema.KindComposite},
		{"array", schema.Array(schema.String()), "composite", envskema.KindComposite},
		{"tuple", schema.Tuple(schema.String()), "composite", envskema.KindComposite},
		{"record", schema.Record(schema.String()), "composite", envskema.KindComposite},
		{"null", schema.NullSchema(), "null", envskema.KindNull},
		{"undefined", schema.Undefined(), "passthrough", envskema.KindPassthrough},
		{"literal string", schema.Literal("x"), "literal(string)", envskema.KindLiteral},
		{"literal number", schema.Literal(3), "literal(number)", envskema.KindLiteral},
		{"literal bool", schema.Literal(false), "literal(boolean)", envskema.KindLiteral},
		{"literal other", schema.Literal(struct{}{}), "passthrough", envskema.KindPassthrough},
		{"optional", schema.Optional(schema.Number()), "optional(number)", envskema.KindNumber},
		{"nullable", schema.Nullable(schema.Bool()), "nullable(boolean)", envskema.KindBoolean},
		{"default", schema.Default(schema.Number(), 1), "default(number)", envskema.KindNumber},
		{
			"nested",
			schema.Optional(schema.Transform(schema.Default(schema.Int(), 1), nil)),
			"optional(effect(default(number)))",
			envskema.KindNumber,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k, err := envskema.Classify(tc.s)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if k.String() != tc.want {
				t.Fatalf("got %s want %s", k, tc.want)
			}
			if k.Base().Tag != tc.base {
				t.Fatalf("base %s want %s", k.Base().Tag, tc.base)
			}
		})
	}
}

func TestClassify_Unsupported(t *testing.T) {
	notYet := []schema.Schema{
		schema.Union(schema.String(), schema.Number()),
		schema.Intersection(schema.Object(nil), schema.Object(nil)),
		schema.NativeEnum(1, 2),
	}
	for _, s := range notYet {
		_, err := envskema.Classify(s)
		if !errors.Is(err, envskema.ErrNotYetSupported) {
			t.Fatalf("%v: expected ErrNotYetSupported, got %v", s.Shape().Kind, err)
		}
	}

	never := []schema.Schema{
		schema.Any(), schema.Unknown(), schema.Void(), schema.Never(),
		schema.Lazy(func() schema.Schema { return schema.String() }), schema.Func(),
		schema.Map(schema.String(), schema.String()), schema.Set(schema.String()),
		schema.Optional(schema.Any()),
	}
	for _, s := range never {
		_, err := envskema.Classify(s)
		var cerr *envskema.ConfigError
		if !errors.As(err, &cerr) || !errors.Is(err, envskema.ErrUnsupportedKind) {
			t.Fatalf("%v: expected unsupported ConfigError, got %v", s.Shape().Kind, err)
		}
	}
}
