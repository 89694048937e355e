package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reoring/envskema"
)

const sample = `
mode_var: STAGE
vars:
  HOST:
    type: host
    description: Public hostname
    defaults:
      production: null
      _: localhost
  PORT:
    type: port
    default: 8080
  LEVEL:
    type: enum
    values: [debug, info]
    optional: true
  SINCE:
    type: date
    default: "2024-01-02"
  DB:
    type: object
    properties:
      host: {type: string, min: 1}
      port: {type: int, max: 65535}
  TAGS:
    type: array
    items: {type: string}
    max: 3
`

func TestParse_EndToEnd(t *testing.T) {
	m, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	set, err := m.SchemaSet()
	if err != nil {
		t.Fatal(err)
	}
	if !set["HOST"].IsDetailed() || set["PORT"].IsDetailed() {
		t.Fatalf("HOST should be detailed and PORT simple")
	}

	raw := map[string]string{
		"STAGE": "development",
		"DB":    `{"host":"db","port":5432}`,
		"TAGS":  `["a"]`,
	}
	env, err := envskema.Parse(context.Background(), raw, set, m.Options()...)
	if err != nil {
		t.Fatal(err)
	}
	if env.String("HOST") != "localhost" || env.Int("PORT") != 8080 || env.Time("SINCE").Year() != 2024 {
		t.Fatalf("got %#v", env)
	}
	if v, ok := env.Lookup("LEVEL"); !ok || v != nil {
		t.Fatalf("LEVEL = %#v", v)
	}

	raw["STAGE"] = "production"
	raw["TAGS"] = `["a","b","c","d"]`
	_, err = envskema.Parse(context.Background(), raw, set, m.Options()...)
	pe, ok := envskema.AsParseError(err)
	if !ok {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if got := strings.Join(pe.Keys(), ","); got != "HOST,TAGS" {
		t.Fatalf("keys = %s", got)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": "vars:\n  A:\n    type: string\n    colour: red\n",
		"no vars":       "mode_var: X\n",
		"not yaml":      "vars: [",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSchemaSet_UnknownType(t *testing.T) {
	m, err := Parse([]byte("vars:\n  A:\n    type: uuid\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.SchemaSet(); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("got %v", err)
	}
}

func TestVar_Build(t *testing.T) {
	cases := []struct {
		name string
		v    Var
		want string
	}{
		{"string", Var{Type: "string"}, "string"},
		{"optional nullable", Var{Type: "bool", Optional: true, Nullable: true}, "optional(nullable(boolean))"},
		{"literal", Var{Type: "literal", Value: "on"}, "literal(string)"},
		{"tuple", Var{Type: "tuple", Elements: []*Var{{Type: "string"}, {Type: "number"}}}, "composite"},
		{"record", Var{Type: "record"}, "composite"},
		{"bigint", Var{Type: "bigint"}, "bigint"},
	}
	for _, tc := range cases {
		s, err := tc.v.Build()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		k, err := envskema.Classify(s)
		if err != nil || k.String() != tc.want {
			t.Fatalf("%s: got %v %v want %s", tc.name, k, err, tc.want)
		}
	}
	for _, bad := range []Var{{Type: "enum"}, {Type: "array"}, {Type: "string", Pattern: "("}} {
		if _, err := bad.Build(); err == nil {
			t.Fatalf("%+v: expected error", bad)
		}
	}
}

func TestOptions(t *testing.T) {
	m := &Manifest{ModeVar: "STAGE", StrictMode: true}
	if got := len(m.Options()); got != 2 {
		t.Fatalf("got %d options", got)
	}
	if got := len((&Manifest{}).Options()); got != 0 {
		t.Fatalf("got %d options", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.ModeVar != "STAGE" || len(m.Vars) != 6 {
		t.Fatalf("got %+v", m)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}
