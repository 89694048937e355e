package envskema_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/reoring/envskema"
	"github.com/reoring/envskema/schema"
)

func richEnv(t *testing.T) *envskema.Env {
	t.Helper()
	set := envskema.Schemas(map[string]schema.Schema{
		"NAME":    schema.String(),
		"DEBUG":   schema.Bool(),
		"WORKERS": schema.Int(),
		"RATIO":   schema.Number(),
		"SINCE":   schema.Date(),
		"BIG":     schema.BigInt(),
		"DB":      schema.Object(map[string]schema.Schema{"hosts": schema.Array(schema.String())}),
	})
	raw := map[string]string{
		"APP_ENV": "test",
		"NAME":    "svc",
		"DEBUG":   "yes",
		"WORKERS": "4",
		"RATIO":   "0.5",
		"SINCE":   "2024-05-01T10:00:00Z",
		"BIG":     "18446744073709551616",
		"DB":      `{"hosts":["a","b"]}`,
	}
	env, err := envskema.Parse(context.Background(), raw, set)
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func TestEnv_Accessors(t *testing.T) {
	env := richEnv(t)
	if env.String("NAME") != "svc" || !env.Bool("DEBUG") || env.Int("WORKERS") != 4 || env.Float("RATIO") != 0.5 {
		t.Fatalf("got %#v", env)
	}
	if !env.Time("SINCE").Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("SINCE = %v", env.Time("SINCE"))
	}
	if env.BigInt("BIG").String() != "18446744073709551616" {
		t.Fatalf("BIG = %v", env.BigInt("BIG"))
	}
	if !env.Mode().IsTest() {
		t.Fatalf("mode = %v", env.Mode())
	}
	if _, ok := envskema.Value[int](env, "NAME"); ok {
		t.Fatalf("NAME is not an int")
	}
	if _, ok := envskema.Value[string](env, "MISSING"); ok {
		t.Fatalf("MISSING is not declared")
	}
	if env.String("MISSING") != "" || env.Get("MISSING") != nil {
		t.Fatalf("undeclared keys read as zero values")
	}
}

func TestEnv_ReadOnly(t *testing.T) {
	env := richEnv(t)

	m := env.Map()
	m["NAME"] = "changed"
	m["NEW"] = 1
	m["DB"].(map[string]any)["hosts"].([]any)[0] = "z"
	env.BigInt("BIG").SetInt64(0)

	if env.String("NAME") != "svc" || env.Len() != 7 {
		t.Fatalf("top-level values changed: %#v", env)
	}
	db, _ := envskema.Value[map[string]any](env, "DB")
	if db["hosts"].([]any)[0] != "a" {
		t.Fatalf("nested values changed: %#v", db)
	}
	want, _ := new(big.Int).SetString("18446744073709551616", 10)
	if env.BigInt("BIG").Cmp(want) != 0 {
		t.Fatalf("big int changed: %v", env.BigInt("BIG"))
	}
}

func TestEnv_Keys(t *testing.T) {
	got := richEnv(t).Keys()
	want := []string{"BIG", "DB", "DEBUG", "NAME", "RATIO", "SINCE", "WORKERS"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

type endpoint struct {
	Host string
	Tags []string
}

func TestEnv_ReadOnlyTransformedValues(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(any) any
		mutate func(any)
		check  func(any) bool
	}{
		{
			name:   "string slice",
			fn:     func(v any) any { return []string{v.(string)} },
			mutate: func(v any) { v.([]string)[0] = "z" },
			check:  func(v any) bool { return v.([]string)[0] == "a" },
		},
		{
			name:   "struct pointer",
			fn:     func(v any) any { return &endpoint{Host: v.(string), Tags: []string{"t"}} },
			mutate: func(v any) { v.(*endpoint).Host = "z" },
			check:  func(v any) bool { return v.(*endpoint).Host == "a" },
		},
		{
			name:   "typed map",
			fn:     func(v any) any { return map[string]int{v.(string): 1} },
			mutate: func(v any) { v.(map[string]int)["a"] = 2 },
			check:  func(v any) bool { return v.(map[string]int)["a"] == 1 },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fn := tc.fn
			set := envskema.Schemas(map[string]schema.Schema{
				"V": schema.Transform(schema.String(), func(_ context.Context, v any) (any, error) { return fn(v), nil }),
			})
			env, err := envskema.Parse(context.Background(), map[string]string{"V": "a"}, set)
			if err != nil {
				t.Fatal(err)
			}
			tc.mutate(env.Get("V"))
			tc.mutate(env.Map()["V"])
			if !tc.check(env.Get("V")) {
				t.Fatalf("stored value changed: %#v", env.Get("V"))
			}
		})
	}
}
