package envskema_test

import (
	"errors"
	"testing"

	"github.com/reoring/envskema"
)

func mode(name string) envskema.Mode {
	return envskema.DetectMode(map[string]string{"APP_ENV": name}, "APP_ENV", false)
}

func TestResolveDefault_Precedence(t *testing.T) {
	d, err := envskema.ModeDefaults(map[string]any{"production": "p", envskema.Wildcard: "d"})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		mode string
		want any
	}{
		{"production", "p"},
		{"", "d"},
		{"development", "d"},
		{"staging", "d"},
	}
	for _, tc := range cases {
		used, v := envskema.ResolveDefault(d, mode(tc.mode))
		if !used || v != tc.want {
			t.Fatalf("mode %q: used=%v v=%v, want %v", tc.mode, used, v, tc.want)
		}
	}
}

func TestResolveDefault_ArbitraryModeName(t *testing.T) {
	d, _ := envskema.ModeDefaults(map[string]any{"staging": "s"})
	if used, v := envskema.ResolveDefault(d, mode("staging")); !used || v != "s" {
		t.Fatalf("used=%v v=%v", used, v)
	}
	if used, _ := envskema.ResolveDefault(d, mode("production")); used {
		t.Fatalf("no default expected without wildcard")
	}
}

func TestResolveDefault_ExplicitNoValue(t *testing.T) {
	d, _ := envskema.ModeDefaults(map[string]any{"production": nil, envskema.Wildcard: "d"})
	used, v := envskema.ResolveDefault(d, mode("production"))
	if !used || v != nil {
		t.Fatalf("explicit nil must win over wildcard: used=%v v=%v", used, v)
	}

	missing, _ := envskema.ModeDefaults(map[string]any{envskema.Wildcard: "d"})
	if used, v := envskema.ResolveDefault(missing, mode("production")); !used || v != "d" {
		t.Fatalf("missing mode key falls through to wildcard: used=%v v=%v", used, v)
	}
}

func TestResolveDefault_None(t *testing.T) {
	if used, _ := envskema.ResolveDefault(envskema.Defaults{}, mode("production")); used {
		t.Fatalf("zero Defaults never apply")
	}
	d, err := envskema.ModeDefaults(map[string]any{})
	if err != nil || !d.IsZero() {
		t.Fatalf("empty map is no defaults: %v %v", d, err)
	}
}

func TestModeDefaults_Invalid(t *testing.T) {
	_, err := envskema.ModeDefaults(map[string]any{"": 1})
	if !errors.Is(err, envskema.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestDefaults_ModesAndLookup(t *testing.T) {
	d, _ := envskema.ModeDefaults(map[string]any{"test": 1, envskema.Wildcard: 2, "production": nil})
	got := d.Modes()
	want := []string{"_", "production", "test"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if v, ok := d.Lookup("production"); !ok || v != nil {
		t.Fatalf("lookup production: %v %v", v, ok)
	}
	if _, ok := d.Lookup("development"); ok {
		t.Fatalf("development is not declared")
	}
}

func TestDetectMode(t *testing.T) {
	cases := []struct {
		raw    string
		strict bool
		class  envskema.ModeClass
		dev    bool
	}{
		{"production", false, envskema.Production, false},
		{"development", false, envskema.Development, true},
		{"test", false, envskema.Test, false},
		{"", false, envskema.Unclassified, true},
		{"staging", false, envskema.Unclassified, true},
		{"", true, envskema.Unclassified, false},
		{"staging", true, envskema.Unclassified, false},
		{"development", true, envskema.Development, true},
	}
	for _, tc := range cases {
		m := envskema.DetectMode(map[string]string{"APP_ENV": tc.raw}, "APP_ENV", tc.strict)
		if m.Class() != tc.class || m.IsDevelopment() != tc.dev {
			t.Fatalf("%q strict=%v: class=%v dev=%v", tc.raw, tc.strict, m.Class(), m.IsDevelopment())
		}
		if m.Name() != tc.raw {
			t.Fatalf("name %q want %q", m.Name(), tc.raw)
		}
	}
	if m := envskema.DetectMode(map[string]string{"NODE_ENV": "production"}, "NODE_ENV", false); !m.IsProduction() {
		t.Fatalf("custom mode variable not honored")
	}
}
