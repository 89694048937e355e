// Package manifest declares a schema set in YAML.
//
//	mode_var: APP_ENV
//	vars:
//	  HOST:
//	    type: string
//	    description: Public hostname
//	    defaults: {production: example.com, _: localhost}
//	  PORT:
//	    type: port
//	    default: 8080
//	  FEATURES:
//	    type: array
//	    items: {type: string}
//
// Supported types are string, number, int, bigint, bool, date, url, email,
// host, port, enum, literal, object, array, tuple and record.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"os"
	"regexp"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reoring/envskema"
	"github.com/reoring/envskema/schema"
)

// ErrUnknownType is returned for a type name the manifest cannot build.
var ErrUnknownType = errors.New("manifest: unknown type")

// Manifest is the decoded YAML document.
type Manifest struct {
	ModeVar    string          `yaml:"mode_var"`
	StrictMode bool            `yaml:"strict_mode"`
	Vars       map[string]*Var `yaml:"vars"`
}

// Var declares one variable, or one nested field/element.
type Var struct {
	Type        string          `yaml:"type"`
	Description string          `yaml:"description"`
	Optional    bool            `yaml:"optional"`
	Nullable    bool            `yaml:"nullable"`
	Default     *yaml.Node      `yaml:"default"`
	Defaults    map[string]any  `yaml:"defaults"`
	Min         *float64        `yaml:"min"`
	Max         *float64        `yaml:"max"`
	Pattern     string          `yaml:"pattern"`
	Format      string          `yaml:"format"`
	Values      []string        `yaml:"values"`
	Value       any             `yaml:"value"`
	Items       *Var            `yaml:"items"`
	Elements    []*Var          `yaml:"elements"`
	Properties  map[string]*Var `yaml:"properties"`
}

// Load reads and decodes a manifest file.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return Parse(b)
}

// Parse decodes a manifest. Unknown fields are rejected.
func Parse(b []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if len(m.Vars) == 0 {
		return nil, errors.New("manifest: no vars declared")
	}
	return &m, nil
}

// Options returns the parse options the manifest asks for.
func (m *Manifest) Options() []envskema.Option {
	var opts []envskema.Option
	if m.ModeVar != "" {
		opts = append(opts, envskema.WithModeVar(m.ModeVar))
	}
	if m.StrictMode {
		opts = append(opts, envskema.WithStrictMode())
	}
	return opts
}

// SchemaSet builds the declared entries. Variables with a description or
// mode defaults become Detailed entries.
func (m *Manifest) SchemaSet() (envskema.SchemaSet, error) {
	names := make([]string, 0, len(m.Vars))
	for k := range m.Vars {
		names = append(names, k)
	}
	sort.Strings(names)

	set := make(envskema.SchemaSet, len(m.Vars))
	for _, name := range names {
		v := m.Vars[name]
		if v == nil {
			return nil, fmt.Errorf("manifest: var %s: empty declaration", name)
		}
		s, err := v.Build()
		if err != nil {
			return nil, fmt.Errorf("manifest: var %s: %w", name, err)
		}
		if v.Description == "" && v.Defaults == nil {
			set[name] = envskema.Simple(s)
			continue
		}
		opts := []envskema.EntryOption{envskema.Description(v.Description)}
		if v.Defaults != nil {
			defs := make(map[string]any, len(v.Defaults))
			for mode, dv := range v.Defaults {
				defs[mode] = v.convertDefault(dv)
			}
			opts = append(opts, envskema.WithDefaults(defs))
		}
		set[name] = envskema.Detailed(s, opts...)
	}
	return set, nil
}

// Build returns the schema described by v, wrapped by default, nullable and
// optional in that order.
func (v *Var) Build() (schema.Schema, error) {
	s, err := v.base()
	if err != nil {
		return nil, err
	}
	if v.Default != nil {
		var dv any
		if err := v.Default.Decode(&dv); err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
		s = schema.Default(s, v.convertDefault(dv))
	}
	if v.Nullable {
		s = schema.Nullable(s)
	}
	if v.Optional {
		s = schema.Optional(s)
	}
	return s, nil
}

func (v *Var) base() (schema.Schema, error) {
	switch v.Type {
	case "string", "":
		return v.stringSchema(schema.String())
	case "url":
		return v.stringSchema(envskema.URL())
	case "email":
		return v.stringSchema(envskema.Email())
	case "host":
		return v.stringSchema(envskema.Host())
	case "number", "int", "port":
		n := schema.Number()
		switch v.Type {
		case "int":
			n = n.Int()
		case "port":
			n = envskema.Port()
		}
		if v.Min != nil {
			n = n.Min(*v.Min)
		}
		if v.Max != nil {
			n = n.Max(*v.Max)
		}
		return n, nil
	case "bigint":
		return schema.BigInt(), nil
	case "bool", "boolean":
		return schema.Bool(), nil
	case "date":
		return schema.Date(), nil
	case "enum":
		if len(v.Values) == 0 {
			return nil, errors.New("enum: values required")
		}
		return schema.Enum(v.Values...), nil
	case "literal":
		return schema.Literal(v.Value), nil
	case "array":
		if v.Items == nil {
			return nil, errors.New("array: items required")
		}
		elem, err := v.Items.Build()
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		a := schema.Array(elem)
		if v.Min != nil {
			a = a.Min(int(*v.Min))
		}
		if v.Max != nil {
			a = a.Max(int(*v.Max))
		}
		return a, nil
	case "tuple":
		elems := make([]schema.Schema, len(v.Elements))
		for i, e := range v.Elements {
			s, err := e.Build()
			if err != nil {
				return nil, fmt.Errorf("elements[%d]: %w", i, err)
			}
			elems[i] = s
		}
		return schema.Tuple(elems...), nil
	case "object":
		fields := make(map[string]schema.Schema, len(v.Properties))
		for k, p := range v.Properties {
			s, err := p.Build()
			if err != nil {
				return nil, fmt.Errorf("properties.%s: %w", k, err)
			}
			fields[k] = s
		}
		return schema.Object(fields), nil
	case "record":
		if v.Items == nil {
			return schema.Record(schema.Any()), nil
		}
		val, err := v.Items.Build()
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		return schema.Record(val), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownType, v.Type)
}

func (v *Var) stringSchema(s *schema.StringSchema) (schema.Schema, error) {
	if v.Min != nil {
		s = s.Min(int(*v.Min))
	}
	if v.Max != nil {
		s = s.Max(int(*v.Max))
	}
	if v.Pattern != "" {
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		s = s.Pattern(re)
	}
	if v.Format != "" {
		s = s.Format(v.Format)
	}
	return s, nil
}

// convertDefault turns YAML scalars into the input the schema expects.
// Dates are written as strings; big integers as strings or ints.
func (v *Var) convertDefault(dv any) any {
	switch v.Type {
	case "date":
		switch t := dv.(type) {
		case string:
			if parsed, ok := schema.ParseDate(t); ok {
				return parsed
			}
			return schema.InvalidDate(t)
		case time.Time:
			return t
		}
	case "bigint":
		if s, ok := dv.(string); ok {
			if n, ok := new(big.Int).SetString(s, 10); ok {
				return n
			}
		}
	}
	return dv
}
