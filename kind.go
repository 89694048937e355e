package envskema

import (
	"fmt"
	"reflect"

	"github.com/reoring/envskema/schema"
)

// KindTag is the discriminator of Kind.
type KindTag int

const (
	KindString KindTag = iota + 1
	KindNumber
	KindBigInt
	KindBoolean
	KindComposite
	KindDate
	KindLiteral
	KindNull
	KindOptional
	KindNullable
	KindEffect
	KindDefault
	// KindPassthrough leaves the raw value untouched (undefined schemas and
	// literals of non-primitive types).
	KindPassthrough
)

func (t KindTag) String() string {
	switch t {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBigInt:
		return "bigint"
	case KindBoolean:
		return "boolean"
	case KindComposite:
		return "composite"
	case KindDate:
		return "date"
	case KindLiteral:
		return "literal"
	case KindNull:
		return "null"
	case KindOptional:
		return "optional"
	case KindNullable:
		return "nullable"
	case KindEffect:
		return "effect"
	case KindDefault:
		return "default"
	case KindPassthrough:
		return "passthrough"
	}
	return fmt.Sprintf("KindTag(%d)", int(t))
}

// Kind describes how a schema's raw string should be coerced. Wrapper kinds
// (Optional, Nullable, Effect, Default) and Literal carry their inner kind.
type Kind struct {
	Tag   KindTag
	Inner *Kind
}

// Base returns the innermost non-wrapper kind. For a Literal this is the
// literal itself.
func (k Kind) Base() Kind {
	for k.isWrapper() {
		k = *k.Inner
	}
	return k
}

func (k Kind) isWrapper() bool {
	switch k.Tag {
	case KindOptional, KindNullable, KindEffect, KindDefault:
		return k.Inner != nil
	}
	return false
}

func (k Kind) String() string {
	if k.Inner == nil {
		return k.Tag.String()
	}
	return k.Tag.String() + "(" + k.Inner.String() + ")"
}

func wrap(tag KindTag, inner Kind) Kind { return Kind{Tag: tag, Inner: &inner} }

// Classify determines the Kind of s by inspecting its Shape, recursing into
// wrapped schemas. Schemas whose raw form cannot be derived from a string
// return a *ConfigError.
func Classify(s schema.Schema) (Kind, error) {
	if s == nil {
		return Kind{}, &ConfigError{Err: ErrNilSchema}
	}
	sh := s.Shape()
	switch sh.Kind {
	case schema.KindString, schema.KindEnum:
		return Kind{Tag: KindString}, nil
	case schema.KindUndefined:
		return Kind{Tag: KindPassthrough}, nil
	case schema.KindNumber:
		return Kind{Tag: KindNumber}, nil
	case schema.KindBigInt:
		return Kind{Tag: KindBigInt}, nil
	case schema.KindBoolean:
		return Kind{Tag: KindBoolean}, nil
	case schema.KindArray, schema.KindObject, schema.KindTuple, schema.KindRecord:
		return Kind{Tag: KindComposite}, nil
	case schema.KindDate:
		return Kind{Tag: KindDate}, nil
	case schema.KindNull:
		return Kind{Tag: KindNull}, nil
	case schema.KindLiteral:
		return classifyLiteral(sh.Value), nil
	case schema.KindOptional, schema.KindNullable, schema.KindEffects, schema.KindDefault:
		if sh.Inner == nil {
			return Kind{}, &ConfigError{Kind: sh.Kind.String(), Err: ErrNilSchema}
		}
		inner, err := Classify(sh.Inner)
		if err != nil {
			return Kind{}, err
		}
		return wrap(wrapperTags[sh.Kind], inner), nil
	case schema.KindUnion, schema.KindIntersection, schema.KindNativeEnum:
		return Kind{}, &ConfigError{Kind: sh.Kind.String(), Err: ErrNotYetSupported}
	}
	return Kind{}, &ConfigError{Kind: sh.Kind.String(), Err: ErrUnsupportedKind}
}

var wrapperTags = map[schema.Kind]KindTag{
	schema.KindOptional: KindOptional,
	schema.KindNullable: KindNullable,
	schema.KindEffects:  KindEffect,
	schema.KindDefault:  KindDefault,
}

func classifyLiteral(v any) Kind {
	if v == nil {
		return Kind{Tag: KindPassthrough}
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.String:
		return wrap(KindLiteral, Kind{Tag: KindString})
	case reflect.Bool:
		return wrap(KindLiteral, Kind{Tag: KindBoolean})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return wrap(KindLiteral, Kind{Tag: KindNumber})
	}
	return Kind{Tag: KindPassthrough}
}
