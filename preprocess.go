package envskema

import (
	"math/big"
	"regexp"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/reoring/envskema/schema"
)

// PreprocessFunc converts a raw environment value into the input expected by
// a schema. A nil raw means the variable is absent.
type PreprocessFunc func(raw *string) (any, error)

var (
	numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	bigIntPattern = regexp.MustCompile(`^\d+$`)
)

var (
	trueWords  = map[string]bool{"true": true, "yes": true, "1": true}
	falseWords = map[string]bool{"false": true, "no": true, "0": true}
)

// Preprocessor returns the coercion function for k.
func Preprocessor(k Kind) (PreprocessFunc, error) {
	switch k.Tag {
	case KindString, KindPassthrough:
		return identity, nil
	case KindNumber:
		return toNumber, nil
	case KindBigInt:
		return toBigInt, nil
	case KindBoolean:
		return toBool, nil
	case KindComposite:
		return fromJSON, nil
	case KindDate:
		return toDate, nil
	case KindNull:
		return func(raw *string) (any, error) {
			if raw == nil {
				return schema.Null, nil
			}
			return *raw, nil
		}, nil
	case KindLiteral, KindEffect, KindDefault:
		if k.Inner == nil {
			return nil, &ConfigError{Kind: k.Tag.String(), Err: ErrNilSchema}
		}
		return Preprocessor(*k.Inner)
	case KindOptional, KindNullable:
		if k.Inner == nil {
			return nil, &ConfigError{Kind: k.Tag.String(), Err: ErrNilSchema}
		}
		inner, err := Preprocessor(*k.Inner)
		if err != nil {
			return nil, err
		}
		var absent any // Optional: no value
		if k.Tag == KindNullable {
			absent = schema.Null
		}
		return func(raw *string) (any, error) {
			if raw == nil {
				return absent, nil
			}
			return inner(raw)
		}, nil
	}
	return nil, &ConfigError{Kind: k.Tag.String(), Err: ErrUnsupportedKind}
}

func identity(raw *string) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return *raw, nil
}

func toNumber(raw *string) (any, error) {
	if raw == nil {
		return nil, schema.Issues{schema.NewIssue(schema.CodeRequired, nil)}
	}
	if !numberPattern.MatchString(*raw) {
		return nil, schema.Issues{schema.NewIssue(schema.CodeNotANumber, nil)}
	}
	f, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, schema.Issues{{Path: "/", Code: schema.CodeNotANumber, Message: err.Error(), Cause: err}}
	}
	return f, nil
}

func toBigInt(raw *string) (any, error) {
	if raw == nil {
		return nil, schema.Issues{schema.NewIssue(schema.CodeRequired, nil)}
	}
	if !bigIntPattern.MatchString(*raw) {
		return nil, schema.Issues{schema.NewIssue(schema.CodeNotABigInt, nil)}
	}
	n, _ := new(big.Int).SetString(*raw, 10)
	return n, nil
}

func toBool(raw *string) (any, error) {
	if raw == nil {
		return nil, schema.Issues{schema.NewIssue(schema.CodeRequired, nil)}
	}
	switch {
	case trueWords[*raw]:
		return true, nil
	case falseWords[*raw]:
		return false, nil
	}
	return nil, schema.Issues{schema.NewIssue(schema.CodeNotABoolean,
		map[string]string{"expected": "true/yes/1 or false/no/0"})}
}

// fromJSON decodes composite values. Neither an absent value nor the empty
// string is JSON; both pass through for the schema to judge.
func fromJSON(raw *string) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if *raw == "" {
		return "", nil
	}
	var v any
	if err := json.Unmarshal([]byte(*raw), &v); err != nil {
		return nil, schema.Issues{{Path: "/", Code: schema.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return nullify(v), nil
}

// nullify replaces decoded JSON nulls with schema.Null so schemas can tell
// them apart from missing fields.
func nullify(v any) any {
	switch x := v.(type) {
	case nil:
		return schema.Null
	case map[string]any:
		for k, vv := range x {
			x[k] = nullify(vv)
		}
	case []any:
		for i, vv := range x {
			x[i] = nullify(vv)
		}
	}
	return v
}

func toDate(raw *string) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if *raw == "" {
		return "", nil
	}
	if t, ok := schema.ParseDate(*raw); ok {
		return t, nil
	}
	return schema.InvalidDate(*raw), nil
}
