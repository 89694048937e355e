package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/envskema/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeTooShort       = "too_short"
	CodeTooLong        = "too_long"
	CodePattern        = "pattern"
	CodeInvalidFormat  = "invalid_format"
	CodeInvalidEnum    = "invalid_enum"
	CodeInvalidLiteral = "invalid_literal"
	CodeInvalidDate    = "invalid_date"
	CodeNotInteger     = "not_integer"
	CodeInvalidUnion   = "invalid_union"
	CodeParseError     = "parse_error"
	CodeCustom         = "custom"
	// String coercion failures raised before a schema sees the value.
	CodeNotANumber  = "not_a_number"
	CodeNotABigInt  = "not_a_bigint"
	CodeNotABoolean = "not_a_boolean"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price). "" or "/" is the root.
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. too_big at /port: Value must be ...
		fmt.Fprintf(b, "%s at %s: %s", it.Code, it.pathOrRoot(), it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

func (it Issue) pathOrRoot() string {
	if it.Path == "" {
		return "/"
	}
	return it.Path
}

// IsRoot reports whether the issue is attached to the value itself rather
// than to one of its fields or elements.
func (it Issue) IsRoot() bool { return it.Path == "" || it.Path == "/" }

// Unwrap returns the underlying causes so errors.Is/As can see through Issues.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// NewIssue builds a root issue whose message is looked up through i18n.
func NewIssue(code string, data map[string]string) Issue {
	return Issue{Path: "/", Code: code, Message: i18n.T(code, data)}
}

func fail(code string, data map[string]string) error {
	return Issues{NewIssue(code, data)}
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with CodeCustom.
func issuesFromErr(path string, err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Path: path, Code: CodeCustom, Message: err.Error(), Cause: err}}
}

// pointerEscaper escapes a JSON Pointer reference token (RFC 6901).
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// rebase moves child issues under the given path segment.
func rebase(seg string, err error) Issues {
	base := "/" + pointerEscaper.Replace(seg)
	var out Issues
	for _, it := range issuesFromErr("/", err) {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		out = AppendIssues(out, Issue{Path: p, Code: it.Code, Message: it.Message, Cause: it.Cause})
	}
	return out
}
