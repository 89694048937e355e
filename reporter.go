package envskema

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/envskema/schema"
)

// ReportHeader opens every rendered report.
const ReportHeader = "Errors found while parsing environment:"

// Formatters decorate report tokens, typically with terminal colors. A nil
// function leaves the token unchanged.
type Formatters struct {
	VarName       func(string) string // variable name
	ObjKey        func(string) string // field name inside a composite value
	ReceivedValue func(string) string // rendered raw value
	DefaultValue  func(string) string // rendered default value
	Header        func(string) string // report header
}

func (f Formatters) withIdentity() Formatters {
	id := func(s string) string { return s }
	if f.VarName == nil {
		f.VarName = id
	}
	if f.ObjKey == nil {
		f.ObjKey = id
	}
	if f.ReceivedValue == nil {
		f.ReceivedValue = id
	}
	if f.DefaultValue == nil {
		f.DefaultValue = id
	}
	if f.Header == nil {
		f.Header = id
	}
	return f
}

// Reporter renders failures into the message of a *ParseError.
type Reporter func(failures []Failure, set SchemaSet) string

// NewReporter returns the default Reporter using f.
func NewReporter(f Formatters) Reporter {
	return func(failures []Failure, set SchemaSet) string {
		return Report(failures, set, f)
	}
}

func indent(s string, n int) string { return strings.Repeat(" ", n) + s }

// Report renders failures in order under ReportHeader, one block per
// variable separated by blank lines.
func Report(failures []Failure, set SchemaSet, f Formatters) string {
	f = f.withIdentity()
	blocks := make([]string, 0, len(failures))
	for _, fl := range failures {
		lines := []string{titleLine(fl.Key, set, f)}
		lines = append(lines, errorLines(fl.Err, f)...)

		received := "undefined"
		if fl.Received != nil {
			received = renderValue(*fl.Received)
		}
		lines = append(lines, indent(fmt.Sprintf("(received %s)", f.ReceivedValue(received)), 2))

		if fl.DefaultUsed {
			def := "undefined"
			if fl.Default != nil {
				def = renderValue(fl.Default)
			}
			lines = append(lines, indent(fmt.Sprintf("(used default of %s)", f.DefaultValue(def)), 2))
		}

		for i, l := range lines {
			lines[i] = indent(l, 2)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return f.Header(ReportHeader) + "\n" + strings.Join(blocks, "\n\n") + "\n"
}

func titleLine(key string, set SchemaSet, f Formatters) string {
	title := "[" + f.VarName(key) + "]:"
	if e, ok := set[key]; ok && e.Description() != "" {
		title += " " + e.Description()
	}
	return title
}

// errorLines lists root issues first, then issues grouped by the first
// segment of their path under a shared heading.
func errorLines(err error, f Formatters) []string {
	if err == nil {
		return nil
	}
	iss, ok := schema.AsIssues(err)
	if !ok {
		var lines []string
		for _, l := range strings.Split(err.Error(), "\n") {
			lines = append(lines, indent(l, 2))
		}
		return lines
	}

	var lines []string
	var fieldOrder []string
	fieldMsgs := map[string][]string{}
	for _, it := range iss {
		if it.IsRoot() {
			lines = append(lines, indent(it.Message, 2))
			continue
		}
		field := firstSegment(it.Path)
		if _, seen := fieldMsgs[field]; !seen {
			fieldOrder = append(fieldOrder, field)
		}
		fieldMsgs[field] = append(fieldMsgs[field], it.Message)
	}
	if len(fieldOrder) > 0 {
		lines = append(lines, indent("Errors on object keys:", 2))
		for _, field := range fieldOrder {
			lines = append(lines, indent("["+f.ObjKey(field)+"]:", 4))
			for _, msg := range fieldMsgs[field] {
				lines = append(lines, indent(msg, 6))
			}
		}
	}
	return lines
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// firstSegment returns the unescaped first reference token of a JSON Pointer.
func firstSegment(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return pointerUnescaper.Replace(p)
}

// renderValue renders v as JSON, or in Go syntax when JSON cannot represent
// it. HTML characters are kept as typed.
func renderValue(v any) string {
	b, err := json.MarshalNoEscape(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}
