package envskema

import (
	"context"
	"errors"
	"io"
	"maps"

	"github.com/sirupsen/logrus"

	"github.com/reoring/envskema/schema"
)

// Option configures Parse.
type Option func(*options)

type options struct {
	modeVar  string
	strict   bool
	reporter Reporter
	logger   logrus.FieldLogger
}

// WithModeVar names the variable that selects the execution mode
// (default DefaultModeVar).
func WithModeVar(name string) Option { return func(o *options) { o.modeVar = name } }

// WithStrictMode stops unset or unrecognized modes from counting as
// development.
func WithStrictMode() Option { return func(o *options) { o.strict = true } }

// WithReporter replaces the report renderer.
func WithReporter(r Reporter) Option { return func(o *options) { o.reporter = r } }

// WithFormatters renders the report with the given token decorators.
func WithFormatters(f Formatters) Option {
	return func(o *options) { o.reporter = NewReporter(f) }
}

// WithLogger receives one debug entry per variable. Values are never logged.
func WithLogger(l logrus.FieldLogger) Option { return func(o *options) { o.logger = l } }

func newOptions(opts []Option) options {
	o := options{modeVar: DefaultModeVar}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = NewReporter(Formatters{})
	}
	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}
	return o
}

// Parse validates raw against set. Every variable is evaluated; when any
// fails, the returned *ParseError carries a report naming each failure. A
// *ConfigError aborts the parse as soon as an unusable schema is found.
func Parse(ctx context.Context, raw map[string]string, set SchemaSet, opts ...Option) (*Env, error) {
	o := newOptions(opts)
	if err := set.Validate(); err != nil {
		return nil, err
	}
	snapshot := maps.Clone(raw)
	mode := DetectMode(snapshot, o.modeVar, o.strict)

	values := make(map[string]any, len(set))
	var failures []Failure
	for _, key := range set.Keys() {
		var received *string
		if v, ok := snapshot[key]; ok {
			received = &v
		}
		f := Failure{Key: key, Received: received}
		v, err := parseEntry(ctx, set[key], received, mode, &f)
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			if cerr.Key == "" {
				cerr.Key = key
			}
			return nil, cerr
		}
		log := o.logger.WithFields(logrus.Fields{
			"key":          key,
			"present":      received != nil,
			"default_used": f.DefaultUsed,
			"mode":         mode.String(),
		})
		if err != nil {
			log.Debug("envskema: variable failed validation")
			f.Err = err
			failures = append(failures, f)
			continue
		}
		log.Debug("envskema: variable accepted")
		values[key] = v
	}

	if len(failures) > 0 {
		keys := make([]string, len(failures))
		for i, f := range failures {
			keys[i] = f.Key
		}
		return nil, &ParseError{report: o.reporter(failures, set), keys: keys}
	}
	return newEnv(values, mode), nil
}

// MustParse is like Parse but panics on error.
func MustParse(ctx context.Context, raw map[string]string, set SchemaSet, opts ...Option) *Env {
	env, err := Parse(ctx, raw, set, opts...)
	if err != nil {
		panic(err)
	}
	return env
}

// parseEntry evaluates one variable and records default usage on f.
func parseEntry(ctx context.Context, e Entry, received *string, mode Mode, f *Failure) (any, error) {
	s := e.Schema()
	if received == nil {
		if !e.IsDetailed() {
			// The wrapper's own default is taken once so the value reported
			// on failure is the value that was validated.
			if d, ok := s.(schema.Defaulter); ok && s.Shape().Kind == schema.KindDefault {
				f.DefaultUsed, f.Default = true, d.DefaultValue()
				return s.Parse(ctx, f.Default)
			}
		} else if used, dv := ResolveDefault(e.Defaults(), mode); used {
			f.DefaultUsed, f.Default = true, dv
			return s.Parse(ctx, dv)
		}
	}
	return preprocessAndParse(ctx, s, received)
}

func preprocessAndParse(ctx context.Context, s schema.Schema, received *string) (any, error) {
	kind, err := Classify(s)
	if err != nil {
		return nil, err
	}
	pre, err := Preprocessor(kind)
	if err != nil {
		return nil, err
	}
	candidate, err := pre(received)
	if err != nil {
		return nil, err
	}
	return s.Parse(ctx, candidate)
}
