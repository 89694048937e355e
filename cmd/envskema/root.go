package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/envskema"
	"github.com/reoring/envskema/manifest"
)

// exitError carries a process exit code for failures already reported to
// the user.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

type rootFlags struct {
	manifest   string
	envFiles   []string
	noProcess  bool
	noColor    bool
	logLevel   string
	modeVar    string
	strictMode bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	root := &cobra.Command{
		Use:           "envskema",
		Short:         "Validate environment variables against a YAML manifest",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lvl, err := logrus.ParseLevel(f.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.manifest, "manifest", "m", "env.yaml", "manifest file declaring the variables")
	pf.StringSliceVarP(&f.envFiles, "env-file", "e", nil, ".env files to read (process env wins)")
	pf.BoolVar(&f.noProcess, "no-process-env", false, "ignore the process environment")
	pf.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&f.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&f.modeVar, "mode-var", "", "variable selecting the execution mode (overrides the manifest)")
	pf.BoolVar(&f.strictMode, "strict-mode", false, "do not treat unknown modes as development")

	root.AddCommand(newCheckCmd(f, log), newListCmd(f))
	return root
}

// load reads the manifest and builds the schema set and parse options.
func (f *rootFlags) load() (envskema.SchemaSet, []envskema.Option, error) {
	m, err := manifest.Load(f.manifest)
	if err != nil {
		return nil, nil, err
	}
	set, err := m.SchemaSet()
	if err != nil {
		return nil, nil, err
	}
	opts := m.Options()
	if f.modeVar != "" {
		opts = append(opts, envskema.WithModeVar(f.modeVar))
	}
	if f.strictMode {
		opts = append(opts, envskema.WithStrictMode())
	}
	return set, opts, nil
}

// environ merges the .env files (later files win) under the process
// environment.
func (f *rootFlags) environ(log logrus.FieldLogger) (map[string]string, error) {
	env := map[string]string{}
	for _, path := range f.envFiles {
		vals, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		log.WithFields(logrus.Fields{"file": path, "vars": len(vals)}).Info("loaded env file")
		for k, v := range vals {
			env[k] = v
		}
	}
	if !f.noProcess {
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				env[k] = v
			}
		}
	}
	return env, nil
}

func (f *rootFlags) formatters() envskema.Formatters {
	if f.noColor {
		return envskema.Formatters{}
	}
	return envskema.ColorFormatters()
}
