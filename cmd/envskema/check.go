package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/envskema"
)

func newCheckCmd(f *rootFlags, log *logrus.Logger) *cobra.Command {
	var printJSON bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the environment and report every invalid variable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, opts, err := f.load()
			if err != nil {
				return err
			}
			raw, err := f.environ(log)
			if err != nil {
				return err
			}
			opts = append(opts, envskema.WithFormatters(f.formatters()), envskema.WithLogger(log))

			env, err := envskema.Parse(cmd.Context(), raw, set, opts...)
			if pe, ok := envskema.AsParseError(err); ok {
				fmt.Fprint(cmd.OutOrStdout(), pe.Error())
				return &exitError{code: 1}
			}
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"vars": env.Len(), "mode": env.Mode().String()}).Info("environment is valid")
			if !printJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d variable(s) valid\n", env.Len())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			if err := enc.Encode(env.Map()); err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printJSON, "json", false, "print the parsed values as JSON")
	return cmd
}
