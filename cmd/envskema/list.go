package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reoring/envskema"
)

func newListCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the declared variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, _, err := f.load()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tDEFAULTS\tDESCRIPTION")
			for _, k := range set.Keys() {
				e := set[k]
				kind := "?"
				if k, err := envskema.Classify(e.Schema()); err == nil {
					kind = k.String()
				} else if s := e.Schema(); s != nil {
					kind = s.Shape().Kind.String() + " (unsupported)"
				}
				modes := strings.Join(e.Defaults().Modes(), ",")
				if modes == "" {
					modes = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k, kind, modes, e.Description())
			}
			return w.Flush()
		},
	}
}
