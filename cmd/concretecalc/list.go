package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/straye-as/concrete-calc/internal/calc"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List calculators, their shapes and inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	for _, c := range calc.Calculators() {
		fmt.Fprintf(out, "%s  %s\n", heading(c.Slug), c.Name)

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, s := range c.Shapes {
			fmt.Fprintf(tw, "  %s\t%s\n", s.Name, fieldList(s.Fields))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// fieldList renders inputs as "length, width, steps (count), opening?"
func fieldList(fields []calc.Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		name := f.Name
		switch {
		case f.Integer:
			name += " (count)"
		case f.Area:
			name += " (area)"
		}
		if f.Optional {
			name += "?"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}
