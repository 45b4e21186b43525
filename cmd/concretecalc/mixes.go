package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/straye-as/concrete-calc/internal/calc"
)

func newMixesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mixes",
		Short: "Show nominal mixes and premix bag sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMixes(cmd)
		},
	}
}

func runMixes(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, heading("Nominal mixes"))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  grade\tcement:sand:aggregate\twater/cement")
	for _, m := range calc.NominalMixes() {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", m.Grade, m.Ratio(), num(m.WaterRatio))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "  %s\n\n", muted(fmt.Sprintf("dry volume factor %s (allowed %s to %s)",
		num(calc.DefaultDryVolumeFactor), num(calc.MinDryVolumeFactor), num(calc.MaxDryVolumeFactor))))

	fmt.Fprintln(out, heading("Premix bags"))
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, b := range calc.PremixBags() {
		fmt.Fprintf(tw, "  %s\t%.4f m3 per bag\n", b.Label, b.YieldM3)
	}
	return tw.Flush()
}
