package main

import (
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/straye-as/concrete-calc/internal/calc"
)

var (
	heading = color.New(color.Bold, color.FgCyan).SprintFunc()
	emph    = color.New(color.Bold, color.FgGreen).SprintFunc()
	muted   = color.New(color.Faint).SprintFunc()
)

func newRootCmd() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "concretecalc",
		Short: "Concrete volume, materials and cost calculator",
		Long: `concretecalc computes the concrete needed for slabs, footings, columns,
walls, stairs, beams, tanks and piers.

Dimensions are given with --set name=value, optionally with a unit suffix
(--set thickness=4in). Results are reported in cubic metres, cubic feet and
cubic yards, with optional waste allowance, nominal mix materials, premix
bag counts and cost.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")

	root.AddCommand(newListCmd())
	root.AddCommand(newCalcCmd())
	root.AddCommand(newMixesCmd())
	return root
}

// num formats a value rounded for display without trailing zeros
func num(v float64) string {
	return strconv.FormatFloat(calc.Round(v), 'f', -1, 64)
}
