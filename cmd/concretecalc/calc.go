package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/straye-as/concrete-calc/internal/calc"
	"github.com/straye-as/concrete-calc/internal/domain"
	"github.com/straye-as/concrete-calc/internal/mapper"
)

type calcOptions struct {
	shape     string
	unit      string
	set       []string
	waste     float64
	mix       string
	dryFactor float64
	display   string
	quantity  int
	price     float64
	json      bool
}

func newCalcCmd() *cobra.Command {
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc <calculator>",
		Short: "Calculate concrete for one element",
		Example: `  concretecalc calc slab --unit ft --set length=10 --set width=10 --set thickness=4in --waste 5
  concretecalc calc column --shape round --set diameter=30cm --set height=3 --quantity 4 --mix M20
  concretecalc calc footing --set length=1.2 --set width=1.2 --set depth=0.4 --display yd3 --price 150 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.shape, "shape", "", "Shape variant (defaults to the calculator's first shape)")
	f.StringVarP(&opts.unit, "unit", "u", "m", "Default unit for dimensions without a suffix")
	f.StringArrayVarP(&opts.set, "set", "s", nil, "Dimension as name=value[unit], repeatable")
	f.Float64Var(&opts.waste, "waste", 0, "Waste allowance in percent")
	f.StringVar(&opts.mix, "mix", "", "Nominal mix grade for material take-off, e.g. M15")
	f.Float64Var(&opts.dryFactor, "dry-factor", 0, "Dry volume factor (default 1.54)")
	f.StringVarP(&opts.display, "display", "d", "m3", "Display volume unit: m3, ft3, yd3 or l")
	f.IntVarP(&opts.quantity, "quantity", "n", 1, "Number of identical elements")
	f.Float64Var(&opts.price, "price", 0, "Price per display unit of concrete")
	f.BoolVar(&opts.json, "json", false, "Print the result as JSON")

	return cmd
}

func runCalc(cmd *cobra.Command, slug string, opts *calcOptions) error {
	dims, err := parseDimensions(opts.set)
	if err != nil {
		return err
	}

	in, err := mapper.ToCalcRequest(slug, &domain.CalculateRequest{
		Shape:           opts.shape,
		Unit:            opts.unit,
		Dimensions:      dims,
		Quantity:        opts.quantity,
		WastePercent:    opts.waste,
		Mix:             opts.mix,
		DryVolumeFactor: opts.dryFactor,
		DisplayUnit:     opts.display,
		PricePerUnit:    opts.price,
	})
	if err != nil {
		return err
	}

	result, err := calc.Calculate(in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printResult(out, result)
}

// parseDimensions turns "thickness=4in" into {Value: 4, Unit: "in"}
func parseDimensions(pairs []string) (map[string]calc.Length, error) {
	dims := make(map[string]calc.Length, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		raw = strings.TrimSpace(raw)
		if !ok || name == "" || raw == "" {
			return nil, fmt.Errorf("invalid --set %q, expected name=value[unit]", pair)
		}

		split := strings.IndexFunc(raw, func(r rune) bool {
			return !(r >= '0' && r <= '9' || r == '.' || r == '-' || r == '+')
		})
		number, unit := raw, ""
		if split >= 0 {
			number, unit = raw[:split], strings.TrimSpace(raw[split:])
		}

		value, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", name, raw)
		}
		dims[name] = calc.Length{Value: value, Unit: calc.LengthUnit(unit)}
	}
	return dims, nil
}

func printResult(out io.Writer, r *calc.Result) error {
	c, err := calc.Lookup(r.Calculator)
	if err != nil {
		return err
	}
	title := c.Name
	if len(c.Shapes) > 1 {
		title += " (" + r.Shape + ")"
	}
	fmt.Fprintln(out, heading(title))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, line := range r.Inputs {
		if line.Unit == "" {
			fmt.Fprintf(tw, "  %s\t%s\t\n", line.Label, num(line.Value))
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s %s\t%s\n", line.Label, num(line.Value), line.Unit, muted(num(line.Meters)+" m"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tm3\tft3\tyd3\t")
	writeVolume(tw, "each", r.UnitVolume)
	if r.Quantity > 1 {
		writeVolume(tw, fmt.Sprintf("x%d", r.Quantity), r.NetVolume)
	}
	writeVolume(tw, fmt.Sprintf("+%s%% waste", num(r.WastePercent)), r.GrossVolume)
	if err := tw.Flush(); err != nil {
		return err
	}

	g := r.GrossVolume
	fmt.Fprintf(out, "\nOrder %s\n", emph(num(g.Display)+" "+string(g.DisplayUnit)))

	if m := r.Materials; m != nil {
		fmt.Fprintf(out, "\n%s %s\n", heading("Materials"),
			muted(fmt.Sprintf("%s %s, dry factor %s", m.Mix, m.Ratio, num(m.DryVolumeFactor))))
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  cement\t%s kg\t%d bags of %s kg\n", num(m.CementKg), m.CementBags, num(calc.CementBagKg))
		fmt.Fprintf(tw, "  sand\t%s m3\t%s t\n", num(m.SandM3), num(m.SandTonnes))
		fmt.Fprintf(tw, "  aggregate\t%s m3\t%s t\n", num(m.AggregateM3), num(m.AggregateTonnes))
		fmt.Fprintf(tw, "  water\t%s l\t\n", num(m.WaterLiters))
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(r.Bags) > 0 {
		fmt.Fprintf(out, "\n%s\n", heading("Premix bags"))
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, b := range r.Bags {
			fmt.Fprintf(tw, "  %s\t%d\n", b.Label, b.Count)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if cost := r.Cost; cost != nil {
		fmt.Fprintf(out, "\nCost %s %s\n", emph(cost.Total.StringFixed(2)),
			muted(fmt.Sprintf("at %s per %s", cost.PricePerUnit.StringFixed(2), cost.Unit)))
	}
	return nil
}

func writeVolume(w io.Writer, label string, v calc.Volume) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", label, num(v.CubicMeters), num(v.CubicFeet), num(v.CubicYards))
}
