package calc

import (
	"fmt"
	"math"
	"strings"
)

// Bulk densities and packaging used for material take-off.
const (
	CementDensityKgPerM3    = 1440.0
	SandDensityKgPerM3      = 1600.0
	AggregateDensityKgPerM3 = 1500.0
	CementBagKg             = 50.0
)

// NominalMix is a fixed cement:sand:aggregate recipe
type NominalMix struct {
	Grade      string  `json:"grade" yaml:"grade"`
	Cement     float64 `json:"cement" yaml:"cement"`
	Sand       float64 `json:"sand" yaml:"sand"`
	Aggregate  float64 `json:"aggregate" yaml:"aggregate"`
	WaterRatio float64 `json:"waterCementRatio" yaml:"waterCementRatio"`
}

// Parts returns the sum of the ratio parts
func (m NominalMix) Parts() float64 {
	return m.Cement + m.Sand + m.Aggregate
}

// Ratio formats the recipe as "1:2:4"
func (m NominalMix) Ratio() string {
	return fmt.Sprintf("%s:%s:%s", trimFloat(m.Cement), trimFloat(m.Sand), trimFloat(m.Aggregate))
}

var nominalMixes = []NominalMix{
	{Grade: "M5", Cement: 1, Sand: 5, Aggregate: 10, WaterRatio: 0.60},
	{Grade: "M7.5", Cement: 1, Sand: 4, Aggregate: 8, WaterRatio: 0.60},
	{Grade: "M10", Cement: 1, Sand: 3, Aggregate: 6, WaterRatio: 0.55},
	{Grade: "M15", Cement: 1, Sand: 2, Aggregate: 4, WaterRatio: 0.50},
	{Grade: "M20", Cement: 1, Sand: 1.5, Aggregate: 3, WaterRatio: 0.45},
}

// NominalMixes returns the supported recipes from leanest to richest.
func NominalMixes() []NominalMix {
	out := make([]NominalMix, len(nominalMixes))
	copy(out, nominalMixes)
	return out
}

// LookupMix finds a nominal mix by grade ("M15", "m15" and "15" all match).
func LookupMix(grade string) (NominalMix, error) {
	g := strings.ToUpper(strings.TrimSpace(grade))
	if g != "" && !strings.HasPrefix(g, "M") {
		g = "M" + g
	}
	for _, m := range nominalMixes {
		if m.Grade == g {
			return m, nil
		}
	}
	return NominalMix{}, fmt.Errorf("%w: %q", ErrUnknownMix, grade)
}

// Materials is the dry material take-off for a wet concrete volume
type Materials struct {
	Mix             string  `json:"mix"`
	Ratio           string  `json:"ratio"`
	DryVolumeFactor float64 `json:"dryVolumeFactor"`
	DryVolumeM3     float64 `json:"dryVolumeM3"`
	CementM3        float64 `json:"cementM3"`
	CementKg        float64 `json:"cementKg"`
	CementBags      int     `json:"cementBags"`
	SandM3          float64 `json:"sandM3"`
	SandTonnes      float64 `json:"sandTonnes"`
	AggregateM3     float64 `json:"aggregateM3"`
	AggregateTonnes float64 `json:"aggregateTonnes"`
	WaterLiters     float64 `json:"waterLiters"`
}

// MaterialsFor splits wetM3 into cement, sand, aggregate and water for the
// given mix. A zero dryFactor uses DefaultDryVolumeFactor.
func MaterialsFor(wetM3 float64, mix NominalMix, dryFactor float64) (Materials, error) {
	if err := nonNegative("volume", wetM3); err != nil {
		return Materials{}, err
	}
	factor, err := ResolveDryFactor(dryFactor)
	if err != nil {
		return Materials{}, err
	}

	dry := wetM3 * factor
	parts := mix.Parts()
	cementM3 := dry * mix.Cement / parts
	sandM3 := dry * mix.Sand / parts
	aggregateM3 := dry * mix.Aggregate / parts
	cementKg := cementM3 * CementDensityKgPerM3

	return Materials{
		Mix:             mix.Grade,
		Ratio:           mix.Ratio(),
		DryVolumeFactor: factor,
		DryVolumeM3:     dry,
		CementM3:        cementM3,
		CementKg:        cementKg,
		CementBags:      int(math.Ceil(cementKg / CementBagKg)),
		SandM3:          sandM3,
		SandTonnes:      sandM3 * SandDensityKgPerM3 / 1000,
		AggregateM3:     aggregateM3,
		AggregateTonnes: aggregateM3 * AggregateDensityKgPerM3 / 1000,
		WaterLiters:     cementKg * mix.WaterRatio,
	}, nil
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
