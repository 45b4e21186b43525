package calc

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// MaxQuantity bounds the number of identical elements per calculation
	MaxQuantity = 10000

	// DisplayPlaces is the number of decimals volumes are reported with
	DisplayPlaces = 2
)

// Request is the full input of one calculation
type Request struct {
	Calculator string            `json:"calculator"`
	Shape      string            `json:"shape,omitempty"`
	Unit       LengthUnit        `json:"unit"`
	Dimensions map[string]Length `json:"dimensions"`
	// Quantity is the number of identical elements; zero means one.
	Quantity        int        `json:"quantity,omitempty"`
	WastePercent    float64    `json:"wastePercent,omitempty"`
	Mix             string     `json:"mix,omitempty"`
	DryVolumeFactor float64    `json:"dryVolumeFactor,omitempty"`
	DisplayUnit     VolumeUnit `json:"displayUnit,omitempty"`
	// PricePerUnit is the price of one DisplayUnit of concrete.
	PricePerUnit float64 `json:"pricePerUnit,omitempty"`
}

// Volume is a volume reported in every supported unit plus the display unit
type Volume struct {
	CubicMeters float64    `json:"m3"`
	CubicFeet   float64    `json:"ft3"`
	CubicYards  float64    `json:"yd3"`
	Display     float64    `json:"display"`
	DisplayUnit VolumeUnit `json:"displayUnit"`
}

// Cost is the priced gross volume
type Cost struct {
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Unit         VolumeUnit      `json:"unit"`
	Total        decimal.Decimal `json:"total"`
}

// Result is the outcome of Calculate
type Result struct {
	Calculator   string      `json:"calculator"`
	Shape        string      `json:"shape"`
	Quantity     int         `json:"quantity"`
	WastePercent float64     `json:"wastePercent"`
	WasteFactor  float64     `json:"wasteFactor"`
	UnitVolume   Volume      `json:"unitVolume"`
	NetVolume    Volume      `json:"netVolume"`
	GrossVolume  Volume      `json:"grossVolume"`
	Materials    *Materials  `json:"materials,omitempty"`
	Bags         []BagCount  `json:"bags"`
	Cost         *Cost       `json:"cost,omitempty"`
	Inputs       []InputLine `json:"inputs"`
}

// InputLine echoes one converted input for summaries
type InputLine struct {
	Field  string  `json:"field"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
	Meters float64 `json:"si"`
}

// Calculate runs the shared pipeline: convert inputs to metres, apply the
// calculator formula, multiply by quantity, add waste, then derive materials,
// bag counts and cost.
func Calculate(req Request) (*Result, error) {
	calculator, err := Lookup(req.Calculator)
	if err != nil {
		return nil, err
	}
	shape, err := calculator.Shape(req.Shape)
	if err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = Meter
	}
	if !unit.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, string(unit))
	}
	display := req.DisplayUnit
	if display == "" {
		display = CubicMeter
	}
	if !display.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, string(display))
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 || quantity > MaxQuantity {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, req.Quantity)
	}
	if req.PricePerUnit < 0 || math.IsNaN(req.PricePerUnit) || math.IsInf(req.PricePerUnit, 0) {
		return nil, ErrInvalidPrice
	}
	wasteFactor, err := WasteFactor(req.WastePercent)
	if err != nil {
		return nil, err
	}

	values, inputs, err := convertDimensions(shape, req.Dimensions, unit)
	if err != nil {
		return nil, err
	}

	one, err := shape.Volume(values)
	if err != nil {
		return nil, err
	}
	net := one * float64(quantity)
	gross := net * wasteFactor
	if err := finiteVolume(gross, display); err != nil {
		return nil, err
	}

	result := &Result{
		Calculator:   calculator.Slug,
		Shape:        shape.Name,
		Quantity:     quantity,
		WastePercent: req.WastePercent,
		WasteFactor:  wasteFactor,
		Inputs:       inputs,
		Bags:         Bags(gross),
	}
	if result.UnitVolume, err = NewVolume(one, display); err != nil {
		return nil, err
	}
	if result.NetVolume, err = NewVolume(net, display); err != nil {
		return nil, err
	}
	if result.GrossVolume, err = NewVolume(gross, display); err != nil {
		return nil, err
	}

	if req.Mix != "" {
		mix, err := LookupMix(req.Mix)
		if err != nil {
			return nil, err
		}
		m, err := MaterialsFor(gross, mix, req.DryVolumeFactor)
		if err != nil {
			return nil, err
		}
		rounded := m.Rounded()
		result.Materials = &rounded
	} else if req.DryVolumeFactor != 0 {
		if _, err := ResolveDryFactor(req.DryVolumeFactor); err != nil {
			return nil, err
		}
	}

	// priced on the rounded volume the customer sees
	if req.PricePerUnit > 0 {
		price := decimal.NewFromFloat(req.PricePerUnit)
		result.Cost = &Cost{
			PricePerUnit: price,
			Unit:         display,
			Total:        price.Mul(decimal.NewFromFloat(result.GrossVolume.Display)).Round(DisplayPlaces),
		}
	}

	return result, nil
}

// finiteVolume rejects volumes that overflowed float64 in any reported unit.
// gross is the largest of the unit, net and gross volumes.
func finiteVolume(gross float64, display VolumeUnit) error {
	for _, u := range []VolumeUnit{CubicFoot, display, Liter} {
		v, err := FromCubicMeters(gross, u)
		if err != nil {
			return err
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%w: volume is too large to represent", ErrInvalidDimension)
		}
	}
	return nil
}

// NewVolume reports m3 in all units, rounded for display.
func NewVolume(m3 float64, display VolumeUnit) (Volume, error) {
	shown, err := FromCubicMeters(m3, display)
	if err != nil {
		return Volume{}, err
	}
	ft3, _ := FromCubicMeters(m3, CubicFoot)
	yd3, _ := FromCubicMeters(m3, CubicYard)
	return Volume{
		CubicMeters: Round(m3),
		CubicFeet:   Round(ft3),
		CubicYards:  Round(yd3),
		Display:     Round(shown),
		DisplayUnit: display,
	}, nil
}

// Round rounds half away from zero to DisplayPlaces decimals.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(DisplayPlaces).Float64()
	return f
}

// Rounded returns a copy of m with every quantity rounded for display
func (m Materials) Rounded() Materials {
	m.DryVolumeM3 = Round(m.DryVolumeM3)
	m.CementM3 = Round(m.CementM3)
	m.CementKg = Round(m.CementKg)
	m.SandM3 = Round(m.SandM3)
	m.SandTonnes = Round(m.SandTonnes)
	m.AggregateM3 = Round(m.AggregateM3)
	m.AggregateTonnes = Round(m.AggregateTonnes)
	m.WaterLiters = Round(m.WaterLiters)
	return m
}

func convertDimensions(shape *Shape, in map[string]Length, fallback LengthUnit) (map[string]float64, []InputLine, error) {
	known := make(map[string]bool, len(shape.Fields))
	values := make(map[string]float64, len(shape.Fields))
	inputs := make([]InputLine, 0, len(shape.Fields))

	for _, f := range shape.Fields {
		known[f.Name] = true
		l, ok := in[f.Name]
		if !ok {
			continue
		}
		if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) {
			return nil, nil, fmt.Errorf("%w: %s is not a number", ErrInvalidDimension, f.Name)
		}

		line := InputLine{Field: f.Name, Label: f.Label, Value: l.Value}
		switch {
		case f.Integer:
			if l.Value != math.Trunc(l.Value) {
				return nil, nil, fmt.Errorf("%w: %s must be a whole number", ErrInvalidDimension, f.Name)
			}
			// keeps the later int conversion exact
			if math.Abs(l.Value) > MaxSteps {
				return nil, nil, fmt.Errorf("%w: %s must be at most %d", ErrInvalidDimension, f.Name, MaxSteps)
			}
			values[f.Name] = l.Value
			line.Meters = l.Value
		case f.Area:
			unit := l.Unit
			if unit == "" {
				unit = fallback
			}
			factor, err := unit.MetersPerUnit()
			if err != nil {
				return nil, nil, err
			}
			values[f.Name] = l.Value * factor * factor
			line.Unit = string(unit) + "²"
			line.Meters = values[f.Name]
		default:
			m, err := l.Meters(fallback)
			if err != nil {
				return nil, nil, err
			}
			values[f.Name] = m
			line.Unit = string(fallback)
			if l.Unit != "" {
				line.Unit = string(l.Unit)
			}
			line.Meters = m
		}
		inputs = append(inputs, line)
	}

	for name := range in {
		if !known[name] {
			return nil, nil, fmt.Errorf("%w: %q is not an input of %s", ErrInvalidDimension, name, shape.Label)
		}
	}
	return values, inputs, nil
}
