// Package calc holds the concrete volume arithmetic shared by every
// calculator: unit conversion, closed-form volume formulas, waste and dry
// volume adjustments, nominal mix material breakdowns and premix bag counts.
//
// Everything in this package is pure. Dimensions are converted to metres on
// the way in and volumes are reported from cubic metres on the way out.
package calc

import (
	"fmt"
	"strings"
)

// LengthUnit is a linear unit accepted on calculator inputs
type LengthUnit string

const (
	Millimeter LengthUnit = "mm"
	Centimeter LengthUnit = "cm"
	Meter      LengthUnit = "m"
	Inch       LengthUnit = "in"
	Foot       LengthUnit = "ft"
	Yard       LengthUnit = "yd"
)

// metersPer maps each linear unit to its length in metres
var metersPer = map[LengthUnit]float64{
	Millimeter: 0.001,
	Centimeter: 0.01,
	Meter:      1,
	Inch:       0.0254,
	Foot:       0.3048,
	Yard:       0.9144,
}

var lengthAliases = map[string]LengthUnit{
	"mm":          Millimeter,
	"millimeter":  Millimeter,
	"millimeters": Millimeter,
	"millimetre":  Millimeter,
	"millimetres": Millimeter,
	"cm":          Centimeter,
	"centimeter":  Centimeter,
	"centimeters": Centimeter,
	"centimetre":  Centimeter,
	"centimetres": Centimeter,
	"m":           Meter,
	"meter":       Meter,
	"meters":      Meter,
	"metre":       Meter,
	"metres":      Meter,
	"in":          Inch,
	"inch":        Inch,
	"inches":      Inch,
	`"`:           Inch,
	"ft":          Foot,
	"foot":        Foot,
	"feet":        Foot,
	"'":           Foot,
	"yd":          Yard,
	"yard":        Yard,
	"yards":       Yard,
}

// LengthUnits returns the supported linear units in display order
func LengthUnits() []LengthUnit {
	return []LengthUnit{Millimeter, Centimeter, Meter, Inch, Foot, Yard}
}

// ParseLengthUnit resolves a unit symbol or common alias, case-insensitively.
func ParseLengthUnit(s string) (LengthUnit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if u, ok := lengthAliases[key]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// Valid reports whether u is a supported linear unit
func (u LengthUnit) Valid() bool {
	_, ok := metersPer[u]
	return ok
}

// MetersPerUnit returns the conversion factor from u to metres.
func (u LengthUnit) MetersPerUnit() (float64, error) {
	f, ok := metersPer[u]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(u))
	}
	return f, nil
}

// ToMeters converts value expressed in unit to metres
func ToMeters(value float64, unit LengthUnit) (float64, error) {
	f, err := unit.MetersPerUnit()
	if err != nil {
		return 0, err
	}
	return value * f, nil
}

// Length is a measured dimension with its own unit. An empty unit means the
// caller's default unit applies.
type Length struct {
	Value float64    `json:"value" yaml:"value"`
	Unit  LengthUnit `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Meters converts l to metres, using fallback when l carries no unit.
func (l Length) Meters(fallback LengthUnit) (float64, error) {
	unit := l.Unit
	if unit == "" {
		unit = fallback
	}
	return ToMeters(l.Value, unit)
}

// VolumeUnit is a unit results can be displayed in
type VolumeUnit string

const (
	CubicMeter VolumeUnit = "m3"
	CubicFoot  VolumeUnit = "ft3"
	CubicYard  VolumeUnit = "yd3"
	Liter      VolumeUnit = "l"
)

// perCubicMeter maps each volume unit to how many of it fit in one cubic metre
var perCubicMeter = map[VolumeUnit]float64{
	CubicMeter: 1,
	CubicFoot:  35.3146667,
	CubicYard:  1.30795062,
	Liter:      1000,
}

var volumeAliases = map[string]VolumeUnit{
	"m3":          CubicMeter,
	"m³":          CubicMeter,
	"cubic meter": CubicMeter,
	"cubic metre": CubicMeter,
	"cbm":         CubicMeter,
	"ft3":         CubicFoot,
	"ft³":         CubicFoot,
	"cu ft":       CubicFoot,
	"cubic foot":  CubicFoot,
	"cubic feet":  CubicFoot,
	"yd3":         CubicYard,
	"yd³":         CubicYard,
	"cu yd":       CubicYard,
	"cubic yard":  CubicYard,
	"cubic yards": CubicYard,
	"l":           Liter,
	"liter":       Liter,
	"liters":      Liter,
	"litre":       Liter,
	"litres":      Liter,
}

// VolumeUnits returns the supported display units in display order
func VolumeUnits() []VolumeUnit {
	return []VolumeUnit{CubicMeter, CubicFoot, CubicYard, Liter}
}

// ParseVolumeUnit resolves a volume unit symbol or alias, case-insensitively.
func ParseVolumeUnit(s string) (VolumeUnit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if u, ok := volumeAliases[key]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// Valid reports whether u is a supported volume unit
func (u VolumeUnit) Valid() bool {
	_, ok := perCubicMeter[u]
	return ok
}

// FromCubicMeters converts a volume in m³ to unit.
func FromCubicMeters(m3 float64, unit VolumeUnit) (float64, error) {
	f, ok := perCubicMeter[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(unit))
	}
	return m3 * f, nil
}

// ToCubicMeters converts a volume expressed in unit to m³.
func ToCubicMeters(v float64, unit VolumeUnit) (float64, error) {
	f, ok := perCubicMeter[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(unit))
	}
	return v / f, nil
}
