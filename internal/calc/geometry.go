package calc

import (
	"fmt"
	"math"
)

// All formulas take metres and return cubic metres.

// Prism returns the volume of a rectangular prism
func Prism(length, width, height float64) (float64, error) {
	if err := positive("length", length); err != nil {
		return 0, err
	}
	if err := positive("width", width); err != nil {
		return 0, err
	}
	if err := positive("height", height); err != nil {
		return 0, err
	}
	return length * width * height, nil
}

// Cylinder returns the volume of a solid cylinder of the given diameter
func Cylinder(diameter, height float64) (float64, error) {
	if err := positive("diameter", diameter); err != nil {
		return 0, err
	}
	if err := positive("height", height); err != nil {
		return 0, err
	}
	r := diameter / 2
	return math.Pi * r * r * height, nil
}

// HollowCylinder returns the volume of a ring (tube wall). The inner diameter
// must be strictly smaller than the outer one.
func HollowCylinder(outerDiameter, innerDiameter, height float64) (float64, error) {
	if err := positive("outerDiameter", outerDiameter); err != nil {
		return 0, err
	}
	if err := positive("innerDiameter", innerDiameter); err != nil {
		return 0, err
	}
	if err := positive("height", height); err != nil {
		return 0, err
	}
	if innerDiameter >= outerDiameter {
		return 0, fmt.Errorf("%w: inner diameter %.4g m must be smaller than outer diameter %.4g m",
			ErrImpossibleGeometry, innerDiameter, outerDiameter)
	}
	R := outerDiameter / 2
	r := innerDiameter / 2
	return math.Pi * (R*R - r*r) * height, nil
}

// ConicalFrustum returns the volume of a truncated cone. A zero top diameter
// gives a full cone.
func ConicalFrustum(bottomDiameter, topDiameter, height float64) (float64, error) {
	if err := positive("bottomDiameter", bottomDiameter); err != nil {
		return 0, err
	}
	if err := nonNegative("topDiameter", topDiameter); err != nil {
		return 0, err
	}
	if err := positive("height", height); err != nil {
		return 0, err
	}
	R := bottomDiameter / 2
	r := topDiameter / 2
	return math.Pi * height / 3 * (R*R + R*r + r*r), nil
}

// PyramidFrustum returns the volume of a truncated rectangular pyramid, as used
// for sloped footings: h/3 * (A1 + A2 + sqrt(A1*A2)).
func PyramidFrustum(bottomLength, bottomWidth, topLength, topWidth, height float64) (float64, error) {
	for _, d := range []struct {
		name  string
		value float64
	}{
		{"bottomLength", bottomLength},
		{"bottomWidth", bottomWidth},
		{"topLength", topLength},
		{"topWidth", topWidth},
		{"height", height},
	} {
		if err := positive(d.name, d.value); err != nil {
			return 0, err
		}
	}
	a1 := bottomLength * bottomWidth
	a2 := topLength * topWidth
	return height / 3 * (a1 + a2 + math.Sqrt(a1*a2)), nil
}

// MaxSteps bounds the number of steps in one flight
const MaxSteps = 1000

// Stairs returns the concrete in a flight of solid stacked steps: step i is a
// block run deep and rise*i tall. A landing platform of platformDepth sits at
// the full flight height; pass 0 for no landing.
func Stairs(steps int, rise, run, width, platformDepth float64) (float64, error) {
	if steps < 1 || steps > MaxSteps {
		return 0, fmt.Errorf("%w: steps must be between 1 and %d, got %d", ErrInvalidDimension, MaxSteps, steps)
	}
	if err := positive("rise", rise); err != nil {
		return 0, err
	}
	if err := positive("run", run); err != nil {
		return 0, err
	}
	if err := positive("width", width); err != nil {
		return 0, err
	}
	if err := nonNegative("platformDepth", platformDepth); err != nil {
		return 0, err
	}

	n := float64(steps)
	total := run * rise * width * n * (n + 1) / 2
	total += platformDepth * width * rise * n
	return total, nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be greater than 0", ErrInvalidDimension, field)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidDimension, field)
	}
	return nil
}
