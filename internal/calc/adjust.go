package calc

import (
	"fmt"
	"math"
)

const (
	// MaxWastePercent caps the waste allowance
	MaxWastePercent = 100.0

	// DefaultDryVolumeFactor converts placed (wet) concrete to the loose volume
	// of its dry constituents.
	DefaultDryVolumeFactor = 1.54
	MinDryVolumeFactor     = 1.50
	MaxDryVolumeFactor     = 1.57
)

// WasteFactor returns the multiplier for a waste allowance in percent,
// e.g. 5 -> 1.05.
func WasteFactor(percent float64) (float64, error) {
	if math.IsNaN(percent) || percent < 0 || percent > MaxWastePercent {
		return 0, fmt.Errorf("%w: got %g", ErrInvalidWaste, percent)
	}
	return 1 + percent/100, nil
}

// ApplyWaste scales a volume by the waste allowance.
func ApplyWaste(m3, percent float64) (float64, error) {
	f, err := WasteFactor(percent)
	if err != nil {
		return 0, err
	}
	return m3 * f, nil
}

// ResolveDryFactor returns DefaultDryVolumeFactor for zero and validates any
// other value against the accepted range.
func ResolveDryFactor(factor float64) (float64, error) {
	if factor == 0 {
		return DefaultDryVolumeFactor, nil
	}
	if math.IsNaN(factor) || factor < MinDryVolumeFactor || factor > MaxDryVolumeFactor {
		return 0, fmt.Errorf("%w: got %g", ErrInvalidDryFactor, factor)
	}
	return factor, nil
}

// DryVolume converts a wet volume to dry material volume.
func DryVolume(wetM3, factor float64) (float64, error) {
	f, err := ResolveDryFactor(factor)
	if err != nil {
		return 0, err
	}
	return wetM3 * f, nil
}
