package calc

import "errors"

// Calculation errors. Callers match with errors.Is; most are wrapped with the
// offending field or value.
var (
	ErrUnknownUnit        = errors.New("unknown unit")
	ErrUnknownCalculator  = errors.New("unknown calculator")
	ErrUnknownShape       = errors.New("unknown shape")
	ErrUnknownMix         = errors.New("unknown nominal mix")
	ErrInvalidDimension   = errors.New("invalid dimension")
	ErrMissingDimension   = errors.New("missing dimension")
	ErrInvalidWaste       = errors.New("waste percentage must be between 0 and 100")
	ErrInvalidDryFactor   = errors.New("dry volume factor must be between 1.50 and 1.57")
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and 10000")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrImpossibleGeometry = errors.New("impossible geometry")
)

// IsInputError reports whether err was caused by bad caller input rather than
// an internal failure.
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrUnknownUnit,
		ErrUnknownCalculator,
		ErrUnknownShape,
		ErrUnknownMix,
		ErrInvalidDimension,
		ErrMissingDimension,
		ErrInvalidWaste,
		ErrInvalidDryFactor,
		ErrInvalidQuantity,
		ErrInvalidPrice,
		ErrImpossibleGeometry,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
