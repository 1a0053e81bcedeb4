package units

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for unit conversion. Compare with errors.Is.
var (
	// ErrInvalidUnit indicates the unit is not recognised for the requested dimension.
	ErrInvalidUnit = constError("invalid unit")

	// ErrNegativeValue indicates a negative physical quantity.
	ErrNegativeValue = constError("negative quantity")

	// ErrCalculationOverflow indicates a NaN, Inf or overflowing result.
	ErrCalculationOverflow = constError("calculation overflow")

	// ErrUnknownFuel indicates a fuel with no calorific value on file.
	ErrUnknownFuel = constError("unknown fuel")
)
