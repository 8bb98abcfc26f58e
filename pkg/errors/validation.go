package errors

import "math"

// ValidatePositive rejects values that are not finite and strictly positive.
// name is the user-facing parameter name.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid(name, "must be a finite number, got %g", v)
	}
	if v <= 0 {
		return Invalid(name, "must be greater than zero, got %g", v)
	}
	return nil
}

// ValidateUnit rejects values outside the closed interval [0, 1].
func ValidateUnit(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return Invalid(name, "must be between 0 and 1, got %g", v)
	}
	return nil
}

// ValidateIntRange rejects integers outside [lo, hi].
func ValidateIntRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return Invalid(name, "must be between %d and %d, got %d", lo, hi, v)
	}
	return nil
}
