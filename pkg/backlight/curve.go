package backlight

import "math"

// DefaultExponent is the power-curve exponent used when the config does not
// override it. 2.0 keeps low percentages visually distinct on panels whose
// raw scale is close to linear light output.
const DefaultExponent = 2.0

// Curve maps between raw brightness values and perceptual percentages using
// a power curve: raw = max * (percent/100)^exponent. The forward and inverse
// conversions live together so they cannot drift apart.
type Curve struct {
	Exponent float64
}

// NewCurve returns a curve with the given exponent, falling back to
// DefaultExponent for non-positive values.
func NewCurve(exponent float64) Curve {
	if exponent <= 0 {
		exponent = DefaultExponent
	}
	return Curve{Exponent: exponent}
}

// PercentOf converts a raw value to its perceptual percentage.
func (c Curve) PercentOf(raw, max int) float64 {
	if max <= 0 {
		return 0
	}
	ratio := float64(raw) / float64(max)
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	return math.Pow(ratio, 1/c.Exponent) * 100
}

// RawOf converts a perceptual percentage back to a raw value, rounding half
// away from zero. The result is clamped to [0, max] to guard rounding at the
// curve boundaries.
func (c Curve) RawOf(percent float64, max int) int {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	raw := int(math.Round(math.Pow(percent/100, c.Exponent) * float64(max)))
	if raw < 0 {
		raw = 0
	} else if raw > max {
		raw = max
	}
	return raw
}
