package timeline

import "math"

// Easing maps linear progress in [0, 1] to eased progress in [0, 1]
type Easing func(t float64) float64

// Linear keeps progress unchanged
func Linear(t float64) float64 {
	return clamp01(t)
}

// smoothInflection controls how steep the middle of Smooth is
const smoothInflection = 10.0

// Smooth is a sigmoid ease-in/ease-out curve normalised so that
// Smooth(0) == 0 and Smooth(1) == 1. It is monotonically non-decreasing.
func Smooth(t float64) float64 {
	t = clamp01(t)
	offset := sigmoid(-smoothInflection / 2)
	v := (sigmoid(smoothInflection*(t-0.5)) - offset) / (1 - 2*offset)
	return clamp01(v)
}

// ThereAndBack runs smoothly to 1 at the midpoint and back to 0
func ThereAndBack(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return Smooth(2 * t)
	}
	return Smooth(2 * (1 - t))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
