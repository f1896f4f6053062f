package diagram

import (
	"math"
)

const graphStep = 10

// ComputeMax returns the greatest leaf of the dataset rounded up to the next
// multiple of ten. A dataset without any positive value gets a scale of ten.
func ComputeMax(d Dataset) float64 {
	var (
		max   float64
		found bool
	)
	for _, f := range d.Leaves() {
		if math.IsNaN(f) {
			continue
		}
		if !found || f > max {
			max = f
			found = true
		}
	}
	max = math.Ceil(max/graphStep) * graphStep
	if max <= 0 {
		return graphStep
	}
	return max
}

// Scale maps values in [0, Max] to a length in pixels.
type Scale struct {
	Max    float64
	Length float64
}

func NewScale(max, length float64) Scale {
	return Scale{
		Max:    max,
		Length: length,
	}
}

func (s Scale) Scale(v float64) float64 {
	if s.Max == 0 {
		return 0
	}
	return v / s.Max * s.Length
}

// Invert maps a value top-down: Max is at 0 and 0 is at Length.
func (s Scale) Invert(v float64) float64 {
	if s.Max == 0 {
		return s.Length
	}
	return (1 - v/s.Max) * s.Length
}
