package brainviz

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// EvenLevels returns n evenly spaced contour levels from vmin to vmax
// inclusive. n == 0 gives no levels and n == 1 gives just vmin.
func EvenLevels(vmin, vmax float64, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("brainviz: level count %d < 0: %w", n, ErrInvalidArgument)
	}
	if !finite(vmin) || !finite(vmax) {
		return nil, fmt.Errorf("brainviz: level range [%v, %v] not finite: %w", vmin, vmax, ErrInvalidArgument)
	}
	switch n {
	case 0:
		return []float64{}, nil
	case 1:
		return []float64{vmin}, nil
	}
	return floats.Span(make([]float64, n), vmin, vmax), nil
}

// ScalarRange returns the minimum and maximum of values.
func ScalarRange(values []float64) (vmin, vmax float64, err error) {
	if len(values) == 0 {
		return 0, 0, fmt.Errorf("brainviz: empty scalar field: %w", ErrInvalidArgument)
	}
	return floats.Min(values), floats.Max(values), nil
}

// Normalize maps v linearly so that vmin goes to 0 and vmax to 1.
// Values outside the range map outside [0, 1]. A degenerate range maps
// everything to 0.
func Normalize(v, vmin, vmax float64) float64 {
	if vmax == vmin {
		return 0
	}
	return (v - vmin) / (vmax - vmin)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
