package brainviz

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestEvenLevels(t *testing.T) {
	tests := []struct {
		name       string
		vmin, vmax float64
		n          int
		want       []float64
	}{
		{"none", 0, 1, 0, []float64{}},
		{"single", 2, 5, 1, []float64{2}},
		{"ends", -1, 1, 2, []float64{-1, 1}},
		{"five", 0, 1, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
		{"descending", 1, 0, 3, []float64{1, 0.5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvenLevels(tt.vmin, tt.vmax, tt.n)
			if err != nil {
				t.Fatalf("EvenLevels: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EvenLevels(%v, %v, %d) = %v, want %v", tt.vmin, tt.vmax, tt.n, got, tt.want)
			}
		})
	}
}

func TestEvenLevels_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		vmin, vmax float64
		n          int
	}{
		{"negative count", 0, 1, -1},
		{"nan min", math.NaN(), 1, 3},
		{"inf max", 0, math.Inf(1), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EvenLevels(tt.vmin, tt.vmax, tt.n); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestScalarRange(t *testing.T) {
	vmin, vmax, err := ScalarRange([]float64{3, -2, 7.5, 0})
	if err != nil {
		t.Fatal(err)
	}
	if vmin != -2 || vmax != 7.5 {
		t.Errorf("ScalarRange = (%v, %v), want (-2, 7.5)", vmin, vmax)
	}

	if _, _, err := ScalarRange(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty field: error = %v, want ErrInvalidArgument", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		v, vmin, vmax, want float64
	}{
		{5, 0, 10, 0.5},
		{0, 0, 10, 0},
		{10, 0, 10, 1},
		{-5, 0, 10, -0.5},
		{3, 3, 3, 0},
	}
	for _, tt := range tests {
		if got := Normalize(tt.v, tt.vmin, tt.vmax); got != tt.want {
			t.Errorf("Normalize(%v, %v, %v) = %v, want %v", tt.v, tt.vmin, tt.vmax, got, tt.want)
		}
	}
}
