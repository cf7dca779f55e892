package brainviz

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTranslation(t *testing.T) {
	d := r3.Vec{X: 1, Y: -2, Z: 3.5}
	pts := []r3.Vec{{}, {X: 1, Y: 1, Z: 1}, {X: -4, Y: 0.5, Z: 2}}

	got, err := TransformPoints(Translation(d), pts)
	if err != nil {
		t.Fatalf("TransformPoints: %v", err)
	}
	for i, p := range pts {
		if want := r3.Add(p, d); got[i] != want {
			t.Errorf("point %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestTransformPoints_Scale(t *testing.T) {
	m := mat.NewDense(4, 4, []float64{
		2, 0, 0, 0,
		0, 3, 0, 0,
		0, 0, 4, 1,
		0, 0, 0, 1,
	})
	got, err := TransformPoints(m, []r3.Vec{{X: 1, Y: 1, Z: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if want := (r3.Vec{X: 2, Y: 3, Z: 5}); got[0] != want {
		t.Errorf("got %v, want %v", got[0], want)
	}
}

func TestTransformPoints_Edges(t *testing.T) {
	got, err := TransformPoints(Translation(r3.Vec{X: 1}), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("empty input: got %v, %v", got, err)
	}
	if _, err := TransformPoints(mat.NewDense(3, 3, nil), []r3.Vec{{}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("3x3 transform: error = %v, want ErrInvalidArgument", err)
	}
}
