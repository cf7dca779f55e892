package brainviz

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewSurface(t *testing.T) {
	m, err := NewSurface(
		[][]float64{{0, 0, 0, 1}, {1, 0, 0, 1}, {0, 1, 0, 1}},
		[][]int{{0, 1, 2}},
	)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	if m.NumVertices() != 3 || m.NumFaces() != 1 {
		t.Fatalf("got %d vertices, %d faces", m.NumVertices(), m.NumFaces())
	}
	if m.Vertices[1] != (r3.Vec{X: 1}) {
		t.Errorf("homogeneous coordinate not dropped: %v", m.Vertices[1])
	}
}

func TestNewSurface_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		coords [][]float64
		tris   [][]int
	}{
		{"2d vertex", [][]float64{{0, 0}, {1, 0}, {0, 1}}, [][]int{{0, 1, 2}}},
		{"5d vertex", [][]float64{{0, 0, 0, 1, 0}}, nil},
		{"quad", [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}, [][]int{{0, 1, 3, 2}}},
		{"segment", [][]float64{{0, 0, 0}, {1, 0, 0}}, [][]int{{0, 1}}},
		{"out of range", [][]float64{{0, 0, 0}}, [][]int{{0, 0, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSurface(tt.coords, tt.tris); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestMeshBounds(t *testing.T) {
	if b := (Mesh{}).Bounds(); b != (r3.Box{}) {
		t.Errorf("empty mesh Bounds() = %v, want zero box", b)
	}
	m := Mesh{Vertices: []r3.Vec{{X: -1, Y: 2, Z: 0}, {X: 3, Y: -4, Z: 5}, {X: 0, Y: 0, Z: -6}}}
	want := r3.Box{Min: r3.Vec{X: -1, Y: -4, Z: -6}, Max: r3.Vec{X: 3, Y: 2, Z: 5}}
	if b := m.Bounds(); b != want {
		t.Errorf("Bounds() = %v, want %v", b, want)
	}
}
