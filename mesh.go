package brainviz

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh.
//
// Every index in Faces refers to an element of Vertices. Meshes returned by
// this package are never modified after they are returned.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// NumVertices returns the number of vertices.
func (m Mesh) NumVertices() int { return len(m.Vertices) }

// NumFaces returns the number of triangles.
func (m Mesh) NumFaces() int { return len(m.Faces) }

// Validate reports whether every face index lies in [0, NumVertices).
func (m Mesh) Validate() error {
	return checkFaces(m.Faces, len(m.Vertices))
}

// Bounds returns the axis-aligned bounding box of the vertices.
// An empty mesh has a zero box.
func (m Mesh) Bounds() r3.Box {
	return boundsOf(m.Vertices)
}

// NewSurface builds a Mesh from loosely shaped coordinate and index rows,
// the form surfaces arrive in from files and foreign callers.
//
// Each coordinate row holds 3 values, or 4 for homogeneous coordinates in
// which case the last value is dropped. Each triangle row must hold exactly
// 3 indices within range.
func NewSurface(coords [][]float64, tris [][]int) (Mesh, error) {
	verts := make([]r3.Vec, len(coords))
	for i, c := range coords {
		switch len(c) {
		case 3, 4:
			verts[i] = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
		default:
			return Mesh{}, fmt.Errorf("brainviz: vertex %d has %d components, want 3 or 4: %w",
				i, len(c), ErrInvalidArgument)
		}
	}

	faces := make([][3]int, len(tris))
	for i, t := range tris {
		if len(t) != 3 {
			return Mesh{}, fmt.Errorf("brainviz: triangle %d has %d indices, want 3: %w",
				i, len(t), ErrInvalidArgument)
		}
		faces[i] = [3]int{t[0], t[1], t[2]}
	}

	m := Mesh{Vertices: verts, Faces: faces}
	if err := m.Validate(); err != nil {
		return Mesh{}, err
	}
	return m, nil
}

func checkFaces(faces [][3]int, n int) error {
	for i, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("brainviz: triangle %d index %d out of range [0, %d): %w",
					i, idx, n, ErrInvalidArgument)
			}
		}
	}
	return nil
}

func boundsOf(pts []r3.Vec) r3.Box {
	if len(pts) == 0 {
		return r3.Box{}
	}
	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range pts {
		lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return r3.Box{Min: lo, Max: hi}
}
