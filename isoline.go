package brainviz

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/brainviz/internal/parallel"
)

// Isolines holds the contour segments of a scalar field.
//
// Segment i joins Points[Segments[i][0]] and Points[Segments[i][1]].
// Levels is parallel to Points and records the threshold each point was
// produced for. Counts has one entry per requested level: the number of
// points that level produced, in request order.
type Isolines struct {
	Points   []r3.Vec
	Segments [][2]int
	Levels   []float64
	Counts   []int
}

// Len returns the number of segments.
func (iso Isolines) Len() int { return len(iso.Segments) }

// Segment returns the endpoints of segment i.
func (iso Isolines) Segment(i int) (a, b r3.Vec) {
	s := iso.Segments[i]
	return iso.Points[s[0]], iso.Points[s[1]]
}

// ExtractIsolines computes the isolines of a per-vertex scalar field over a
// triangle mesh, one batch of segments per level.
//
// An edge crosses level L when exactly one of its endpoints has a value
// >= L; an edge whose endpoints both equal L does not cross. The crossing
// point is linearly interpolated along the edge. Each triangle crosses a
// level on either zero or two of its edges, and the two points form one
// segment.
//
// Output is ordered by level (in the order given), then by triangle, then
// by edge (k, k+1 mod 3). Segment indices are global across all levels.
func ExtractIsolines(vertices []r3.Vec, triangles [][3]int, scalars []float64, levels []float64, opts ...Option) (Isolines, error) {
	if len(scalars) != len(vertices) {
		return Isolines{}, fmt.Errorf("brainviz: %d scalars for %d vertices: %w",
			len(scalars), len(vertices), ErrInvalidArgument)
	}
	if err := checkFaces(triangles, len(vertices)); err != nil {
		return Isolines{}, err
	}

	o := applyOptions(opts)
	batches := make([][]r3.Vec, len(levels))
	parallel.NewPool(o.workers).For(len(levels), func(i int) {
		batches[i] = crossings(vertices, triangles, scalars, levels[i])
	})

	var iso Isolines
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	iso.Points = make([]r3.Vec, 0, total)
	iso.Segments = make([][2]int, 0, total/2)
	iso.Levels = make([]float64, 0, total)
	iso.Counts = make([]int, len(levels))

	for i, b := range batches {
		base := len(iso.Points)
		for k := 0; k+1 < len(b); k += 2 {
			iso.Segments = append(iso.Segments, [2]int{base + k, base + k + 1})
		}
		iso.Points = append(iso.Points, b...)
		for range b {
			iso.Levels = append(iso.Levels, levels[i])
		}
		iso.Counts[i] = len(b)
	}

	Logger().Debug("isolines extracted",
		"triangles", len(triangles),
		"levels", len(levels),
		"points", len(iso.Points),
		"segments", len(iso.Segments))
	return iso, nil
}

// Contour extracts the isolines of scalars over m. See ExtractIsolines.
func Contour(m Mesh, scalars []float64, levels []float64, opts ...Option) (Isolines, error) {
	return ExtractIsolines(m.Vertices, m.Faces, scalars, levels, opts...)
}

// crossings returns the interpolated crossing points of every triangle edge
// at one level, in triangle then edge order.
func crossings(vertices []r3.Vec, triangles [][3]int, scalars []float64, level float64) []r3.Vec {
	var pts []r3.Vec
	for _, tri := range triangles {
		for k := range 3 {
			a, b := tri[k], tri[(k+1)%3]
			s0, s1 := scalars[a], scalars[b]
			if (s0 >= level) == (s1 >= level) {
				continue
			}
			t := (level - s0) / (s1 - s0)
			p0, p1 := vertices[a], vertices[b]
			pts = append(pts, r3.Add(p0, r3.Scale(t, r3.Sub(p1, p0))))
		}
	}
	return pts
}
