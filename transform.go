package brainviz

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Translation returns the 4×4 homogeneous affine matrix with identity
// rotation that moves points by d.
func Translation(d r3.Vec) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, d.X,
		0, 1, 0, d.Y,
		0, 0, 1, d.Z,
		0, 0, 0, 1,
	})
}

// TransformPoints applies a 4×4 affine matrix to pts and returns the
// transformed copy. The projective row of m is ignored.
func TransformPoints(m mat.Matrix, pts []r3.Vec) ([]r3.Vec, error) {
	if r, c := m.Dims(); r != 4 || c != 4 {
		return nil, fmt.Errorf("brainviz: transform is %dx%d, want 4x4: %w", r, c, ErrInvalidArgument)
	}
	out := make([]r3.Vec, len(pts))
	if len(pts) == 0 {
		return out, nil
	}
	transformInto(out, m, homogeneous(pts))
	return out, nil
}

// homogeneous packs pts as the columns of a 4×n matrix whose last row is 1.
func homogeneous(pts []r3.Vec) *mat.Dense {
	n := len(pts)
	data := make([]float64, 4*n)
	for j, p := range pts {
		data[j] = p.X
		data[n+j] = p.Y
		data[2*n+j] = p.Z
		data[3*n+j] = 1
	}
	return mat.NewDense(4, n, data)
}

// transformInto writes the first three rows of m·h into dst, one column per
// point. len(dst) must equal the column count of h.
func transformInto(dst []r3.Vec, m mat.Matrix, h *mat.Dense) {
	var out mat.Dense
	out.Mul(m, h)
	for j := range dst {
		dst[j] = r3.Vec{X: out.At(0, j), Y: out.At(1, j), Z: out.At(2, j)}
	}
}
