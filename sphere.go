package brainviz

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/brainviz/internal/parallel"
)

const (
	// DefaultSphereResolution is the ring and column count used for sphere
	// glyphs when the caller does not choose one.
	DefaultSphereResolution = 8

	// DefaultSphereRadius is the glyph radius per unit of scale.
	DefaultSphereRadius = 0.5
)

// TessellateSphere builds a UV sphere of the given radius centered at the
// origin.
//
// The sphere has rows+1 latitude rings of cols vertices each, running from
// the +Z pole to the -Z pole. The duplicate vertices generated at each pole
// collapse to one, leaving (rows-1)*cols+2 vertices and 2*cols*(rows-1)
// triangles. With offset set, ring i is rotated by i half-columns so seams
// do not line up.
//
// Pole faces are remapped onto the surviving pole vertices by clamping
// indices into the valid range.
func TessellateSphere(rows, cols int, radius float64, offset bool) (Mesh, error) {
	if rows < 1 {
		return Mesh{}, fmt.Errorf("brainviz: sphere rows %d < 1: %w", rows, ErrInvalidArgument)
	}
	if cols < 3 {
		return Mesh{}, fmt.Errorf("brainviz: sphere cols %d < 3: %w", cols, ErrInvalidArgument)
	}
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return Mesh{}, fmt.Errorf("brainviz: sphere radius %v: %w", radius, ErrInvalidArgument)
	}

	// Rings 0 and rows are poles; keep only the last vertex of the first
	// ring and the first vertex of the last ring.
	first := cols - 1
	last := (rows+1)*cols - (cols - 1)
	verts := make([]r3.Vec, 0, last-first)
	for i := 0; i <= rows; i++ {
		phi := float64(i) * math.Pi / float64(rows)
		s := radius * math.Sin(phi)
		z := radius * math.Cos(phi)
		for j := range cols {
			k := i*cols + j
			if k < first || k >= last {
				continue
			}
			theta := float64(j) * 2 * math.Pi / float64(cols)
			if offset {
				theta += math.Pi / float64(cols) * float64(i)
			}
			verts = append(verts, r3.Vec{X: s * math.Cos(theta), Y: s * math.Sin(theta), Z: z})
		}
	}

	// Two strips per ring gap. The first strip of the top gap and the second
	// strip of the bottom gap have zero area and are skipped.
	vmax := len(verts) - 1
	faces := make([][3]int, 0, 2*cols*(rows-1))
	remap := func(idx int) int {
		idx = max(idx, first) - first
		return min(idx, vmax)
	}
	for row := range rows {
		base := row * cols
		if row > 0 {
			for j := range cols {
				faces = append(faces, [3]int{
					remap(base + (j+1)%cols),
					remap(base + j),
					remap(base + j + cols),
				})
			}
		}
		if row < rows-1 {
			for j := range cols {
				faces = append(faces, [3]int{
					remap(base + (j+1)%cols),
					remap(base + j + cols),
					remap(base + (j+1)%cols + cols),
				})
			}
		}
	}

	return Mesh{Vertices: verts, Faces: faces}, nil
}

// PlaceSpheres builds one sphere glyph per center and merges them into a
// single mesh.
//
// A canonical sphere of radius scale*DefaultSphereRadius and the given
// resolution (rows and columns) is translated to each center with a 4×4
// affine transform. Output is replica-major: all vertices and faces of the
// sphere at centers[0], then centers[1], and so on. Faces of replica i only
// reference vertices in [i*n, (i+1)*n) where n is the vertex count of one
// sphere.
func PlaceSpheres(centers []r3.Vec, scale float64, resolution int, opts ...Option) (Mesh, error) {
	o := applyOptions(opts)

	proto, err := TessellateSphere(resolution, resolution, scale*DefaultSphereRadius, o.staggered)
	if err != nil {
		return Mesh{}, err
	}

	nv := len(proto.Vertices)
	nf := len(proto.Faces)
	out := Mesh{
		Vertices: make([]r3.Vec, len(centers)*nv),
		Faces:    make([][3]int, len(centers)*nf),
	}
	if len(centers) == 0 {
		return out, nil
	}

	h := homogeneous(proto.Vertices)
	parallel.NewPool(o.workers).For(len(centers), func(i int) {
		transformInto(out.Vertices[i*nv:(i+1)*nv], Translation(centers[i]), h)

		voff := i * nv
		dst := out.Faces[i*nf : (i+1)*nf]
		for k, f := range proto.Faces {
			dst[k] = [3]int{f[0] + voff, f[1] + voff, f[2] + voff}
		}
	})

	Logger().Debug("spheres placed",
		"centers", len(centers),
		"resolution", resolution,
		"vertices", len(out.Vertices),
		"faces", len(out.Faces))
	return out, nil
}
