package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// WriteOBJ writes the scene as a Wavefront OBJ file: one object per surface
// and glyph set, with isolines as line elements. Indices are 1-based and
// global across objects, as the format requires.
func (s *Scene) WriteOBJ(w io.Writer) error {
	ow := &objWriter{w: bufio.NewWriter(w)}
	for _, sf := range s.Surfaces {
		ow.object(sf.Name)
		base := ow.vertices(sf.Mesh.Vertices)
		ow.faces(base, sf.Mesh.Faces)
		if sf.Isolines.Len() > 0 {
			ow.object(sf.Name + ".isolines")
			lbase := ow.vertices(sf.Isolines.Points)
			for _, seg := range sf.Isolines.Segments {
				ow.printf("l %d %d\n", lbase+seg[0], lbase+seg[1])
			}
		}
	}
	for _, g := range s.Glyphs {
		ow.object(g.Name)
		base := ow.vertices(g.Mesh.Vertices)
		ow.faces(base, g.Mesh.Faces)
	}
	if ow.err != nil {
		return fmt.Errorf("scene: failed to write obj: %w", ow.err)
	}
	if err := ow.w.Flush(); err != nil {
		return fmt.Errorf("scene: failed to write obj: %w", err)
	}
	return nil
}

// objWriter tracks the running vertex count and the first write error.
type objWriter struct {
	w   *bufio.Writer
	n   int
	err error
}

func (o *objWriter) printf(format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}

func (o *objWriter) object(name string) {
	o.printf("o %s\n", name)
}

// vertices writes pts and returns the 1-based index of the first one.
func (o *objWriter) vertices(pts []r3.Vec) int {
	base := o.n + 1
	for _, p := range pts {
		o.printf("v %s %s %s\n", ftoa(p.X), ftoa(p.Y), ftoa(p.Z))
	}
	o.n += len(pts)
	return base
}

func (o *objWriter) faces(base int, faces [][3]int) {
	for _, f := range faces {
		o.printf("f %d %d %d\n", base+f[0], base+f[1], base+f[2])
	}
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
