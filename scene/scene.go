package scene

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/brainviz"
)

// Surface is a built surface: its mesh, colors and contours.
type Surface struct {
	Name string
	Mesh brainviz.Mesh

	// Color is the uniform surface color, used when VertexColors is nil.
	Color        gg.RGBA
	VertexColors []gg.RGBA

	// Colormap and the range it was applied over; nil without scalars.
	Colormap   *brainviz.Colormap
	VMin, VMax float64

	// Levels are the requested contour levels, in request order.
	Levels     []float64
	Isolines   brainviz.Isolines
	LineColors []gg.RGBA // one per isoline point
}

// Glyphs is a merged mesh of sphere glyphs.
type Glyphs struct {
	Name    string
	Centers []r3.Vec
	Mesh    brainviz.Mesh
	Color   gg.RGBA
}

// Scene is the geometry built from a Config.
type Scene struct {
	Surfaces []Surface
	Glyphs   []Glyphs
	View     ViewConfig
}

// IsEmpty reports whether the scene holds no geometry.
func (s *Scene) IsEmpty() bool {
	return len(s.Surfaces) == 0 && len(s.Glyphs) == 0
}

// Bounds returns the bounding box of every vertex in the scene. ok is false
// for an empty scene.
func (s *Scene) Bounds() (box r3.Box, ok bool) {
	grow := func(b r3.Box) {
		if !ok {
			box, ok = b, true
			return
		}
		box.Min = r3.Vec{X: math.Min(box.Min.X, b.Min.X), Y: math.Min(box.Min.Y, b.Min.Y), Z: math.Min(box.Min.Z, b.Min.Z)}
		box.Max = r3.Vec{X: math.Max(box.Max.X, b.Max.X), Y: math.Max(box.Max.Y, b.Max.Y), Z: math.Max(box.Max.Z, b.Max.Z)}
	}
	for _, sf := range s.Surfaces {
		if sf.Mesh.NumVertices() > 0 {
			grow(sf.Mesh.Bounds())
		}
	}
	for _, g := range s.Glyphs {
		if g.Mesh.NumVertices() > 0 {
			grow(g.Mesh.Bounds())
		}
	}
	return box, ok
}

// Build validates cfg and builds every surface and glyph set it describes.
// Options are passed through to the geometry kernels.
func Build(cfg Config, opts ...brainviz.Option) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{View: cfg.View}
	for i, sc := range cfg.Surfaces {
		sf, err := buildSurface(sc, opts)
		if err != nil {
			return nil, fmt.Errorf("scene: %s: %w", surfaceLabel(i, sc.Name), err)
		}
		if sf.Name == "" {
			sf.Name = fmt.Sprintf("surface%d", i)
		}
		s.Surfaces = append(s.Surfaces, sf)
	}
	for i, sc := range cfg.Spheres {
		g, err := buildGlyphs(sc, opts)
		if err != nil {
			return nil, fmt.Errorf("scene: %s: %w", sphereLabel(i, sc.Name), err)
		}
		if g.Name == "" {
			g.Name = fmt.Sprintf("spheres%d", i)
		}
		s.Glyphs = append(s.Glyphs, g)
	}

	brainviz.Logger().Info("scene built",
		"surfaces", len(s.Surfaces),
		"glyph_sets", len(s.Glyphs))
	return s, nil
}

func buildSurface(sc SurfaceConfig, opts []brainviz.Option) (Surface, error) {
	mesh, err := brainviz.NewSurface(sc.Vertices, sc.Triangles)
	if err != nil {
		return Surface{}, err
	}
	opacity := opacityOr1(sc.Opacity)
	sf := Surface{
		Name:  sc.Name,
		Mesh:  mesh,
		Color: colorOf(sc.Color, DefaultSurfaceColor, opacity),
	}

	if len(sc.Scalars) == 0 {
		if sc.Contours.Enabled() {
			brainviz.Logger().Warn("contours skipped: surface has no scalars", "surface", sc.Name)
		}
		return sf, nil
	}
	if len(sc.Scalars) != mesh.NumVertices() {
		return Surface{}, fmt.Errorf("%d scalars for %d vertices: %w",
			len(sc.Scalars), mesh.NumVertices(), brainviz.ErrInvalidArgument)
	}

	cm, err := sc.colormap()
	if err != nil {
		return Surface{}, err
	}
	vmin, vmax, err := brainviz.ScalarRange(sc.Scalars)
	if err != nil {
		return Surface{}, err
	}
	if sc.VMin != nil {
		vmin = *sc.VMin
	}
	if sc.VMax != nil {
		vmax = *sc.VMax
	}
	sf.Colormap, sf.VMin, sf.VMax = cm, vmin, vmax
	sf.VertexColors = brainviz.Colorize(sc.Scalars, cm, vmin, vmax, opacity)

	if !sc.Contours.Enabled() {
		return sf, nil
	}
	levels := sc.Contours.Levels
	if len(levels) == 0 {
		levels, err = brainviz.EvenLevels(vmin, vmax, sc.Contours.Count)
		if err != nil {
			return Surface{}, err
		}
	}
	iso, err := brainviz.Contour(mesh, sc.Scalars, levels, opts...)
	if err != nil {
		return Surface{}, err
	}
	sf.Levels = levels
	sf.Isolines = iso
	sf.LineColors = brainviz.Colorize(iso.Levels, cm, vmin, vmax, opacity)
	return sf, nil
}

func buildGlyphs(sc SphereConfig, opts []brainviz.Option) (Glyphs, error) {
	rows := sc.Centers
	if len(sc.Center) > 0 {
		rows = append([][]float64{sc.Center}, rows...)
	}
	centers := make([]r3.Vec, len(rows))
	for i, c := range rows {
		if len(c) != 3 {
			return Glyphs{}, fmt.Errorf("center %d has %d components, want 3: %w",
				i, len(c), brainviz.ErrInvalidArgument)
		}
		centers[i] = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	}

	res := sc.Resolution
	if res == 0 {
		res = brainviz.DefaultSphereResolution
	}
	mesh, err := brainviz.PlaceSpheres(centers, sc.Scale, res, opts...)
	if err != nil {
		return Glyphs{}, err
	}
	return Glyphs{
		Name:    sc.Name,
		Centers: centers,
		Mesh:    mesh,
		Color:   colorOf(sc.Color, DefaultSphereColor, opacityOr1(sc.Opacity)),
	}, nil
}

// colorOf parses a validated hex color, falling back to def, and scales its
// alpha by opacity.
func colorOf(hex, def string, opacity float64) gg.RGBA {
	if hex == "" {
		hex = def
	}
	c := gg.Hex(hex)
	c.A *= opacity
	return c
}
