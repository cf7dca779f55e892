// Package preview rasterizes a built scene into a flat-shaded image for quick
// inspection, using the gg 2D renderer.
//
// The camera is orthographic and sits on a sphere around the scene: azimuth
// turns in the xy-plane from +x, elevation is measured from +z. Triangles
// are drawn back to front (painter's algorithm) with one color per face,
// isolines on top, then an optional title and contour legend.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"slices"
	"strconv"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/brainviz"
	"github.com/gogpu/brainviz/scene"
)

// ErrInvalidView is returned for view settings that cannot be rendered.
var ErrInvalidView = errors.New("preview: invalid view")

const (
	margin       = 0.05
	ambient      = 0.35
	titleSize    = 16
	legendSize   = 11
	legendSwatch = 10
)

var fontSource = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// camera is an orthonormal view basis. dir points from the scene toward the
// viewer; right and up span the image plane.
type camera struct {
	right, up, dir r3.Vec
}

func newCamera(azimuth, elevation float64) camera {
	a := azimuth * math.Pi / 180
	e := elevation * math.Pi / 180
	dir := r3.Vec{X: math.Sin(e) * math.Cos(a), Y: math.Sin(e) * math.Sin(a), Z: math.Cos(e)}
	right := r3.Vec{X: -math.Sin(a), Y: math.Cos(a)}
	return camera{right: right, up: r3.Cross(dir, right), dir: dir}
}

// projector maps scene points to pixel coordinates.
type projector struct {
	cam    camera
	center r3.Vec
	scale  float64
	w, h   float64
}

// fit returns a projector that frames box inside a w×h image.
func fit(cam camera, box r3.Box, w, h int) projector {
	p := projector{
		cam:    cam,
		center: r3.Scale(0.5, r3.Add(box.Min, box.Max)),
		scale:  1,
		w:      float64(w),
		h:      float64(h),
	}
	var ex, ey float64
	for _, c := range corners(box) {
		d := r3.Sub(c, p.center)
		ex = math.Max(ex, 2*math.Abs(r3.Dot(d, cam.right)))
		ey = math.Max(ey, 2*math.Abs(r3.Dot(d, cam.up)))
	}
	sx, sy := math.Inf(1), math.Inf(1)
	if ex > 0 {
		sx = p.w * (1 - 2*margin) / ex
	}
	if ey > 0 {
		sy = p.h * (1 - 2*margin) / ey
	}
	if s := math.Min(sx, sy); !math.IsInf(s, 1) {
		p.scale = s
	}
	return p
}

func corners(b r3.Box) [8]r3.Vec {
	var out [8]r3.Vec
	for i := range out {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out[i] = c
	}
	return out
}

// project returns the pixel position of v and its depth toward the viewer.
func (p projector) project(v r3.Vec) (x, y, depth float64) {
	d := r3.Sub(v, p.center)
	x = p.w/2 + p.scale*r3.Dot(d, p.cam.right)
	y = p.h/2 - p.scale*r3.Dot(d, p.cam.up)
	return x, y, r3.Dot(d, p.cam.dir)
}

// face is a projected, shaded triangle.
type face struct {
	x, y  [3]float64
	depth float64
	color gg.RGBA
}

// Render draws s as seen through v.
func Render(s *scene.Scene, v scene.ViewConfig) (image.Image, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil scene", ErrInvalidView)
	}
	if v.Width <= 0 || v.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidView, v.Width, v.Height)
	}
	if v.LineWidth < 0 {
		return nil, fmt.Errorf("%w: line width %v", ErrInvalidView, v.LineWidth)
	}
	bg := gg.Hex(scene.DefaultBackground)
	if v.Background != "" {
		bg = gg.Hex(v.Background)
	}

	dc := gg.NewContext(v.Width, v.Height)
	defer dc.Close()
	dc.ClearWithColor(bg)

	cam := newCamera(v.Azimuth, v.Elevation)
	if box, ok := s.Bounds(); ok {
		p := fit(cam, box, v.Width, v.Height)
		faces := collectFaces(s, p)
		for _, f := range faces {
			dc.SetRGBA(f.color.R, f.color.G, f.color.B, f.color.A)
			dc.MoveTo(f.x[0], f.y[0])
			dc.LineTo(f.x[1], f.y[1])
			dc.LineTo(f.x[2], f.y[2])
			dc.ClosePath()
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("preview: failed to fill face: %w", err)
			}
		}
		if v.LineWidth > 0 {
			if err := drawIsolines(dc, s, p, v.LineWidth); err != nil {
				return nil, err
			}
		}
		brainviz.Logger().Debug("preview rendered",
			"faces", len(faces),
			"width", v.Width,
			"height", v.Height)
	}

	if err := drawLabels(dc, s, v, foreground(bg)); err != nil {
		return nil, err
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("preview: failed to flush: %w", err)
	}
	return dc.Image(), nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("preview: failed to encode png: %w", err)
	}
	return nil
}

// collectFaces projects and shades every triangle in s and sorts them back
// to front.
func collectFaces(s *scene.Scene, p projector) []face {
	var faces []face
	add := func(m brainviz.Mesh, colorOf func(f [3]int) gg.RGBA) {
		for _, f := range m.Faces {
			var out face
			for k, idx := range f {
				x, y, z := p.project(m.Vertices[idx])
				out.x[k], out.y[k] = x, y
				out.depth += z / 3
			}
			out.color = shade(colorOf(f), m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]], p.cam.dir)
			faces = append(faces, out)
		}
	}

	for _, sf := range s.Surfaces {
		if sf.VertexColors != nil {
			vc := sf.VertexColors
			add(sf.Mesh, func(f [3]int) gg.RGBA {
				return mean(vc[f[0]], vc[f[1]], vc[f[2]])
			})
			continue
		}
		c := sf.Color
		add(sf.Mesh, func([3]int) gg.RGBA { return c })
	}
	for _, g := range s.Glyphs {
		c := g.Color
		add(g.Mesh, func([3]int) gg.RGBA { return c })
	}

	slices.SortStableFunc(faces, func(a, b face) int {
		switch {
		case a.depth < b.depth:
			return -1
		case a.depth > b.depth:
			return 1
		}
		return 0
	})
	return faces
}

// shade applies Lambert lighting from a headlight at the viewer. Degenerate
// triangles keep their color.
func shade(c gg.RGBA, a, b, d, view r3.Vec) gg.RGBA {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(d, a))
	norm := r3.Norm(n)
	if norm == 0 {
		return c
	}
	k := ambient + (1-ambient)*math.Abs(r3.Dot(n, view))/norm
	return gg.RGBA{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

func mean(a, b, c gg.RGBA) gg.RGBA {
	return gg.RGBA{
		R: (a.R + b.R + c.R) / 3,
		G: (a.G + b.G + c.G) / 3,
		B: (a.B + b.B + c.B) / 3,
		A: (a.A + b.A + c.A) / 3,
	}
}

func drawIsolines(dc *gg.Context, s *scene.Scene, p projector, width float64) error {
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	for _, sf := range s.Surfaces {
		iso := sf.Isolines
		for i, seg := range iso.Segments {
			a, b := iso.Segment(i)
			c := sf.LineColors[seg[0]]
			x0, y0, _ := p.project(a)
			x1, y1, _ := p.project(b)
			dc.SetRGBA(c.R, c.G, c.B, c.A)
			dc.MoveTo(x0, y0)
			dc.LineTo(x1, y1)
			if err := dc.Stroke(); err != nil {
				return fmt.Errorf("preview: failed to stroke isoline: %w", err)
			}
		}
	}
	return nil
}

// drawLabels draws the title at the top left and a legend of contour levels
// at the bottom left.
func drawLabels(dc *gg.Context, s *scene.Scene, v scene.ViewConfig, fg gg.RGBA) error {
	type entry struct {
		label string
		color gg.RGBA
	}
	var legend []entry
	for _, sf := range s.Surfaces {
		if sf.Colormap == nil || len(sf.Levels) == 0 {
			continue
		}
		colors := brainviz.Colorize(sf.Levels, sf.Colormap, sf.VMin, sf.VMax, 1)
		for i, l := range sf.Levels {
			legend = append(legend, entry{strconv.FormatFloat(l, 'g', 4, 64), colors[i]})
		}
	}
	if v.Title == "" && len(legend) == 0 {
		return nil
	}

	src, err := fontSource()
	if err != nil {
		return fmt.Errorf("preview: failed to load font: %w", err)
	}

	if v.Title != "" {
		dc.SetFont(src.Face(titleSize))
		dc.SetRGBA(fg.R, fg.G, fg.B, fg.A)
		dc.DrawString(v.Title, 8, 8+titleSize)
	}

	dc.SetFont(src.Face(legendSize))
	step := float64(legendSwatch + 4)
	y := float64(v.Height) - 8 - step*float64(len(legend))
	for _, e := range legend {
		dc.SetRGBA(e.color.R, e.color.G, e.color.B, e.color.A)
		dc.DrawRectangle(8, y, legendSwatch, legendSwatch)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("preview: failed to fill legend swatch: %w", err)
		}
		dc.SetRGBA(fg.R, fg.G, fg.B, fg.A)
		dc.DrawString(e.label, 8+legendSwatch+6, y+legendSwatch)
		y += step
	}
	return nil
}

// foreground picks black or white, whichever reads better on bg.
func foreground(bg gg.RGBA) gg.RGBA {
	if 0.299*bg.R+0.587*bg.G+0.114*bg.B > 0.5 {
		return gg.RGB(0, 0, 0)
	}
	return gg.RGB(1, 1, 1)
}
