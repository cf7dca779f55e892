package preview

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/brainviz/scene"
)

func tetraScene(t *testing.T) *scene.Scene {
	t.Helper()
	cfg := scene.DefaultConfig()
	cfg.Surfaces = []scene.SurfaceConfig{{
		Name:      "tetra",
		Vertices:  [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Triangles: [][]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}},
		Scalars:   []float64{0, 0, 0, 1},
		Contours:  scene.ContourConfig{Levels: []float64{0.2, 0.4, 0.6, 0.8}},
	}}
	cfg.Spheres = []scene.SphereConfig{{Centers: [][]float64{{0, 0, 0}, {1, 0, 0}}, Scale: 0.33}}
	s, err := scene.Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func near(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < 1e-12
}

func TestCamera(t *testing.T) {
	angles := [][2]float64{{0, 0}, {0, 90}, {180, 90}, {45, 30}, {-120, 135}, {270, 180}}
	for _, a := range angles {
		c := newCamera(a[0], a[1])
		for _, v := range []r3.Vec{c.right, c.up, c.dir} {
			if math.Abs(r3.Norm(v)-1) > 1e-12 {
				t.Errorf("az=%v el=%v: basis vector %v not unit", a[0], a[1], v)
			}
		}
		if math.Abs(r3.Dot(c.right, c.up)) > 1e-12 || math.Abs(r3.Dot(c.right, c.dir)) > 1e-12 {
			t.Errorf("az=%v el=%v: basis not orthogonal", a[0], a[1])
		}
		if !near(r3.Cross(c.right, c.up), c.dir) {
			t.Errorf("az=%v el=%v: basis not right-handed", a[0], a[1])
		}
	}

	// From +x with z up.
	c := newCamera(0, 90)
	if !near(c.dir, r3.Vec{X: 1}) || !near(c.up, r3.Vec{Z: 1}) {
		t.Errorf("side camera = %+v", c)
	}
}

func TestFit(t *testing.T) {
	box := r3.Box{Min: r3.Vec{X: -1, Y: -2, Z: 0}, Max: r3.Vec{X: 3, Y: 1, Z: 5}}
	for _, a := range [][2]float64{{0, 0}, {30, 60}, {200, 120}} {
		p := fit(newCamera(a[0], a[1]), box, 200, 100)
		for _, c := range corners(box) {
			x, y, _ := p.project(c)
			if x < 0 || x > 200 || y < 0 || y > 100 {
				t.Errorf("az=%v el=%v: corner %v projects outside the image at (%v, %v)", a[0], a[1], c, x, y)
			}
		}
	}

	// A single point still yields a usable scale.
	p := fit(newCamera(0, 0), r3.Box{}, 10, 10)
	if p.scale != 1 {
		t.Errorf("scale = %v, want 1", p.scale)
	}
}

func TestRender(t *testing.T) {
	s := tetraScene(t)
	v := s.View
	v.Width, v.Height = 96, 64
	v.Azimuth, v.Elevation = 0, 90
	v.Title = "tetra"

	img, err := Render(s, v)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 64 {
		t.Fatalf("bounds = %v, want 96x64", b)
	}

	// The corner is outside the 5% margin and below the title.
	if r, g, b, a := img.At(95, 0).RGBA(); r != 0 || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("corner = (%d %d %d %d), want opaque black", r, g, b, a)
	}
	// The x = 0 face covers the middle of the view.
	if r, g, b, _ := img.At(48, 32).RGBA(); r == 0 && g == 0 && b == 0 {
		t.Error("center pixel is background")
	}
}

func TestRender_Deterministic(t *testing.T) {
	s := tetraScene(t)
	v := s.View
	v.Width, v.Height = 48, 48
	v.Azimuth, v.Elevation = 30, 60

	var first []byte
	for range 2 {
		img, err := Render(s, v)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := Encode(&buf, img); err != nil {
			t.Fatal(err)
		}
		if first == nil {
			first = buf.Bytes()
			continue
		}
		if !bytes.Equal(first, buf.Bytes()) {
			t.Error("two renders of the same scene differ")
		}
	}
}

func TestRender_EmptyScene(t *testing.T) {
	v := scene.DefaultConfig().View
	v.Width, v.Height = 8, 8
	v.Background = "#ffffff"
	img, err := Render(&scene.Scene{}, v)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, _ := img.At(4, 4).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("pixel = (%d %d %d), want white", r, g, b)
	}
}

func TestRender_InvalidView(t *testing.T) {
	good := scene.DefaultConfig().View
	tests := []struct {
		name   string
		scene  *scene.Scene
		modify func(*scene.ViewConfig)
	}{
		{"nil scene", nil, func(*scene.ViewConfig) {}},
		{"zero width", &scene.Scene{}, func(v *scene.ViewConfig) { v.Width = 0 }},
		{"negative height", &scene.Scene{}, func(v *scene.ViewConfig) { v.Height = -4 }},
		{"negative line width", &scene.Scene{}, func(v *scene.ViewConfig) { v.LineWidth = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := good
			tt.modify(&v)
			if _, err := Render(tt.scene, v); !errors.Is(err, ErrInvalidView) {
				t.Errorf("Render() error = %v, want ErrInvalidView", err)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	v := scene.DefaultConfig().View
	v.Width, v.Height = 16, 12
	img, err := Render(tetraScene(t), v)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	got, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
}

func TestShade(t *testing.T) {
	white := gg.RGB(1, 1, 1)
	a, b, c := r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}

	facing := shade(white, a, b, c, r3.Vec{Z: 1})
	if math.Abs(facing.R-1) > 1e-12 {
		t.Errorf("facing shade = %v, want 1", facing.R)
	}
	edgeOn := shade(white, a, b, c, r3.Vec{X: 1})
	if math.Abs(edgeOn.R-ambient) > 1e-12 {
		t.Errorf("edge-on shade = %v, want %v", edgeOn.R, ambient)
	}
	if got := shade(white, a, a, a, r3.Vec{Z: 1}); got != white {
		t.Errorf("degenerate shade = %+v, want unchanged", got)
	}
}

func TestForeground(t *testing.T) {
	if got := foreground(gg.Hex("#000000")); got != gg.RGB(1, 1, 1) {
		t.Errorf("foreground(black) = %+v, want white", got)
	}
	if got := foreground(gg.Hex("#ffffff")); got != gg.RGB(0, 0, 0) {
		t.Errorf("foreground(white) = %+v, want black", got)
	}
}
