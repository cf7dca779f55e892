// Package scene describes brain visualization scenes declaratively and builds
// them into geometry.
//
// A scene file lists surfaces (cortical meshes with optional scalar data and
// contours), sphere glyphs (sensor or source locations) and view settings
// used by the preview package. Files are YAML or TOML:
//
//	surfaces:
//	  - name: lh.pial
//	    vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0], [0, 0, 1]]
//	    triangles: [[0, 1, 2], [0, 1, 3], [0, 2, 3], [1, 2, 3]]
//	    scalars: [0, 0, 0, 1]
//	    contours: {levels: [0.2, 0.4, 0.6, 0.8]}
//	spheres:
//	  - centers: [[0, 0, 0], [1, 0, 0]]
//	    scale: 0.33
//	    color: "#ff0000"
//	view:
//	  azimuth: 180
//	  elevation: 90
package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/brainviz"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("scene: invalid config")

// Config is a complete scene description.
type Config struct {
	Surfaces []SurfaceConfig `yaml:"surfaces" toml:"surfaces"`
	Spheres  []SphereConfig  `yaml:"spheres" toml:"spheres"`
	View     ViewConfig      `yaml:"view" toml:"view"`
}

// SurfaceConfig describes a triangulated surface and the scalar field drawn
// on it.
type SurfaceConfig struct {
	Name      string      `yaml:"name" toml:"name"`
	Vertices  [][]float64 `yaml:"vertices" toml:"vertices"`   // rows of 3, or 4 homogeneous
	Triangles [][]int     `yaml:"triangles" toml:"triangles"` // rows of 3 vertex indices
	Scalars   []float64   `yaml:"scalars" toml:"scalars"`     // one per vertex; optional

	Color   string   `yaml:"color" toml:"color"`     // used when Scalars is empty
	Opacity *float64 `yaml:"opacity" toml:"opacity"` // default 1

	// Colormap names a built-in colormap; ignored when ColormapTable is set.
	Colormap string `yaml:"colormap" toml:"colormap"`
	// ColormapTable is a listed colormap, rows of RGB or RGBA. Components
	// are 0-255 unless NormalizedColormap is set.
	ColormapTable      [][]float64 `yaml:"colormap_table" toml:"colormap_table"`
	NormalizedColormap bool        `yaml:"normalized_colormap" toml:"normalized_colormap"`
	ReverseColormap    bool        `yaml:"reverse_colormap" toml:"reverse_colormap"`

	// VMin and VMax bound the colormap; nil means the scalar range.
	VMin *float64 `yaml:"vmin" toml:"vmin"`
	VMax *float64 `yaml:"vmax" toml:"vmax"`

	Contours ContourConfig `yaml:"contours" toml:"contours"`
}

// ContourConfig selects isoline levels. Explicit Levels win over Count.
type ContourConfig struct {
	Count  int       `yaml:"count" toml:"count"`
	Levels []float64 `yaml:"levels" toml:"levels"`
}

// Enabled reports whether any contour is requested.
func (c ContourConfig) Enabled() bool {
	return c.Count > 0 || len(c.Levels) > 0
}

// SphereConfig describes a set of identical sphere glyphs.
type SphereConfig struct {
	Name string `yaml:"name" toml:"name"`
	// Center is a single location, accepted alongside Centers.
	Center     []float64   `yaml:"center" toml:"center"`
	Centers    [][]float64 `yaml:"centers" toml:"centers"`
	Scale      float64     `yaml:"scale" toml:"scale"`
	Resolution int         `yaml:"resolution" toml:"resolution"` // default 8
	Color      string      `yaml:"color" toml:"color"`
	Opacity    *float64    `yaml:"opacity" toml:"opacity"`
}

// ViewConfig holds the settings used to preview a scene.
type ViewConfig struct {
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
	Background string  `yaml:"background" toml:"background"`
	Azimuth    float64 `yaml:"azimuth" toml:"azimuth"`     // degrees, in the xy-plane from +x
	Elevation  float64 `yaml:"elevation" toml:"elevation"` // degrees from +z
	Title      string  `yaml:"title" toml:"title"`
	LineWidth  float64 `yaml:"line_width" toml:"line_width"`
}

// Defaults for fields left unset.
const (
	DefaultWidth        = 600
	DefaultHeight       = 600
	DefaultBackground   = "#000000"
	DefaultSurfaceColor = "#ffffff"
	DefaultSphereColor  = "#ff0000"
	DefaultLineWidth    = 1.0
)

// DefaultConfig returns an empty scene with default view settings.
func DefaultConfig() Config {
	return Config{
		View: ViewConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Background: DefaultBackground,
			LineWidth:  DefaultLineWidth,
		},
	}
}

// Validate checks the parts of the configuration that do not need the
// geometry kernels. Array shapes are checked when the scene is built.
func (c Config) Validate() error {
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return fmt.Errorf("scene: view size %dx%d: %w", c.View.Width, c.View.Height, ErrInvalidConfig)
	}
	if c.View.LineWidth < 0 {
		return fmt.Errorf("scene: line width %v: %w", c.View.LineWidth, ErrInvalidConfig)
	}
	if err := checkColor("view background", c.View.Background); err != nil {
		return err
	}

	for i, s := range c.Surfaces {
		label := surfaceLabel(i, s.Name)
		if len(s.Vertices) == 0 {
			return fmt.Errorf("scene: %s has no vertices: %w", label, ErrInvalidConfig)
		}
		if err := checkColor(label+" color", s.Color); err != nil {
			return err
		}
		if err := checkOpacity(label, s.Opacity); err != nil {
			return err
		}
		if s.Contours.Count < 0 {
			return fmt.Errorf("scene: %s contour count %d: %w", label, s.Contours.Count, ErrInvalidConfig)
		}
		if s.VMin != nil && s.VMax != nil && *s.VMin > *s.VMax {
			return fmt.Errorf("scene: %s vmin %v > vmax %v: %w", label, *s.VMin, *s.VMax, ErrInvalidConfig)
		}
	}

	for i, s := range c.Spheres {
		label := sphereLabel(i, s.Name)
		if len(s.Center) == 0 && len(s.Centers) == 0 {
			return fmt.Errorf("scene: %s has no centers: %w", label, ErrInvalidConfig)
		}
		if s.Scale <= 0 {
			return fmt.Errorf("scene: %s scale %v: %w", label, s.Scale, ErrInvalidConfig)
		}
		if s.Resolution != 0 && s.Resolution < 3 {
			return fmt.Errorf("scene: %s resolution %d: %w", label, s.Resolution, ErrInvalidConfig)
		}
		if err := checkColor(label+" color", s.Color); err != nil {
			return err
		}
		if err := checkOpacity(label, s.Opacity); err != nil {
			return err
		}
	}
	return nil
}

func surfaceLabel(i int, name string) string {
	if name != "" {
		return fmt.Sprintf("surface %q", name)
	}
	return fmt.Sprintf("surface %d", i)
}

func sphereLabel(i int, name string) string {
	if name != "" {
		return fmt.Sprintf("spheres %q", name)
	}
	return fmt.Sprintf("spheres %d", i)
}

// checkColor accepts "", or hex colors in RGB, RGBA, RRGGBB or RRGGBBAA form
// with an optional leading '#'.
func checkColor(what, s string) error {
	if s == "" {
		return nil
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return fmt.Errorf("scene: %s %q: %w", what, s, ErrInvalidConfig)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fmt.Errorf("scene: %s %q: %w", what, s, ErrInvalidConfig)
		}
	}
	return nil
}

func checkOpacity(label string, o *float64) error {
	if o != nil && (*o < 0 || *o > 1) {
		return fmt.Errorf("scene: %s opacity %v: %w", label, *o, ErrInvalidConfig)
	}
	return nil
}

// colormap resolves the surface colormap.
func (s SurfaceConfig) colormap() (*brainviz.Colormap, error) {
	var (
		cm  *brainviz.Colormap
		err error
	)
	if len(s.ColormapTable) > 0 {
		cm, err = brainviz.NewListedColormap(s.ColormapTable, s.NormalizedColormap)
	} else {
		cm, err = brainviz.ColormapByName(s.Colormap)
	}
	if err != nil {
		return nil, err
	}
	if s.ReverseColormap {
		cm = cm.Reversed()
	}
	return cm, nil
}

func opacityOr1(o *float64) float64 {
	if o == nil {
		return 1
	}
	return *o
}
