package brainviz

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// Colormap maps normalized scalars in [0, 1] to colors.
//
// A segmented colormap interpolates linearly between evenly spaced stops; a
// listed colormap picks the table entry whose bin contains t.
type Colormap struct {
	name   string
	stops  []gg.RGBA
	listed bool
}

// coolwarmStops samples the diverging cool-to-warm map at nine even
// positions (sRGB, 0-255).
var coolwarmStops = [][3]float64{
	{59, 76, 192},
	{98, 130, 234},
	{141, 176, 254},
	{184, 208, 249},
	{221, 221, 221},
	{245, 196, 173},
	{244, 154, 123},
	{222, 96, 77},
	{180, 4, 38},
}

// Coolwarm returns the default diverging blue-white-red colormap.
func Coolwarm() *Colormap {
	stops := make([]gg.RGBA, len(coolwarmStops))
	for i, s := range coolwarmStops {
		stops[i] = gg.RGB(s[0]/255, s[1]/255, s[2]/255)
	}
	return &Colormap{name: "coolwarm", stops: stops}
}

// NewListedColormap builds a discrete colormap from table rows of 3 (RGB)
// or 4 (RGBA) components. When normalized is false the components are
// 0-255 and are scaled down to [0, 1].
func NewListedColormap(table [][]float64, normalized bool) (*Colormap, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("brainviz: empty colormap table: %w", ErrInvalidArgument)
	}
	div := 1.0
	if !normalized {
		div = 255
	}
	stops := make([]gg.RGBA, len(table))
	for i, row := range table {
		c := gg.RGBA{A: 1}
		switch len(row) {
		case 4:
			c.A = row[3] / div
			fallthrough
		case 3:
			c.R, c.G, c.B = row[0]/div, row[1]/div, row[2]/div
		default:
			return nil, fmt.Errorf("brainviz: colormap row %d has %d components, want 3 or 4: %w",
				i, len(row), ErrInvalidArgument)
		}
		stops[i] = c
	}
	return &Colormap{name: "listed", stops: stops, listed: true}, nil
}

// ColormapByName returns a built-in colormap. A "_r" suffix selects the
// reversed map.
func ColormapByName(name string) (*Colormap, error) {
	base, reversed := strings.CutSuffix(name, "_r")
	var cm *Colormap
	switch base {
	case "", "coolwarm":
		cm = Coolwarm()
	default:
		return nil, fmt.Errorf("brainviz: unknown colormap %q: %w", name, ErrInvalidArgument)
	}
	if reversed {
		cm = cm.Reversed()
	}
	return cm, nil
}

// Name returns the colormap name.
func (c *Colormap) Name() string { return c.name }

// Len returns the number of stops or table entries.
func (c *Colormap) Len() int { return len(c.stops) }

// At returns the color for t. t is clamped to [0, 1]; NaN maps to
// transparent black.
func (c *Colormap) At(t float64) gg.RGBA {
	if math.IsNaN(t) {
		return gg.RGBA{}
	}
	t = math.Max(0, math.Min(1, t))
	n := len(c.stops)
	if c.listed {
		return c.stops[min(int(t*float64(n)), n-1)]
	}
	if n == 1 {
		return c.stops[0]
	}
	pos := t * float64(n-1)
	i := min(int(pos), n-2)
	return c.stops[i].Lerp(c.stops[i+1], pos-float64(i))
}

// Reversed returns a copy of c with the order of its colors reversed.
func (c *Colormap) Reversed() *Colormap {
	stops := make([]gg.RGBA, len(c.stops))
	for i, s := range c.stops {
		stops[len(stops)-1-i] = s
	}
	name := c.name + "_r"
	if base, ok := strings.CutSuffix(c.name, "_r"); ok {
		name = base
	}
	return &Colormap{name: name, stops: stops, listed: c.listed}
}

// Colorize maps each value through cm after normalizing it to [vmin, vmax],
// and scales the alpha of the result by opacity.
func Colorize(values []float64, cm *Colormap, vmin, vmax, opacity float64) []gg.RGBA {
	out := make([]gg.RGBA, len(values))
	for i, v := range values {
		c := cm.At(Normalize(v, vmin, vmax))
		c.A *= opacity
		out[i] = c
	}
	return out
}
