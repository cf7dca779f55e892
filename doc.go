// Package brainviz provides the geometry kernels behind 3-D views of brain
// surfaces, sensor locations and source activity.
//
// # Overview
//
// brainviz turns the raw arrays a neurophysiology pipeline produces (vertex
// coordinates, triangle indices, per-vertex scalars) into geometry that any
// rendering library can consume: sphere glyph meshes for point locations and
// isolines of scalar fields. It also maps scalars to colors. All kernels are
// pure functions: safe for concurrent use, deterministic, and free of I/O.
//
// # Quick Start
//
//	import "github.com/gogpu/brainviz"
//
//	// One sphere glyph per sensor, merged into a single mesh
//	glyphs, err := brainviz.PlaceSpheres(sensors, 0.01, brainviz.DefaultSphereResolution)
//
//	// Ten evenly spaced contours of a source estimate on the cortex
//	vmin, vmax, _ := brainviz.ScalarRange(activity)
//	levels, _ := brainviz.EvenLevels(vmin, vmax, 10)
//	iso, err := brainviz.Contour(cortex, activity, levels)
//
//	// Color each isoline point by its level
//	colors := brainviz.Colorize(iso.Levels, brainviz.Coolwarm(), vmin, vmax, 1)
//
// # Conventions
//
//   - Vertices are [r3.Vec] values; triangles are index triples into them.
//   - Sphere meshes run from the +Z pole to the -Z pole.
//   - Invalid shapes or ranges return errors wrapping [ErrInvalidArgument].
//
// # Sub-packages
//
//   - scene: declarative scene files (YAML or TOML) built into geometry
//   - preview: headless PNG previews of a built scene
package brainviz
