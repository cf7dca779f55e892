// Command brainviz builds a scene file into geometry and exports it as a PNG
// preview, a Wavefront OBJ file, or both.
//
// Usage:
//
//	brainviz -scene scene.yaml -png out.png -obj out.obj
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/brainviz"
	"github.com/gogpu/brainviz/preview"
	"github.com/gogpu/brainviz/scene"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "scene file (.yaml, .yml or .toml)")
		pngPath   = flag.String("png", "", "write a PNG preview to this file")
		objPath   = flag.String("obj", "", "write the geometry as OBJ to this file")
		workers   = flag.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *scenePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	brainviz.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := scene.Load(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	s, err := scene.Build(cfg, brainviz.WithWorkers(*workers))
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	if *pngPath != "" {
		if err := writePNG(*pngPath, s); err != nil {
			log.Fatalf("Failed to write preview: %v", err)
		}
		log.Printf("Preview saved to %s (%dx%d)\n", *pngPath, s.View.Width, s.View.Height)
	}
	if *objPath != "" {
		if err := writeOBJ(*objPath, s); err != nil {
			log.Fatalf("Failed to write OBJ: %v", err)
		}
		log.Printf("Geometry saved to %s\n", *objPath)
	}
}

func writePNG(path string, s *scene.Scene) error {
	img, err := preview.Render(s, s.View)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := preview.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeOBJ(path string, s *scene.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteOBJ(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
