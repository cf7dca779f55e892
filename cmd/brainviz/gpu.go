//go:build gpu

package main

// Build with -tags gpu to render previews on the GPU when one is available.
import _ "github.com/gogpu/gg/gpu"
