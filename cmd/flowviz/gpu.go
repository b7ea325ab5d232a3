//go:build gpu

package main

// GPU accelerator for the raster figure. Falls back to the CPU rasterizer
// when no adapter is available.
import _ "github.com/gogpu/gg/gpu"
