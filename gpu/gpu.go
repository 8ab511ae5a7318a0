//go:build !nogpu

// Package gpu registers the wgpu compute accelerator for the grain,
// vignette and halation stages.
//
// Import this package to run the heavy texture stages on the GPU via
// wgpu/hal compute shaders. If GPU initialization fails (no Vulkan
// device, kernel compilation error), registration still succeeds and
// the engine permanently downgrades to the CPU path for the life of
// the process.
//
// Usage:
//
//	import _ "github.com/fotolab/look/gpu" // enable GPU acceleration
package gpu

import (
	"github.com/fotolab/look"
)

func init() {
	accel := &ComputeAccelerator{}
	if err := look.RegisterAccelerator(accel); err != nil {
		look.Logger().Warn("GPU accelerator not available", "err", err)
	}
}
