// Package look is a photo look engine: it applies named film and camera
// emulation presets to still images and provides a cheaper real-time
// approximation of the same look for live viewfinder frames.
//
// # Overview
//
// A Preset bundles around thirty independent effect parameters (tone
// recipe, grain, vignette, halation, lens artifacts, overlays) into one
// named look. The Processor composes the enabled effects in a fixed,
// visually-motivated order and always returns an image with the same
// dimensions and orientation as its input.
//
// # Quick start
//
//	import "github.com/fotolab/look"
//
//	fb := look.FromImage(img, look.OrientationNormal)
//	proc := look.NewProcessor()
//
//	preset, _ := look.PresetByID("portra400")
//	out, err := proc.Apply(preset, fb)
//	if err != nil {
//	    // only invalid input reaches here; effect failures degrade to no-ops
//	}
//	_ = out.SavePNG("graded.png")
//
// # Execution paths
//
// Every effect has a CPU implementation; the three most expensive ones
// (grain, vignette, halation) can additionally run as GPU compute kernels.
// GPU use is opt-in via a blank import of the gpu subpackage:
//
//	import _ "github.com/fotolab/look/gpu" // enables GPU acceleration
//
// If the device has no usable GPU or the kernels fail to compile, the
// engine permanently falls back to the CPU path for the process lifetime.
// Outputs of the two paths agree in visual direction and rough magnitude,
// not bit-for-bit.
//
// # Live preview
//
// The Previewer applies only the cheap subset of a look (tone and basic
// adjustments, plus GPU-dispatched grain/vignette/halation on capable
// devices) to a stream of viewfinder frames. Preview output is a visual
// hint; the Processor is the only source of the final image.
//
// # Concurrency
//
// Processor.Apply is a synchronous, CPU/GPU-bound call and is safe to run
// concurrently for different images. The only long-lived mutable state in
// the package is the previewer's last-applied-parameters cache and the
// write-once GPU capability flag.
package look

// Version information
const (
	// Version is the current version of the library
	Version = "0.4.0"
)
