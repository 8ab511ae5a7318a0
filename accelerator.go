package look

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the GPU accelerator cannot handle this
// operation. The caller should transparently fall back to the CPU stage.
var ErrFallbackToCPU = errors.New("look: falling back to CPU processing")

// AcceleratedOp describes stage types for GPU capability checking. Only
// the three costliest stages have compute-kernel equivalents.
type AcceleratedOp uint32

const (
	// AccelGrain is the film-grain synthesis stage.
	AccelGrain AcceleratedOp = 1 << iota

	// AccelVignette is the radial luminance-falloff stage.
	AccelVignette

	// AccelHalation is the highlight-bloom stage.
	AccelHalation
)

// String returns the op name for logging.
func (op AcceleratedOp) String() string {
	switch op {
	case AccelGrain:
		return "grain"
	case AccelVignette:
		return "vignette"
	case AccelHalation:
		return "halation"
	}
	return "unknown"
}

// StageTarget provides pixel buffer access for accelerated stages.
// The Data slice must be in RGBA format, 4 bytes per pixel, laid out
// row by row with the given Stride. Accelerators read and write it in
// place.
type StageTarget struct {
	Data          []uint8
	Width, Height int
	Stride        int // bytes per row
}

// StageAccelerator is an optional GPU execution provider for the grain,
// vignette and halation stages.
//
// When registered via RegisterAccelerator, the pipeline tries the GPU
// path first for supported operations. If ApplyStage returns
// ErrFallbackToCPU or any other error, processing transparently falls
// back to the CPU stage, which must produce the same visual direction
// and rough magnitude (pixel values are not required to match exactly).
//
// Implementations are provided by GPU backend packages. Users opt in via
// blank import:
//
//	import _ "github.com/fotolab/look/gpu" // enables GPU acceleration
type StageAccelerator interface {
	// Name returns the accelerator name (e.g., "wgpu-compute").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	// A device or kernel-compilation failure must not be returned as an
	// error here; the accelerator should log it and report false from
	// Ready so the engine downgrades to the CPU path.
	Init() error

	// Close releases GPU resources.
	Close()

	// Ready reports whether the device opened and all kernels compiled.
	// Evaluated once by the capability gate; a false result downgrades
	// the process to the CPU path permanently.
	Ready() bool

	// CanAccelerate reports whether the accelerator supports the given
	// operation. This is a fast check used to skip GPU entirely for
	// unsupported operations.
	CanAccelerate(op AcceleratedOp) bool

	// ApplyStage runs one accelerated stage over the target in place.
	// intensity is the stage magnitude in [0,1]; seed feeds the grain
	// kernel's noise hash and is ignored by the other ops.
	// Returns ErrFallbackToCPU if the op cannot be accelerated.
	ApplyStage(target StageTarget, op AcceleratedOp, intensity float64, seed uint32) error
}

var (
	accelMu sync.RWMutex
	accel   StageAccelerator
)

// RegisterAccelerator registers a stage accelerator for optional GPU
// processing.
//
// Only one accelerator can be registered; subsequent calls replace the
// previous one. The accelerator's Init() method is called during
// registration. If Init() fails, the accelerator is not registered and
// the error is returned.
//
// Typical usage via blank import in GPU backend packages:
//
//	func init() {
//	    look.RegisterAccelerator(New())
//	}
func RegisterAccelerator(a StageAccelerator) error {
	if a == nil {
		return errors.New("look: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Accelerator returns the currently registered stage accelerator, or nil
// if none.
func Accelerator() StageAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}
