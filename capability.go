package look

import (
	"sync"
	"sync/atomic"
)

// Capability is the result of one-time GPU capability detection.
type Capability uint8

const (
	// NotCapable means every stage dispatch uses the CPU path for the
	// rest of the process lifetime.
	NotCapable Capability = iota

	// Capable means grain, vignette and halation may be dispatched to
	// the registered accelerator.
	Capable
)

// String returns the capability name for logging.
func (c Capability) String() string {
	if c == Capable {
		return "capable"
	}
	return "not-capable"
}

var (
	capOnce  sync.Once
	capValue atomic.Uint32
)

// DetectCapability evaluates once per process whether the GPU path is
// usable: an accelerator must be registered and must report Ready — the
// device opened and its compute kernels compiled. The result is cached;
// a NotCapable verdict is permanent and no further GPU attempt is made.
//
// Failure to compile is not fatal: it flips capability to NotCapable and
// all subsequent stage dispatch silently uses the CPU path.
//
// Safe for concurrent use from multiple pipeline invocations.
func DetectCapability() Capability {
	capOnce.Do(func() {
		a := Accelerator()
		switch {
		case a == nil:
			capValue.Store(uint32(NotCapable))
			Logger().Debug("look: no accelerator registered, using CPU path")
		case !a.Ready():
			capValue.Store(uint32(NotCapable))
			Logger().Warn("look: accelerator not ready, downgrading to CPU path",
				"accelerator", a.Name())
		default:
			capValue.Store(uint32(Capable))
			Logger().Info("look: GPU path enabled", "accelerator", a.Name())
		}
	})
	return Capability(capValue.Load())
}

// useGPU reports whether op should be dispatched to the accelerator.
// Cheap enough to call per stage per frame.
func useGPU(op AcceleratedOp) bool {
	if DetectCapability() != Capable {
		return false
	}
	a := Accelerator()
	return a != nil && a.CanAccelerate(op)
}

// DisableGPU pins the capability verdict to NotCapable for the rest of
// the process, regardless of any registered accelerator. Call it before
// the first stage dispatch; later calls still stop any further GPU use.
// Meant for tests and headless environments that want deterministic CPU
// output.
func DisableGPU() {
	capOnce.Do(func() {})
	capValue.Store(uint32(NotCapable))
	Logger().Debug("look: GPU path disabled")
}

// resetCapabilityForTest clears the cached detection verdict. Tests that
// swap accelerators call this between cases; production code never does.
func resetCapabilityForTest() {
	capOnce = sync.Once{}
	capValue.Store(uint32(NotCapable))
}
