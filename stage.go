package look

import (
	"errors"
	"sync/atomic"

	"github.com/fotolab/look/internal/parallel"
)

// ErrInvalidImage is returned when a stage or pipeline receives a nil or
// zero-sized input. It is the only error class that surfaces to callers;
// everything else degrades to a no-op.
var ErrInvalidImage = errors.New("look: invalid input image")

// Every effect stage is a pure function from an input framebuffer and a
// parameter to a fresh output framebuffer. Stages never hold state
// between invocations and never mutate their input; the only
// intentionally non-deterministic-looking stages (grain, jitter, light
// leak) draw from a seeded hash so the same seed reproduces the same
// output exactly.

// stageCalls counts stage executions process-wide. It exists so tests
// and instrumentation can verify that change-gating and neutral-skip
// logic performs no redundant work.
var stageCalls atomic.Uint64

// StageInvocations returns the number of stage executions since process
// start.
func StageInvocations() uint64 { return stageCalls.Load() }

// beginStage validates the input and returns a working copy for the
// stage to mutate.
func beginStage(src *Framebuffer) (*Framebuffer, error) {
	if src.Empty() {
		return nil, ErrInvalidImage
	}
	stageCalls.Add(1)
	return src.Clone(), nil
}

// eachRow runs fn over the framebuffer's rows in parallel bands.
func eachRow(fb *Framebuffer, fn func(y0, y1 int)) {
	parallel.Rows(fb.height, 0, fn)
}
