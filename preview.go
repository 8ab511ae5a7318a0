package look

import (
	"sync"
)

// FrameSink receives finished preview frames. Called from the
// previewer's worker goroutine; implementations should hand the frame
// off quickly (e.g. swap a texture) rather than block.
type FrameSink func(*Framebuffer)

// Previewer approximates the full pipeline at interactive rates. It
// applies only the cheap stages: the look recipe and the basic
// adjustments, which dominate the perceived change while the user is
// scrubbing a slider, plus grain, vignette and halation when a capable
// accelerator can run them as compute kernels. Without one, the texture
// trio and every remaining stage only run in the final Apply.
//
// Frames are processed asynchronously on a single worker with
// latest-wins semantics: when frames arrive faster than they can be
// processed, stale ones are dropped, never queued.
type Previewer struct {
	proc *Processor
	sink FrameSink

	mu       sync.Mutex
	compiled bool
	modules  Modules
	params   BasicParams
	recipe   Recipe
	adjust   BasicAdjust

	frames chan *Framebuffer
	stop   chan struct{}
	done   chan struct{}
}

// NewPreviewer starts a preview session delivering processed frames to
// sink. Close must be called to stop the worker.
func NewPreviewer(proc *Processor, sink FrameSink) *Previewer {
	if proc == nil {
		proc = NewProcessor()
	}
	p := &Previewer{
		proc:   proc,
		sink:   sink,
		frames: make(chan *Framebuffer, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

// UpdatePreview recompiles the preview chain for a new preset and
// parameter combination. Calling it again with unchanged values is
// free: the compiled chain is cached and no stage work happens until
// something actually differs.
func (p *Previewer) UpdatePreview(preset Preset, params BasicParams) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.compiled && preset.Modules == p.modules && params == p.params {
		return
	}

	p.modules = preset.Modules
	p.params = params
	p.recipe = Recipe{}
	if preset.Modules.LUT != "" {
		p.recipe = ResolveRecipe(preset.Modules.LUT)
		// Warm the tone table now so the first frame after a change
		// does not pay for curve compilation.
		toneTable(p.recipe)
	}
	p.adjust = BasicAdjust{
		Temperature: preset.Modules.Temperature,
		Tint:        preset.Modules.TintShift,
		Exposure:    preset.Modules.Exposure,
		Brightness:  preset.Modules.Brightness + params.Brightness,
		Contrast:    preset.Modules.Contrast + params.Contrast,
		Saturation:  preset.Modules.Saturation + params.Saturation,
	}
	p.compiled = true
}

// OnFrame submits a camera frame for preview processing. Never blocks:
// if the worker is still busy with the previous frame, that frame's
// pending predecessor is discarded. The previewer does not retain the
// frame after processing it.
func (p *Previewer) OnFrame(fb *Framebuffer) {
	if fb == nil || fb.Empty() {
		return
	}
	for {
		select {
		case p.frames <- fb:
			return
		case <-p.stop:
			return
		default:
		}
		// Channel full: drop the stale pending frame and retry.
		select {
		case <-p.frames:
		default:
		}
	}
}

// Reset clears the compiled chain and any pending frame. The next
// UpdatePreview recompiles from scratch; used when the preview session
// is torn down or the source stream restarts.
func (p *Previewer) Reset() {
	p.mu.Lock()
	p.compiled = false
	p.modules = Modules{}
	p.params = BasicParams{}
	p.recipe = Recipe{}
	p.adjust = BasicAdjust{}
	p.mu.Unlock()

	select {
	case <-p.frames:
	default:
	}
}

// Close stops the worker goroutine and waits for it to exit. Pending
// frames are dropped.
func (p *Previewer) Close() {
	select {
	case <-p.stop:
		return
	default:
	}
	close(p.stop)
	<-p.done
}

func (p *Previewer) run() {
	defer close(p.done)
	for {
		select {
		case <-p.stop:
			return
		case fb := <-p.frames:
			p.process(fb)
		}
	}
}

func (p *Previewer) process(fb *Framebuffer) {
	p.mu.Lock()
	compiled := p.compiled
	recipe := p.recipe
	adjust := p.adjust
	m := p.modules
	p.mu.Unlock()

	if !compiled {
		if p.sink != nil {
			p.sink(fb)
		}
		return
	}

	out := fb
	if m.LUT != "" {
		if r, err := ApplyRecipe(out, recipe); err == nil {
			out = r
		}
	}
	if !adjust.IsNeutral() {
		if r, err := AdjustBasic(out, adjust); err == nil {
			out = r
		}
	}

	// The texture trio previews only when a compute kernel can run it.
	// No CPU fallback here: a missed texture hint is invisible at
	// viewfinder size and the full Apply is the authoritative render.
	if active(m.Grain) {
		out = p.accelStage(out, AccelGrain, m.Grain)
	}
	if active(m.Vignette) {
		out = p.accelStage(out, AccelVignette, m.Vignette)
	}
	if active(m.Halation) {
		out = p.accelStage(out, AccelHalation, m.Halation)
	}

	if p.sink != nil {
		p.sink(out)
	}
}

// accelStage dispatches one texture stage to the accelerator on capable
// devices and returns the input unchanged everywhere else.
func (p *Previewer) accelStage(in *Framebuffer, op AcceleratedOp, intensity float64) *Framebuffer {
	if !useGPU(op) {
		return in
	}
	acc := Accelerator()
	if acc == nil {
		return in
	}
	out, err := beginStage(in)
	if err != nil {
		return in
	}
	if err := acc.ApplyStage(StageTarget{
		Data:   out.data,
		Width:  out.width,
		Height: out.height,
		Stride: out.width * 4,
	}, op, intensity, p.proc.seed); err != nil {
		Logger().Debug("look: preview stage dispatch failed, skipping",
			"op", op.String(), "error", err)
		return in
	}
	return out
}
