package look

import (
	"time"
)

// Processor runs the full effect pipeline. It is stateless apart from
// its configuration and safe for concurrent use; every Apply call works
// on its own framebuffer copies.
type Processor struct {
	seed uint32
	now  func() time.Time
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithSeed fixes the noise seed used by the grain, jitter and light
// leak stages. The default seed is fixed too; two runs with the same
// preset and input always produce identical output.
func WithSeed(seed uint32) ProcessorOption {
	return func(p *Processor) { p.seed = seed }
}

// WithClock overrides the time source for the timestamp overlay.
func WithClock(now func() time.Time) ProcessorOption {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProcessor creates a pipeline processor.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		seed: 0x1337,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply runs every active module of the preset over src and returns a
// new framebuffer. src is never modified.
//
// Stages run in a fixed order: look emulation, basic color, geometry,
// creative texture, digital artifacts, enhancement, finishing,
// overlays. The order is part of the engine's contract — presets are
// tuned against it and reordering changes their look.
//
// A stage that fails is skipped: the pipeline logs the failure and
// continues from the stage's input, so one broken effect degrades the
// look instead of losing the photo. Only an invalid input image is
// reported as an error. Output dimensions and orientation always match
// the input.
func (p *Processor) Apply(preset Preset, src *Framebuffer) (*Framebuffer, error) {
	if src == nil || src.Empty() {
		return nil, ErrInvalidImage
	}

	m := preset.Modules
	if m.IsNeutral() {
		return src.Clone(), nil
	}

	fb := src
	orient := src.Orientation()

	// Phase 1: look emulation. The recipe owns whichever basic controls
	// it encodes; the matching module values are dropped below so the
	// same correction is never applied twice.
	var recipe Recipe
	hasRecipe := m.LUT != ""
	if hasRecipe {
		recipe = ResolveRecipe(m.LUT)
		fb = p.runStage(fb, "recipe", func(in *Framebuffer) (*Framebuffer, error) {
			return ApplyRecipe(in, recipe)
		})
	}

	// Phase 2: basic color.
	adjust := BasicAdjust{
		Temperature: m.Temperature,
		Tint:        m.TintShift,
		Exposure:    m.Exposure,
		Brightness:  m.Brightness,
		Contrast:    m.Contrast,
		Saturation:  m.Saturation,
	}
	if hasRecipe {
		if recipe.EncodesSaturation() {
			adjust.Saturation = 0
		}
		if recipe.EncodesBrightness() {
			adjust.Brightness = 0
		}
		if recipe.EncodesContrast() {
			adjust.Contrast = 0
		}
		if active(recipe.Temperature) {
			adjust.Temperature = 0
		}
	}
	if !adjust.IsNeutral() {
		fb = p.runStage(fb, "basic", func(in *Framebuffer) (*Framebuffer, error) {
			return AdjustBasic(in, adjust)
		})
	}

	// Phase 3: geometry. Warping after color keeps the tone curve from
	// being resampled through the warp's bilinear filter.
	if active(m.Distortion) {
		fb = p.runStage(fb, "distort", func(in *Framebuffer) (*Framebuffer, error) {
			return Distort(in, m.Distortion)
		})
	}

	// Phase 4: creative texture. Grain, vignette and halation go through
	// the accelerator when one is registered and capable.
	if active(m.Grain) {
		fb = p.runAccel(fb, AccelGrain, m.Grain, func(in *Framebuffer) (*Framebuffer, error) {
			return Grain(in, m.Grain, p.seed)
		})
	}
	if active(m.Vignette) {
		fb = p.runAccel(fb, AccelVignette, m.Vignette, func(in *Framebuffer) (*Framebuffer, error) {
			return Vignette(in, m.Vignette)
		})
	}
	if active(m.Halation) {
		fb = p.runAccel(fb, AccelHalation, m.Halation, func(in *Framebuffer) (*Framebuffer, error) {
			return Halation(in, m.Halation)
		})
	}
	if active(m.Aberration) {
		fb = p.runStage(fb, "aberration", func(in *Framebuffer) (*Framebuffer, error) {
			return ChromaticAberration(in, m.Aberration)
		})
	}
	if active(m.ChromaBleed) {
		fb = p.runStage(fb, "chroma_bleed", func(in *Framebuffer) (*Framebuffer, error) {
			return ChromaBleed(in, m.ChromaBleed)
		})
	}

	// Phase 5: digital artifacts.
	if active(m.Pixelate) {
		fb = p.runStage(fb, "pixelate", func(in *Framebuffer) (*Framebuffer, error) {
			return Pixelate(in, m.Pixelate)
		})
	}
	if active(m.Scanlines) {
		fb = p.runStage(fb, "scanlines", func(in *Framebuffer) (*Framebuffer, error) {
			return Scanlines(in, m.Scanlines)
		})
	}
	if active(m.Interlace) {
		fb = p.runStage(fb, "interlace", func(in *Framebuffer) (*Framebuffer, error) {
			return Interlace(in, m.Interlace)
		})
	}
	if active(m.Jitter) {
		fb = p.runStage(fb, "jitter", func(in *Framebuffer) (*Framebuffer, error) {
			return Jitter(in, m.Jitter, p.seed)
		})
	}

	// Phase 6: enhancement.
	if active(m.Sharpen) {
		fb = p.runStage(fb, "sharpen", func(in *Framebuffer) (*Framebuffer, error) {
			return Sharpen(in, m.Sharpen)
		})
	}
	if active(m.EdgeEnhance) {
		fb = p.runStage(fb, "edge_enhance", func(in *Framebuffer) (*Framebuffer, error) {
			return EdgeEnhance(in, m.EdgeEnhance)
		})
	}
	if active(m.Posterize) {
		fb = p.runStage(fb, "posterize", func(in *Framebuffer) (*Framebuffer, error) {
			return Posterize(in, m.Posterize)
		})
	}

	// Phase 7: finishing.
	if active(m.BlackLift) {
		fb = p.runStage(fb, "black_lift", func(in *Framebuffer) (*Framebuffer, error) {
			return BlackLift(in, m.BlackLift)
		})
	}
	if active(m.EdgeFade) {
		fb = p.runStage(fb, "edge_fade", func(in *Framebuffer) (*Framebuffer, error) {
			return EdgeFade(in, m.EdgeFade)
		})
	}
	if active(m.SkinSmooth) {
		fb = p.runStage(fb, "skin_smooth", func(in *Framebuffer) (*Framebuffer, error) {
			return SkinSmooth(in, m.SkinSmooth)
		})
	}

	// Phase 8: overlays. The leak washes over the frame border, the way
	// light fogs the whole print.
	if m.Frame {
		fb = p.runStage(fb, "frame", func(in *Framebuffer) (*Framebuffer, error) {
			return FrameOverlay(in, m.FrameColor)
		})
	}
	if active(m.LightLeak) {
		fb = p.runStage(fb, "light_leak", func(in *Framebuffer) (*Framebuffer, error) {
			return LightLeak(in, m.LightLeak, p.seed)
		})
	}
	if m.Timestamp {
		fb = p.runStage(fb, "timestamp", func(in *Framebuffer) (*Framebuffer, error) {
			return Timestamp(in, p.now())
		})
	}

	if fb == src {
		// Every stage was skipped or failed; callers still own a copy.
		fb = src.Clone()
	}
	fb.SetOrientation(orient)
	return fb, nil
}

// ApplyBasic runs only the basic color controls. It backs the live
// preview path, where the full pipeline is too slow per frame.
func (p *Processor) ApplyBasic(params BasicParams, src *Framebuffer) (*Framebuffer, error) {
	if src == nil || src.Empty() {
		return nil, ErrInvalidImage
	}
	out, err := AdjustBasic(src, BasicAdjust{
		Brightness: params.Brightness,
		Contrast:   params.Contrast,
		Saturation: params.Saturation,
	})
	if err != nil {
		Logger().Warn("look: basic adjust failed, passing input through", "error", err)
		return src.Clone(), nil
	}
	out.SetOrientation(src.Orientation())
	return out, nil
}

// runStage executes one stage function and applies the degradation
// policy: on error the stage's input is carried forward unchanged.
func (p *Processor) runStage(in *Framebuffer, name string, fn func(*Framebuffer) (*Framebuffer, error)) *Framebuffer {
	out, err := fn(in)
	if err != nil {
		Logger().Warn("look: stage failed, passing input through",
			"stage", name, "error", err)
		return in
	}
	return out
}

// runAccel routes a stage to the registered accelerator when the
// capability gate allows it, falling back to the CPU implementation on
// any accelerator error.
func (p *Processor) runAccel(in *Framebuffer, op AcceleratedOp, intensity float64, cpu func(*Framebuffer) (*Framebuffer, error)) *Framebuffer {
	if useGPU(op) {
		acc := Accelerator()
		if acc != nil && acc.CanAccelerate(op) {
			out, err := beginStage(in)
			if err == nil {
				err = acc.ApplyStage(StageTarget{
					Data:   out.data,
					Width:  out.width,
					Height: out.height,
					Stride: out.width * 4,
				}, op, intensity, p.seed)
				if err == nil {
					return out
				}
				Logger().Warn("look: accelerated stage failed, using CPU",
					"op", op.String(), "error", err)
			}
		}
	}
	return p.runStage(in, op.String(), cpu)
}
