package look

import "math"

// neutralEps is the tolerance below which a magnitude parameter counts as
// neutral and its stage is skipped entirely.
const neutralEps = 1e-4

// Modules is the flat record of effect parameters bundled by a preset.
//
// Every field's zero value is its neutral value: a zero Modules describes
// a look that leaves the image untouched. Magnitudes are centered so that
// 0 always means "off" — multiplicative controls such as Contrast and
// Saturation are expressed as deltas around 1.0, not as raw multipliers.
type Modules struct {
	// LUT names a look-emulation recipe (see ResolveRecipe). Empty means
	// no recipe; unknown names resolve to the neutral recipe.
	LUT string `yaml:"lut,omitempty"`

	// Color controls.
	Temperature float64 `yaml:"temperature,omitempty"` // [-1,1], + warm / - cool
	TintShift   float64 `yaml:"tint,omitempty"`        // [-1,1], + magenta / - green
	Exposure    float64 `yaml:"exposure,omitempty"`    // stops, [-2,2]
	Brightness  float64 `yaml:"brightness,omitempty"`  // [-1,1] offset
	Contrast    float64 `yaml:"contrast,omitempty"`    // [-1,1] delta around 1.0
	Saturation  float64 `yaml:"saturation,omitempty"`  // [-1,1] delta around 1.0

	// Geometry.
	Distortion float64 `yaml:"distortion,omitempty"` // [-1,1], + barrel / - pincushion

	// Creative effects.
	Grain       float64 `yaml:"grain,omitempty"`        // [0,1]
	Vignette    float64 `yaml:"vignette,omitempty"`     // [0,1]
	Halation    float64 `yaml:"halation,omitempty"`     // [0,1]
	Aberration  float64 `yaml:"aberration,omitempty"`   // [0,1] chromatic aberration
	ChromaBleed float64 `yaml:"chroma_bleed,omitempty"` // [0,1]

	// Digital / camera artifacts.
	Pixelate  float64 `yaml:"pixelate,omitempty"`  // [0,1]
	Scanlines float64 `yaml:"scanlines,omitempty"` // [0,1]
	Interlace float64 `yaml:"interlace,omitempty"` // [0,1]
	Jitter    float64 `yaml:"jitter,omitempty"`    // [0,1]

	// Enhancement.
	Sharpen     float64 `yaml:"sharpen,omitempty"`      // [0,1]
	EdgeEnhance float64 `yaml:"edge_enhance,omitempty"` // [0,1]
	Posterize   float64 `yaml:"posterize,omitempty"`    // [0,1], higher = fewer levels

	// Finishing.
	BlackLift  float64 `yaml:"black_lift,omitempty"`  // [0,1]
	EdgeFade   float64 `yaml:"edge_fade,omitempty"`   // [0,1]
	SkinSmooth float64 `yaml:"skin_smooth,omitempty"` // [0,1]

	// Overlays.
	Frame      bool    `yaml:"frame,omitempty"`
	FrameColor string  `yaml:"frame_color,omitempty"` // hex, defaults to white
	LightLeak  float64 `yaml:"light_leak,omitempty"`  // [0,1]
	Timestamp  bool    `yaml:"timestamp,omitempty"`
}

// IsNeutral reports whether every module is at its neutral value.
func (m Modules) IsNeutral() bool {
	return m == Modules{}
}

// active reports whether a magnitude parameter is far enough from neutral
// to be worth an image pass.
func active(v float64) bool {
	return math.Abs(v) > neutralEps
}

// Preset is a named, immutable bundle of effect parameters describing one
// visual look. Presets are value objects: they are created at catalog load
// time, looked up by ID, and never mutated.
type Preset struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Modules  Modules `yaml:"modules"`
}

// NeutralPreset returns a preset with every module neutral. Applying it
// reproduces the input image.
func NeutralPreset() Preset {
	return Preset{ID: "neutral", Name: "Neutral", Category: "none"}
}
