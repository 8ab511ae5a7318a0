package look

import (
	"math"

	"github.com/fotolab/look/cache"
)

// CurvePoint is one tone-curve control point. X is input luminance and Y
// is output luminance, both normalized to [0, 1].
type CurvePoint struct {
	X, Y float64
}

// Recipe is the resolved parameter tuple for a named film or camera
// stock emulation. Applying a recipe is equivalent to running the basic
// adjustment stage with these values, optionally followed by a
// tone-curve remap and a monochrome tint. Recipes are pure data.
type Recipe struct {
	Name string

	Saturation  float64 // multiplier, 1.0 neutral
	Brightness  float64 // offset, [-1,1], 0 neutral
	Contrast    float64 // multiplier, 1.0 neutral
	Temperature float64 // [-1,1], + warm / - cool, 0 neutral

	// Curve is an optional tone curve. Points must be sorted by X and
	// span the full range; the compiled remap passes through them
	// monotonically so it never inverts tonal order.
	Curve []CurvePoint

	// Mono collapses the image to a single hue: saturation is dropped to
	// zero and the remaining luminance is tinted with Tint.
	Mono bool
	Tint RGBA
}

// EncodesSaturation reports whether the recipe already establishes the
// image's saturation. The orchestrator skips the preset's own saturation
// module in that case to avoid double-correcting.
func (r Recipe) EncodesSaturation() bool { return r.Mono || active(r.Saturation-1) }

// EncodesBrightness reports whether the recipe already establishes the
// image's brightness.
func (r Recipe) EncodesBrightness() bool { return active(r.Brightness) }

// EncodesContrast reports whether the recipe already establishes the
// image's contrast.
func (r Recipe) EncodesContrast() bool { return active(r.Contrast-1) || len(r.Curve) > 0 }

// neutralRecipe is the defined fallback for unknown or empty LUT names:
// a slight warm lift rather than a strict identity, so a preset that
// references a missing recipe still reads as "filtered".
var neutralRecipe = Recipe{
	Name:        "neutral",
	Saturation:  1.02,
	Brightness:  0.01,
	Contrast:    1.0,
	Temperature: 0.04,
}

// recipes maps LUT identifiers to their emulation parameters. The exact
// numbers are artistic tuning, not contracts; what is fixed is that every
// name referenced by the shipped catalog resolves here.
var recipes = map[string]Recipe{
	"portra_like": {
		Name: "portra_like", Saturation: 0.92, Brightness: 0.03, Contrast: 0.96,
		Temperature: 0.08,
		Curve: []CurvePoint{{0, 0.04}, {0.25, 0.22}, {0.5, 0.52}, {0.75, 0.8}, {1, 0.97}},
	},
	"ektar_like": {
		Name: "ektar_like", Saturation: 1.22, Brightness: 0, Contrast: 1.08,
		Temperature: 0.05,
		Curve: []CurvePoint{{0, 0}, {0.2, 0.16}, {0.5, 0.5}, {0.8, 0.86}, {1, 1}},
	},
	"velvia_like": {
		Name: "velvia_like", Saturation: 1.35, Brightness: -0.02, Contrast: 1.18,
		Temperature: -0.02,
		Curve: []CurvePoint{{0, 0}, {0.18, 0.12}, {0.5, 0.5}, {0.82, 0.9}, {1, 1}},
	},
	"superia_like": {
		Name: "superia_like", Saturation: 1.08, Brightness: 0.02, Contrast: 1.02,
		Temperature: -0.04,
		Curve: []CurvePoint{{0, 0.02}, {0.3, 0.28}, {0.6, 0.62}, {1, 0.98}},
	},
	"gold_like": {
		Name: "gold_like", Saturation: 1.1, Brightness: 0.04, Contrast: 0.98,
		Temperature: 0.12,
	},
	"cinestill_night": {
		Name: "cinestill_night", Saturation: 0.95, Brightness: -0.03, Contrast: 1.05,
		Temperature: -0.1,
		Curve: []CurvePoint{{0, 0.06}, {0.4, 0.36}, {0.75, 0.78}, {1, 0.95}},
	},
	"kodachrome_like": {
		Name: "kodachrome_like", Saturation: 1.15, Brightness: -0.01, Contrast: 1.12,
		Temperature: 0.03,
		Curve: []CurvePoint{{0, 0}, {0.22, 0.16}, {0.55, 0.58}, {1, 1}},
	},
	"polaroid_like": {
		Name: "polaroid_like", Saturation: 0.85, Brightness: 0.05, Contrast: 0.9,
		Temperature: 0.06,
		Curve: []CurvePoint{{0, 0.08}, {0.5, 0.52}, {1, 0.92}},
	},
	"instax_like": {
		Name: "instax_like", Saturation: 1.05, Brightness: 0.06, Contrast: 0.94,
		Temperature: -0.03,
		Curve: []CurvePoint{{0, 0.05}, {0.5, 0.54}, {1, 0.96}},
	},
	"trix_mono": {
		Name: "trix_mono", Contrast: 1.15, Saturation: 1, Brightness: 0,
		Mono: true, Tint: RGB(1, 1, 1),
		Curve: []CurvePoint{{0, 0}, {0.2, 0.14}, {0.5, 0.5}, {0.8, 0.88}, {1, 1}},
	},
	"hp5_mono": {
		Name: "hp5_mono", Contrast: 1.05, Saturation: 1, Brightness: 0.02,
		Mono: true, Tint: RGB(1, 1, 1),
		Curve: []CurvePoint{{0, 0.03}, {0.5, 0.52}, {1, 0.97}},
	},
	"sepia_tone": {
		Name: "sepia_tone", Contrast: 0.98, Saturation: 1, Brightness: 0.02,
		Mono: true, Tint: RGB(1, 0.9, 0.72),
	},
	"bleach_bypass": {
		Name: "bleach_bypass", Saturation: 0.55, Brightness: 0, Contrast: 1.25,
		Curve: []CurvePoint{{0, 0}, {0.3, 0.22}, {0.7, 0.78}, {1, 1}},
	},
	"teal_orange": {
		Name: "teal_orange", Saturation: 1.12, Brightness: 0, Contrast: 1.06,
		Temperature: 0.1,
		Curve: []CurvePoint{{0, 0.02}, {0.35, 0.3}, {0.65, 0.7}, {1, 0.98}},
	},
	"lomo_xpro": {
		Name: "lomo_xpro", Saturation: 1.3, Brightness: -0.04, Contrast: 1.22,
		Temperature: -0.06,
		Curve: []CurvePoint{{0, 0}, {0.25, 0.16}, {0.75, 0.86}, {1, 1}},
	},
}

// ResolveRecipe maps a LUT identifier to its recipe. Unknown or empty
// names resolve to the neutral recipe (slight warm lift), never to an
// error: a preset referencing a missing recipe must still produce output.
func ResolveRecipe(name string) Recipe {
	if name == "" {
		return neutralRecipe
	}
	r, ok := recipes[name]
	if !ok {
		Logger().Warn("look: unknown recipe, using neutral", "lut", name)
		return neutralRecipe
	}
	return r
}

// curveCache holds compiled tone-curve tables keyed by recipe name.
// Compilation is cheap but runs per Apply call otherwise; on the preview
// path that would be once per parameter change per frame burst.
var curveCache = cache.New[string, *[256]uint8](cache.DefaultCapacity, cache.StringHasher)

// toneTable returns the compiled 256-entry remap for the recipe's curve,
// or nil if the recipe has no curve.
func toneTable(r Recipe) *[256]uint8 {
	if len(r.Curve) == 0 {
		return nil
	}
	return curveCache.GetOrCreate(r.Name, func() *[256]uint8 {
		return compileCurve(r.Curve)
	})
}

// compileCurve builds a 256-entry lookup table from control points using
// monotone cubic Hermite interpolation (Fritsch–Carlson). Monotonicity
// matters: a curve that locally inverts tonal order produces banding and
// halo artifacts.
func compileCurve(points []CurvePoint) *[256]uint8 {
	pts := normalizeCurve(points)
	n := len(pts)

	// Segment slopes.
	d := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		dx := pts[i+1].X - pts[i].X
		d[i] = (pts[i+1].Y - pts[i].Y) / dx
	}

	// Tangents, limited per Fritsch–Carlson so interpolation stays
	// monotone between every pair of control points.
	m := make([]float64, n)
	m[0] = d[0]
	m[n-1] = d[n-2]
	for i := 1; i < n-1; i++ {
		if d[i-1]*d[i] <= 0 {
			m[i] = 0
		} else {
			m[i] = (d[i-1] + d[i]) / 2
		}
	}
	for i := 0; i < n-1; i++ {
		if d[i] == 0 {
			m[i], m[i+1] = 0, 0
			continue
		}
		a, b := m[i]/d[i], m[i+1]/d[i]
		if s := a*a + b*b; s > 9 {
			t := 3 / math.Sqrt(s)
			m[i] = t * a * d[i]
			m[i+1] = t * b * d[i]
		}
	}

	var lut [256]uint8
	seg := 0
	for i := 0; i < 256; i++ {
		x := float64(i) / 255
		for seg < n-2 && x > pts[seg+1].X {
			seg++
		}
		h := pts[seg+1].X - pts[seg].X
		t := (x - pts[seg].X) / h
		t2, t3 := t*t, t*t*t
		y := (2*t3-3*t2+1)*pts[seg].Y +
			(t3-2*t2+t)*h*m[seg] +
			(-2*t3+3*t2)*pts[seg+1].Y +
			(t3-t2)*h*m[seg+1]
		lut[i] = clamp8(y * 255)
	}
	return &lut
}

// normalizeCurve sorts the control points, deduplicates equal X values
// and pins the endpoints to X=0 and X=1 so every input maps somewhere.
func normalizeCurve(points []CurvePoint) []CurvePoint {
	pts := make([]CurvePoint, 0, len(points)+2)
	for _, p := range points {
		pts = append(pts, CurvePoint{X: clamp01(p.X), Y: clamp01(p.Y)})
	}
	// Insertion sort; control point lists are tiny.
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && pts[j].X < pts[j-1].X; j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}
	out := pts[:0]
	for i, p := range pts {
		if i > 0 && p.X-out[len(out)-1].X < 1e-6 {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 || out[0].X > 0 {
		out = append([]CurvePoint{{0, 0}}, out...)
	}
	if out[len(out)-1].X < 1 {
		out = append(out, CurvePoint{1, 1})
	}
	if len(out) < 2 {
		out = append(out, CurvePoint{1, 1})
	}
	return out
}
