package look

import (
	"math"

	"github.com/fotolab/look/internal/srgb"
)

// colorMatrix is a 4x5 color transformation in row-major order, operating
// on channel values in the [0, 255] domain. The fifth column is a bias:
//
//	R' = m[0]*R + m[1]*G + m[2]*B + m[3]*A + m[4]
//	G' = m[5]*R + ...
type colorMatrix [20]float64

func identityMatrix() colorMatrix {
	return colorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// compose returns the matrix that applies n first, then m.
func (m colorMatrix) compose(n colorMatrix) colorMatrix {
	var out colorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 5; col++ {
			var v float64
			for k := 0; k < 4; k++ {
				v += m[row*5+k] * n[k*5+col]
			}
			if col == 4 {
				v += m[row*5+4]
			}
			out[row*5+col] = v
		}
	}
	return out
}

func (m colorMatrix) isIdentity() bool {
	id := identityMatrix()
	for i := range m {
		if math.Abs(m[i]-id[i]) > 1e-9 {
			return false
		}
	}
	return true
}

// brightnessMatrix offsets all color channels. offset is in [-1, 1] of
// full scale.
func brightnessMatrix(offset float64) colorMatrix {
	o := offset * 255
	return colorMatrix{
		1, 0, 0, 0, o,
		0, 1, 0, 0, o,
		0, 0, 1, 0, o,
		0, 0, 0, 1, 0,
	}
}

// contrastMatrix scales channels around mid-gray: (v - 128)*factor + 128.
func contrastMatrix(factor float64) colorMatrix {
	o := 128 * (1 - factor)
	return colorMatrix{
		factor, 0, 0, 0, o,
		0, factor, 0, 0, o,
		0, 0, factor, 0, o,
		0, 0, 0, 1, 0,
	}
}

// saturationMatrix blends between Rec. 709 luminance (factor 0) and
// identity (factor 1).
func saturationMatrix(factor float64) colorMatrix {
	inv := 1 - factor
	return colorMatrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// temperatureMatrix shifts white balance. temp > 0 warms (red up, blue
// down); tint > 0 pushes magenta (green down).
func temperatureMatrix(temp, tint float64) colorMatrix {
	r := 1 + temp*0.18
	b := 1 - temp*0.18
	g := 1 - tint*0.12
	return colorMatrix{
		r, 0, 0, 0, 0,
		0, g, 0, 0, 0,
		0, 0, b, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// tintMatrix multiplies channels by a color, used for monochrome tints.
func tintMatrix(c RGBA) colorMatrix {
	return colorMatrix{
		c.R, 0, 0, 0, 0,
		0, c.G, 0, 0, 0,
		0, 0, c.B, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// applyMatrix transforms every pixel in place.
func applyMatrix(fb *Framebuffer, m colorMatrix) {
	eachRow(fb, func(y0, y1 int) {
		d := fb.data
		for y := y0; y < y1; y++ {
			i := y * fb.width * 4
			for x := 0; x < fb.width; x++ {
				r := float64(d[i+0])
				g := float64(d[i+1])
				b := float64(d[i+2])
				a := float64(d[i+3])
				d[i+0] = clamp8(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
				d[i+1] = clamp8(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
				d[i+2] = clamp8(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
				d[i+3] = clamp8(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])
				i += 4
			}
		}
	})
}

// applyChannelLUT remaps the three color channels through a 256-entry
// table in place. Alpha is untouched.
func applyChannelLUT(fb *Framebuffer, lut *[256]uint8) {
	eachRow(fb, func(y0, y1 int) {
		d := fb.data
		for i := y0 * fb.width * 4; i < y1*fb.width*4; i += 4 {
			d[i+0] = lut[d[i+0]]
			d[i+1] = lut[d[i+1]]
			d[i+2] = lut[d[i+2]]
		}
	})
}

// BasicAdjust holds the per-run color controls merged from recipe and
// module values. All fields use module conventions (deltas around
// neutral zero) except as noted.
type BasicAdjust struct {
	Temperature float64 // [-1,1]
	Tint        float64 // [-1,1]
	Exposure    float64 // stops
	Brightness  float64 // [-1,1] offset
	Contrast    float64 // [-1,1] delta around 1.0
	Saturation  float64 // [-1,1] delta around 1.0
}

// IsNeutral reports whether no adjustment would change the image.
func (a BasicAdjust) IsNeutral() bool { return a == BasicAdjust{} }

// matrix composes the non-exposure controls into one color matrix so the
// whole adjustment is a single image pass.
func (a BasicAdjust) matrix() colorMatrix {
	m := identityMatrix()
	if active(a.Temperature) || active(a.Tint) {
		m = temperatureMatrix(a.Temperature, a.Tint).compose(m)
	}
	if active(a.Contrast) {
		m = contrastMatrix(1 + a.Contrast*0.5).compose(m)
	}
	if active(a.Saturation) {
		m = saturationMatrix(1 + a.Saturation).compose(m)
	}
	if active(a.Brightness) {
		m = brightnessMatrix(a.Brightness * 0.5).compose(m)
	}
	return m
}

// AdjustBasic applies temperature/tint, exposure, contrast, saturation
// and brightness in one pass. Exposure runs in linear light; the rest is
// a composed color matrix in the sRGB domain.
func AdjustBasic(src *Framebuffer, a BasicAdjust) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if active(a.Exposure) {
		applyChannelLUT(out, exposureLUT(a.Exposure))
	}
	if m := a.matrix(); !m.isIdentity() {
		applyMatrix(out, m)
	}
	return out, nil
}

// exposureLUT precomputes v -> linear(v) * 2^stops -> sRGB for all 256
// channel values. Photographic exposure is multiplicative in linear
// light, not in the gamma-encoded domain.
func exposureLUT(stops float64) *[256]uint8 {
	gain := float32(math.Pow(2, stops))
	var lut [256]uint8
	for i := 0; i < 256; i++ {
		lut[i] = srgb.FromLinear(srgb.ToLinear(uint8(i)) * gain)
	}
	return &lut
}

// ApplyRecipe runs a resolved look-emulation recipe: its basic
// adjustments, then the optional tone curve, then the optional
// monochrome tint. The orchestrator invokes each recipe exactly once per
// pipeline run.
func ApplyRecipe(src *Framebuffer, r Recipe) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}

	m := identityMatrix()
	if active(r.Temperature) {
		m = temperatureMatrix(r.Temperature, 0).compose(m)
	}
	if active(r.Contrast - 1) {
		m = contrastMatrix(r.Contrast).compose(m)
	}
	if r.Mono {
		m = saturationMatrix(0).compose(m)
	} else if active(r.Saturation - 1) {
		m = saturationMatrix(r.Saturation).compose(m)
	}
	if active(r.Brightness) {
		m = brightnessMatrix(r.Brightness * 0.5).compose(m)
	}
	if !m.isIdentity() {
		applyMatrix(out, m)
	}

	if lut := toneTable(r); lut != nil {
		applyChannelLUT(out, lut)
	}

	if r.Mono && (r.Tint != RGBA{}) && r.Tint != RGB(1, 1, 1) {
		applyMatrix(out, tintMatrix(r.Tint))
	}
	return out, nil
}
