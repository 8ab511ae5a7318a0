package look

import (
	"image"

	"github.com/gohugoio/gift"
	xdraw "golang.org/x/image/draw"

	"github.com/fotolab/look/internal/srgb"
)

// halationThreshold is the luminance (0..255) above which highlights
// contribute to the glow.
const halationThreshold = 176

// Halation emulates the red-orange bloom around bright highlights caused
// by light reflecting off a film base. The glow is built at quarter
// resolution (bright-pass, gaussian blur, upscale) and screened onto
// the image in linear light so overlapping glow adds like real exposure.
//
// The stage runs after grain: blooming a pre-grain image would amplify
// the noise it sits on.
func Halation(src *Framebuffer, intensity float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(intensity) {
		return out, nil
	}

	w, h := out.width, out.height
	gw, gh := (w+3)/4, (h+3)/4
	if gw < 1 || gh < 1 {
		return out, nil
	}

	// Bright-pass at full resolution, then pull down to quarter size.
	bright := image.NewRGBA(image.Rect(0, 0, w, h))
	d := out.data
	for i := 0; i < len(d); i += 4 {
		l := lum8(d[i], d[i+1], d[i+2])
		if l > halationThreshold {
			// Keep the highlight color; the film-base tint is applied
			// at blend time.
			bright.Pix[i+0] = d[i+0]
			bright.Pix[i+1] = d[i+1]
			bright.Pix[i+2] = d[i+2]
			bright.Pix[i+3] = 255
		} else {
			bright.Pix[i+3] = 255
		}
	}

	small := image.NewRGBA(image.Rect(0, 0, gw, gh))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), bright, bright.Bounds(), xdraw.Src, nil)

	sigma := float32(1.5 + intensity*6)
	blurred := image.NewRGBA(small.Bounds())
	if err := gift.New(gift.GaussianBlur(sigma)).Draw(blurred, small); err != nil {
		return nil, err
	}

	glow := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(glow, glow.Bounds(), blurred, blurred.Bounds(), xdraw.Src, nil)

	// Screen blend in linear light, weighted toward red then green —
	// halation is never blue.
	wR := float32(intensity)
	wG := float32(intensity) * 0.45
	wB := float32(intensity) * 0.12
	eachRow(out, func(y0, y1 int) {
		for i := y0 * w * 4; i < y1*w*4; i += 4 {
			gr := srgb.ToLinear(glow.Pix[i+0]) * wR
			gg := srgb.ToLinear(glow.Pix[i+1]) * wG
			gb := srgb.ToLinear(glow.Pix[i+2]) * wB
			if gr == 0 && gg == 0 && gb == 0 {
				continue
			}
			r := srgb.ToLinear(d[i+0])
			g := srgb.ToLinear(d[i+1])
			b := srgb.ToLinear(d[i+2])
			d[i+0] = srgb.FromLinear(1 - (1-r)*(1-gr))
			d[i+1] = srgb.FromLinear(1 - (1-g)*(1-gg))
			d[i+2] = srgb.FromLinear(1 - (1-b)*(1-gb))
		}
	})
	return out, nil
}
