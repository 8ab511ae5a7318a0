package look

import (
	"image"
	"math"

	"github.com/gohugoio/gift"
)

// BlackLift raises the black point, the faded-print look. Shadows move
// toward gray while highlights stay put.
func BlackLift(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	lift := amount * 48
	var lut [256]uint8
	for i := range lut {
		v := float64(i)
		// Full lift at black, tapering off by mid-gray.
		w := 1 - smoothstep(0, 0.55, v/255)
		lut[i] = clamp8(v + lift*w)
	}
	applyChannelLUT(out, &lut)
	return out, nil
}

// EdgeFade washes out the image borders toward white, the opposite of a
// vignette. Used for dreamy and instant-print looks.
func EdgeFade(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	w, h := out.width, out.height
	cx, cy := float64(w)/2, float64(h)/2
	maxR := math.Sqrt(cx*cx + cy*cy)
	eachRow(out, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dy := (float64(y) + 0.5 - cy)
			for x := 0; x < w; x++ {
				dx := (float64(x) + 0.5 - cx)
				r := math.Sqrt(dx*dx+dy*dy) / maxR
				f := amount * 0.7 * smoothstep(0.55, 1.05, r)
				if f <= 0 {
					continue
				}
				i := (y*w + x) * 4
				d := out.data
				d[i+0] = clamp8(float64(d[i+0]) + (255-float64(d[i+0]))*f)
				d[i+1] = clamp8(float64(d[i+1]) + (255-float64(d[i+1]))*f)
				d[i+2] = clamp8(float64(d[i+2]) + (255-float64(d[i+2]))*f)
			}
		}
	})
	return out, nil
}

// SkinSmooth softens skin while leaving eyes, hair and background
// untouched. A blurred copy is blended in only where the pixel chroma
// sits inside the skin-tone wedge in YCbCr space.
func SkinSmooth(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	sigma := float32(1.5 + amount*3)
	blurred := image.NewRGBA(image.Rect(0, 0, src.width, src.height))
	if err := gift.New(gift.GaussianBlur(sigma)).Draw(blurred, src.RGBA()); err != nil {
		return nil, err
	}

	strength := math.Min(amount*0.9, 0.9)
	eachRow(out, func(y0, y1 int) {
		d := out.data
		b := blurred.Pix
		for i := y0 * out.width * 4; i < y1*out.width*4; i += 4 {
			w := skinWeight(d[i+0], d[i+1], d[i+2]) * strength
			if w <= 0 {
				continue
			}
			d[i+0] = uint8(float64(d[i+0])*(1-w) + float64(b[i+0])*w)
			d[i+1] = uint8(float64(d[i+1])*(1-w) + float64(b[i+1])*w)
			d[i+2] = uint8(float64(d[i+2])*(1-w) + float64(b[i+2])*w)
		}
	})
	return out, nil
}

// skinWeight returns 0..1 membership of a pixel in the skin-tone
// region. Cb in roughly [77,127] and Cr in [133,173] is the classic
// detector; the product of two soft windows avoids hard mask edges.
func skinWeight(r, g, b uint8) float64 {
	rf, gf, bf := float64(r), float64(g), float64(b)
	cb := 128 - 0.168736*rf - 0.331264*gf + 0.5*bf
	cr := 128 + 0.5*rf - 0.418688*gf - 0.081312*bf
	wb := smoothstep(72, 82, cb) * (1 - smoothstep(122, 132, cb))
	wr := smoothstep(128, 138, cr) * (1 - smoothstep(168, 178, cr))
	return wb * wr
}
