package look

import (
	"image"

	"github.com/gohugoio/gift"
)

// Sharpen applies an unsharp mask. amount maps to both mask strength
// and radius so a single slider covers subtle to crunchy.
func Sharpen(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	sigma := float32(0.6 + amount*1.2)
	strength := float32(amount * 1.5)
	dst := image.NewRGBA(image.Rect(0, 0, src.width, src.height))
	g := gift.New(gift.UnsharpMask(sigma, strength, 0.01))
	if err := g.Draw(dst, src.RGBA()); err != nil {
		return nil, err
	}
	copy(out.data, dst.Pix)
	return out, nil
}

// EdgeEnhance boosts local contrast along edges with a Laplacian-style
// 3x3 kernel blended against the original by amount.
func EdgeEnhance(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	k := float32(amount)
	kernel := []float32{
		0, -k, 0,
		-k, 1 + 4*k, -k,
		0, -k, 0,
	}
	dst := image.NewRGBA(image.Rect(0, 0, src.width, src.height))
	g := gift.New(gift.Convolution(kernel, false, false, false, 0))
	if err := g.Draw(dst, src.RGBA()); err != nil {
		return nil, err
	}
	copy(out.data, dst.Pix)
	return out, nil
}

// Posterize quantizes each channel to a reduced number of levels.
// amount 0..1 sweeps from 32 levels down to 3.
func Posterize(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	levels := int(32 - amount*29)
	if levels < 2 {
		levels = 2
	}
	var lut [256]uint8
	step := 255.0 / float64(levels-1)
	for i := range lut {
		q := float64(int(float64(i)/step+0.5)) * step
		lut[i] = clamp8(q)
	}
	eachRow(out, func(y0, y1 int) {
		d := out.data
		for i := y0 * out.width * 4; i < y1*out.width*4; i += 4 {
			d[i+0] = lut[d[i+0]]
			d[i+1] = lut[d[i+1]]
			d[i+2] = lut[d[i+2]]
		}
	})
	return out, nil
}
