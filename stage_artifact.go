package look

import (
	"image"

	"github.com/gohugoio/gift"
)

// Pixelate reduces the image to visible square blocks. amount scales the
// block size relative to image width, so the effect reads the same at
// any resolution.
func Pixelate(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	block := int(2 + amount*float64(src.width)*0.03)
	if block < 2 {
		block = 2
	}
	dst := image.NewRGBA(image.Rect(0, 0, src.width, src.height))
	if err := gift.New(gift.Pixelate(block)).Draw(dst, src.RGBA()); err != nil {
		return nil, err
	}
	copy(out.data, dst.Pix)
	return out, nil
}

// Scanlines darkens alternate rows, the CRT raster pattern.
func Scanlines(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	f := 1 - amount*0.45
	w := out.width
	eachRow(out, func(y0, y1 int) {
		d := out.data
		for y := y0; y < y1; y++ {
			if y%2 == 0 {
				continue
			}
			for i := y * w * 4; i < (y+1)*w*4; i += 4 {
				d[i+0] = uint8(float64(d[i+0]) * f)
				d[i+1] = uint8(float64(d[i+1]) * f)
				d[i+2] = uint8(float64(d[i+2]) * f)
			}
		}
	})
	return out, nil
}

// Interlace emulates the two-field structure of interlaced video: odd
// rows are shifted horizontally against even rows and slightly dimmed,
// producing the comb-tooth edges of a paused tape.
func Interlace(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	w := out.width
	shift := int(1 + amount*float64(w)*0.006)
	dim := 1 - amount*0.12
	eachRow(out, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			if y%2 == 0 {
				continue
			}
			rowOut := out.data[y*w*4 : (y+1)*w*4]
			rowSrc := src.data[y*w*4 : (y+1)*w*4]
			for x := 0; x < w; x++ {
				sx := clampInt(x-shift, 0, w-1)
				i, j := x*4, sx*4
				rowOut[i+0] = uint8(float64(rowSrc[j+0]) * dim)
				rowOut[i+1] = uint8(float64(rowSrc[j+1]) * dim)
				rowOut[i+2] = uint8(float64(rowSrc[j+2]) * dim)
				rowOut[i+3] = rowSrc[j+3]
			}
		}
	})
	return out, nil
}

// Jitter displaces each row horizontally by a small seeded random
// amount, like a tracking error. Row offsets are correlated in short
// runs so the tear reads as bands rather than per-line static.
func Jitter(src *Framebuffer, amount float64, seed uint32) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	w, h := out.width, out.height
	maxShift := amount * float64(w) * 0.03

	// Per-band offsets; each band covers a handful of rows.
	const bandRows = 6
	bands := (h + bandRows - 1) / bandRows
	offsets := make([]int, bands)
	for b := range offsets {
		offsets[b] = int(noise1(uint32(b), 0x9e37, seed) * maxShift)
	}

	eachRow(out, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			off := offsets[y/bandRows]
			if off == 0 {
				continue
			}
			rowOut := out.data[y*w*4 : (y+1)*w*4]
			rowSrc := src.data[y*w*4 : (y+1)*w*4]
			for x := 0; x < w; x++ {
				sx := clampInt(x-off, 0, w-1)
				copy(rowOut[x*4:x*4+4], rowSrc[sx*4:sx*4+4])
			}
		}
	})
	return out, nil
}
