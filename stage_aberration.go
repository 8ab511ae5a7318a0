package look

import "math"

// ChromaticAberration emulates lateral color fringing: the red and blue
// channels are sampled at slightly different radial magnifications, so
// fringes grow from nothing at the center to their widest at the
// corners, like a cheap lens.
func ChromaticAberration(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	w, h := src.width, src.height
	cx, cy := float64(w-1)/2, float64(h-1)/2
	// Maximum shift at the corner, in pixels.
	shift := amount * 0.006 * math.Hypot(cx, cy)
	invR := 1 / math.Hypot(cx, cy)

	eachRow(out, func(y0, y1 int) {
		var rp, bp [4]uint8
		for y := y0; y < y1; y++ {
			dy := float64(y) - cy
			for x := 0; x < w; x++ {
				dx := float64(x) - cx
				r := math.Hypot(dx, dy) * invR
				if r == 0 {
					continue
				}
				ox := dx * invR * shift * r
				oy := dy * invR * shift * r
				sampleBilinear(src, float64(x)+ox, float64(y)+oy, rp[:])
				sampleBilinear(src, float64(x)-ox, float64(y)-oy, bp[:])
				i := (y*w + x) * 4
				out.data[i+0] = rp[0]
				out.data[i+2] = bp[2]
			}
		}
	})
	return out, nil
}

// ChromaBleed smears the chroma channels horizontally while leaving luma
// sharp, the signature color wash of composite video and worn tape. The
// blur is a separable box pass over Cb/Cr in YCbCr space.
func ChromaBleed(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	w, h := out.width, out.height
	radius := int(1 + amount*float64(w)*0.01)
	if radius < 1 {
		radius = 1
	}

	// Split to YCbCr planes.
	yp := make([]float64, w*h)
	cb := make([]float64, w*h)
	cr := make([]float64, w*h)
	d := out.data
	for p, i := 0, 0; p < w*h; p, i = p+1, i+4 {
		r, g, b := float64(d[i]), float64(d[i+1]), float64(d[i+2])
		yp[p] = 0.299*r + 0.587*g + 0.114*b
		cb[p] = 128 - 0.168736*r - 0.331264*g + 0.5*b
		cr[p] = 128 + 0.5*r - 0.418688*g - 0.081312*b
	}

	blurRowsBox(cb, w, h, radius)
	blurRowsBox(cr, w, h, radius)

	for p, i := 0, 0; p < w*h; p, i = p+1, i+4 {
		yv, cbv, crv := yp[p], cb[p]-128, cr[p]-128
		d[i+0] = clamp8(yv + 1.402*crv)
		d[i+1] = clamp8(yv - 0.344136*cbv - 0.714136*crv)
		d[i+2] = clamp8(yv + 1.772*cbv)
	}
	return out, nil
}

// blurRowsBox applies a running-sum horizontal box blur to a single
// plane in place.
func blurRowsBox(plane []float64, w, h, radius int) {
	if w < 2 {
		return
	}
	tmp := make([]float64, w)
	window := float64(2*radius + 1)
	for y := 0; y < h; y++ {
		row := plane[y*w : y*w+w]
		sum := 0.0
		for k := -radius; k <= radius; k++ {
			sum += row[clampInt(k, 0, w-1)]
		}
		for x := 0; x < w; x++ {
			tmp[x] = sum / window
			sum += row[clampInt(x+radius+1, 0, w-1)]
			sum -= row[clampInt(x-radius, 0, w-1)]
		}
		copy(row, tmp)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
