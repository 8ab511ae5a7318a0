package look

import "math"

// Vignette darkens the image toward its corners with a smooth radial
// falloff. intensity 0 is a no-op; intensity 1 pulls the extreme corners
// most of the way to black while leaving the center untouched, and the
// response is monotone in intensity.
func Vignette(src *Framebuffer, intensity float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(intensity) {
		return out, nil
	}

	w, h := out.width, out.height
	cx, cy := float64(w-1)/2, float64(h-1)/2
	invR := 1 / math.Hypot(cx, cy)

	eachRow(out, func(y0, y1 int) {
		d := out.data
		for y := y0; y < y1; y++ {
			dy := (float64(y) - cy) * invR
			i := y * w * 4
			for x := 0; x < w; x++ {
				dx := (float64(x) - cx) * invR
				r := math.Sqrt(dx*dx + dy*dy)
				// Falloff starts at 40% of the corner radius; the
				// smoothstep keeps the center plateau clean.
				f := 1 - intensity*0.85*smoothstep(0.4, 1.08, r)
				d[i+0] = uint8(float64(d[i+0]) * f)
				d[i+1] = uint8(float64(d[i+1]) * f)
				d[i+2] = uint8(float64(d[i+2]) * f)
				i += 4
			}
		}
	})
	return out, nil
}
