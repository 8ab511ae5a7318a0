package look

import "math"

// Distort applies a radial lens warp. amount > 0 produces barrel
// (fisheye-style) distortion, amount < 0 pincushion. The output keeps
// the input's dimensions; pixels pulled from outside the source clamp to
// the edge, matching how a real lens profile is cropped to the sensor.
func Distort(src *Framebuffer, amount float64) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	w, h := src.width, src.height
	cx, cy := float64(w-1)/2, float64(h-1)/2
	// Normalize so the image corner sits at radius 1.
	invR := 1 / math.Hypot(cx, cy)
	k := amount * 0.35

	eachRow(out, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dy := (float64(y) - cy) * invR
			for x := 0; x < w; x++ {
				dx := (float64(x) - cx) * invR
				r2 := dx*dx + dy*dy
				// Inverse mapping: sample the source at the undistorted
				// radius for this output pixel.
				scale := 1 / (1 + k*r2)
				sx := cx + dx*scale/invR
				sy := cy + dy*scale/invR
				i := (y*w + x) * 4
				sampleBilinear(src, sx, sy, out.data[i:i+4])
			}
		}
	})
	return out, nil
}

// sampleBilinear writes the bilinearly interpolated RGBA value at the
// (possibly fractional) source position into dst. Coordinates outside
// the image clamp to the edge.
func sampleBilinear(src *Framebuffer, x, y float64, dst []uint8) {
	w, h := src.width, src.height
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > float64(w-1) {
		x = float64(w - 1)
	}
	if y > float64(h-1) {
		y = float64(h - 1)
	}

	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 >= w {
		x1 = w - 1
	}
	if y1 >= h {
		y1 = h - 1
	}
	fx, fy := x-float64(x0), y-float64(y0)

	i00 := (y0*w + x0) * 4
	i10 := (y0*w + x1) * 4
	i01 := (y1*w + x0) * 4
	i11 := (y1*w + x1) * 4
	d := src.data
	for c := 0; c < 4; c++ {
		top := float64(d[i00+c])*(1-fx) + float64(d[i10+c])*fx
		bot := float64(d[i01+c])*(1-fx) + float64(d[i11+c])*fx
		dst[c] = clamp8(top*(1-fy) + bot*fy)
	}
}
