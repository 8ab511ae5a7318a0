package look

// Grain synthesizes film grain. Noise comes from an integer hash of
// (x, y, seed), so the stage is a pure function: the same seed and
// intensity reproduce the output exactly, and per-pixel values are
// independent of image content ordering. The amplitude is
// luminance-weighted — real grain is most visible in midtones and nearly
// absent in deep shadows and blown highlights.
func Grain(src *Framebuffer, intensity float64, seed uint32) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(intensity) {
		return out, nil
	}

	amp := intensity * 40
	w := out.width
	eachRow(out, func(y0, y1 int) {
		d := out.data
		for y := y0; y < y1; y++ {
			row := uint32(y)
			i := y * w * 4
			for x := 0; x < w; x++ {
				n := noise1(uint32(x), row, seed) // [-1, 1]
				l := lum8(d[i], d[i+1], d[i+2]) / 255
				// Midtone weight: 4·l·(1-l) peaks at 1 for l = 0.5.
				g := n * amp * 4 * l * (1 - l)
				d[i+0] = clamp8(float64(d[i+0]) + g)
				d[i+1] = clamp8(float64(d[i+1]) + g)
				d[i+2] = clamp8(float64(d[i+2]) + g)
				i += 4
			}
		}
	})
	return out, nil
}

// noise1 returns a deterministic pseudo-random value in [-1, 1] for a
// pixel coordinate and seed, using a Wang-style integer hash. The GPU
// grain kernel implements the identical hash so both paths produce the
// same texture character.
func noise1(x, y, seed uint32) float64 {
	h := x*374761393 + y*668265263 + seed*2147483647
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h)/2147483648.0 - 1
}
