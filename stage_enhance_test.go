package look

import "testing"

func TestSharpenIncreasesEdgeContrast(t *testing.T) {
	// Soft vertical ramp step; sharpening steepens it.
	src := testFlat(64, 32, RGB(0.3, 0.3, 0.3))
	for y := 0; y < 32; y++ {
		for x := 32; x < 64; x++ {
			src.SetPixel(x, y, RGB(0.7, 0.7, 0.7))
		}
		src.SetPixel(32, y, RGB(0.5, 0.5, 0.5))
	}
	out, err := Sharpen(src, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	srcStep := src.GetPixel(34, 16).Luminance() - src.GetPixel(30, 16).Luminance()
	outStep := out.GetPixel(34, 16).Luminance() - out.GetPixel(30, 16).Luminance()
	if outStep <= srcStep {
		t.Errorf("edge step did not grow: %v -> %v", srcStep, outStep)
	}
}

func TestSharpenFlatRegionStable(t *testing.T) {
	src := testFlat(32, 32, RGB(0.5, 0.5, 0.5))
	out, err := Sharpen(src, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	c := out.GetPixel(16, 16)
	if c.R < 0.45 || c.R > 0.55 {
		t.Errorf("flat region moved: %+v", c)
	}
}

func TestEdgeEnhanceFlatRegionStable(t *testing.T) {
	// The kernel sums to 1, so constant regions pass through.
	src := testFlat(32, 32, RGB(0.4, 0.4, 0.4))
	out, err := EdgeEnhance(src, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	for i := range out.Data() {
		d := int(out.Data()[i]) - int(src.Data()[i])
		if d < -1 || d > 1 {
			t.Fatalf("flat region changed by %d", d)
		}
	}
}

func TestEdgeEnhanceBoostsEdges(t *testing.T) {
	src := testFlat(64, 32, RGB(0.2, 0.2, 0.2))
	for y := 0; y < 32; y++ {
		for x := 32; x < 64; x++ {
			src.SetPixel(x, y, RGB(0.8, 0.8, 0.8))
		}
	}
	out, err := EdgeEnhance(src, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	// The bright side of the edge overshoots, the dark side dips.
	if out.GetPixel(32, 16).Luminance() <= src.GetPixel(32, 16).Luminance() {
		t.Error("bright edge side should overshoot")
	}
	if out.GetPixel(31, 16).Luminance() >= src.GetPixel(31, 16).Luminance() {
		t.Error("dark edge side should undershoot")
	}
}

func TestPosterizeReducesLevels(t *testing.T) {
	src := testGradient(256, 8)
	out, err := Posterize(src, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	levels := make(map[uint8]bool)
	d := out.Data()
	for i := 0; i < len(d); i += 4 {
		levels[d[i]] = true
	}
	if len(levels) > 8 {
		t.Errorf("posterize 0.9 left %d distinct levels", len(levels))
	}
	srcLevels := make(map[uint8]bool)
	for i := 0; i < len(src.Data()); i += 4 {
		srcLevels[src.Data()[i]] = true
	}
	if len(srcLevels) <= len(levels) {
		t.Fatal("gradient input had too few levels to begin with")
	}
}

func TestPosterizeKeepsExtremes(t *testing.T) {
	src := testGradient(256, 4)
	out, err := Posterize(src, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if out.Data()[0] != 0 {
		t.Errorf("black quantized to %d", out.Data()[0])
	}
	last := (256*4 - 1) * 4
	if out.Data()[last] != 255 {
		t.Errorf("white quantized to %d", out.Data()[last])
	}
}
