package look

import "testing"

func TestHalationBleedsAroundHighlights(t *testing.T) {
	// Dark field with a bright square in the middle.
	src := testFlat(96, 96, RGB(0.1, 0.1, 0.1))
	for y := 40; y < 56; y++ {
		for x := 40; x < 56; x++ {
			src.SetPixel(x, y, RGB(1, 1, 1))
		}
	}
	out, err := Halation(src, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	// Just outside the square the red channel should have picked up
	// glow; far away it should not.
	near := out.GetPixel(60, 48)
	nearSrc := src.GetPixel(60, 48)
	if near.R <= nearSrc.R+0.01 {
		t.Errorf("no red bleed near highlight: %v -> %v", nearSrc.R, near.R)
	}
	far := out.GetPixel(4, 4)
	if far.R > 0.2 {
		t.Errorf("glow reached the far corner: %+v", far)
	}
	// Halation is red-shifted.
	if near.R-nearSrc.R <= near.B-src.GetPixel(60, 48).B {
		t.Error("bleed should favor red over blue")
	}
}

func TestHalationDarkImageNoop(t *testing.T) {
	// Nothing above the bright-pass threshold: output equals input
	// modulo rounding.
	src := testFlat(32, 32, RGB(0.3, 0.3, 0.3))
	out, err := Halation(src, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	for i := range out.Data() {
		d := int(out.Data()[i]) - int(src.Data()[i])
		if d < -1 || d > 1 {
			t.Fatalf("dark image changed by %d at %d", d, i)
		}
	}
}

func TestHalationPreservesDimensions(t *testing.T) {
	// Odd sizes exercise the downscale/upscale round trip.
	src := testFlat(37, 23, RGB(0.9, 0.9, 0.9))
	out, err := Halation(src, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width() != 37 || out.Height() != 23 {
		t.Errorf("dimensions changed: %dx%d", out.Width(), out.Height())
	}
}
