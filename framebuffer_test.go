package look

import (
	"image"
	"image/color"
	"testing"
)

// testGradient builds a framebuffer with a horizontal luminance ramp,
// useful wherever a stage should respond to image content.
func testGradient(w, h int) *Framebuffer {
	fb := NewFramebuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(x) / float64(w-1)
			fb.SetPixel(x, y, RGB(v, v, v))
		}
	}
	return fb
}

// testFlat builds a framebuffer filled with a single color.
func testFlat(w, h int, c RGBA) *Framebuffer {
	fb := NewFramebuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fb.SetPixel(x, y, c)
		}
	}
	return fb
}

func TestNewFramebuffer(t *testing.T) {
	fb := NewFramebuffer(64, 48)
	if fb.Width() != 64 || fb.Height() != 48 {
		t.Fatalf("dimensions = %dx%d, want 64x48", fb.Width(), fb.Height())
	}
	if len(fb.Data()) != 64*48*4 {
		t.Fatalf("data length = %d", len(fb.Data()))
	}
	if fb.Orientation() != OrientationNormal {
		t.Errorf("default orientation = %v", fb.Orientation())
	}
	// New framebuffers are opaque black.
	if c := fb.GetPixel(10, 10); c.A != 1 || c.R != 0 {
		t.Errorf("initial pixel = %+v", c)
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	img.SetRGBA(3, 2, color.RGBA{R: 255, G: 128, B: 64, A: 255})

	fb := FromImage(img, OrientationRotate90)
	if fb.Width() != 8 || fb.Height() != 6 {
		t.Fatalf("dimensions = %dx%d", fb.Width(), fb.Height())
	}
	if fb.Orientation() != OrientationRotate90 {
		t.Errorf("orientation = %v", fb.Orientation())
	}
	c := fb.GetPixel(3, 2)
	if clamp8(c.R*255) != 255 || clamp8(c.G*255) != 128 || clamp8(c.B*255) != 64 {
		t.Errorf("pixel = %+v", c)
	}
}

func TestFromImageNonRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 2, 10, 8)) // non-zero origin
	img.SetNRGBA(5, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	fb := FromImage(img, OrientationNormal)
	if fb.Width() != 8 || fb.Height() != 6 {
		t.Fatalf("dimensions = %dx%d, want 8x6", fb.Width(), fb.Height())
	}
	c := fb.GetPixel(3, 3)
	if clamp8(c.B*255) != 30 {
		t.Errorf("pixel = %+v", c)
	}
}

func TestCloneIndependence(t *testing.T) {
	fb := testFlat(4, 4, RGB(0.5, 0.5, 0.5))
	fb.SetOrientation(OrientationFlipH)
	cl := fb.Clone()

	cl.SetPixel(0, 0, RGB(1, 0, 0))
	if c := fb.GetPixel(0, 0); c.R > 0.6 {
		t.Error("mutating the clone changed the original")
	}
	if cl.Orientation() != OrientationFlipH {
		t.Error("clone lost orientation")
	}
}

func TestRGBAView(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	img := fb.RGBA()
	img.SetRGBA(1, 1, color.RGBA{R: 200, A: 255})
	// The view shares memory with the framebuffer.
	if c := fb.GetPixel(1, 1); clamp8(c.R*255) != 200 {
		t.Errorf("view write not visible: %+v", c)
	}
}

func TestEmpty(t *testing.T) {
	var nilFB *Framebuffer
	if !nilFB.Empty() {
		t.Error("nil framebuffer should be empty")
	}
	if !NewFramebuffer(0, 0).Empty() {
		t.Error("zero-sized framebuffer should be empty")
	}
	if NewFramebuffer(1, 1).Empty() {
		t.Error("1x1 framebuffer should not be empty")
	}
}

func TestImageInterface(t *testing.T) {
	fb := testFlat(3, 3, RGB(1, 0, 0))
	var img image.Image = fb
	if img.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	r, _, _, a := img.At(1, 1).RGBA()
	if r != 0xFFFF || a != 0xFFFF {
		t.Errorf("At = %v %v", r, a)
	}
}
