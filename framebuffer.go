package look

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Orientation is EXIF-style orientation metadata carried alongside the
// pixel data. The pipeline never resamples or rotates the final result;
// it only preserves this tag.
type Orientation uint8

// EXIF orientation values 1 through 8.
const (
	OrientationNormal Orientation = iota + 1
	OrientationFlipH
	OrientationRotate180
	OrientationFlipV
	OrientationTranspose
	OrientationRotate90
	OrientationTransverse
	OrientationRotate270
)

// Framebuffer represents a rectangular pixel buffer with orientation
// metadata. Pixels are stored as RGBA, 4 bytes per pixel, row by row.
type Framebuffer struct {
	width  int
	height int
	orient Orientation
	data   []uint8
}

// NewFramebuffer creates a framebuffer with the given dimensions and
// normal orientation.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		width:  width,
		height: height,
		orient: OrientationNormal,
		data:   make([]uint8, width*height*4),
	}
	// Opaque black, not transparent: photos have no alpha.
	for i := 3; i < len(fb.data); i += 4 {
		fb.data[i] = 255
	}
	return fb
}

// FromImage creates a framebuffer from an image, tagging it with the
// given orientation.
func FromImage(img image.Image, orient Orientation) *Framebuffer {
	bounds := img.Bounds()
	fb := NewFramebuffer(bounds.Dx(), bounds.Dy())
	fb.orient = orient

	// Fast path for the common decoded formats.
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == fb.width*4 {
		copy(fb.data, rgba.Pix)
		return fb
	}
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			fb.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return fb
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// Orientation returns the orientation tag.
func (fb *Framebuffer) Orientation() Orientation { return fb.orient }

// SetOrientation updates the orientation tag.
func (fb *Framebuffer) SetOrientation(o Orientation) { fb.orient = o }

// Data returns the raw pixel data (RGBA format). The slice aliases the
// framebuffer's storage.
func (fb *Framebuffer) Data() []uint8 { return fb.data }

// Empty reports whether the framebuffer has no pixels.
func (fb *Framebuffer) Empty() bool {
	return fb == nil || fb.width <= 0 || fb.height <= 0 || len(fb.data) == 0
}

// Clone returns a deep copy sharing no storage with the receiver.
func (fb *Framebuffer) Clone() *Framebuffer {
	out := &Framebuffer{
		width:  fb.width,
		height: fb.height,
		orient: fb.orient,
		data:   make([]uint8, len(fb.data)),
	}
	copy(out.data, fb.data)
	return out
}

// SetPixel sets the color of a single pixel.
func (fb *Framebuffer) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	i := (y*fb.width + x) * 4
	fb.data[i+0] = uint8(clamp255(c.R * 255))
	fb.data[i+1] = uint8(clamp255(c.G * 255))
	fb.data[i+2] = uint8(clamp255(c.B * 255))
	fb.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel. Out-of-bounds reads
// return transparent black.
func (fb *Framebuffer) GetPixel(x, y int) RGBA {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return RGBA{}
	}
	i := (y*fb.width + x) * 4
	return RGBA{
		R: float64(fb.data[i+0]) / 255,
		G: float64(fb.data[i+1]) / 255,
		B: float64(fb.data[i+2]) / 255,
		A: float64(fb.data[i+3]) / 255,
	}
}

// RGBA returns an image.RGBA view sharing the framebuffer's storage.
// Mutating the returned image mutates the framebuffer.
func (fb *Framebuffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.data,
		Stride: fb.width * 4,
		Rect:   image.Rect(0, 0, fb.width, fb.height),
	}
}

// ToImage converts the framebuffer to a new, independent image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	copy(img.Pix, fb.data)
	return img
}

// SavePNG saves the framebuffer to a PNG file. The orientation tag is not
// baked in; callers that need upright output should handle it at display
// time as usual.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, fb.RGBA())
}

// At implements the image.Image interface.
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements the image.Image interface.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
