package look

import (
	"image"
	"math"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FrameOverlay draws a flat border inside the image edges. The border
// width scales with the short side so presets read the same across
// resolutions. Dimensions are unchanged; the frame covers pixels, it
// does not extend the canvas.
func FrameOverlay(src *Framebuffer, hexColor string) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}

	c := RGBA{R: 1, G: 1, B: 1, A: 1}
	if hexColor != "" {
		c = Hex(hexColor)
	}
	r8 := clamp8(c.R * 255)
	g8 := clamp8(c.G * 255)
	b8 := clamp8(c.B * 255)

	w, h := out.width, out.height
	short := w
	if h < short {
		short = h
	}
	bw := short / 24
	if bw < 2 {
		bw = 2
	}
	eachRow(out, func(y0, y1 int) {
		d := out.data
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				if x >= bw && x < w-bw && y >= bw && y < h-bw {
					x = w - bw - 1
					continue
				}
				i := (y*w + x) * 4
				d[i+0], d[i+1], d[i+2], d[i+3] = r8, g8, b8, 255
			}
		}
	})
	return out, nil
}

// LightLeak blends a warm seeded glow entering from one image edge,
// like light striking film through a cracked camera back. The seed
// picks the edge and the leak profile, so the same seed always
// produces the same leak.
func LightLeak(src *Framebuffer, amount float64, seed uint32) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}
	if !active(amount) {
		return out, nil
	}

	w, h := out.width, out.height
	edge := seed % 4
	// Leak center along the chosen edge, in 0..1.
	along := 0.2 + 0.6*(noise1(seed, 0x51ed, seed)*0.5+0.5)
	spread := 0.25 + 0.2*(noise1(seed, 0xa341, seed)*0.5+0.5)

	// Warm leak color, orange shading to red with the seed.
	mix := noise1(seed, 0x77f3, seed)*0.5 + 0.5
	lr := 1.0
	lg := 0.35 + 0.3*mix
	lb := 0.08 + 0.1*mix

	eachRow(out, func(y0, y1 int) {
		d := out.data
		for y := y0; y < y1; y++ {
			fy := (float64(y) + 0.5) / float64(h)
			for x := 0; x < w; x++ {
				fx := (float64(x) + 0.5) / float64(w)

				// Distance into the image from the leak edge, and
				// offset along the edge from the leak center.
				var depth, off float64
				switch edge {
				case 0:
					depth, off = fx, fy-along
				case 1:
					depth, off = 1-fx, fy-along
				case 2:
					depth, off = fy, fx-along
				default:
					depth, off = 1-fy, fx-along
				}
				g := amount * math.Exp(-depth*depth/(2*spread*spread)) *
					math.Exp(-off*off/(2*0.09))
				if g < 0.004 {
					continue
				}
				i := (y*w + x) * 4
				// Screen blend keeps highlights from clipping flat.
				sr := float64(d[i+0]) / 255
				sg := float64(d[i+1]) / 255
				sb := float64(d[i+2]) / 255
				d[i+0] = clamp8((1 - (1-sr)*(1-lr*g)) * 255)
				d[i+1] = clamp8((1 - (1-sg)*(1-lg*g)) * 255)
				d[i+2] = clamp8((1 - (1-sb)*(1-lb*g)) * 255)
			}
		}
	})
	return out, nil
}

// timestampColor is the amber of a point-and-shoot date imprint.
var timestampColor = RGBA{R: 1.0, G: 0.55, B: 0.1, A: 1}

// Timestamp burns a date imprint into the bottom-right corner in the
// 7-segment style of 90s compacts.
func Timestamp(src *Framebuffer, at time.Time) (*Framebuffer, error) {
	out, err := beginStage(src)
	if err != nil {
		return nil, err
	}

	label := at.Format("'06 1 2")
	face := basicfont.Face7x13
	tw := font.MeasureString(face, label).Ceil()

	margin := out.width / 32
	if margin < 8 {
		margin = 8
	}
	x := out.width - tw - margin
	y := out.height - margin
	if x < 0 || y < face.Height {
		return out, nil
	}

	img := out.RGBA()
	d := font.Drawer{
		Dst:  img,
		Face: face,
	}
	// A dark offset pass first so the imprint stays readable on
	// bright backgrounds.
	d.Src = image.NewUniform(RGBA{R: 0.15, G: 0.05, B: 0, A: 1}.Color())
	d.Dot = fixed.P(x+1, y+1)
	d.DrawString(label)
	d.Src = image.NewUniform(timestampColor.Color())
	d.Dot = fixed.P(x, y)
	d.DrawString(label)
	return out, nil
}
