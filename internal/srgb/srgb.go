// Package srgb provides fast sRGB ↔ linear-light conversion using lookup
// tables.
//
// Effects that model physical light transport (halation glow, exposure)
// must operate in linear space; doing the transfer function with math.Pow
// per pixel per frame is far too slow. The tables give O(1) conversions
// with 12-bit output precision, which is more than enough for 8-bit sRGB
// channels.
package srgb

import "math"

// toLinear maps an sRGB byte [0,255] to linear light [0,1].
var toLinear [256]float32

// fromLinear maps linear light quantized to 12 bits back to an sRGB byte.
var fromLinear [4096]uint8

func init() {
	for i := 0; i < 256; i++ {
		s := float64(i) / 255.0
		var l float64
		if s <= 0.04045 {
			l = s / 12.92
		} else {
			l = math.Pow((s+0.055)/1.055, 2.4)
		}
		toLinear[i] = float32(l)
	}

	for i := 0; i < 4096; i++ {
		l := float64(i) / 4095.0
		var s float64
		if l <= 0.0031308 {
			s = l * 12.92
		} else {
			s = 1.055*math.Pow(l, 1.0/2.4) - 0.055
		}
		v := int(s*255.0 + 0.5)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		fromLinear[i] = uint8(v)
	}
}

// ToLinear converts an sRGB channel byte to linear light.
func ToLinear(s uint8) float32 {
	return toLinear[s]
}

// FromLinear converts linear light to an sRGB channel byte.
// The input is clamped to [0,1].
func FromLinear(l float32) uint8 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	return fromLinear[int(l*4095+0.5)]
}
