package render

import (
	"image/color"
	"math"
)

// The color map translates one evaluated scalar into an RGB8 pixel. The
// scalar is clamped to [-1, 1] and rescaled to a level u in [0, 1]; the
// channels are then
//
//	R = round(255·u)    G = round(255·u²)    B = 255 − R
//
// The red channel is strictly monotonic in the scalar, and the map has
// exactly 256 distinct outputs, one per red level, so animations can be
// encoded against the single fixed palette returned by [Palette]. The
// palette index of a pixel is its red channel.

// palette holds the 256 colors the color map can produce, indexed by level.
var palette [256]Pixel

func init() {
	for i := range palette {
		u := float64(i) / 255
		palette[i] = Pixel{
			R: uint8(i),
			G: uint8(math.Round(255 * u * u)),
			B: uint8(255 - i),
		}
	}
}

// ColorMap maps one evaluated scalar to its pixel color.
func ColorMap(v float64) Pixel {
	u := (v + 1) / 2
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	return palette[int(math.Round(255*u))]
}

// Palette returns the fixed 256-color palette of the color map, ordered by
// level: Palette()[p.R] == p for every pixel p produced by ColorMap.
func Palette() color.Palette {
	p := make(color.Palette, len(palette))
	for i, px := range palette {
		p[i] = color.RGBA{R: px.R, G: px.G, B: px.B, A: 0xff}
	}
	return p
}
