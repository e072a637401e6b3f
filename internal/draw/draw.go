// Package draw renders game frames to ANSI terminals using half-block
// characters, which give each cell two square-ish pixels.
package draw

import (
	"image/color"
	"strconv"
)

// Point is a 2D coordinate in playfield pixels.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an index into the 16-color ANSI palette. Zero is an unset pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// ColorReset clears all SGR attributes.
const ColorReset = "\033[0m"

type paletteEntry struct {
	sgr int // Foreground SGR code; background is sgr+10
	rgb color.RGBA
}

var palette = [...]paletteEntry{
	ColorBlack:         {30, rgb(0x00, 0x00, 0x00)},
	ColorRed:           {31, rgb(0xaa, 0x00, 0x00)},
	ColorGreen:         {32, rgb(0x00, 0xaa, 0x00)},
	ColorYellow:        {33, rgb(0xaa, 0x55, 0x00)},
	ColorBlue:          {34, rgb(0x00, 0x00, 0xaa)},
	ColorMagenta:       {35, rgb(0xaa, 0x00, 0xaa)},
	ColorCyan:          {36, rgb(0x00, 0xaa, 0xaa)},
	ColorWhite:         {37, rgb(0xaa, 0xaa, 0xaa)},
	ColorGray:          {90, rgb(0x55, 0x55, 0x55)},
	ColorBrightRed:     {91, rgb(0xff, 0x55, 0x55)},
	ColorBrightGreen:   {92, rgb(0x55, 0xff, 0x55)},
	ColorBrightYellow:  {93, rgb(0xff, 0xff, 0x55)},
	ColorBrightBlue:    {94, rgb(0x55, 0x55, 0xff)},
	ColorBrightMagenta: {95, rgb(0xff, 0x55, 0xff)},
	ColorBrightCyan:    {96, rgb(0x55, 0xff, 0xff)},
	ColorBrightWhite:   {97, rgb(0xff, 0xff, 0xff)},
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }

// RGBA returns the display color of a palette entry. ColorNone is black.
func (c Color) RGBA() color.RGBA {
	if c == ColorNone || int(c) >= len(palette) {
		return palette[ColorBlack].rgb
	}
	return palette[c].rgb
}

// Nearest maps an RGB color to the closest palette entry.
func Nearest(c color.RGBA) Color {
	best, bestDist := ColorWhite, -1
	for i := ColorBlack; i <= ColorBrightWhite; i++ {
		p := palette[i].rgb
		dr := int(c.R) - int(p.R)
		dg := int(c.G) - int(p.G)
		db := int(c.B) - int(p.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Dim returns the palette color to use for c at the given opacity.
// Faint colors collapse to gray; invisible ones to none.
func Dim(c Color, alpha float64) Color {
	switch {
	case alpha <= 0.15:
		return ColorNone
	case alpha < 0.45:
		return ColorGray
	default:
		return c
	}
}

// appendSGR appends the escape sequence selecting fg and bg. ColorNone
// selects the terminal default.
func appendSGR(b []byte, fg, bg Color) []byte {
	b = append(b, "\033[0"...)
	if fg != ColorNone {
		b = append(b, ';')
		b = strconv.AppendInt(b, int64(palette[fg].sgr), 10)
	}
	if bg != ColorNone {
		b = append(b, ';')
		b = strconv.AppendInt(b, int64(palette[bg].sgr+10), 10)
	}
	return append(b, 'm')
}
