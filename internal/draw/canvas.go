package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// dirtyCell never matches a real cell key, forcing the cell to be rewritten.
const dirtyCell = math.MaxUint16

// Canvas is a color pixel buffer with 2x vertical resolution using half-block
// characters. It scales from playfield coordinates to terminal pixels and
// only emits the cells that changed since the previous Render.
type Canvas struct {
	termWidth      int     // Terminal columns
	termHeight     int     // Terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // [y * termWidth + x]
	prev           []uint16

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// 0-based terminal offsets of the render area.
	offsetCol int
	offsetRow int

	renderBuf       []byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas of termWidth x termHeight cells showing
// a logicalWidth x logicalHeight playfield.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size. A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 1), max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.prev = make([]uint16, termHeight*termWidth)
		c.ForceRedraw()
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row where the canvas starts.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

func (c *Canvas) OffsetCol() int { return c.offsetCol }
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// Clear resets all pixels. The terminal keeps its content until Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i] = dirtyCell
	}
}

// MarkTextDirty flags n cells starting at the 1-based canvas position
// (col, row) as overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	row--
	col--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col, 0); x < min(col+n, c.termWidth); x++ {
		c.prev[row*c.termWidth+x] = dirtyCell
	}
}

func (c *Canvas) setPixel(x, y int, clr Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = clr
	}
}

// Pixel returns the color at terminal pixel (x, y), ColorNone outside.
func (c *Canvas) Pixel(x, y int) Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return ColorNone
}

// SetFloat sets the pixel under a logical coordinate.
func (c *Canvas) SetFloat(x, y float64, clr Color) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), clr)
}

// FillRect fills the logical rectangle centered on (cx, cy). Every rectangle
// covers at least one pixel.
func (c *Canvas) FillRect(cx, cy, w, h float64, clr Color) {
	x0 := int(math.Floor((cx - w/2) * c.scaleX))
	y0 := int(math.Floor((cy - h/2) * c.scaleY))
	x1 := max(int(math.Ceil((cx+w/2)*c.scaleX))-1, x0)
	y1 := max(int(math.Ceil((cy+h/2)*c.scaleY))-1, y0)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.setPixel(x, y, clr)
		}
	}
}

// DrawLine draws a line between logical points using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, clr Color) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1, clr)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon outline, filling the interior if asked.
func (c *Canvas) DrawPolygon(points []Point, clr Color, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, clr)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], clr)
	}
}

// fillPolygon is a scanline fill in pixel space.
func (c *Canvas) fillPolygon(points []Point, clr Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range scaled {
			p1, p2 := scaled[i], scaled[(i+1)%len(scaled)]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		slices.Sort(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Floor(xs[i])); x < int(math.Ceil(xs[i+1])); x++ {
				c.setPixel(x, y, clr)
			}
		}
	}
}

// Glyph picks the character and colors for a cell from its two pixels.
func Glyph(top, bottom Color) (ch rune, fg, bg Color) {
	switch {
	case top == ColorNone && bottom == ColorNone:
		return BlockEmpty, ColorNone, ColorNone
	case bottom == ColorNone:
		return BlockUpperHalf, top, ColorNone
	case top == ColorNone:
		return BlockLowerHalf, bottom, ColorNone
	case top == bottom:
		return BlockFull, top, ColorNone
	default:
		return BlockUpperHalf, top, bottom
	}
}

// Render writes every cell that changed since the last Render.
func (c *Canvas) Render(w io.Writer) error {
	b := c.renderBuf[:0]
	curFG, curBG := ColorNone, ColorNone
	nextRow, nextCol := -1, -1 // Where the cursor sits after the last write

	for row := 0; row < c.termHeight; row++ {
		top := c.pixels[row*2*c.termWidth:]
		bottom := c.pixels[(row*2+1)*c.termWidth:]
		prev := c.prev[row*c.termWidth:]

		for col := 0; col < c.termWidth; col++ {
			t, bt := top[col], bottom[col]
			key := uint16(t)<<8 | uint16(bt)
			if prev[col] == key {
				continue
			}
			prev[col] = key

			if row != nextRow || col != nextCol {
				b = append(b, "\033["...)
				b = strconv.AppendInt(b, int64(row+1+c.offsetRow), 10)
				b = append(b, ';')
				b = strconv.AppendInt(b, int64(col+1+c.offsetCol), 10)
				b = append(b, 'H')
			}
			ch, fg, bg := Glyph(t, bt)
			if fg != curFG || bg != curBG {
				b = appendSGR(b, fg, bg)
				curFG, curBG = fg, bg
			}
			b = append(b, string(ch)...)
			nextRow, nextCol = row, col+1
		}
	}

	if curFG != ColorNone || curBG != ColorNone {
		b = append(b, ColorReset...)
	}
	c.renderBuf = b
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	return err
}

// RenderBorder frames the canvas when it is smaller than the terminal.
// Horizontal rules need a row offset, vertical bars a column offset.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	rule := strings.Repeat("─", c.termWidth)

	var b strings.Builder
	move := func(row, col int) {
		b.WriteString("\033[")
		b.WriteString(strconv.Itoa(row))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(col))
		b.WriteByte('H')
	}

	if hasV {
		if hasH {
			move(top, left)
			b.WriteString("┌" + rule + "┐")
			move(bottom, left)
			b.WriteString("└" + rule + "┘")
		} else {
			move(top, left+1)
			b.WriteString(rule)
			move(bottom, left+1)
			b.WriteString(rule)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			move(row, left)
			b.WriteString("│")
			move(row, right)
			b.WriteString("│")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (c *Canvas) TerminalWidth() int  { return c.termWidth }
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// LogicalToTerminal converts a logical coordinate to a 1-based canvas
// position (col, row), for placing text next to drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
