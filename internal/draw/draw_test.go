package draw

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/starstrike/internal/loop"
	"github.com/tomz197/starstrike/internal/object"
)

func TestNearest(t *testing.T) {
	assert.Equal(t, ColorBrightWhite, Nearest(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}))
	assert.Equal(t, ColorRed, Nearest(color.RGBA{R: 0xff, A: 0xff}))
	assert.Equal(t, ColorCyan, Nearest(color.RGBA{G: 0xaa, B: 0xaa, A: 0xff}))
}

func TestDim(t *testing.T) {
	assert.Equal(t, ColorNone, Dim(ColorRed, 0.1))
	assert.Equal(t, ColorGray, Dim(ColorRed, 0.3))
	assert.Equal(t, ColorRed, Dim(ColorRed, 0.9))
}

func TestCellGlyph(t *testing.T) {
	tests := []struct {
		top, bottom Color
		ch          rune
		fg, bg      Color
	}{
		{ColorNone, ColorNone, BlockEmpty, ColorNone, ColorNone},
		{ColorRed, ColorNone, BlockUpperHalf, ColorRed, ColorNone},
		{ColorNone, ColorCyan, BlockLowerHalf, ColorCyan, ColorNone},
		{ColorGreen, ColorGreen, BlockFull, ColorGreen, ColorNone},
		{ColorGreen, ColorBlue, BlockUpperHalf, ColorGreen, ColorBlue},
	}
	for _, tt := range tests {
		ch, fg, bg := Glyph(tt.top, tt.bottom)
		assert.Equal(t, tt.ch, ch)
		assert.Equal(t, tt.fg, fg)
		assert.Equal(t, tt.bg, bg)
	}
}

func TestFit(t *testing.T) {
	w, h, col, row := Fit(100, 100, 160, 60, 800, 600)
	assert.Equal(t, []int{100, 37, 0, 31}, []int{w, h, col, row})

	w, h, col, row = Fit(300, 40, 160, 60, 800, 600)
	assert.Equal(t, []int{106, 40, 97, 0}, []int{w, h, col, row})

	w, h, _, _ = Fit(0, 0, 160, 60, 800, 600)
	assert.GreaterOrEqual(t, w, 1)
	assert.GreaterOrEqual(t, h, 1)
}

func TestCanvasRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(0, 0, ColorRed)

	var out bytes.Buffer
	require.NoError(t, c.Render(&out))
	first := out.String()
	assert.Contains(t, first, "\033[0;31m▀")
	assert.Equal(t, 2, strings.Count(first, "H"), "one cursor move per repainted row")
	assert.Contains(t, first, ColorReset+" ")

	out.Reset()
	require.NoError(t, c.Render(&out))
	assert.Empty(t, out.String(), "unchanged frame writes nothing")

	c.SetFloat(3, 3, ColorGreen)
	out.Reset()
	require.NoError(t, c.Render(&out))
	assert.Equal(t, "\033[2;4H\033[0;32m▄"+ColorReset, out.String())
}

func TestCanvasMarkTextDirty(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	var out bytes.Buffer
	require.NoError(t, c.Render(&out))

	c.MarkTextDirty(2, 1, 2)
	out.Reset()
	require.NoError(t, c.Render(&out))
	assert.Equal(t, "\033[1;2H  ", out.String())
}

func TestCanvasOffsetAndBorder(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(3, 2)
	c.SetFloat(1, 1, ColorBlue)

	var out bytes.Buffer
	require.NoError(t, c.Render(&out))
	assert.True(t, strings.HasPrefix(out.String(), "\033[3;4H"))

	out.Reset()
	require.NoError(t, c.RenderBorder(&out))
	assert.Contains(t, out.String(), "┌──┐")
	assert.Contains(t, out.String(), "└──┘")
	assert.Equal(t, 2, strings.Count(out.String(), "│"))
}

func TestFillRectCoversAtLeastOnePixel(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.FillRect(400, 300, 1, 1, ColorYellow)
	assert.Equal(t, ColorYellow, c.Pixel(40, 30))
}

func TestPaintFrame(t *testing.T) {
	c := NewScaledCanvas(160, 60, 800, 600)
	f := &loop.Frame{
		State:         loop.StatePlaying,
		PlayerVisible: true,
		Player: loop.Sprite{
			Kind: object.KindPlayer, X: 400, Y: 300, W: 40, H: 40,
			Color: color.RGBA{R: 0x55, G: 0xff, B: 0xff, A: 0xff},
		},
		Enemies: []loop.Sprite{{
			Kind: object.KindFighter, X: 100, Y: 100, W: 40, H: 40,
			Color: color.RGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff},
		}},
	}

	Paint(c, f)
	assert.Equal(t, ColorBrightCyan, c.Pixel(80, 60))
	assert.Equal(t, ColorBrightRed, c.Pixel(20, 20))

	f.PlayerVisible = false
	Paint(c, f)
	assert.Equal(t, ColorNone, c.Pixel(80, 60), "blink off phase hides the player")

	f.PlayerVisible = true
	f.State = loop.StateMenu
	Paint(c, f)
	assert.Equal(t, ColorNone, c.Pixel(80, 60), "no ship on the menu")
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	assert.Positive(t, cw.Len())
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[2;3Hhi", out.String())
	assert.Zero(t, cw.Len())

	big := strings.Repeat("x", 3*maxChunkSize+5)
	out.Reset()
	cw.WriteString(big)
	require.NoError(t, cw.Flush())
	assert.Equal(t, big, out.String())
}

func TestColorRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0x55, A: 0xff}, ColorBrightYellow.RGBA())
	assert.Equal(t, ColorBlack.RGBA(), ColorNone.RGBA())
	for c := ColorBlack; c <= ColorBrightWhite; c++ {
		assert.Equal(t, c, Nearest(c.RGBA()), "palette entry %d maps to itself", c)
	}
}
