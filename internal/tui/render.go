package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/starstrike/internal/draw"
	"github.com/tomz197/starstrike/internal/loop"
	"github.com/tomz197/starstrike/internal/progress"
)

var (
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	promptStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func tcellColor(c draw.Color) tcell.Color {
	if c == draw.ColorNone {
		return tcell.ColorDefault
	}
	rgb := c.RGBA()
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// Render draws a frame with its overlay text and shows it.
func (h *Host) Render(f *loop.Frame) error {
	h.screen.Clear()

	draw.Paint(h.canvas, f)
	cw, ch := h.canvas.TerminalWidth(), h.canvas.TerminalHeight()
	for row := 0; row < ch; row++ {
		for col := 0; col < cw; col++ {
			r, fg, bg := draw.Glyph(h.canvas.Pixel(col, row*2), h.canvas.Pixel(col, row*2+1))
			if r == draw.BlockEmpty {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
			h.screen.SetContent(h.offCol+col, h.offRow+row, r, nil, style)
		}
	}
	h.drawBorder(cw, ch)
	h.drawOverlay(f, h.session.Progress(), cw, ch)

	h.screen.Show()
	return nil
}

var _ loop.Renderer = (*Host)(nil)

func (h *Host) drawBorder(cw, ch int) {
	left, right := h.offCol-1, h.offCol+cw
	top, bottom := h.offRow-1, h.offRow+ch
	if left >= 0 {
		for y := h.offRow; y < bottom; y++ {
			h.screen.SetContent(left, y, tcell.RuneVLine, nil, borderStyle)
			h.screen.SetContent(right, y, tcell.RuneVLine, nil, borderStyle)
		}
	}
	if top >= 0 {
		for x := h.offCol; x < right; x++ {
			h.screen.SetContent(x, top, tcell.RuneHLine, nil, borderStyle)
			h.screen.SetContent(x, bottom, tcell.RuneHLine, nil, borderStyle)
		}
	}
}

// text writes s at a playfield-relative cell.
func (h *Host) text(col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		h.screen.SetContent(h.offCol+col+i, h.offRow+row, r, nil, style)
	}
}

func (h *Host) centered(cw, row int, s string, style tcell.Style) {
	h.text((cw-len([]rune(s)))/2, row, s, style)
}

func (h *Host) drawOverlay(f *loop.Frame, p progress.State, cw, ch int) {
	mid := ch / 2
	switch f.State {
	case loop.StateMenu:
		h.centered(cw, mid-4, "S T A R S T R I K E", titleStyle)
		h.centered(cw, mid-2, "Move the mouse or use the arrow keys to steer", textStyle)
		h.centered(cw, mid-1, "P pause  -  Q quit  -  cannons fire automatically", textStyle)
		if p.HighScore > 0 {
			h.centered(cw, mid+1, fmt.Sprintf("High score: %d", p.HighScore), textStyle)
		}
		h.centered(cw, mid+3, "Click or press SPACE to start", promptStyle)
		return
	case loop.StateGameOver:
		h.centered(cw, mid-3, "G A M E   O V E R", titleStyle)
		h.centered(cw, mid-1, fmt.Sprintf("Score: %d   Wave: %d", p.Score, p.Wave), textStyle)
		if p.NewHighScore {
			h.centered(cw, mid+1, "NEW HIGH SCORE!", promptStyle)
		} else {
			h.centered(cw, mid+1, fmt.Sprintf("High score: %d", p.HighScore), textStyle)
		}
		h.centered(cw, mid+3, "Press SPACE for the menu", promptStyle)
		return
	}

	h.text(1, 0, fmt.Sprintf("Score %-8d Hi %-8d", p.Score, p.HighScore), textStyle)
	status := fmt.Sprintf("Wave %d  Lives %d", p.Wave, p.Lives)
	h.text(cw-len(status)-1, 0, status, textStyle)

	gun := fmt.Sprintf("HP %3d  GUN %d", p.Health, f.WeaponLevel)
	if f.RapidFire {
		gun += " RAPID"
	}
	h.text(1, ch-1, gun, textStyle)

	switch f.State {
	case loop.StateBriefing:
		h.centered(cw, mid-3, fmt.Sprintf("WAVE %d", f.Wave), titleStyle)
		h.centered(cw, mid-1, strings.ToUpper(f.Mission.Title), titleStyle)
		h.centered(cw, mid+1, f.Mission.Text, textStyle)
		h.centered(cw, mid+3, "Click or press SPACE to engage", promptStyle)
	case loop.StatePaused:
		h.centered(cw, mid, "PAUSED", titleStyle)
		h.centered(cw, mid+2, "Press P to resume", promptStyle)
	}
}
