package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/starstrike/internal/draw"
	"github.com/tomz197/starstrike/internal/loop"
	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/object"
	"github.com/tomz197/starstrike/internal/progress"
)

var titleArt = []string{
	` ___  _____    _    ___  ___  _____  ___  ___  _  __ ___ `,
	`/ __||_   _|  /_\  | _ \/ __||_   _|| _ \|_ _|| |/ /| __|`,
	`\__ \  | |   / _ \ |   /\__ \  | |  |   / | | | ' < | _| `,
	`|___/  |_|  /_/ \_\|_|_\|___/  |_|  |_|_\|___||_|\_\|___|`,
}

var gameOverArt = []string{
	`  ___    _    __  __  ___      ___  __   __ ___  ___ `,
	` / __|  /_\  |  \/  || __|    / _ \ \ \ / /| __|| _ \`,
	`| (_ | / _ \ | |\/| || _|    | (_) | \ V / | _| |   /`,
	` \___|/_/ \_\|_|  |_||___|    \___/   \_/  |___||_|_\`,
}

var controlLines = []string{
	"Arrows / WASD . . . Steer",
	"SPACE / ENTER . . Confirm",
	"P . . . . . . . . . Pause",
	"Q . . . . . . . . . . Quit",
}

// Render draws one frame with the UI for the current mode.
func (c *Client) Render(f *loop.Frame) error {
	mode := f.State
	if mode != c.prevState || c.inactive != c.wasInactive || c.shuttingDown != c.wasShutdown {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.prevState = mode
		c.wasInactive = c.inactive
		c.wasShutdown = c.shuttingDown
	}

	draw.Paint(c.canvas, f)
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(f, c.session.Progress())
	return c.chunkWriter.Flush()
}

func (c *Client) drawUI(f *loop.Frame, p progress.State) {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()
	cx, cy := width/2, height/2

	switch {
	case c.shuttingDown:
		c.drawShutdownScreen(cx, cy)
		return
	case c.inactive:
		c.drawInactivityScreen(cx, cy)
		return
	}

	switch f.State {
	case loop.StateMenu:
		c.drawStartScreen(cx, cy, p)
	case loop.StateBriefing:
		c.drawHUD(f, p, width, height)
		c.drawBriefing(cx, cy, f.Mission, f.Wave, width)
	case loop.StatePlaying:
		c.drawHUD(f, p, width, height)
	case loop.StatePaused:
		c.drawHUD(f, p, width, height)
		c.centered(cx, cy, "PAUSED")
		c.centered(cx, cy+2, "Press P to resume")
	case loop.StateGameOver:
		c.drawGameOver(cx, cy, p)
	}
}

// writeText writes text at a canvas position and marks the cells for repaint.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 {
		return
	}
	n := len([]rune(s))
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, n)
}

func (c *Client) centered(cx, row int, s string) {
	c.writeText(cx-len([]rune(s))/2, row, s)
}

func (c *Client) drawArt(cx, top int, art []string) {
	w := 0
	for _, line := range art {
		w = max(w, len(line))
	}
	for i, line := range art {
		c.writeText(cx-w/2, top+i, line)
	}
}

// blinkOn alternates every 600ms for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawHUD draws the status lines. Fields are fixed width so shrinking values
// leave no residue.
func (c *Client) drawHUD(f *loop.Frame, p progress.State, width, height int) {
	c.writeText(2, 1, fmt.Sprintf("Score: %-8d Hi: %-8d", p.Score, p.HighScore))

	right := fmt.Sprintf("Wave: %-3d Lives: %d", p.Wave, p.Lives)
	c.writeText(width-len(right), 1, right)

	c.writeText(2, height, healthBar(p.Health)+" "+weaponLabel(f))

	if c.hub != nil {
		players := fmt.Sprintf("Players: %-4d", c.hub.Players())
		c.writeText(width-len(players), height, players)
	}
}

func healthBar(health int) string {
	const slots = 10
	filled := max(min(health*slots/object.PlayerMaxHealth, slots), 0)
	return "HP [" + strings.Repeat("#", filled) + strings.Repeat(" ", slots-filled) + "]"
}

func weaponLabel(f *loop.Frame) string {
	label := fmt.Sprintf("GUN %d/%d", f.WeaponLevel, config.MaxWeaponLevel)
	if f.RapidFire {
		return label + " RAPID"
	}
	return label + "      "
}

func (c *Client) drawStartScreen(cx, cy int, p progress.State) {
	top := cy - 8
	c.drawArt(cx, top, titleArt)
	c.centered(cx, top+len(titleArt)+1, "~ Hold the line, pilot ~")

	controlsTop := top + len(titleArt) + 3
	c.centered(cx, controlsTop, "Controls")
	for i, line := range controlLines {
		c.centered(cx, controlsTop+1+i, line)
	}
	c.centered(cx, controlsTop+len(controlLines)+1, "Cannons fire automatically")

	if p.HighScore > 0 {
		c.centered(cx, controlsTop+len(controlLines)+3, fmt.Sprintf("High score: %d", p.HighScore))
	}
	if blinkOn() {
		c.centered(cx, controlsTop+len(controlLines)+5, ">>  Press SPACE to Start  <<")
	}
}

func (c *Client) drawBriefing(cx, cy int, m loop.Mission, wave, width int) {
	c.centered(cx, cy-4, fmt.Sprintf("WAVE %d", wave))
	c.centered(cx, cy-2, strings.ToUpper(m.Title))
	for i, line := range wrap(m.Text, max(width-8, 20)) {
		c.centered(cx, cy+i, line)
	}
	if blinkOn() {
		c.centered(cx, cy+4, ">>  Press SPACE to Engage  <<")
	}
}

func (c *Client) drawGameOver(cx, cy int, p progress.State) {
	top := cy - 6
	c.drawArt(cx, top, gameOverArt)
	c.centered(cx, top+len(gameOverArt)+1, fmt.Sprintf("Score: %d   Wave: %d", p.Score, p.Wave))
	if p.NewHighScore {
		c.centered(cx, top+len(gameOverArt)+3, "NEW HIGH SCORE!")
	} else {
		c.centered(cx, top+len(gameOverArt)+3, fmt.Sprintf("High score: %d", p.HighScore))
	}
	if blinkOn() {
		c.centered(cx, top+len(gameOverArt)+5, ">>  Press SPACE for Menu  <<")
	}
}

func (c *Client) drawInactivityScreen(cx, cy int) {
	c.centered(cx, cy-2, "INACTIVITY WARNING")
	left := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	c.centered(cx, cy, fmt.Sprintf("You will be disconnected in %d seconds.", max(left, 0)))
	c.centered(cx, cy+2, "Press any key to continue")
}

func (c *Client) drawShutdownScreen(cx, cy int) {
	c.centered(cx, cy-3, "SERVER SHUTTING DOWN")
	c.centered(cx, cy-1, "The server is restarting for maintenance.")
	c.centered(cx, cy, "Please reconnect in a moment.")
	c.centered(cx, cy+2, fmt.Sprintf("Disconnecting in %d seconds...", int(c.shutdownTimer)+1))
	c.centered(cx, cy+4, "Press Q to disconnect now")
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
