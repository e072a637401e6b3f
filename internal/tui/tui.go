// Package tui hosts a game in a tcell screen. The ship follows the mouse
// pointer when the terminal reports motion, and the arrow keys otherwise.
package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/tomz197/starstrike/internal/draw"
	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/session"
)

// keyHold is how long a steering key counts as held after its last event.
const keyHold = 120 * time.Millisecond

const (
	dirLeft = iota
	dirRight
	dirUp
	dirDown
)

// Host drives one session on a tcell screen. The caller owns the screen's
// Init and Fini.
type Host struct {
	screen    tcell.Screen
	session   *session.Session
	canvas    *draw.Canvas
	frameTime time.Duration
	log       zerolog.Logger

	offCol, offRow int

	held       [4]time.Time
	confirm    bool
	pause      bool
	quit       bool
	hasPointer bool
	pointerX   float64
	pointerY   float64
}

// New creates a host and enables mouse motion reporting.
func New(screen tcell.Screen, sess *session.Session, frameTime time.Duration, log zerolog.Logger) *Host {
	if frameTime <= 0 {
		frameTime = config.ClientTargetFrameTime
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	h := &Host{
		screen:    screen,
		session:   sess,
		frameTime: frameTime,
		log:       log,
		canvas:    draw.NewScaledCanvas(1, 1, config.PlayfieldWidth, config.PlayfieldHeight),
	}
	h.resize()
	return h
}

// Run polls events and steps the game every frame until quit or ctx ends.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.frameTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			h.handleEvent(ev)
			if h.quit {
				return nil
			}
		case <-ticker.C:
			if !h.step(ctx) {
				return nil
			}
			if err := h.Render(h.session.View().Frame); err != nil {
				return err
			}
		}
	}
}

// step applies the input gathered since the last frame.
func (h *Host) step(ctx context.Context) bool {
	c := h.controls(time.Now())
	h.confirm, h.pause = false, false
	return h.session.Step(ctx, c)
}

func (h *Host) controls(now time.Time) session.Controls {
	c := session.Controls{
		Confirm:    h.confirm,
		Pause:      h.pause,
		Quit:       h.quit,
		HasPointer: h.hasPointer,
		PointerX:   h.pointerX,
		PointerY:   h.pointerY,
	}
	c.SteerX = axis(h.isHeld(dirLeft, now), h.isHeld(dirRight, now))
	c.SteerY = axis(h.isHeld(dirUp, now), h.isHeld(dirDown, now))
	return c
}

func (h *Host) isHeld(dir int, now time.Time) bool {
	return now.Sub(h.held[dir]) < keyHold
}

func axis(neg, pos bool) float64 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}

func (h *Host) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		h.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.pointerX, h.pointerY = h.cellToPlayfield(x, y)
		h.hasPointer = true
		if ev.Buttons()&tcell.Button1 != 0 {
			h.confirm = true
		}
	case *tcell.EventResize:
		h.resize()
		h.screen.Sync()
	}
}

func (h *Host) handleKey(ev *tcell.EventKey) {
	now := time.Now()
	steer := func(dir int) {
		h.held[dir] = now
		h.hasPointer = false
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		h.quit = true
	case tcell.KeyEnter:
		h.confirm = true
	case tcell.KeyEscape:
		h.pause = true
	case tcell.KeyLeft:
		steer(dirLeft)
	case tcell.KeyRight:
		steer(dirRight)
	case tcell.KeyUp:
		steer(dirUp)
	case tcell.KeyDown:
		steer(dirDown)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			h.quit = true
		case ' ':
			h.confirm = true
		case 'p', 'P':
			h.pause = true
		case 'a', 'A', 'h':
			steer(dirLeft)
		case 'd', 'D', 'l':
			steer(dirRight)
		case 'w', 'W', 'k':
			steer(dirUp)
		case 's', 'S', 'j':
			steer(dirDown)
		}
	}
}

// resize fits the playfield into the current screen.
func (h *Host) resize() {
	w, ht := h.screen.Size()
	cw, ch, offCol, offRow := draw.Fit(w, ht, w, ht, config.PlayfieldWidth, config.PlayfieldHeight)
	h.canvas.Resize(cw, ch)
	h.offCol, h.offRow = offCol, offRow
}

// cellToPlayfield maps a screen cell to the playfield point at its center.
func (h *Host) cellToPlayfield(x, y int) (float64, float64) {
	cw, ch := h.canvas.TerminalWidth(), h.canvas.TerminalHeight()
	px := (float64(x-h.offCol) + 0.5) / float64(cw) * config.PlayfieldWidth
	py := (float64(y-h.offRow) + 0.5) / float64(ch) * config.PlayfieldHeight
	return px, py
}
