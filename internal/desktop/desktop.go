// Package desktop hosts a game in an ebiten window. The ship follows the
// mouse cursor; arrow keys take over until the cursor moves again.
package desktop

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/session"
)

// Game implements ebiten.Game for one session.
type Game struct {
	ctx     context.Context
	session *session.Session
	log     zerolog.Logger
	pointer pointerTracker
	target  *ebiten.Image // Draw destination for Render
}

var _ ebiten.Game = (*Game)(nil)

// New creates the window game. Cancelling ctx closes the window.
func New(ctx context.Context, sess *session.Session, log zerolog.Logger) *Game {
	return &Game{ctx: ctx, session: sess, log: log}
}

// Run opens the window and blocks until it closes.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(config.PlayfieldWidth, config.PlayfieldHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(config.ClientTargetFPS)
	return ebiten.RunGame(g)
}

// inputState is one frame of raw device state.
type inputState struct {
	cursorX, cursorY      int
	left, right, up, down bool
	confirm, pause, quit  bool
}

func pollInput() inputState {
	x, y := ebiten.CursorPosition()
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	just := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	return inputState{
		cursorX: x,
		cursorY: y,
		left:    pressed(ebiten.KeyArrowLeft, ebiten.KeyA),
		right:   pressed(ebiten.KeyArrowRight, ebiten.KeyD),
		up:      pressed(ebiten.KeyArrowUp, ebiten.KeyW),
		down:    pressed(ebiten.KeyArrowDown, ebiten.KeyS),
		confirm: just(ebiten.KeySpace, ebiten.KeyEnter) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		pause: just(ebiten.KeyP, ebiten.KeyEscape),
		quit:  just(ebiten.KeyQ),
	}
}

// pointerTracker decides whether the cursor or the keys steer.
type pointerTracker struct {
	lastX, lastY int
	seen         bool
	active       bool
}

func (p *pointerTracker) update(in inputState) bool {
	moved := p.seen && (in.cursorX != p.lastX || in.cursorY != p.lastY)
	p.lastX, p.lastY, p.seen = in.cursorX, in.cursorY, true

	switch {
	case in.left || in.right || in.up || in.down:
		p.active = false
	case moved:
		p.active = true
	}
	return p.active
}

func (g *Game) controls(in inputState) session.Controls {
	c := session.Controls{
		Confirm: in.confirm,
		Pause:   in.pause,
		Quit:    in.quit,
	}
	if g.pointer.update(in) {
		c.HasPointer = true
		c.PointerX, c.PointerY = float64(in.cursorX), float64(in.cursorY)
		return c
	}
	c.SteerX = axis(in.left, in.right)
	c.SteerY = axis(in.up, in.down)
	return c
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

// Update advances one frame. Ebiten calls it at the configured TPS.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if !g.session.Step(g.ctx, g.controls(pollInput())) {
		return ebiten.Termination
	}
	return nil
}

// Layout keeps the playfield resolution; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.PlayfieldWidth, config.PlayfieldHeight
}
