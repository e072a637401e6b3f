// Package client runs one game on an ANSI terminal: a local tty or an SSH
// session. It reads raw key bytes, steps the session at a fixed frame rate
// and draws each frame with half-block graphics.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/starstrike/internal/draw"
	"github.com/tomz197/starstrike/internal/hub"
	"github.com/tomz197/starstrike/internal/input"
	"github.com/tomz197/starstrike/internal/loop"
	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/session"
)

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	FrameTime    time.Duration // Defaults to the configured client frame time
	Hub          *hub.Hub      // Shared server registry; nil for local play
	IdleTimeout  bool          // Warn and disconnect inactive players
	Logger       zerolog.Logger
}

// Client handles rendering and input for a single terminal.
type Client struct {
	session      *session.Session
	hub          *hub.Hub
	handle       *hub.Handle
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	frameTime    time.Duration
	idleTimeout  bool
	log          zerolog.Logger

	in            input.Input
	running       bool
	lastInput     time.Time
	inactive      bool
	shuttingDown  bool
	shutdownTimer float64

	// Previous frame's UI mode, to clear the terminal on transitions.
	prevState   loop.GameState
	wasInactive bool
	wasShutdown bool
}

// New creates a client for a session reading keys from r and drawing to w.
func New(sess *session.Session, r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	frameTime := opts.FrameTime
	if frameTime <= 0 {
		frameTime = config.ClientTargetFrameTime
	}

	c := &Client{
		session:      sess,
		hub:          opts.Hub,
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		frameTime:    frameTime,
		idleTimeout:  opts.IdleTimeout,
		log:          opts.Logger,
		running:      true,
		lastInput:    time.Now(),
		prevState:    sess.State(),
	}
	if c.hub != nil {
		c.handle = c.hub.Register(opts.Username)
	}

	termWidth, termHeight, _ := termSizeFunc()
	w0, h0, offCol, offRow := fitTerm(termWidth, termHeight)
	c.canvas = draw.NewScaledCanvas(w0, h0, config.PlayfieldWidth, config.PlayfieldHeight)
	c.canvas.SetOffset(offCol, offRow)
	c.chunkWriter = draw.NewChunkWriter(w, offCol, offRow)
	return c
}

var _ loop.Renderer = (*Client)(nil)

// Run drives the client until the player quits, the input stream ends, the
// player idles out, the server shuts down, or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.unregister()

	lastTime := time.Now()
	for c.running {
		if ctx.Err() != nil {
			break
		}
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processNotices()
		c.updateScreen()

		switch {
		case c.shuttingDown:
			c.shutdownTimer -= delta.Seconds()
			if c.shutdownTimer <= 0 {
				c.running = false
			}
		case c.inactive:
			// Frozen behind the warning until a key arrives.
		default:
			if !c.session.Step(ctx, c.controls()) {
				c.running = false
			}
		}

		if err := c.Render(c.session.View().Frame); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < c.frameTime {
			time.Sleep(c.frameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

func (c *Client) unregister() {
	if c.hub != nil {
		c.hub.Unregister(c.handle.ID)
	}
}

// processInput reads keys and tracks inactivity.
func (c *Client) processInput() {
	c.in = input.ReadInput(c.inputStream)

	idle := time.Since(c.lastInput).Seconds()
	switch {
	case len(c.in.Pressed) > 0:
		c.lastInput = time.Now()
		if c.inactive {
			// The waking key only dismisses the warning.
			c.inactive = false
			c.in = input.Input{Quit: c.in.Quit}
		}
	case !c.idleTimeout:
	case idle > config.InactivityDisconnectUser:
		c.log.Info().Msg("disconnecting inactive player")
		c.running = false
	case idle > config.InactivityWarnUser:
		c.inactive = true
		c.session.Pause()
	}

	if c.in.Quit {
		c.running = false
	}
}

// processNotices handles server-wide notices.
func (c *Client) processNotices() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case n := <-c.handle.Notices:
			if n == hub.NoticeShutdown && !c.shuttingDown {
				c.shuttingDown = true
				c.shutdownTimer = config.ShutdownDisplaySeconds
				c.session.Pause()
			}
		default:
			return
		}
	}
}

func (c *Client) controls() session.Controls {
	return session.Controls{
		Confirm: c.in.Confirm,
		Pause:   c.in.Pause,
		SteerX:  c.in.SteerX(),
		SteerY:  c.in.SteerY(),
	}
}

// updateScreen follows terminal resizes. A change of render area clears the
// terminal so no residue of the old layout remains.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	w, h, offCol, offRow := fitTerm(termWidth, termHeight)

	if w != c.canvas.TerminalWidth() || h != c.canvas.TerminalHeight() ||
		offCol != c.canvas.OffsetCol() || offRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}
	c.canvas.Resize(w, h)
	c.canvas.SetOffset(offCol, offRow)
	c.chunkWriter.SetOffset(offCol, offRow)
}

func fitTerm(termWidth, termHeight int) (w, h, offCol, offRow int) {
	return draw.Fit(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight,
		config.PlayfieldWidth, config.PlayfieldHeight)
}
