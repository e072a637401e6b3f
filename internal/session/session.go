// Package session connects a host's input device to one game.
//
// Hosts translate their device into Controls once per frame and call Step.
// The session drives the engine state machine, keeps the aim point, and
// folds the engine's events into the progress tracker.
package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/starstrike/internal/loop"
	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/physics"
	"github.com/tomz197/starstrike/internal/progress"
)

// Controls is one frame of device-neutral input.
type Controls struct {
	Confirm bool // Start, engage after a briefing, or restart after game over
	Pause   bool // Toggle pause
	Quit    bool

	// Pointer aim in playfield pixels. Used when HasPointer is set.
	HasPointer         bool
	PointerX, PointerY float64

	// Keyboard aim direction, each axis in [-1, 1].
	SteerX, SteerY float64
}

// View is what a host draws for one frame.
type View struct {
	Frame    *loop.Frame
	Progress progress.State
}

// Session is one player's game.
type Session struct {
	engine    *loop.Engine
	tracker   *progress.Tracker
	frameTime time.Duration
	log       zerolog.Logger

	aimX, aimY float64
}

// New wraps an engine and tracker. frameTime is the simulated length of one Step.
func New(engine *loop.Engine, tracker *progress.Tracker, frameTime time.Duration, log zerolog.Logger) *Session {
	if frameTime <= 0 {
		frameTime = config.ClientTargetFrameTime
	}
	x, y := engine.PlayerPosition()
	return &Session{
		engine:    engine,
		tracker:   tracker,
		frameTime: frameTime,
		log:       log,
		aimX:      x,
		aimY:      y,
	}
}

// Step applies one frame of input and advances the game.
// Returns false when the player asked to quit.
func (s *Session) Step(ctx context.Context, c Controls) bool {
	if c.Quit {
		return false
	}

	if c.Confirm {
		s.confirm(ctx)
	}
	if c.Pause {
		s.engine.TogglePause()
	}

	s.aim(c)

	s.tracker.Apply(ctx, s.engine.Tick(s.frameTime))
	return true
}

func (s *Session) confirm(ctx context.Context) {
	switch state := s.engine.State(); state {
	case loop.StateMenu:
		s.engine.Start()
	case loop.StateBriefing:
		s.engine.Engage()
	case loop.StateGameOver:
		s.tracker.Apply(ctx, s.engine.Restart())
		s.log.Debug().Msg("game restarted")
	}
}

func (s *Session) aim(c Controls) {
	switch {
	case c.HasPointer:
		if physics.Finite(c.PointerX) && physics.Finite(c.PointerY) {
			s.aimX, s.aimY = c.PointerX, c.PointerY
		}
	default:
		s.aimX += steer(c.SteerX) * config.KeyboardAimSpeed
		s.aimY += steer(c.SteerY) * config.KeyboardAimSpeed
	}
	screen := s.engine.Screen()
	s.aimX = physics.Clamp(s.aimX, 0, screen.Width)
	s.aimY = physics.Clamp(s.aimY, 0, screen.Height)
	s.engine.SetTarget(s.aimX, s.aimY)
}

func steer(v float64) float64 {
	if !physics.Finite(v) {
		return 0
	}
	return physics.Clamp(v, -1, 1)
}

// Pause stops the simulation if a game is in progress.
func (s *Session) Pause() { s.engine.SetPaused(true) }

// Aim returns the current aim point.
func (s *Session) Aim() (x, y float64) { return s.aimX, s.aimY }

// View returns the frame to draw with the current progression.
func (s *Session) View() View {
	return View{Frame: s.engine.Snapshot(), Progress: s.tracker.State()}
}

// Progress returns the progression record.
func (s *Session) Progress() progress.State { return s.tracker.State() }

// State returns the engine phase.
func (s *Session) State() loop.GameState { return s.engine.State() }

// Close releases the engine's entities.
func (s *Session) Close() {
	s.engine.Stop()
}
