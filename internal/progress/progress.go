// Package progress keeps the host-side record of a game's progression.
//
// The engine reports progression as events; a Tracker folds them into score,
// lives, wave and health, and commits the high score when a game ends.
package progress

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomz197/starstrike/internal/loop"
	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/object"
)

// HighScores persists best scores per profile.
type HighScores interface {
	HighScore(ctx context.Context, profile string) (int, error)
	Commit(ctx context.Context, profile string, score, wave int) (bool, error)
}

// State is the progression visible to the HUD.
type State struct {
	Score        int
	Lives        int
	Wave         int
	Health       int
	HighScore    int
	GameOver     bool
	NewHighScore bool // The finished game beat the previous high score
}

func initialState(highScore int) State {
	return State{
		Lives:     config.InitialLives,
		Wave:      config.InitialWave,
		Health:    object.PlayerMaxHealth,
		HighScore: highScore,
	}
}

// Tracker applies engine events for one profile.
type Tracker struct {
	state   State
	profile string
	scores  HighScores
	log     zerolog.Logger
}

// NewTracker reads the stored high score once and starts a fresh record.
// A nil store keeps the high score in memory only.
func NewTracker(ctx context.Context, profile string, scores HighScores, log zerolog.Logger) *Tracker {
	t := &Tracker{
		profile: profile,
		scores:  scores,
		log:     log.With().Str("profile", profile).Logger(),
	}

	high := 0
	if scores != nil {
		var err error
		high, err = scores.HighScore(ctx, profile)
		if err != nil {
			t.log.Warn().Err(err).Msg("high score unavailable, starting from zero")
			high = 0
		}
	}
	t.state = initialState(high)
	return t
}

// State returns the current progression.
func (t *Tracker) State() State { return t.state }

// Apply folds events into the progression in order.
func (t *Tracker) Apply(ctx context.Context, events []loop.Event) {
	for _, ev := range events {
		t.apply(ctx, ev)
	}
}

func (t *Tracker) apply(ctx context.Context, ev loop.Event) {
	s := &t.state
	switch ev.Type {
	case loop.EventScoreDelta:
		s.Score += ev.Points
	case loop.EventDamageTaken:
		s.Health = max(s.Health-ev.Amount, 0)
	case loop.EventPlayerDied:
		s.Lives = max(s.Lives-1, 0)
		if s.Lives > 0 {
			s.Health = object.PlayerMaxHealth
		}
	case loop.EventLifeGained:
		s.Lives = min(s.Lives+1, config.MaxLives)
	case loop.EventWaveAdvanced:
		s.Wave = ev.Wave
	case loop.EventGameOver:
		s.GameOver = true
		t.commitHighScore(ctx)
	case loop.EventGameReset:
		*s = initialState(s.HighScore)
	}
}

// commitHighScore writes the score only when it strictly beats the record.
func (t *Tracker) commitHighScore(ctx context.Context) {
	s := &t.state
	if s.Score <= s.HighScore {
		return
	}
	s.HighScore = s.Score
	s.NewHighScore = true

	if t.scores == nil {
		return
	}
	if _, err := t.scores.Commit(ctx, t.profile, s.Score, s.Wave); err != nil {
		t.log.Error().Err(err).Int("score", s.Score).Msg("failed to save high score")
	}
}
