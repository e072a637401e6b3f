// Package app wires settings, logging and the high-score store for the
// commands and builds sessions on top of them.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/tomz197/starstrike/internal/audio"
	"github.com/tomz197/starstrike/internal/config"
	"github.com/tomz197/starstrike/internal/logging"
	"github.com/tomz197/starstrike/internal/loop"
	"github.com/tomz197/starstrike/internal/progress"
	"github.com/tomz197/starstrike/internal/session"
	"github.com/tomz197/starstrike/internal/store"
)

// Options controls how a command starts.
type Options struct {
	ConfigDir string         // Empty uses $STARSTRIKE_CONFIG_DIR or the working directory
	Flags     *pflag.FlagSet // Parsed flags overriding settings; may be nil

	// Stderr receives console logs when no log file is configured.
	// Nil discards them, which full-screen hosts need.
	Stderr io.Writer
}

// App holds the process-wide dependencies.
type App struct {
	Settings config.Settings
	Log      zerolog.Logger
	Store    *store.Store

	logOut io.WriteCloser
}

// Open loads settings, starts logging and opens the store.
func Open(opts Options) (*App, error) {
	if err := config.Load(opts.ConfigDir); err != nil {
		return nil, err
	}
	if opts.Flags != nil {
		if err := config.BindFlags(opts.Flags); err != nil {
			return nil, err
		}
	}
	settings, err := config.Get()
	if err != nil {
		return nil, err
	}

	out, console, err := logOutput(settings.LogFile, opts.Stderr)
	if err != nil {
		return nil, err
	}
	log, levelErr := logging.New(out, settings.LogLevel, console)
	if levelErr != nil {
		log.Warn().Err(levelErr).Msg("using info level")
	}

	st, err := store.Open(settings.Storage.Path, log.With().Str("component", "store").Logger())
	if err != nil {
		_ = out.Close()
		return nil, err
	}

	return &App{
		Settings: settings,
		Log:      log,
		Store:    st,
		logOut:   out,
	}, nil
}

func logOutput(path string, stderr io.Writer) (io.WriteCloser, bool, error) {
	if path != "" {
		f, err := logging.OpenFile(path)
		return f, false, err
	}
	if stderr != nil {
		return nopCloser{stderr}, true, nil
	}
	f, err := logging.OpenFile("")
	return f, false, err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// FrameTime is the simulated length of one frame at the configured rate.
func (a *App) FrameTime() time.Duration {
	return time.Second / time.Duration(a.Settings.Game.FPS)
}

// Audio returns a speaker-backed sink honoring the audio settings.
func (a *App) Audio() *audio.Manager {
	return audio.NewManager(a.Settings.Audio.Enabled, a.Settings.Audio.Volume, a.Log)
}

// NewSession starts a game for profile. sink may be nil for silent play.
func (a *App) NewSession(ctx context.Context, profile string, sink loop.AudioSink) (*session.Session, error) {
	log := a.Log.With().Str("profile", profile).Logger()

	engine, err := loop.New(loop.Options{Audio: sink, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	tracker := progress.NewTracker(ctx, profile, a.Store, log)
	return session.New(engine, tracker, a.FrameTime(), log), nil
}

// Close releases the store and the log file.
func (a *App) Close() error {
	err := a.Store.Close()
	if cerr := a.logOut.Close(); err == nil {
		err = cerr
	}
	return err
}

// Profile picks the high-score profile for a local player: the configured
// one, or the login name when the setting is empty.
func (a *App) Profile() string {
	if p := a.Settings.Game.Profile; p != "" {
		return p
	}
	return config.GetEnv("USER", "local")
}
