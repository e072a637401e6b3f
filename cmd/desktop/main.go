package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/tomz197/starstrike/internal/app"
	"github.com/tomz197/starstrike/internal/desktop"
)

func main() {
	fs := pflag.NewFlagSet("starstrike-desktop", pflag.ExitOnError)
	configDir := fs.String("config-dir", "", "directory holding starstrike.json")
	fs.String("game.profile", "", "high-score profile")
	fs.Bool("audio.enabled", true, "play sound effects")
	fs.Float64("audio.volume", 0.8, "sound effect volume from 0 to 1")
	fs.String("storage.path", "", "high-score database file")
	fs.String("logLevel", "", "log level")
	_ = fs.Parse(os.Args[1:])

	if err := run(app.Options{ConfigDir: *configDir, Flags: fs, Stderr: os.Stderr}); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts app.Options) error {
	a, err := app.Open(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sound := a.Audio()
	defer sound.Close()

	sess, err := a.NewSession(ctx, a.Profile(), sound)
	if err != nil {
		return err
	}
	defer sess.Close()

	a.Log.Info().Str("profile", a.Profile()).Msg("opening window")
	return desktop.Run(desktop.New(ctx, sess, a.Log), "Starstrike")
}
