package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tomz197/starstrike/internal/app"
	"github.com/tomz197/starstrike/internal/client"
	"github.com/tomz197/starstrike/internal/session"
	"github.com/tomz197/starstrike/internal/tui"
)

func main() {
	fs := pflag.NewFlagSet("starstrike", pflag.ExitOnError)
	ansi := fs.Bool("ansi", false, "draw with raw ANSI escapes instead of tcell (no mouse)")
	configDir := fs.String("config-dir", "", "directory holding starstrike.json")
	fs.String("game.profile", "", "high-score profile")
	fs.Bool("audio.enabled", true, "play sound effects")
	fs.Float64("audio.volume", 0.8, "sound effect volume from 0 to 1")
	fs.String("storage.path", "", "high-score database file")
	fs.String("logFile", "", "append logs to this file")
	fs.String("logLevel", "", "log level")
	_ = fs.Parse(os.Args[1:])

	if err := run(*ansi, app.Options{ConfigDir: *configDir, Flags: fs}); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(ansi bool, opts app.Options) error {
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

	a.Log.Info().Bool("ansi", ansi).Str("profile", a.Profile()).Msg("starting local game")
	if ansi {
		return runANSI(ctx, a, sess)
	}
	return runTUI(ctx, a, sess)
}

func runTUI(ctx context.Context, a *app.App, sess *session.Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	return tui.New(screen, sess, a.FrameTime(), a.Log).Run(ctx)
}

func runANSI(ctx context.Context, a *app.App, sess *session.Session) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c := client.New(sess, bufio.NewReader(os.Stdin), os.Stdout, client.Options{
		Username:  a.Profile(),
		FrameTime: a.FrameTime(),
		Logger:    a.Log,
	})
	return c.Run(ctx)
}
