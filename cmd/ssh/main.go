package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/pflag"

	"github.com/tomz197/starstrike/internal/app"
	"github.com/tomz197/starstrike/internal/client"
	"github.com/tomz197/starstrike/internal/draw"
	"github.com/tomz197/starstrike/internal/hub"
)

// Grace periods for a shutdown.
const (
	drainTimeout    = 15 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	fs := pflag.NewFlagSet("starstrike-ssh", pflag.ExitOnError)
	configDir := fs.String("config-dir", "", "directory holding starstrike.json")
	fs.String("ssh.host", "", "listen address")
	fs.String("ssh.port", "", "listen port")
	fs.String("ssh.hostKeyPath", "", "host key file, generated when missing")
	fs.String("storage.path", "", "high-score database file")
	fs.String("logLevel", "", "log level")
	_ = fs.Parse(os.Args[1:])

	if err := run(app.Options{ConfigDir: *configDir, Flags: fs, Stderr: os.Stderr}); err != nil {
		fmt.Fprintf(os.Stderr, "ssh server error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts app.Options) error {
	a, err := app.Open(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.Settings.SSH
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		a.Log.Warn().Err(workErr).Msg("failed to get working directory")
	}
	a.Log.Info().
		Str("host", cfg.Host).
		Str("port", cfg.Port).
		Str("hostKeyPath", cfg.HostKeyPath).
		Str("workingDir", workingDir).
		Msg("ssh config")

	players := hub.New()
	srv := &server{app: a, hub: players}

	sshOpts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Game input is latency sensitive.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.HostKeyPath != "" {
		sshOpts = append(sshOpts, wish.WithHostKeyPath(cfg.HostKeyPath))
	}

	s, err := wish.NewServer(sshOpts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", s.Addr).Msg("starting ssh server")
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	a.Log.Info().Int("players", players.Players()).Msg("shutting down, notifying players")

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), drainTimeout)
	left := players.Shutdown(drainCtx)
	cancelDrain()
	if left > 0 {
		a.Log.Warn().Int("players", left).Msg("players still connected after grace period")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

type server struct {
	app *app.App
	hub *hub.Hub
}

// gameMiddleware runs one independent game per SSH session.
func (s *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		log := s.app.Log.With().Str("user", sess.User()).Logger()
		log.Info().
			Str("terminal", pty.Term).
			Int("width", pty.Window.Width).
			Int("height", pty.Window.Height).
			Msg("new game session")

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		game, err := s.app.NewSession(sess.Context(), sess.User(), nil)
		if err != nil {
			log.Error().Err(err).Msg("failed to start game")
			fmt.Fprintln(sess, "Error: could not start a game, please try again later")
			return
		}
		defer game.Close()

		c := client.New(game, bufio.NewReader(sess), sess, client.Options{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			FrameTime:    s.app.FrameTime(),
			Hub:          s.hub,
			IdleTimeout:  true,
			Logger:       log,
		})
		if err := c.Run(sess.Context()); err != nil {
			log.Error().Err(err).Msg("game error")
		}

		log.Info().Int("score", game.Progress().Score).Msg("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
