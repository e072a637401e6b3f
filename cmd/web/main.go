package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/tomz197/starstrike/internal/app"
	"github.com/tomz197/starstrike/internal/store"
)

// leaderboardSize is how many entries the page and the API list.
const leaderboardSize = 10

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(htmlPage))

func main() {
	fs := pflag.NewFlagSet("starstrike-web", pflag.ExitOnError)
	configDir := fs.String("config-dir", "", "directory holding starstrike.json")
	fs.String("web.host", "", "listen address")
	fs.String("web.port", "", "listen port")
	fs.String("web.sshDisplayHost", "", "host name shown in the ssh command")
	fs.String("storage.path", "", "high-score database file")
	fs.String("logLevel", "", "log level")
	_ = fs.Parse(os.Args[1:])

	if err := run(app.Options{ConfigDir: *configDir, Flags: fs, Stderr: os.Stderr}); err != nil {
		fmt.Fprintf(os.Stderr, "web server error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts app.Options) error {
	a, err := app.Open(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.Settings.Web
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           newHandler(a.Store, cfg.SSHDisplayHost, a.Settings.SSH.Port, a.Log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", srv.Addr).Msg("starting web server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type handler struct {
	scores  *store.Store
	sshHost string
	sshPort string
	log     zerolog.Logger
}

func newHandler(scores *store.Store, sshHost, sshPort string, log zerolog.Logger) http.Handler {
	h := &handler{scores: scores, sshHost: sshHost, sshPort: sshPort, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /api/scores", h.apiScores)
	return mux
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	top, err := h.scores.Top(r.Context(), leaderboardSize)
	if err != nil {
		h.log.Error().Err(err).Msg("loading leaderboard")
		top = nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTemplate.Execute(w, struct {
		SSHHost string
		SSHPort string
		Scores  []store.HighScore
	}{h.sshHost, h.sshPort, top})
	if err != nil {
		h.log.Error().Err(err).Msg("rendering page")
	}
}

type scoreEntry struct {
	Profile string `json:"profile"`
	Score   int    `json:"score"`
	Wave    int    `json:"wave"`
}

func (h *handler) apiScores(w http.ResponseWriter, r *http.Request) {
	top, err := h.scores.Top(r.Context(), leaderboardSize)
	if err != nil {
		h.log.Error().Err(err).Msg("loading leaderboard")
		http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}

	out := make([]scoreEntry, 0, len(top))
	for _, s := range top {
		out = append(out, scoreEntry{Profile: s.Profile, Score: s.Score, Wave: s.Wave})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.log.Error().Err(err).Msg("writing scores")
	}
}
