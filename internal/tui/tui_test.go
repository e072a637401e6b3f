package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/starstrike/internal/loop"
	"github.com/tomz197/starstrike/internal/progress"
	"github.com/tomz197/starstrike/internal/session"
)

func newTestHost(t *testing.T, w, h int) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)

	e, err := loop.New(loop.Options{Rand: rand.New(rand.NewSource(11)), Logger: zerolog.Nop()})
	require.NoError(t, err)
	tr := progress.NewTracker(context.Background(), "test", nil, zerolog.Nop())
	return New(screen, session.New(e, tr, 0, zerolog.Nop()), time.Millisecond, zerolog.Nop()), screen
}

func screenText(s tcell.SimulationScreen) string {
	w, h := s.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := s.GetContent(x, y)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestRenderMenu(t *testing.T) {
	h, screen := newTestHost(t, 120, 40)
	require.NoError(t, h.Render(h.session.View().Frame))

	text := screenText(screen)
	assert.Contains(t, text, "S T A R S T R I K E")
	assert.Contains(t, text, "press SPACE to start")
	assert.NotContains(t, text, "Score")
}

func TestKeysDriveSession(t *testing.T) {
	h, screen := newTestHost(t, 120, 40)
	ctx := context.Background()

	h.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	require.True(t, h.step(ctx))
	assert.Equal(t, loop.StatePlaying, h.session.State())

	h.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	require.True(t, h.step(ctx))
	assert.Equal(t, loop.StatePaused, h.session.State())

	require.NoError(t, h.Render(h.session.View().Frame))
	text := screenText(screen)
	assert.Contains(t, text, "PAUSED")
	assert.Contains(t, text, "Lives 3")

	h.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	assert.False(t, h.step(ctx))
}

func TestEdgeKeysFireOnce(t *testing.T) {
	h, _ := newTestHost(t, 120, 40)
	ctx := context.Background()

	h.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	h.step(ctx)
	h.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	h.step(ctx)
	h.step(ctx)
	assert.Equal(t, loop.StatePaused, h.session.State(), "one escape pauses once")
}

func TestSteeringKeysHold(t *testing.T) {
	h, _ := newTestHost(t, 120, 40)
	now := time.Now()

	h.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	c := h.controls(time.Now())
	assert.Equal(t, -1.0, c.SteerX)
	assert.False(t, c.HasPointer)

	c = h.controls(now.Add(time.Second))
	assert.Zero(t, c.SteerX)
}

func TestMouseAim(t *testing.T) {
	h, _ := newTestHost(t, 100, 60)
	require.Equal(t, 100, h.canvas.TerminalWidth())
	require.Equal(t, 37, h.canvas.TerminalHeight())
	require.Equal(t, 11, h.offRow)
	wantX, wantY := 0.5/100*800, 0.5/37*600

	h.handleEvent(tcell.NewEventMouse(0, 11, tcell.ButtonNone, tcell.ModNone))
	c := h.controls(time.Now())
	require.True(t, c.HasPointer)
	assert.InDelta(t, wantX, c.PointerX, 1e-9)
	assert.InDelta(t, wantY, c.PointerY, 1e-9)

	require.True(t, h.step(context.Background()))
	x, y := h.session.Aim()
	assert.InDelta(t, wantX, x, 1e-9)
	assert.InDelta(t, wantY, y, 1e-9)

	h.handleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	assert.False(t, h.controls(time.Now()).HasPointer, "keys take over from the pointer")
}

func TestMouseClickConfirms(t *testing.T) {
	h, _ := newTestHost(t, 120, 40)
	h.handleEvent(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	h.step(context.Background())
	assert.Equal(t, loop.StatePlaying, h.session.State())
}

func TestResizeRecentersPlayfield(t *testing.T) {
	h, screen := newTestHost(t, 120, 40)
	assert.Equal(t, 106, h.canvas.TerminalWidth())
	assert.Equal(t, 7, h.offCol)

	screen.SetSize(84, 60)
	h.handleEvent(tcell.NewEventResize(84, 60))
	assert.Equal(t, 84, h.canvas.TerminalWidth())
	assert.Equal(t, 31, h.canvas.TerminalHeight())
	assert.Equal(t, 0, h.offCol)
	assert.Equal(t, 14, h.offRow)
}

func TestRunQuits(t *testing.T) {
	h, screen := newTestHost(t, 120, 40)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- h.Run(context.Background()) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("host did not quit")
	}
}
