// Package audio plays the game's sound cues through the beep speaker.
//
// The speaker is process-wide, so a process owns one Manager. It opens the
// output device lazily on the first cue and releases it on Close. Every
// failure degrades to silence.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/tomz197/starstrike/internal/loop"
)

const (
	sampleRate    = beep.SampleRate(44100)
	bufferLatency = 100 * time.Millisecond
)

// device abstracts the global speaker.
type device interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerDevice struct{}

func (speakerDevice) Init(sr beep.SampleRate, n int) error { return speaker.Init(sr, n) }
func (speakerDevice) Play(s beep.Streamer)                 { speaker.Play(s) }
func (speakerDevice) Lock()                                { speaker.Lock() }
func (speakerDevice) Unlock()                              { speaker.Unlock() }
func (speakerDevice) Close() {
	speaker.Clear()
	speaker.Close()
}

// Manager implements loop.AudioSink.
type Manager struct {
	mu          sync.Mutex
	dev         device
	mixer       *beep.Mixer
	volume      float64
	enabled     bool
	initialized bool
	failed      bool
	log         zerolog.Logger
}

var _ loop.AudioSink = (*Manager)(nil)

// NewManager creates a manager. A disabled manager never touches the device.
// volume is a linear gain in [0, 1].
func NewManager(enabled bool, volume float64, log zerolog.Logger) *Manager {
	return newManager(speakerDevice{}, enabled, volume, log)
}

func newManager(dev device, enabled bool, volume float64, log zerolog.Logger) *Manager {
	return &Manager{
		dev:     dev,
		mixer:   &beep.Mixer{},
		volume:  min(max(volume, 0), 1),
		enabled: enabled,
		log:     log.With().Str("component", "audio").Logger(),
	}
}

// Play starts a cue without waiting for it. The first call opens the device;
// if that fails the manager stays silent for the rest of the process.
func (m *Manager) Play(cue loop.Cue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled || m.failed {
		return nil
	}
	if !m.initialized {
		if err := m.initialize(); err != nil {
			m.failed = true
			m.log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
			return err
		}
	}

	s := Synthesize(cue, m.volume)
	if s == nil {
		return fmt.Errorf("unknown cue %q", cue)
	}
	m.dev.Lock()
	m.mixer.Add(s)
	m.dev.Unlock()
	return nil
}

func (m *Manager) initialize() error {
	if err := m.dev.Init(sampleRate, sampleRate.N(bufferLatency)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	m.dev.Play(m.mixer)
	m.initialized = true
	m.log.Debug().Int("sampleRate", int(sampleRate)).Msg("speaker initialized")
	return nil
}

// Close stops all cues and releases the device. Play after Close reopens it.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.dev.Lock()
	m.mixer.Clear()
	m.dev.Unlock()
	m.dev.Close()
	m.initialized = false
}
