package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/tomz197/starstrike/internal/loop"
)

// Cue lengths
const (
	shotPlayerDuration = 60 * time.Millisecond
	shotEnemyDuration  = 90 * time.Millisecond
	explosionDuration  = 350 * time.Millisecond
	pickupNoteDuration = 80 * time.Millisecond
)

type wave int

const (
	waveSquare wave = iota
	waveSaw
	waveNoise
)

// sweep is a finite oscillator gliding from one frequency to another with
// an exponential decay envelope.
type sweep struct {
	from, to float64
	decay    float64 // Envelope falloff per second
	wave     wave
	phase    float64
	pos      int
	total    int
	rng      *rand.Rand
}

func newSweep(from, to float64, d time.Duration, decay float64, w wave) *sweep {
	return &sweep{
		from:  from,
		to:    to,
		decay: decay,
		wave:  w,
		total: sampleRate.N(d),
		rng:   rand.New(rand.NewSource(int64(from*1000 + to))),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		t := float64(s.pos) / float64(sampleRate)

		var v float64
		switch s.wave {
		case waveSquare:
			v = 1
			if s.phase >= 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2 * (s.phase - 0.5)
		case waveNoise:
			v = s.rng.Float64()*2 - 1
		}
		v *= math.Exp(-t * s.decay)

		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(sampleRate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// withVolume applies a linear gain. effects.Volume works in log space, so
// zero gain is expressed as Silent.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// chimeNote is a short decaying sine note.
func chimeNote(freq float64) beep.Streamer {
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return generators.Silence(sampleRate.N(pickupNoteDuration))
	}
	env := newSweep(1, 1, pickupNoteDuration, 18, waveSquare)
	return beep.Take(sampleRate.N(pickupNoteDuration), &modulate{carrier: tone, env: env})
}

// modulate multiplies a carrier by the absolute value of an envelope stream.
type modulate struct {
	carrier beep.Streamer
	env     beep.Streamer
	buf     [][2]float64
}

func (m *modulate) Stream(samples [][2]float64) (int, bool) {
	n, ok := m.carrier.Stream(samples)
	if cap(m.buf) < n {
		m.buf = make([][2]float64, n)
	}
	envN, _ := m.env.Stream(m.buf[:n])
	for i := 0; i < n; i++ {
		g := 0.0
		if i < envN {
			g = math.Abs(m.buf[i][0])
		}
		samples[i][0] *= g
		samples[i][1] *= g
	}
	return n, ok
}

func (m *modulate) Err() error { return m.carrier.Err() }

// Synthesize builds the streamer for a cue at the given gain.
// Returns nil for unknown cues.
func Synthesize(cue loop.Cue, gain float64) beep.Streamer {
	switch cue {
	case loop.CueShotPlayer:
		return withVolume(newSweep(1400, 700, shotPlayerDuration, 30, waveSquare), 0.15*gain)
	case loop.CueShotEnemy:
		return withVolume(newSweep(320, 180, shotEnemyDuration, 20, waveSaw), 0.15*gain)
	case loop.CueExplosion:
		return withVolume(beep.Mix(
			newSweep(0, 0, explosionDuration, 9, waveNoise),
			withVolume(newSweep(90, 40, explosionDuration, 6, waveSquare), 0.5),
		), 0.35*gain)
	case loop.CuePickup:
		return withVolume(beep.Seq(chimeNote(660), chimeNote(990)), 0.3*gain)
	default:
		return nil
	}
}
