package loop

import (
	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/object"
)

// Shake is the decaying screen shake applied to the whole frame.
type Shake struct {
	Magnitude        float64
	OffsetX, OffsetY float64
}

// Add raises the magnitude to at least m.
func (s *Shake) Add(m float64) {
	s.Magnitude = max(s.Magnitude, m)
}

// Update picks this frame's offset within [-Magnitude, Magnitude] and decays.
func (s *Shake) Update(rng object.Rand) {
	if s.Magnitude == 0 {
		s.OffsetX, s.OffsetY = 0, 0
		return
	}
	s.OffsetX = (rng.Float64()*2 - 1) * s.Magnitude
	s.OffsetY = (rng.Float64()*2 - 1) * s.Magnitude

	s.Magnitude *= config.ShakeDecay
	if s.Magnitude < config.ShakeCutoff {
		s.Magnitude = 0
	}
}
