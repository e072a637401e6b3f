package object

import (
	"image/color"
	"math"
)

// Particle fade.
const (
	ParticleLife  = 1.0
	ParticleDecay = 0.02 // Life lost per frame
)

// Particle is a short-lived visual effect.
type Particle struct {
	Body
	Life  float64 // Remaining life in [0, 1]; doubles as draw alpha
	Size  float64
	Color color.RGBA
}

// ParticleSpawner hands out particle slots. ok is false when none are free.
type ParticleSpawner interface {
	SpawnParticle() (p *Particle, ok bool)
}

// Update moves the particle and fades it.
// Returns true once it has faded out.
func (p *Particle) Update() bool {
	p.Integrate()
	p.VX *= 0.96
	p.VY *= 0.96
	p.Life -= ParticleDecay
	return p.Life <= 0
}

// Alpha returns the draw opacity.
func (p *Particle) Alpha() float64 {
	return math.Max(0, math.Min(1, p.Life))
}

// SpawnExplosion emits count particles in a radial burst at (x, y).
// Particles the spawner cannot place are dropped.
func SpawnExplosion(x, y float64, count int, speed float64, clr color.RGBA, spawner ParticleSpawner, rng Rand) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		p, ok := spawner.SpawnParticle()
		if !ok {
			return
		}
		angle := rng.Float64() * 2 * math.Pi
		// 50% to 150% of the base speed
		spd := speed * (0.5 + rng.Float64())
		*p = Particle{
			Body: Body{
				X:  x,
				Y:  y,
				VX: math.Cos(angle) * spd,
				VY: math.Sin(angle) * spd,
			},
			Life:  ParticleLife,
			Size:  2 + rng.Float64()*3,
			Color: clr,
		}
	}
}
