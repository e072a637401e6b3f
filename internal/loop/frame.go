package loop

import (
	"image/color"

	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/object"
)

// Sprite is one entity to draw. X and Y are the center in playfield pixels.
type Sprite struct {
	Kind     object.Kind
	X, Y     float64
	W, H     float64
	Rotation float64
	Color    color.RGBA
}

var kindColors = map[object.Kind]color.RGBA{
	object.KindPlayer:         playerColor,
	object.KindBonusWeapon:    {R: 0xff, G: 0xdd, B: 0x33, A: 0xff},
	object.KindBonusRapidFire: {R: 0x55, G: 0xff, B: 0x77, A: 0xff},
	object.KindPlayerShot:     {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	object.KindEnemyShot:      {R: 0xff, G: 0x55, B: 0x99, A: 0xff},
}

// ParticleSprite is one particle to draw with its fade.
type ParticleSprite struct {
	X, Y  float64
	Size  float64
	Alpha float64
	Color color.RGBA
}

// Frame is the draw batch for one tick. Renderers read it and must not keep
// references past the next Snapshot call.
type Frame struct {
	State  GameState
	Screen object.Screen

	ShakeX, ShakeY float64

	Player        Sprite
	Blink         bool // Player is invulnerable
	PlayerVisible bool // False on the off phase of the blink

	Enemies     []Sprite
	Projectiles []Sprite // KindPlayerShot or KindEnemyShot
	Pickups     []Sprite
	Particles   []ParticleSprite
	Stars       []object.Star

	Mission     Mission
	Wave        int
	WeaponLevel int
	RapidFire   bool
}

// Renderer consumes draw batches.
type Renderer interface {
	Render(f *Frame) error
}

// Snapshot fills and returns the engine's reusable frame.
func (e *Engine) Snapshot() *Frame {
	f := &e.snap
	f.State = e.machine.Current()
	f.Screen = e.screen
	f.ShakeX, f.ShakeY = e.shake.OffsetX, e.shake.OffsetY

	f.Player = spriteOf(object.KindPlayer, &e.player.Body)
	remaining := e.InvulnerableFrames()
	f.Blink = remaining > 0
	f.PlayerVisible = object.ShouldRenderBlink(remaining, config.PlayerBlinkPeriod)

	f.Enemies = f.Enemies[:0]
	for _, en := range e.enemies.All() {
		sp := spriteOf(en.Class.Kind, &en.Body)
		sp.Color = en.Class.Color
		f.Enemies = append(f.Enemies, sp)
	}

	f.Projectiles = f.Projectiles[:0]
	for _, p := range e.playerShots.All() {
		f.Projectiles = append(f.Projectiles, spriteOf(p.Kind, &p.Body))
	}
	for _, p := range e.enemyShots.All() {
		f.Projectiles = append(f.Projectiles, spriteOf(p.Kind, &p.Body))
	}

	f.Pickups = f.Pickups[:0]
	for _, p := range e.pickups.All() {
		f.Pickups = append(f.Pickups, spriteOf(p.Kind, &p.Body))
	}

	f.Particles = f.Particles[:0]
	for _, p := range e.particles.All() {
		f.Particles = append(f.Particles, ParticleSprite{
			X:     p.X,
			Y:     p.Y,
			Size:  p.Size,
			Alpha: p.Alpha(),
			Color: p.Color,
		})
	}

	f.Stars = append(f.Stars[:0], e.stars...)

	f.Mission = e.mission
	f.Wave = e.wave
	f.WeaponLevel = e.weapon.Level()
	f.RapidFire = e.weapon.RapidFire(e.clock)
	return f
}

// Render snapshots the current frame into r.
func (e *Engine) Render(r Renderer) error {
	return r.Render(e.Snapshot())
}

func spriteOf(k object.Kind, b *object.Body) Sprite {
	return Sprite{Kind: k, X: b.X, Y: b.Y, W: b.W, H: b.H, Rotation: b.Rotation, Color: kindColors[k]}
}
