package object

import (
	"image/color"
	"math"
	"time"
)

// Enemy movement.
const (
	EnemyBaseSpeed     = 2.0
	EnemyWaveSpeedStep = 0.3
	EnemyMaxWaveBonus  = 5.0
	EnemyDespawnMargin = 100.0 // Distance below the bottom edge before removal
)

// EnemyClass is the per-variant payload of a hostile ship.
type EnemyClass struct {
	Kind         Kind
	Width        float64
	Height       float64
	HP           int
	Score        int
	SpeedFactor  float64
	Drift        float64 // Maximum absolute horizontal drift per frame
	FireInterval time.Duration
	Color        color.RGBA
}

var enemyClasses = map[Kind]EnemyClass{
	KindFighter: {
		Kind:         KindFighter,
		Width:        40,
		Height:       40,
		HP:           2,
		Score:        100,
		SpeedFactor:  1.0,
		Drift:        1.0,
		FireInterval: 2000 * time.Millisecond,
		Color:        color.RGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff},
	},
	KindInterceptor: {
		Kind:         KindInterceptor,
		Width:        36,
		Height:       36,
		HP:           3,
		Score:        250,
		SpeedFactor:  1.4,
		Drift:        1.5,
		FireInterval: 1500 * time.Millisecond,
		Color:        color.RGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff},
	},
}

// ClassOf returns the class table entry for an enemy kind.
// Non-enemy kinds fall back to the fighter class.
func ClassOf(k Kind) EnemyClass {
	if c, ok := enemyClasses[k]; ok {
		return c
	}
	return enemyClasses[KindFighter]
}

// DescentSpeed returns the base vertical speed for enemies spawned during wave.
func DescentSpeed(wave int) float64 {
	bonus := math.Min(float64(max(wave-1, 0))*EnemyWaveSpeedStep, EnemyMaxWaveBonus)
	return EnemyBaseSpeed + bonus
}

// Enemy is a descending hostile ship.
type Enemy struct {
	Body
	Class    EnemyClass
	HP       int
	LastFire time.Duration
}

// Spawn initializes e as a fresh enemy of class k entering above the top edge at x.
// drift is a unit value in [-1, 1] scaled by the class drift.
func (e *Enemy) Spawn(k Kind, x float64, wave int, drift float64, now time.Duration) {
	c := ClassOf(k)
	*e = Enemy{
		Body: Body{
			X:  x,
			Y:  -c.Height / 2,
			VX: drift * c.Drift,
			VY: DescentSpeed(wave) * c.SpeedFactor,
			W:  c.Width,
			H:  c.Height,
		},
		Class:    c,
		HP:       c.HP,
		LastFire: now,
	}
}

// Update moves the enemy, bouncing its drift off the side edges.
// Returns true once it has left the bottom of the playfield.
func (e *Enemy) Update(s Screen) bool {
	e.Integrate()

	half := e.W / 2
	if e.X < half {
		e.X = half
		e.VX = math.Abs(e.VX)
	} else if e.X > s.Width-half {
		e.X = s.Width - half
		e.VX = -math.Abs(e.VX)
	}

	return e.Y > s.Height+EnemyDespawnMargin
}

// InPlayfield reports whether the enemy's center is within the vertical bounds.
func (e *Enemy) InPlayfield(s Screen) bool {
	return e.Y >= 0 && e.Y <= s.Height
}

// ReadyToFire reports whether the class cadence has elapsed since the last shot
// and the enemy is visible.
func (e *Enemy) ReadyToFire(now time.Duration, s Screen) bool {
	return e.InPlayfield(s) && now-e.LastFire >= e.Class.FireInterval
}

// Hit applies damage and reports whether the enemy is destroyed.
func (e *Enemy) Hit(damage int) bool {
	e.HP -= damage
	return e.HP <= 0
}
