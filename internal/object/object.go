// Package object defines the entities of the playfield and their per-frame kinematics.
//
// Motion is expressed per simulated frame, not per second: every Update call
// advances an entity by exactly one step of its velocity.
package object

import (
	"github.com/tomz197/starstrike/internal/physics"
)

// Kind identifies the variant of an entity.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindFighter
	KindInterceptor
	KindBonusWeapon
	KindBonusRapidFire
	KindPlayerShot
	KindEnemyShot
	KindParticle
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindFighter:
		return "fighter"
	case KindInterceptor:
		return "interceptor"
	case KindBonusWeapon:
		return "bonus_weapon"
	case KindBonusRapidFire:
		return "bonus_rapid_fire"
	case KindPlayerShot:
		return "player_shot"
	case KindEnemyShot:
		return "enemy_shot"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// IsEnemy reports whether k is a hostile ship class.
func (k Kind) IsEnemy() bool {
	return k == KindFighter || k == KindInterceptor
}

// IsPickup reports whether k is a collectible bonus.
func (k Kind) IsPickup() bool {
	return k == KindBonusWeapon || k == KindBonusRapidFire
}

// Rand is the random source entities draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Screen is the logical playfield in pixels.
type Screen struct {
	Width  float64
	Height float64
}

// CenterX returns the horizontal middle of the playfield.
func (s Screen) CenterX() float64 { return s.Width / 2 }

// CenterY returns the vertical middle of the playfield.
func (s Screen) CenterY() float64 { return s.Height / 2 }

// Body holds the kinematic state shared by every entity. X and Y are the center.
type Body struct {
	X, Y     float64
	VX, VY   float64
	W, H     float64
	Rotation float64
}

// Integrate advances the body by one frame of velocity.
func (b *Body) Integrate() {
	b.X += b.VX
	b.Y += b.VY
}

// HitBox returns the collision rectangle of the body.
func (b *Body) HitBox() physics.HitBox {
	return physics.CenteredBox(b.X, b.Y, b.W, b.H)
}

// ShouldRenderBlink returns true if an entity with remaining protection frames
// should be drawn this frame. Always true when unprotected.
func ShouldRenderBlink(remainingFrames, period int) bool {
	if remainingFrames <= 0 || period <= 0 {
		return true
	}
	return (remainingFrames/period)%2 != 0
}
