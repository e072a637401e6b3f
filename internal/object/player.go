package object

import "github.com/tomz197/starstrike/internal/physics"

// Player ship geometry and steering.
const (
	PlayerWidth     = 40.0
	PlayerHeight    = 40.0
	PlayerEase      = 0.15 // Fraction of the gap to the target closed each frame
	PlayerMarginX   = 25.0
	PlayerMarginY   = 50.0
	PlayerMaxHealth = 100
	playerStartLift = 80.0
)

// Player is the pointer-steered ship.
type Player struct {
	Body
	TargetX, TargetY float64
	Health           int
}

// NewPlayer places a full-health player at the bottom center of the playfield.
func NewPlayer(s Screen) Player {
	x, y := s.CenterX(), s.Height-playerStartLift
	p := Player{
		Body:   Body{X: x, Y: y, W: PlayerWidth, H: PlayerHeight},
		Health: PlayerMaxHealth,
	}
	p.Aim(x, y, s)
	p.X, p.Y = p.TargetX, p.TargetY
	return p
}

// Aim sets the steering target, clamped to the allowed band.
// Non-finite coordinates leave that axis of the target unchanged.
func (p *Player) Aim(x, y float64, s Screen) {
	if physics.Finite(x) {
		p.TargetX = clampX(x, s)
	}
	if physics.Finite(y) {
		p.TargetY = clampY(y, s)
	}
}

// Update eases the ship toward its target and keeps it inside the margins.
func (p *Player) Update(s Screen) {
	p.X = clampX(physics.Approach(p.X, p.TargetX, PlayerEase), s)
	p.Y = clampY(physics.Approach(p.Y, p.TargetY, PlayerEase), s)
	// Bank toward the direction of travel.
	p.Rotation = (p.TargetX - p.X) * 0.002
}

func clampX(x float64, s Screen) float64 {
	return physics.Clamp(x, PlayerMarginX, max(s.Width-PlayerMarginX, PlayerMarginX))
}

func clampY(y float64, s Screen) float64 {
	return physics.Clamp(y, PlayerMarginY, max(s.Height-PlayerMarginY, PlayerMarginY))
}
