package loop

import (
	"time"

	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/object"
)

// Shot is one projectile of a volley, relative to the ship's nose.
type Shot struct {
	OffsetX float64
	VX, VY  float64
}

// volleys[n] holds the shots added at weapon level n+1. Each level keeps
// every shot of the levels below it.
var volleys = [config.MaxWeaponLevel][]Shot{
	{
		{OffsetX: -8, VY: -object.PlayerShotSpeed},
		{OffsetX: 8, VY: -object.PlayerShotSpeed},
	},
	{
		{OffsetX: -20, VX: -1.5, VY: -object.PlayerShotSpeed},
		{OffsetX: 20, VX: 1.5, VY: -object.PlayerShotSpeed},
	},
	{
		{OffsetX: 0, VY: -object.PlayerShotSpeed - 2},
	},
}

// Weapon tracks the player's cannon level, fire cadence and rapid-fire buff.
// All times are on the simulation clock.
type Weapon struct {
	level      int
	lastShot   time.Duration
	fired      bool
	rapid      bool
	rapidUntil time.Duration
}

// NewWeapon returns a level 1 weapon with no buff.
func NewWeapon() Weapon {
	return Weapon{level: 1}
}

// Level returns the current cannon level in [1, MaxWeaponLevel].
func (w *Weapon) Level() int { return w.level }

// Upgrade raises the level by one, saturating at MaxWeaponLevel.
func (w *Weapon) Upgrade() {
	w.level = min(w.level+1, config.MaxWeaponLevel)
}

// GrantRapidFire starts or extends the buff to now + RapidFireDuration.
func (w *Weapon) GrantRapidFire(now time.Duration) {
	w.rapid = true
	w.rapidUntil = now + config.RapidFireDuration
}

// RapidFire reports whether the buff is active at now. The buff stays active
// up to and including its expiry instant and is cleared once now exceeds it.
func (w *Weapon) RapidFire(now time.Duration) bool {
	if w.rapid && now > w.rapidUntil {
		w.rapid = false
	}
	return w.rapid
}

// Interval returns the effective time between volleys at now.
func (w *Weapon) Interval(now time.Duration) time.Duration {
	if w.RapidFire(now) {
		return config.FireInterval / config.RapidFireDivisor
	}
	return config.FireInterval
}

// Ready reports whether a volley may be fired at now.
func (w *Weapon) Ready(now time.Duration) bool {
	return !w.fired || now-w.lastShot >= w.Interval(now)
}

// Fire records a volley at now and returns the shots to emit.
// The returned slices are shared and must not be modified.
func (w *Weapon) Fire(now time.Duration) [][]Shot {
	w.fired = true
	w.lastShot = now
	return volleys[:w.level]
}
