package loop

import (
	"math"
	"time"

	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/object"
)

// SpawnInterval returns the time between enemy spawns during wave.
func SpawnInterval(wave int) time.Duration {
	scale := 1 + float64(max(wave-1, 0))*config.SpawnWaveAccel
	interval := time.Duration(float64(config.SpawnBaseInterval) / scale)
	return max(interval, config.SpawnMinInterval)
}

// PopulationCap returns the maximum number of enemies alive during wave.
// Pickups do not count toward it.
func PopulationCap(wave int) int {
	return config.PopulationBase + int(math.Floor(float64(wave)*config.PopulationPerWave))
}

// Director decides when and what to spawn.
type Director struct {
	lastSpawn time.Duration
	disabled  bool
}

// Due reports whether a spawn should happen at now given the live enemy count.
func (d *Director) Due(now time.Duration, wave, alive int) bool {
	if d.disabled {
		return false
	}
	return now-d.lastSpawn >= SpawnInterval(wave) && alive < PopulationCap(wave)
}

// Spawned restarts the interval from now.
func (d *Director) Spawned(now time.Duration) { d.lastSpawn = now }

// PickClass rolls the class of the next enemy.
func PickClass(wave int, rng object.Rand) object.Kind {
	if wave >= config.InterceptorMinWave && rng.Float64() < config.InterceptorChance {
		return object.KindInterceptor
	}
	return object.KindFighter
}

// RollDrop decides whether a destroyed enemy leaves a pickup, and which.
func RollDrop(rng object.Rand) (object.Kind, bool) {
	if rng.Float64() >= config.PickupDropChance {
		return 0, false
	}
	if rng.Float64() < 0.5 {
		return object.KindBonusWeapon, true
	}
	return object.KindBonusRapidFire, true
}
