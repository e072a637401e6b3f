package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/starstrike/internal/object"
)

// fixedRand returns the same value for every draw.
type fixedRand struct{ v float64 }

func (r fixedRand) Float64() float64 { return r.v }
func (r fixedRand) Intn(int) int     { return 0 }

func TestSpawnInterval(t *testing.T) {
	assert.Equal(t, 2000*time.Millisecond, SpawnInterval(1))
	assert.InDelta(t, float64(2000*time.Millisecond)/1.2, float64(SpawnInterval(2)), float64(time.Microsecond))
	assert.InDelta(t, float64(1000*time.Millisecond), float64(SpawnInterval(6)), float64(time.Microsecond))
	assert.Equal(t, 250*time.Millisecond, SpawnInterval(50))
}

func TestPopulationCap(t *testing.T) {
	assert.Equal(t, 3, PopulationCap(1))
	assert.Equal(t, 5, PopulationCap(2))
	assert.Equal(t, 6, PopulationCap(3))
	assert.Equal(t, 17, PopulationCap(10))
}

func TestDirectorDue(t *testing.T) {
	var d Director
	assert.False(t, d.Due(1999*time.Millisecond, 1, 0))
	assert.True(t, d.Due(2000*time.Millisecond, 1, 0))
	assert.False(t, d.Due(2000*time.Millisecond, 1, 3), "population cap reached")

	d.Spawned(2000 * time.Millisecond)
	assert.False(t, d.Due(3000*time.Millisecond, 1, 0))
}

func TestPickClass(t *testing.T) {
	assert.Equal(t, object.KindFighter, PickClass(1, fixedRand{0}))
	assert.Equal(t, object.KindInterceptor, PickClass(2, fixedRand{0.34}))
	assert.Equal(t, object.KindFighter, PickClass(2, fixedRand{0.35}))
}

func TestRollDrop(t *testing.T) {
	_, ok := RollDrop(fixedRand{0.15})
	assert.False(t, ok)

	kind, ok := RollDrop(fixedRand{0.1})
	assert.True(t, ok)
	assert.Equal(t, object.KindBonusWeapon, kind)
}

func TestShakeDecays(t *testing.T) {
	var s Shake
	s.Add(15)
	s.Add(5)
	assert.Equal(t, 15.0, s.Magnitude)

	frames := 0
	for s.Magnitude > 0 {
		m := s.Magnitude
		s.Update(fixedRand{1})
		assert.LessOrEqual(t, s.OffsetX, m)
		assert.GreaterOrEqual(t, s.OffsetX, -m)
		frames++
	}
	assert.Equal(t, 33, frames)

	s.Update(fixedRand{1})
	assert.Zero(t, s.OffsetX)
	assert.Zero(t, s.OffsetY)
}

func TestMissionTableCycles(t *testing.T) {
	assert.Equal(t, missions[0], MissionFor(1))
	assert.Equal(t, missions[1], MissionFor(2))
	assert.Equal(t, missions[0], MissionFor(len(missions)+1))
	assert.NotEmpty(t, MissionFor(4).Title)
}

func TestWaveComplete(t *testing.T) {
	assert.False(t, WaveComplete(1999, 1))
	assert.True(t, WaveComplete(2000, 1))
	assert.False(t, WaveComplete(3999, 2))
	assert.True(t, WaveComplete(4000, 2))
}
