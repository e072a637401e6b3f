package loop

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/object"
	"github.com/tomz197/starstrike/internal/pool"
)

const frameDT = 16 * time.Millisecond

func newTestEngine(t *testing.T, rng object.Rand) *Engine {
	t.Helper()
	e, err := New(Options{Rand: rng, Logger: zerolog.Nop()})
	require.NoError(t, err)
	e.director.disabled = true
	return e
}

// placeEnemy puts a stationary enemy of kind k at (x, y) that will not fire.
func (e *Engine) placeEnemy(t *testing.T, k object.Kind, x, y float64) pool.Handle {
	t.Helper()
	en, h, ok := e.enemies.Acquire()
	require.True(t, ok)
	en.Spawn(k, x, e.wave, 0, e.clock)
	en.X, en.Y = x, y
	en.VX, en.VY = 0, 0
	en.LastFire = time.Hour
	return h
}

// placeEnemyShot puts an enemy shot where the next tick moves it onto the player.
func (e *Engine) placeEnemyShot(t *testing.T) {
	t.Helper()
	p, _, ok := e.enemyShots.Acquire()
	require.True(t, ok)
	p.FireEnemyShot(e.player.X, e.player.Y-object.EnemyShotSpeed)
}

func eventsOf(events []Event, typ EventType) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func TestNewEngineStartsInMenu(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(1)))

	assert.Equal(t, StateMenu, e.State())
	assert.Equal(t, config.InitialLives, e.lives)
	assert.Equal(t, 1, e.wave)
	assert.Equal(t, object.PlayerMaxHealth, e.player.Health)
	assert.Equal(t, MissionFor(1), e.Mission())
	assert.Len(t, e.stars, object.StarCount)
}

func TestMenuDoesNotSimulate(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(1)))
	for i := 0; i < 30; i++ {
		assert.Empty(t, e.Tick(frameDT))
	}
	assert.Zero(t, e.playerShots.Active())
	assert.Zero(t, e.clock)
}

func TestWeaponFiresOnCadence(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(1)))
	e.Start()

	e.Tick(frameDT)
	assert.Equal(t, 2, e.playerShots.Active())

	for i := 0; i < 9; i++ {
		e.Tick(frameDT)
	}
	assert.Equal(t, 2, e.playerShots.Active(), "160ms not yet elapsed")

	e.Tick(frameDT)
	assert.Equal(t, 4, e.playerShots.Active())
}

// Two shots of one volley finish a two hit point fighter.
func TestScenarioKillAwardsScore(t *testing.T) {
	e := newTestEngine(t, fixedRand{0.5})
	e.Start()
	e.placeEnemy(t, object.KindFighter, e.player.X, 200)

	var deltas []Event
	for i := 0; i < 60 && len(deltas) == 0; i++ {
		deltas = eventsOf(e.Tick(frameDT), EventScoreDelta)
	}

	require.Len(t, deltas, 1)
	assert.Equal(t, 100, deltas[0].Points)
	assert.Equal(t, 100, e.score)
	assert.Zero(t, e.enemies.Active())
	assert.Zero(t, e.pickups.Active(), "0.5 is above the drop chance")
	assert.Positive(t, e.particles.Active())
	assert.Equal(t, StatePlaying, e.State())
}

func TestScenarioKillDropsPickup(t *testing.T) {
	e := newTestEngine(t, fixedRand{0})
	e.Start()
	e.placeEnemy(t, object.KindFighter, e.player.X, 200)

	for i := 0; i < 60 && e.enemies.Active() > 0; i++ {
		e.Tick(frameDT)
	}

	require.Zero(t, e.enemies.Active())
	require.Equal(t, 1, e.pickups.Active())
	for _, p := range e.pickups.All() {
		assert.Equal(t, object.KindBonusWeapon, p.Kind)
		assert.Equal(t, object.PickupSpeed, p.VY)
	}
}

func TestHitWithoutKillKeepsEnemy(t *testing.T) {
	e := newTestEngine(t, fixedRand{0.5})
	e.Start()
	h := e.placeEnemy(t, object.KindInterceptor, e.player.X, 200)

	var hp int
	for i := 0; i < 60; i++ {
		e.Tick(frameDT)
		en, ok := e.enemies.Get(h)
		require.True(t, ok)
		if en.HP < en.Class.HP {
			hp = en.HP
			break
		}
	}
	assert.Equal(t, 1, hp, "two shots land on a three hit point interceptor")
	assert.Zero(t, e.score)
}

// Three rams, each outside the previous invulnerability window, end the game.
func TestScenarioRamsEndGame(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(5)))
	e.Start()

	for ram := 0; ram < 3; ram++ {
		e.placeEnemy(t, object.KindFighter, e.player.X, e.player.Y)
		events := e.Tick(frameDT)

		died := eventsOf(events, EventPlayerDied)
		require.Len(t, died, 1, "exactly one life per ram")
		assert.Equal(t, 2-ram, died[0].Lives)
		assert.Zero(t, e.enemies.Active(), "rammed enemy is destroyed")
		assert.Empty(t, eventsOf(events, EventScoreDelta))

		if ram < 2 {
			assert.Equal(t, StatePlaying, e.State())
			assert.Equal(t, object.PlayerMaxHealth, e.player.Health)
			for i := 0; i < config.InvulnerabilityFrames+1; i++ {
				e.Tick(frameDT)
			}
			continue
		}

		over := eventsOf(events, EventGameOver)
		require.Len(t, over, 1)
		assert.Equal(t, 0, over[0].Score)
	}

	assert.Equal(t, StateGameOver, e.State())
	assert.Zero(t, e.lives)
}

func TestInvulnerabilityWindowIsExactly120Frames(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(2)))
	e.Start()

	e.placeEnemyShot(t)
	hits := eventsOf(e.Tick(frameDT), EventDamageTaken)
	require.Len(t, hits, 1)
	assert.Equal(t, object.EnemyShotDamage, hits[0].Amount)
	assert.Equal(t, 80, e.player.Health)
	assert.Equal(t, 120, e.InvulnerableFrames())

	for i := 1; i <= config.InvulnerabilityFrames; i++ {
		e.placeEnemyShot(t)
		assert.Empty(t, eventsOf(e.Tick(frameDT), EventDamageTaken), "frame %d after hit", i)
	}
	assert.Zero(t, e.InvulnerableFrames())

	e.placeEnemyShot(t)
	hits = eventsOf(e.Tick(frameDT), EventDamageTaken)
	require.Len(t, hits, 1)
	assert.Equal(t, 60, e.player.Health)
}

func TestRamDuringInvulnerabilityStillDestroysEnemy(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(2)))
	e.Start()
	e.placeEnemyShot(t)
	e.Tick(frameDT)
	require.Positive(t, e.InvulnerableFrames())

	e.placeEnemy(t, object.KindFighter, e.player.X, e.player.Y)
	events := e.Tick(frameDT)

	assert.Zero(t, e.enemies.Active())
	assert.Empty(t, eventsOf(events, EventPlayerDied))
	assert.Equal(t, config.InitialLives, e.lives)
}

func TestHealthDepletionCostsOneLife(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(2)))
	e.Start()

	var died int
	for hit := 0; hit < 5; hit++ {
		e.placeEnemyShot(t)
		died += len(eventsOf(e.Tick(frameDT), EventPlayerDied))
		for i := 0; i < config.InvulnerabilityFrames; i++ {
			e.Tick(frameDT)
		}
	}

	assert.Equal(t, 1, died)
	assert.Equal(t, config.InitialLives-1, e.lives)
	assert.Equal(t, object.PlayerMaxHealth, e.player.Health)
}

// Pausing for 100 frames leaves gameplay untouched while effects continue.
func TestScenarioPauseFreezesGameplay(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(9)))
	e.Start()
	h := e.placeEnemy(t, object.KindFighter, 200, 150)
	en, _ := e.enemies.Get(h)
	en.VY = 1
	for i := 0; i < 5; i++ {
		e.Tick(frameDT)
	}
	object.SpawnExplosion(400, 300, 10, 2, playerColor, e, e.rng)

	clock := e.clock
	score := e.score
	shots := e.playerShots.Active()
	enemyY := en.Y
	starY := e.stars[0].Y
	particles := e.particles.Active()

	require.True(t, e.SetPaused(true))
	assert.Equal(t, StatePaused, e.State())
	for i := 0; i < 100; i++ {
		assert.Empty(t, e.Tick(frameDT))
	}

	assert.Equal(t, clock, e.clock)
	assert.Equal(t, score, e.score)
	assert.Equal(t, shots, e.playerShots.Active())
	assert.Equal(t, enemyY, en.Y)
	assert.NotEqual(t, starY, e.stars[0].Y, "stars keep scrolling")
	assert.Less(t, e.particles.Active(), particles, "particles keep fading")

	require.True(t, e.TogglePause())
	e.Tick(frameDT)
	assert.Equal(t, clock+frameDT, e.clock)
	assert.Greater(t, en.Y, enemyY)
}

func TestParticlesFadeInMenu(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(9)))
	object.SpawnExplosion(400, 300, 10, 2, playerColor, e, e.rng)
	require.Equal(t, 10, e.particles.Active())

	for i := 0; i < 51; i++ {
		e.Tick(frameDT)
	}
	assert.Zero(t, e.particles.Active())
}

func TestWaveAdvancesOnThreshold(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(3)))
	e.Start()
	e.weapon.Upgrade()

	e.addScore(1999)
	e.Tick(frameDT)
	assert.Equal(t, StatePlaying, e.State())

	e.addScore(1)
	waves := eventsOf(e.Tick(frameDT), EventWaveAdvanced)
	require.Len(t, waves, 1)
	assert.Equal(t, 2, waves[0].Wave)
	assert.Equal(t, MissionFor(2), waves[0].Mission)
	assert.Equal(t, StateBriefing, e.State())
	assert.Equal(t, MissionFor(2), e.Mission())

	assert.Empty(t, e.Tick(frameDT))
	assert.False(t, e.Start())
	assert.True(t, e.Engage())

	e.Tick(frameDT)
	assert.Equal(t, StatePlaying, e.State(), "2000 is below the wave 2 threshold")
	assert.Equal(t, 2, e.weapon.Level(), "weapon persists across waves")
	assert.Equal(t, 2000, e.score)
	assert.Equal(t, config.InitialLives, e.lives)
}

func TestExtraLifeAward(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(3)))
	e.Start()
	e.lives = 2

	e.addScore(config.ExtraLifeScore)
	gained := eventsOf(e.events, EventLifeGained)
	require.Len(t, gained, 1)
	assert.Equal(t, 3, gained[0].Lives)

	e.events = e.events[:0]
	e.addScore(config.ExtraLifeScore)
	assert.Empty(t, eventsOf(e.events, EventLifeGained), "lives are capped")
	assert.Equal(t, config.MaxLives, e.lives)
}

func TestRestartResetsEverything(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(4)))
	assert.Nil(t, e.Restart(), "restart only from game over")

	e.Start()
	e.weapon.Upgrade()
	e.weapon.GrantRapidFire(e.clock)
	e.addScore(500)
	for i := 0; i < 20; i++ {
		e.Tick(frameDT)
	}
	e.placeEnemy(t, object.KindFighter, 100, 100)
	e.lives = 1
	e.placeEnemy(t, object.KindFighter, e.player.X, e.player.Y)
	e.Tick(frameDT)
	require.Equal(t, StateGameOver, e.State())

	events := e.Restart()
	require.Len(t, events, 1)
	assert.Equal(t, EventGameReset, events[0].Type)
	assert.Equal(t, StateMenu, e.State())
	assert.Zero(t, e.score)
	assert.Equal(t, config.InitialLives, e.lives)
	assert.Equal(t, 1, e.wave)
	assert.Equal(t, 1, e.weapon.Level())
	assert.False(t, e.weapon.RapidFire(e.clock))
	assert.Zero(t, e.playerShots.Active())
	assert.Zero(t, e.enemies.Active())
	assert.Zero(t, e.particles.Active())
	assert.Zero(t, e.InvulnerableFrames())
}

func TestDirectorRespectsPopulationCap(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(11)))
	e.director.disabled = false
	e.Start()

	spawned := false
	for i := 0; i < 1500; i++ {
		e.Tick(frameDT)
		assert.LessOrEqual(t, e.enemies.Active(), PopulationCap(e.wave))
		if e.enemies.Active() > 0 {
			spawned = true
		}
	}
	assert.True(t, spawned)
}

func TestPoolExhaustionIsSilent(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(1)))
	e.Start()
	for {
		if _, _, ok := e.playerShots.Acquire(); !ok {
			break
		}
	}

	assert.NotPanics(t, func() { e.Tick(frameDT) })
	assert.Equal(t, config.PlayerShotPool, e.playerShots.Active())
}

type recordingSink struct {
	cues []Cue
	err  error
}

func (r *recordingSink) Play(c Cue) error {
	r.cues = append(r.cues, c)
	return r.err
}

type panickingSink struct{}

func (panickingSink) Play(Cue) error { panic("device gone") }

func TestAudioCues(t *testing.T) {
	sink := &recordingSink{}
	e, err := New(Options{Rand: fixedRand{0.5}, Audio: sink, Logger: zerolog.Nop()})
	require.NoError(t, err)
	e.director.disabled = true
	e.Start()
	e.placeEnemy(t, object.KindFighter, e.player.X, 200)

	for i := 0; i < 60 && e.enemies.Active() > 0; i++ {
		e.Tick(frameDT)
	}

	assert.Contains(t, sink.cues, CueShotPlayer)
	assert.Contains(t, sink.cues, CueExplosion)
}

func TestAudioFailuresDoNotAffectGameplay(t *testing.T) {
	for name, sink := range map[string]AudioSink{
		"error": &recordingSink{err: errors.New("no device")},
		"panic": panickingSink{},
	} {
		t.Run(name, func(t *testing.T) {
			e, err := New(Options{Rand: fixedRand{0.5}, Audio: sink, Logger: zerolog.Nop()})
			require.NoError(t, err)
			e.director.disabled = true
			e.Start()

			assert.NotPanics(t, func() { e.Tick(frameDT) })
			assert.Equal(t, 2, e.playerShots.Active())
		})
	}
}

func TestPickupCollection(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(1)))
	e.Start()

	p, _, _ := e.pickups.Acquire()
	p.Drop(object.KindBonusWeapon, e.player.X, e.player.Y)
	q, _, _ := e.pickups.Acquire()
	q.Drop(object.KindBonusRapidFire, e.player.X, e.player.Y)

	e.Tick(frameDT)

	assert.Zero(t, e.pickups.Active())
	assert.Equal(t, 2, e.weapon.Level())
	assert.True(t, e.weapon.RapidFire(e.clock))
	assert.True(t, e.weapon.RapidFire(e.clock+config.RapidFireDuration))
}

func TestSetTargetMovesPlayer(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(1)))
	e.Start()
	startX := e.player.X

	e.SetTarget(startX+100, e.player.Y)
	e.Tick(frameDT)

	assert.InDelta(t, startX+15, e.player.X, 1e-9)
}

func TestSnapshot(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(1)))
	e.Start()
	e.placeEnemy(t, object.KindInterceptor, 300, 100)
	e.placeEnemyShot(t)
	e.Tick(frameDT)

	f := e.Snapshot()
	assert.Equal(t, StatePlaying, f.State)
	assert.True(t, f.Blink)
	require.Len(t, f.Enemies, 1)
	assert.Equal(t, object.KindInterceptor, f.Enemies[0].Kind)
	assert.Len(t, f.Projectiles, 2)
	for _, p := range f.Projectiles {
		assert.Equal(t, object.KindPlayerShot, p.Kind)
	}
	assert.Len(t, f.Stars, object.StarCount)
	assert.Equal(t, 1, f.WeaponLevel)
	assert.Equal(t, 1, f.Wave)
	assert.NotEmpty(t, f.Particles)
}
