// Package loop runs the game: state machine, spawning, weapons, waves,
// collisions and effects, advanced one fixed frame per Tick.
//
// The engine is single-threaded. Hosts own the frame clock, feed pointer
// input through SetTarget, apply the Events returned by Tick to their own
// progression store and draw the Frame returned by Snapshot.
package loop

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/object"
	"github.com/tomz197/starstrike/internal/physics"
	"github.com/tomz197/starstrike/internal/pool"
)

// Options configures a new Engine. Zero values select defaults.
type Options struct {
	Screen object.Screen // Playfield; defaults to the configured size
	Rand   object.Rand   // Defaults to a time-seeded source
	Audio  AudioSink     // Nil plays nothing
	Logger zerolog.Logger
}

// Engine is the orchestrator for one game.
type Engine struct {
	screen  object.Screen
	rng     object.Rand
	audio   AudioSink
	log     zerolog.Logger
	metrics *metrics

	machine Machine
	clock   time.Duration // Simulation time; frozen while not simulating
	frame   uint64        // Simulated frames since reset

	player            object.Player
	invulnerableUntil uint64 // Last protected frame; 0 when never hit
	score             int
	lives             int
	wave              int
	nextLifeAt        int
	mission           Mission

	weapon   Weapon
	director Director
	shake    Shake

	playerShots *pool.Pool[object.Projectile]
	enemyShots  *pool.Pool[object.Projectile]
	enemies     *pool.Pool[object.Enemy]
	pickups     *pool.Pool[object.Pickup]
	particles   *pool.Pool[object.Particle]
	stars       []object.Star

	grid        *physics.SpatialGrid
	gridHandles []pool.Handle

	events []Event
	snap   Frame
}

// New creates an engine sitting in the menu.
func New(opts Options) (*Engine, error) {
	if opts.Screen.Width <= 0 || opts.Screen.Height <= 0 {
		opts.Screen = object.Screen{Width: config.PlayfieldWidth, Height: config.PlayfieldHeight}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m, err := newMetrics()
	if err != nil {
		return nil, fmt.Errorf("creating engine metrics: %w", err)
	}

	e := &Engine{
		screen:      opts.Screen,
		rng:         opts.Rand,
		audio:       opts.Audio,
		log:         opts.Logger.With().Str("component", "engine").Logger(),
		metrics:     m,
		playerShots: pool.New[object.Projectile](config.PlayerShotPool),
		enemyShots:  pool.New[object.Projectile](config.EnemyShotPool),
		enemies:     pool.New[object.Enemy](config.EnemyPool),
		pickups:     pool.New[object.Pickup](config.PickupPool),
		particles:   pool.New[object.Particle](config.ParticlePool),
		grid:        physics.NewSpatialGrid(opts.Screen.Width, opts.Screen.Height, config.CollisionCellSize),
		events:      make([]Event, 0, 16),
	}
	e.stars = object.NewStarfield(object.StarCount, e.screen, e.rng)
	e.reset()
	return e, nil
}

// reset restores a fresh game: empty pools, full progression, level 1 weapon.
func (e *Engine) reset() {
	e.Stop()
	e.clock = 0
	e.frame = 0
	e.invulnerableUntil = 0
	e.player = object.NewPlayer(e.screen)
	e.score = 0
	e.lives = config.InitialLives
	e.wave = config.InitialWave
	e.nextLifeAt = config.ExtraLifeScore
	e.mission = MissionFor(e.wave)
	e.weapon = NewWeapon()
	e.director = Director{disabled: e.director.disabled}
	e.shake = Shake{}
}

// Stop releases every pooled entity.
func (e *Engine) Stop() {
	e.playerShots.ResetAll()
	e.enemyShots.ResetAll()
	e.enemies.ResetAll()
	e.pickups.ResetAll()
	e.particles.ResetAll()
}

// State returns the current phase.
func (e *Engine) State() GameState { return e.machine.Current() }

// Mission returns the briefing for the current wave.
func (e *Engine) Mission() Mission { return e.mission }

// Screen returns the playfield.
func (e *Engine) Screen() object.Screen { return e.screen }

// PlayerPosition returns the player's center.
func (e *Engine) PlayerPosition() (x, y float64) { return e.player.X, e.player.Y }

// Start begins play from the menu.
func (e *Engine) Start() bool {
	return e.machine.Start()
}

// Engage resumes play after a briefing. Spawning restarts its interval.
func (e *Engine) Engage() bool {
	if !e.machine.Engage() {
		return false
	}
	e.director.Spawned(e.clock)
	return true
}

// Restart returns to the menu after a game over with everything reset.
// Returns the GameReset event, or nil if not in GameOver.
func (e *Engine) Restart() []Event {
	e.events = e.events[:0]
	if !e.machine.Restart() {
		return nil
	}
	e.reset()
	e.emit(Event{Type: EventGameReset})
	return e.events
}

// SetPaused sets the pause gate. Ignored outside of play.
func (e *Engine) SetPaused(paused bool) bool {
	return e.machine.SetPaused(paused)
}

// TogglePause flips the pause gate. Ignored outside of play.
func (e *Engine) TogglePause() bool {
	return e.machine.SetPaused(!e.machine.Paused())
}

// SetTarget steers the player toward (x, y) in playfield pixels.
func (e *Engine) SetTarget(x, y float64) {
	e.player.Aim(x, y, e.screen)
}

// InvulnerableFrames returns how many upcoming simulated frames the player is protected for.
func (e *Engine) InvulnerableFrames() int {
	if e.frame >= e.invulnerableUntil {
		return 0
	}
	return int(e.invulnerableUntil - e.frame)
}

// protected reports whether damage is ignored during the current frame.
// A hit on frame N protects frames N through N+InvulnerabilityFrames.
func (e *Engine) protected() bool {
	return e.invulnerableUntil > 0 && e.frame <= e.invulnerableUntil
}

// Tick advances the game by one frame of length dt and returns the
// progression events it produced. The slice is reused by the next call.
func (e *Engine) Tick(dt time.Duration) []Event {
	e.events = e.events[:0]

	e.shake.Update(e.rng)

	if e.machine.Simulating() {
		e.simulate(dt)
	}

	// Effects keep running in every state, paused included.
	for h, p := range e.particles.All() {
		if p.Update() {
			e.particles.Release(h)
		}
	}
	for i := range e.stars {
		e.stars[i].Update(e.screen, e.rng)
	}

	return e.events
}

func (e *Engine) simulate(dt time.Duration) {
	e.clock += dt
	e.frame++
	e.metrics.frame()

	e.player.Update(e.screen)
	e.fireWeapon()
	e.spawnEnemies()
	e.updateEnemies()
	e.updateProjectiles()
	e.updatePickups()

	e.resolveCollisions()

	if e.machine.Simulating() && WaveComplete(e.score, e.wave) {
		e.advanceWave()
	}
}

func (e *Engine) fireWeapon() {
	if !e.weapon.Ready(e.clock) {
		return
	}
	noseY := e.player.Y - e.player.H/2
	for _, level := range e.weapon.Fire(e.clock) {
		for _, s := range level {
			p, _, ok := e.playerShots.Acquire()
			if !ok {
				e.dropped("player_shots")
				continue
			}
			p.FirePlayerShot(e.player.X+s.OffsetX, noseY, s.VX, s.VY)
		}
	}
	e.play(CueShotPlayer)
}

func (e *Engine) spawnEnemies() {
	if !e.director.Due(e.clock, e.wave, e.enemies.Active()) {
		return
	}
	e.director.Spawned(e.clock)

	class := PickClass(e.wave, e.rng)
	c := object.ClassOf(class)
	lo := c.Width/2 + config.EnemySpawnEdgeInset
	hi := max(e.screen.Width-lo, lo)
	x := lo + e.rng.Float64()*(hi-lo)
	drift := e.rng.Float64()*2 - 1

	en, _, ok := e.enemies.Acquire()
	if !ok {
		e.dropped("enemies")
		return
	}
	en.Spawn(class, x, e.wave, drift, e.clock)
}

func (e *Engine) updateEnemies() {
	for h, en := range e.enemies.All() {
		if en.Update(e.screen) {
			e.enemies.Release(h)
			continue
		}
		if en.ReadyToFire(e.clock, e.screen) {
			en.LastFire = e.clock
			e.fireEnemyShot(en)
		}
	}
}

func (e *Engine) fireEnemyShot(en *object.Enemy) {
	p, _, ok := e.enemyShots.Acquire()
	if !ok {
		e.dropped("enemy_shots")
		return
	}
	p.FireEnemyShot(en.X, en.Y+en.H/2)
	e.play(CueShotEnemy)
}

func (e *Engine) updateProjectiles() {
	for h, p := range e.playerShots.All() {
		if p.Update(e.screen) {
			e.playerShots.Release(h)
		}
	}
	for h, p := range e.enemyShots.All() {
		if p.Update(e.screen) {
			e.enemyShots.Release(h)
		}
	}
}

func (e *Engine) updatePickups() {
	for h, p := range e.pickups.All() {
		if p.Update(e.screen) {
			e.pickups.Release(h)
		}
	}
}

func (e *Engine) advanceWave() {
	if !e.machine.Brief() {
		return
	}
	e.wave++
	e.mission = MissionFor(e.wave)
	e.metrics.wave()
	e.log.Debug().Int("wave", e.wave).Str("mission", e.mission.Title).Msg("wave advanced")
	e.emit(Event{Type: EventWaveAdvanced, Wave: e.wave, Mission: e.mission})
}

func (e *Engine) addScore(points int) {
	e.score += points
	e.emit(Event{Type: EventScoreDelta, Points: points})

	for e.score >= e.nextLifeAt {
		e.nextLifeAt += config.ExtraLifeScore
		if e.lives < config.MaxLives {
			e.lives++
			e.emit(Event{Type: EventLifeGained, Lives: e.lives})
		}
	}
}

// damagePlayer is the only path that costs health or lives.
// A hit that empties health costs a life and refills health.
func (e *Engine) damagePlayer(amount int) {
	if amount <= 0 || e.protected() {
		return
	}

	applied := min(amount, e.player.Health)
	e.player.Health -= applied
	e.invulnerableUntil = e.frame + config.InvulnerabilityFrames
	e.shake.Add(config.ShakePlayerHit)
	e.emit(Event{Type: EventDamageTaken, Amount: applied})

	if e.player.Health > 0 {
		object.SpawnExplosion(e.player.X, e.player.Y, config.HitSparkParticles, config.HitSparkSpeed,
			playerColor, e, e.rng)
		e.play(CueExplosion)
		return
	}

	e.lives--
	e.emit(Event{Type: EventPlayerDied, Lives: e.lives})
	object.SpawnExplosion(e.player.X, e.player.Y, config.ExplosionParticles*2, config.ExplosionSpeed*1.5,
		playerColor, e, e.rng)
	e.play(CueExplosion)

	if e.lives <= 0 {
		e.machine.End()
		e.log.Debug().Int("score", e.score).Msg("game over")
		e.emit(Event{Type: EventGameOver, Score: e.score})
		return
	}
	e.player.Health = object.PlayerMaxHealth
}

// SpawnParticle implements object.ParticleSpawner over the particle pool.
func (e *Engine) SpawnParticle() (*object.Particle, bool) {
	p, _, ok := e.particles.Acquire()
	if !ok {
		e.dropped("particles")
	}
	return p, ok
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

func (e *Engine) dropped(name string) {
	e.metrics.drop(name)
	e.log.Trace().Str("pool", name).Msg("pool exhausted, spawn dropped")
}

// play forwards a cue to the audio sink. Audio problems never reach gameplay.
func (e *Engine) play(c Cue) {
	if e.audio == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.Debug().Interface("panic", r).Str("cue", string(c)).Msg("audio sink panicked")
		}
	}()
	if err := e.audio.Play(c); err != nil {
		e.log.Debug().Err(err).Str("cue", string(c)).Msg("audio cue failed")
	}
}
