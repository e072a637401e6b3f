// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield in logical pixels. Hosts scale it to their output surface.
const (
	PlayfieldWidth  = 800
	PlayfieldHeight = 600
)

// Pool capacities
const (
	PlayerShotPool = 300
	ParticlePool   = 250
	EnemyShotPool  = 150
	EnemyPool      = 64
	PickupPool     = 16
)

// Weapon
const (
	FireInterval      = 160 * time.Millisecond
	RapidFireDuration = 5000 * time.Millisecond
	RapidFireDivisor  = 2 // Rapid fire halves the fire interval
	MaxWeaponLevel    = 3
)

// Spawning
const (
	SpawnBaseInterval   = 2000 * time.Millisecond
	SpawnMinInterval    = 250 * time.Millisecond
	SpawnWaveAccel      = 0.2
	PopulationBase      = 2
	PopulationPerWave   = 1.5
	InterceptorMinWave  = 2
	InterceptorChance   = 0.35
	PickupDropChance    = 0.15
	EnemySpawnEdgeInset = 10.0
)

// Player and progression
const (
	InitialLives          = 3
	MaxLives              = 3
	InitialWave           = 1
	InvulnerabilityFrames = 120
	PlayerBlinkPeriod     = 4 // Frames per blink phase
	ScorePerWave          = 2000
	ExtraLifeScore        = 10000
)

// Effects
const (
	ShakeDecay         = 0.9
	ShakeCutoff        = 0.5
	ShakeEnemyDeath    = 5.0
	ShakePlayerHit     = 15.0
	ExplosionParticles = 14
	ExplosionSpeed     = 3.0
	HitSparkParticles  = 4
	HitSparkSpeed      = 2.0
)

// Collision broad phase. Must be >= the largest sum of half-extents
// between a player shot and an enemy (20 + 7).
const CollisionCellSize = 64.0

// Client rendering and input
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	KeyboardAimSpeed      = 9.0 // Pixels per frame a held key moves the aim point
	MaxTermWidth          = 160 // Columns; larger terminals get a centered, bordered area
	MaxTermHeight         = 60  // Rows
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)
