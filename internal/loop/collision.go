package loop

import (
	"image/color"

	"github.com/tomz197/starstrike/internal/loop/config"
	"github.com/tomz197/starstrike/internal/object"
	"github.com/tomz197/starstrike/internal/physics"
	"github.com/tomz197/starstrike/internal/pool"
)

var (
	playerColor = color.RGBA{R: 0x44, G: 0xcc, B: 0xff, A: 0xff}
	sparkColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xaa, A: 0xff}
)

// resolveCollisions runs the four collision passes in order. Passes stop
// early once the game is over.
func (e *Engine) resolveCollisions() {
	passes := [...]func(){
		e.collidePlayerEnemies,
		e.collideShotsEnemies,
		e.collideEnemyShotsPlayer,
		e.collidePlayerPickups,
	}
	for _, pass := range passes {
		if e.machine.Current() == StateGameOver {
			return
		}
		pass()
	}
}

// collidePlayerEnemies destroys every enemy touching the player. The ram
// costs the player a life unless invulnerable; the enemy is lost either way.
func (e *Engine) collidePlayerEnemies() {
	box := e.player.HitBox()
	for h, en := range e.enemies.All() {
		if !physics.Intersects(box, en.HitBox()) {
			continue
		}
		e.destroyEnemy(h, en, false)
		e.damagePlayer(e.player.Health)
	}
}

// collideShotsEnemies resolves player shots against enemies through the
// spatial grid. A shot is consumed by the first enemy it touches.
func (e *Engine) collideShotsEnemies() {
	if e.enemies.Active() == 0 || e.playerShots.Active() == 0 {
		return
	}

	e.grid.Clear()
	e.gridHandles = e.gridHandles[:0]
	for h, en := range e.enemies.All() {
		e.grid.Insert(en.X, en.Y, len(e.gridHandles))
		e.gridHandles = append(e.gridHandles, h)
	}

	for sh, shot := range e.playerShots.All() {
		box := shot.HitBox()
		e.grid.QueryAround(shot.X, shot.Y, func(i int) bool {
			h := e.gridHandles[i]
			en, ok := e.enemies.Get(h)
			if !ok || !physics.Intersects(box, en.HitBox()) {
				return false
			}

			e.playerShots.Release(sh)
			if en.Hit(shot.Damage) {
				e.destroyEnemy(h, en, true)
			} else {
				object.SpawnExplosion(shot.X, shot.Y, config.HitSparkParticles, config.HitSparkSpeed,
					sparkColor, e, e.rng)
			}
			return true
		})
	}
}

// collideEnemyShotsPlayer applies enemy fire. Shots pass through an
// invulnerable player.
func (e *Engine) collideEnemyShotsPlayer() {
	if e.protected() {
		return
	}
	box := e.player.HitBox()
	for h, shot := range e.enemyShots.All() {
		if !physics.Intersects(box, shot.HitBox()) {
			continue
		}
		e.enemyShots.Release(h)
		e.damagePlayer(shot.Damage)
		if e.protected() {
			return
		}
	}
}

func (e *Engine) collidePlayerPickups() {
	box := e.player.HitBox()
	for h, p := range e.pickups.All() {
		if !physics.Intersects(box, p.HitBox()) {
			continue
		}
		switch p.Kind {
		case object.KindBonusWeapon:
			e.weapon.Upgrade()
		case object.KindBonusRapidFire:
			e.weapon.GrantRapidFire(e.clock)
		}
		e.pickups.Release(h)
		e.play(CuePickup)
	}
}

// destroyEnemy removes an enemy with an explosion. Kills by the player's
// guns award score and roll for a pickup; rams do neither.
func (e *Engine) destroyEnemy(h pool.Handle, en *object.Enemy, killed bool) {
	x, y := en.X, en.Y
	class := en.Class
	e.enemies.Release(h)

	object.SpawnExplosion(x, y, config.ExplosionParticles, config.ExplosionSpeed, class.Color, e, e.rng)
	e.shake.Add(config.ShakeEnemyDeath)
	e.play(CueExplosion)

	if !killed {
		return
	}
	e.metrics.destroy(class.Kind.String())
	e.addScore(class.Score)

	if kind, ok := RollDrop(e.rng); ok {
		p, _, ok := e.pickups.Acquire()
		if !ok {
			e.dropped("pickups")
			return
		}
		p.Drop(kind, x, y)
	}
}
