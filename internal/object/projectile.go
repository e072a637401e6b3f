package object

// Projectile tuning.
const (
	PlayerShotWidth  = 4.0
	PlayerShotHeight = 14.0
	PlayerShotSpeed  = 12.0
	PlayerShotDamage = 1
	EnemyShotWidth   = 6.0
	EnemyShotHeight  = 12.0
	EnemyShotSpeed   = 6.0
	EnemyShotDamage  = 20
	ProjectileMargin = 50.0 // Distance past a vertical bound before removal
)

// Projectile is a shot owned by the player or by an enemy.
type Projectile struct {
	Body
	Kind   Kind // KindPlayerShot or KindEnemyShot
	Damage int
}

// FirePlayerShot initializes p as a player shot at (x, y) moving at (vx, vy).
func (p *Projectile) FirePlayerShot(x, y, vx, vy float64) {
	*p = Projectile{
		Body:   Body{X: x, Y: y, VX: vx, VY: vy, W: PlayerShotWidth, H: PlayerShotHeight},
		Kind:   KindPlayerShot,
		Damage: PlayerShotDamage,
	}
}

// FireEnemyShot initializes p as a downward enemy shot at (x, y).
func (p *Projectile) FireEnemyShot(x, y float64) {
	*p = Projectile{
		Body:   Body{X: x, Y: y, VY: EnemyShotSpeed, W: EnemyShotWidth, H: EnemyShotHeight},
		Kind:   KindEnemyShot,
		Damage: EnemyShotDamage,
	}
}

// Hostile reports whether the projectile was fired by an enemy.
func (p *Projectile) Hostile() bool { return p.Kind == KindEnemyShot }

// Update moves the projectile and returns true once it is out of range.
func (p *Projectile) Update(s Screen) bool {
	p.Integrate()
	return p.Y < -ProjectileMargin || p.Y > s.Height+ProjectileMargin
}
