package object

// Pickup drift and size.
const (
	PickupSize  = 24.0
	PickupSpeed = 1.5
)

// Pickup is a collectible bonus drifting slowly downward.
type Pickup struct {
	Body
	Kind Kind // KindBonusWeapon or KindBonusRapidFire
}

// Drop initializes p as a bonus of kind k at (x, y).
func (p *Pickup) Drop(k Kind, x, y float64) {
	*p = Pickup{
		Body: Body{X: x, Y: y, VY: PickupSpeed, W: PickupSize, H: PickupSize},
		Kind: k,
	}
}

// Update moves the pickup and returns true once it has fallen off the bottom.
func (p *Pickup) Update(s Screen) bool {
	p.Integrate()
	p.Rotation += 0.05
	return p.Y-p.H/2 > s.Height
}
