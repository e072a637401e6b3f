// Package physics provides collision detection and kinematic helpers.
package physics

import "math"

// HitBox is an axis-aligned rectangle anchored at its top-left corner.
type HitBox struct {
	X, Y float64
	W, H float64
}

// CenteredBox builds a HitBox of size w x h around the point (cx, cy).
func CenteredBox(cx, cy, w, h float64) HitBox {
	return HitBox{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Intersects reports whether two boxes overlap with positive area.
// Boxes that only share an edge or a corner do not intersect.
func Intersects(a, b HitBox) bool {
	return a.X < b.X+b.W &&
		b.X < a.X+a.W &&
		a.Y < b.Y+b.H &&
		b.Y < a.Y+a.H
}

// Clamp limits v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves current toward target by the given fraction of the gap.
func Approach(current, target, fraction float64) float64 {
	return current + (target-current)*fraction
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
