package draw

import (
	"math"

	"github.com/tomz197/starstrike/internal/loop"
	"github.com/tomz197/starstrike/internal/object"
)

// Ship outlines in units of half-width and half-height, nose toward -Y.
var (
	arrowOutline   = []Point{{0, -1}, {1, 1}, {0, 0.45}, {-1, 1}}
	fighterOutline = []Point{{-1, -1}, {0, -0.4}, {1, -1}, {0, 1}}
	diamondOutline = []Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	squareOutline  = []Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
)

// Paint draws a frame onto the canvas. The canvas is cleared first.
func Paint(c *Canvas, f *loop.Frame) {
	c.Clear()
	dx, dy := f.ShakeX, f.ShakeY

	for _, st := range f.Stars {
		clr := Dim(ColorWhite, st.Opacity)
		if st.Opacity > 0.8 {
			clr = ColorBrightWhite
		}
		if clr != ColorNone {
			c.SetFloat(st.X+dx, st.Y+dy, clr)
		}
	}

	for i := range f.Particles {
		p := &f.Particles[i]
		if clr := Dim(Nearest(p.Color), p.Alpha); clr != ColorNone {
			c.FillRect(p.X+dx, p.Y+dy, p.Size, p.Size, clr)
		}
	}

	for i := range f.Pickups {
		paintSprite(c, &f.Pickups[i], dx, dy)
	}
	for i := range f.Enemies {
		paintSprite(c, &f.Enemies[i], dx, dy)
	}
	for i := range f.Projectiles {
		paintSprite(c, &f.Projectiles[i], dx, dy)
	}

	if f.State != loop.StateMenu && f.PlayerVisible {
		paintSprite(c, &f.Player, dx, dy)
	}
}

func paintSprite(c *Canvas, s *loop.Sprite, dx, dy float64) {
	clr := Nearest(s.Color)
	switch s.Kind {
	case object.KindPlayer:
		paintOutline(c, s, arrowOutline, dx, dy, clr, true)
	case object.KindFighter:
		paintOutline(c, s, fighterOutline, dx, dy, clr, true)
	case object.KindInterceptor:
		paintOutline(c, s, diamondOutline, dx, dy, clr, true)
	case object.KindBonusWeapon:
		paintOutline(c, s, squareOutline, dx, dy, clr, false)
	case object.KindBonusRapidFire:
		paintOutline(c, s, diamondOutline, dx, dy, clr, false)
	default:
		c.FillRect(s.X+dx, s.Y+dy, s.W, s.H, clr)
	}
}

// paintOutline scales and rotates a unit outline onto the sprite's box.
func paintOutline(c *Canvas, s *loop.Sprite, outline []Point, dx, dy float64, clr Color, filled bool) {
	pts := c.BorrowPoints(len(outline))
	sin, cos := math.Sincos(s.Rotation)
	hw, hh := s.W/2, s.H/2
	for i, p := range outline {
		x, y := p.X*hw, p.Y*hh
		pts[i] = Point{
			X: s.X + dx + x*cos - y*sin,
			Y: s.Y + dy + x*sin + y*cos,
		}
	}
	c.DrawPolygon(pts, clr, filled)
}
