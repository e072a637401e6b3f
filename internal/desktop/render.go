package desktop

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/tomz197/starstrike/internal/loop"
	"github.com/tomz197/starstrike/internal/object"
	"github.com/tomz197/starstrike/internal/progress"
)

// Debug font cell size.
const (
	glyphW = 6
	glyphH = 16
)

var background = color.RGBA{R: 0x08, G: 0x08, B: 0x18, A: 0xff}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.target = screen
	if err := g.Render(g.session.View().Frame); err != nil {
		g.log.Error().Err(err).Msg("render failed")
	}
}

var _ loop.Renderer = (*Game)(nil)

// Render draws f onto the image passed to the last Draw.
func (g *Game) Render(f *loop.Frame) error {
	dst := g.target
	if dst == nil {
		return errors.New("no draw target")
	}
	dst.Fill(background)
	dx, dy := float32(f.ShakeX), float32(f.ShakeY)

	for _, st := range f.Stars {
		c := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: unit(st.Opacity)}
		vector.DrawFilledRect(dst, float32(st.X)+dx, float32(st.Y)+dy, float32(st.Size), float32(st.Size), c, false)
	}
	for _, p := range f.Particles {
		c := color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: unit(p.Alpha)}
		vector.DrawFilledCircle(dst, float32(p.X)+dx, float32(p.Y)+dy, float32(p.Size/2), c, true)
	}
	for i := range f.Pickups {
		drawSprite(dst, &f.Pickups[i], dx, dy)
	}
	for i := range f.Enemies {
		drawSprite(dst, &f.Enemies[i], dx, dy)
	}
	for i := range f.Projectiles {
		drawSprite(dst, &f.Projectiles[i], dx, dy)
	}
	if f.State != loop.StateMenu && f.PlayerVisible {
		drawSprite(dst, &f.Player, dx, dy)
	}

	g.drawOverlay(dst, f, g.session.Progress())
	return nil
}

// unit maps [0,1] to an alpha byte.
func unit(v float64) uint8 {
	return uint8(math.Max(0, math.Min(1, v)) * 255)
}

// Outlines in half-extent units, nose toward -Y.
var (
	arrow   = [][2]float64{{0, -1}, {1, 1}, {0, 0.45}, {-1, 1}}
	fighter = [][2]float64{{-1, -1}, {0, -0.4}, {1, -1}, {0, 1}}
	diamond = [][2]float64{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	square  = [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
)

func drawSprite(dst *ebiten.Image, s *loop.Sprite, dx, dy float32) {
	switch s.Kind {
	case object.KindPlayer:
		strokeOutline(dst, s, arrow, dx, dy)
		vector.DrawFilledCircle(dst, float32(s.X)+dx, float32(s.Y)+dy, float32(s.W/6), colornames.White, true)
	case object.KindFighter:
		strokeOutline(dst, s, fighter, dx, dy)
	case object.KindInterceptor:
		strokeOutline(dst, s, diamond, dx, dy)
		vector.DrawFilledCircle(dst, float32(s.X)+dx, float32(s.Y)+dy, float32(s.W/8), s.Color, true)
	case object.KindBonusWeapon:
		strokeOutline(dst, s, square, dx, dy)
	case object.KindBonusRapidFire:
		strokeOutline(dst, s, diamond, dx, dy)
	default:
		vector.DrawFilledRect(dst, float32(s.X-s.W/2)+dx, float32(s.Y-s.H/2)+dy, float32(s.W), float32(s.H), s.Color, true)
	}
}

func strokeOutline(dst *ebiten.Image, s *loop.Sprite, outline [][2]float64, dx, dy float32) {
	sin, cos := math.Sincos(s.Rotation)
	hw, hh := s.W/2, s.H/2
	at := func(p [2]float64) (float32, float32) {
		x, y := p[0]*hw, p[1]*hh
		return float32(s.X+x*cos-y*sin) + dx, float32(s.Y+x*sin+y*cos) + dy
	}
	for i := range outline {
		x1, y1 := at(outline[i])
		x2, y2 := at(outline[(i+1)%len(outline)])
		vector.StrokeLine(dst, x1, y1, x2, y2, 2, s.Color, true)
	}
}

func centered(dst *ebiten.Image, y int, s string) {
	x := (dst.Bounds().Dx() - len(s)*glyphW) / 2
	ebitenutil.DebugPrintAt(dst, s, x, y)
}

func (g *Game) drawOverlay(dst *ebiten.Image, f *loop.Frame, p progress.State) {
	mid := dst.Bounds().Dy() / 2
	switch f.State {
	case loop.StateMenu:
		centered(dst, mid-60, "S T A R S T R I K E")
		centered(dst, mid-20, "Move the mouse or use the arrow keys to steer")
		centered(dst, mid, "P pause  -  Q quit  -  cannons fire automatically")
		if p.HighScore > 0 {
			centered(dst, mid+30, fmt.Sprintf("High score: %d", p.HighScore))
		}
		centered(dst, mid+60, "Click or press SPACE to start")
		return
	case loop.StateGameOver:
		centered(dst, mid-40, "G A M E   O V E R")
		centered(dst, mid-10, fmt.Sprintf("Score: %d   Wave: %d", p.Score, p.Wave))
		if p.NewHighScore {
			centered(dst, mid+10, "NEW HIGH SCORE!")
		} else {
			centered(dst, mid+10, fmt.Sprintf("High score: %d", p.HighScore))
		}
		centered(dst, mid+40, "Press SPACE for the menu")
		return
	}

	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Score %d   Hi %d", p.Score, p.HighScore), 8, 4)
	status := fmt.Sprintf("Wave %d   Lives %d", p.Wave, p.Lives)
	ebitenutil.DebugPrintAt(dst, status, dst.Bounds().Dx()-len(status)*glyphW-8, 4)

	bar := float32(p.Health) / float32(object.PlayerMaxHealth) * 120
	vector.DrawFilledRect(dst, 8, float32(dst.Bounds().Dy()-18), 120, 10, colornames.Darkred, false)
	vector.DrawFilledRect(dst, 8, float32(dst.Bounds().Dy()-18), bar, 10, colornames.Limegreen, false)
	gun := fmt.Sprintf("GUN %d", f.WeaponLevel)
	if f.RapidFire {
		gun += "  RAPID"
	}
	ebitenutil.DebugPrintAt(dst, gun, 136, dst.Bounds().Dy()-glyphH-6)

	switch f.State {
	case loop.StateBriefing:
		centered(dst, mid-50, fmt.Sprintf("WAVE %d", f.Wave))
		centered(dst, mid-30, strings.ToUpper(f.Mission.Title))
		centered(dst, mid, f.Mission.Text)
		centered(dst, mid+40, "Click or press SPACE to engage")
	case loop.StatePaused:
		centered(dst, mid-10, "PAUSED")
		centered(dst, mid+10, "Press P to resume")
	}
}
