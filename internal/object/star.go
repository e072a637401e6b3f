package object

// Starfield tuning.
const (
	StarCount    = 90
	StarMinSpeed = 0.5
	StarMaxSpeed = 3.0
)

// Star is one point of the parallax background. Faster stars are larger and brighter.
type Star struct {
	X, Y    float64
	Size    float64
	Speed   float64
	Opacity float64
}

// NewStarfield scatters n stars across the playfield.
func NewStarfield(n int, s Screen, rng Rand) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i].reset(s, rng)
		stars[i].Y = rng.Float64() * s.Height
	}
	return stars
}

// Update scrolls the star down and wraps it to the top with a new column.
func (st *Star) Update(s Screen, rng Rand) {
	st.Y += st.Speed
	if st.Y > s.Height {
		st.reset(s, rng)
	}
}

func (st *Star) reset(s Screen, rng Rand) {
	depth := rng.Float64()
	st.X = rng.Float64() * s.Width
	st.Y = 0
	st.Speed = StarMinSpeed + depth*(StarMaxSpeed-StarMinSpeed)
	st.Size = 1 + depth*2
	st.Opacity = 0.2 + depth*0.8
}
