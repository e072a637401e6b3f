package loop

// GameState represents the current phase of a game.
type GameState int

const (
	StateMenu GameState = iota
	StateBriefing
	StatePlaying
	StatePaused
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateBriefing:
		return "briefing"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Machine tracks the game phase. Only the transitions below are possible;
// any other request is ignored and reported as not taken.
//
//	Menu     --Start-->   Playing
//	Playing  --Brief-->   Briefing
//	Briefing --Engage-->  Playing
//	Playing  --End-->     GameOver
//	GameOver --Restart--> Menu
//
// Pause is a flag that exists only while Playing.
type Machine struct {
	state  GameState
	paused bool
}

// Current returns the phase, reporting StatePaused while paused inside Playing.
func (m *Machine) Current() GameState {
	if m.state == StatePlaying && m.paused {
		return StatePaused
	}
	return m.state
}

// Simulating reports whether gameplay should advance this frame.
func (m *Machine) Simulating() bool {
	return m.state == StatePlaying && !m.paused
}

// Start leaves the menu.
func (m *Machine) Start() bool { return m.move(StateMenu, StatePlaying) }

// Brief interrupts play with a mission briefing.
func (m *Machine) Brief() bool {
	if !m.move(StatePlaying, StateBriefing) {
		return false
	}
	m.paused = false
	return true
}

// Engage resumes play after a briefing.
func (m *Machine) Engage() bool { return m.move(StateBriefing, StatePlaying) }

// End finishes the game.
func (m *Machine) End() bool {
	if !m.move(StatePlaying, StateGameOver) {
		return false
	}
	m.paused = false
	return true
}

// Restart returns to the menu after a game over.
func (m *Machine) Restart() bool { return m.move(StateGameOver, StateMenu) }

// SetPaused toggles the pause gate. Only honored while Playing.
func (m *Machine) SetPaused(paused bool) bool {
	if m.state != StatePlaying || m.paused == paused {
		return false
	}
	m.paused = paused
	return true
}

// Paused reports whether play is currently paused.
func (m *Machine) Paused() bool { return m.paused }

func (m *Machine) move(from, to GameState) bool {
	if m.state != from {
		return false
	}
	m.state = to
	return true
}
