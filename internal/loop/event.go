package loop

// Event is a progression message produced by a tick. Hosts apply events to
// their own progression store instead of the engine calling into it.
type Event struct {
	Type    EventType
	Points  int     // EventScoreDelta
	Amount  int     // EventDamageTaken
	Lives   int     // EventPlayerDied, EventLifeGained: lives after the change
	Wave    int     // EventWaveAdvanced: the new wave
	Mission Mission // EventWaveAdvanced
	Score   int     // EventGameOver: final score
}

// EventType identifies the kind of progression event.
type EventType int

const (
	EventScoreDelta EventType = iota
	EventDamageTaken
	EventPlayerDied
	EventLifeGained
	EventWaveAdvanced
	EventGameOver
	EventGameReset
)

func (t EventType) String() string {
	switch t {
	case EventScoreDelta:
		return "score_delta"
	case EventDamageTaken:
		return "damage_taken"
	case EventPlayerDied:
		return "player_died"
	case EventLifeGained:
		return "life_gained"
	case EventWaveAdvanced:
		return "wave_advanced"
	case EventGameOver:
		return "game_over"
	case EventGameReset:
		return "game_reset"
	default:
		return "unknown"
	}
}

// Cue names a sound effect.
type Cue string

const (
	CueShotPlayer Cue = "shot_player"
	CueShotEnemy  Cue = "shot_enemy"
	CueExplosion  Cue = "explosion"
	CuePickup     Cue = "pickup"
)

// AudioSink plays cues. Playback is fire-and-forget: the engine ignores any
// error it returns.
type AudioSink interface {
	Play(cue Cue) error
}
