package loop

import "github.com/tomz197/starstrike/internal/loop/config"

// Mission is the briefing shown when a wave begins.
type Mission struct {
	Title string
	Text  string
}

var missions = []Mission{
	{
		Title: "First Contact",
		Text:  "Scout fighters are crossing the outer perimeter. Hold the line and thin their numbers.",
	},
	{
		Title: "Interceptor Screen",
		Text:  "Command reports fast interceptors escorting the second wing. They hit harder and turn quicker.",
	},
	{
		Title: "Supply Run",
		Text:  "Enemy carriers are dropping salvage. Recover weapon cores to upgrade your cannons.",
	},
	{
		Title: "Night Crossing",
		Text:  "Visibility is down and the swarm is thickening. Keep moving and keep firing.",
	},
	{
		Title: "Breakthrough",
		Text:  "Their front line is collapsing. Push through before reinforcements arrive.",
	},
	{
		Title: "Last Stand",
		Text:  "Everything they have left is inbound. Survive the assault.",
	},
}

// MissionFor returns the briefing for the given wave. The table repeats.
func MissionFor(wave int) Mission {
	idx := (max(wave, 1) - 1) % len(missions)
	return missions[idx]
}

// WaveComplete reports whether score is enough to leave the given wave.
func WaveComplete(score, wave int) bool {
	return score >= wave*config.ScorePerWave
}
