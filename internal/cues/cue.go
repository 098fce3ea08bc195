package cues

import (
	"time"

	"github.com/lowaak/hiit-timer/internal/workout"
)

// Tone is a short beep played on entering a segment
type Tone struct {
	Name        string
	FrequencyHz int
	Duration    time.Duration
}

var (
	ToneGo    = Tone{Name: "go", FrequencyHz: 1200, Duration: 180 * time.Millisecond}
	ToneRest  = Tone{Name: "rest", FrequencyHz: 660, Duration: 120 * time.Millisecond}
	ToneBlock = Tone{Name: "block", FrequencyHz: 420, Duration: 350 * time.Millisecond}
)

// Cue is everything played for one kind. A nil Tone, empty Phrase or empty
// Vibration means that channel stays silent for the kind.
type Cue struct {
	Tone      *Tone
	Phrase    string
	Vibration []time.Duration // alternating on / off durations, starting with on
}

var table = map[workout.Kind]Cue{
	workout.KindWarmup: {Phrase: "Warmup"},
	workout.KindHigh: {
		Tone:      &ToneGo,
		Phrase:    "High",
		Vibration: []time.Duration{200 * time.Millisecond},
	},
	workout.KindLow:      {Tone: &ToneRest, Phrase: "Low"},
	workout.KindBreak:    {Tone: &ToneBlock, Phrase: "Block break"},
	workout.KindCooldown: {Phrase: "Cooldown"},
	workout.KindComplete: {
		Tone:      &ToneBlock,
		Phrase:    "Workout complete",
		Vibration: []time.Duration{80 * time.Millisecond, 60 * time.Millisecond, 80 * time.Millisecond},
	},
}

// For returns the cue for kind
func For(kind workout.Kind) (Cue, bool) {
	cue, ok := table[kind]
	return cue, ok
}
