package workout

import "fmt"

// Kind identifies what a segment asks of the athlete
type Kind string

const (
	KindWarmup   Kind = "warmup"
	KindHigh     Kind = "high"
	KindLow      Kind = "low"
	KindBreak    Kind = "break"
	KindCooldown Kind = "cooldown"

	// KindComplete is only ever used as a cue, it never appears in a plan
	KindComplete Kind = "complete"
)

// SegmentKinds lists every kind a plan may contain, in natural workout order
var SegmentKinds = []Kind{KindWarmup, KindHigh, KindLow, KindBreak, KindCooldown}

// Segment labels as shown in the plan list and phase display
const (
	LabelWarmup   = "Warmup"
	LabelHigh     = "High"
	LabelLow      = "Low"
	LabelBreak    = "Block Break (very low)"
	LabelCooldown = "Cooldown"
)

// Config holds everything needed to build a plan plus the cue toggles
// that travel with it. The generator ignores the toggles.
type Config struct {
	WarmupSeconds     int
	WorkMinutes       int
	HighSeconds       int
	LowSeconds        int
	IntervalsPerBlock int
	BlockBreakSeconds int
	CooldownSeconds   int

	Sound     bool
	Vibration bool
	Speech    bool
	KeepAwake bool
}

// DefaultConfig returns the classic 20 minute 30/30 session:
// 2 min warmup, a 2 min break every 5 cycles, 1 min cooldown.
func DefaultConfig() Config {
	return Config{
		WarmupSeconds:     120,
		WorkMinutes:       20,
		HighSeconds:       30,
		LowSeconds:        30,
		IntervalsPerBlock: 5,
		BlockBreakSeconds: 120,
		CooldownSeconds:   60,
		Sound:             true,
		Vibration:         true,
		Speech:            true,
		KeepAwake:         true,
	}
}

// Segment is one labelled, timed phase of a workout
type Segment struct {
	Label           string `json:"label" yaml:"label"`
	DurationSeconds int    `json:"duration_seconds" yaml:"duration_seconds"`
	Kind            Kind   `json:"kind" yaml:"kind"`
}

// Plan is the ordered list of segments for one configured session
type Plan []Segment

// TotalSeconds returns the sum of all segment durations
func (p Plan) TotalSeconds() int {
	total := 0
	for _, s := range p {
		total += s.DurationSeconds
	}
	return total
}

// HighIntervalCount returns the number of high segments in the plan
func (p Plan) HighIntervalCount() int {
	return p.CountKind(KindHigh)
}

// CountKind returns the number of segments of the given kind
func (p Plan) CountKind(kind Kind) int {
	count := 0
	for _, s := range p {
		if s.Kind == kind {
			count++
		}
	}
	return count
}

// WorkSeconds returns the time spent in high, low and break segments
func (p Plan) WorkSeconds() int {
	total := 0
	for _, s := range p {
		switch s.Kind {
		case KindHigh, KindLow, KindBreak:
			total += s.DurationSeconds
		}
	}
	return total
}

// SecondsBefore returns the summed duration of the segments preceding index
func (p Plan) SecondsBefore(index int) int {
	if index > len(p) {
		index = len(p)
	}
	total := 0
	for _, s := range p[:max(index, 0)] {
		total += s.DurationSeconds
	}
	return total
}

// FormatClock formats whole seconds as MM:SS, or H:MM:SS from an hour up
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, (seconds/60)%60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
