package playback

import (
	"time"

	"github.com/lowaak/hiit-timer/internal/workout"
)

// Snapshot is a read-only view of the engine for display
type Snapshot struct {
	Status       Status
	Index        int // index of the current segment
	SegmentCount int

	CurrentLabel string
	CurrentKind  workout.Kind // empty while idle, KindComplete once completed
	NextLabel    string
	HasNext      bool // false at the last segment and once completed

	RemainingSeconds int // seconds left in the current segment, rounded up
	ElapsedSeconds   int
	TotalSeconds     int
	Progress         float64 // ElapsedSeconds / TotalSeconds within [0, 1]

	HighCompleted int
	HighTotal     int
}

// Snapshot returns a consistent view of the engine at now
func (e *Engine) Snapshot(now time.Time) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Status:        e.status,
		Index:         e.index,
		SegmentCount:  len(e.plan),
		TotalSeconds:  e.plan.TotalSeconds(),
		HighCompleted: e.highCompleted,
		HighTotal:     e.highTotal,
	}

	switch e.status {
	case StatusIdle:
		snap.CurrentLabel = LabelReady
		if len(e.plan) > 0 {
			snap.NextLabel = e.plan[0].Label
			snap.HasNext = true
			snap.RemainingSeconds = e.plan[0].DurationSeconds
		}
	case StatusCompleted:
		snap.CurrentLabel = LabelDone
		snap.CurrentKind = workout.KindComplete
		snap.ElapsedSeconds = snap.TotalSeconds
	default:
		current := e.plan[e.index]
		snap.CurrentLabel = current.Label
		snap.CurrentKind = current.Kind
		if e.index+1 < len(e.plan) {
			snap.NextLabel = e.plan[e.index+1].Label
			snap.HasNext = true
		}
		if e.status == StatusRunning {
			snap.RemainingSeconds = ceilSeconds(e.segmentEnd.Sub(now))
			snap.ElapsedSeconds = max(int((now.Sub(e.sessionStart)-e.pausedTotal)/time.Second), 0)
		} else {
			snap.RemainingSeconds = ceilSeconds(e.frozenRemaining)
			snap.ElapsedSeconds = e.plan.SecondsBefore(e.index)
		}
	}

	switch {
	case snap.TotalSeconds <= 0:
		snap.Progress = 0
	case e.status == StatusCompleted:
		snap.Progress = 1
	default:
		snap.Progress = clamp01(float64(snap.ElapsedSeconds) / float64(snap.TotalSeconds))
	}
	return snap
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
