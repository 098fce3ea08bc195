package trainer

import (
	"fmt"
	"strings"

	"github.com/lowaak/hiit-timer/internal/playback"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// progressBar draws a fixed width bar for a fraction in [0, 1]
func progressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(fraction*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// kindColor is the tview color tag for a segment kind
func kindColor(kind workout.Kind) string {
	switch kind {
	case workout.KindHigh:
		return "red"
	case workout.KindLow:
		return "green"
	case workout.KindBreak:
		return "blue"
	case workout.KindWarmup, workout.KindCooldown:
		return "yellow"
	case workout.KindComplete:
		return "aqua"
	default:
		return "white"
	}
}

func statusHint(status playback.Status) string {
	switch status {
	case playback.StatusIdle:
		return "[yellow]Space[white] Start"
	case playback.StatusRunning:
		return "[yellow]Space[white] Pause  |  [yellow]N[white] Skip  |  [yellow]R[white] Reset"
	case playback.StatusPaused:
		return "[yellow]Space[white] Resume  |  [yellow]N[white] Skip  |  [yellow]R[white] Reset"
	default:
		return "[yellow]R[white] Reset"
	}
}

func formatPlanItem(index int, seg workout.Segment) string {
	return fmt.Sprintf("%2d. [%s]%-24s[white] %s", index+1, kindColor(seg.Kind), seg.Label, workout.FormatClock(seg.DurationSeconds))
}

// formatWorkoutPanel renders the workout screen for one snapshot
func formatWorkoutPanel(state WorkoutState, barWidth int) string {
	snap := state.Snapshot
	var b strings.Builder

	phase := snap.CurrentLabel
	if snap.Status == playback.StatusPaused {
		phase += " [gray](PAUSED)"
	}
	fmt.Fprintf(&b, "\n  [%s::b]%s[-:-:-]\n\n", kindColor(snap.CurrentKind), phase)
	fmt.Fprintf(&b, "  [::b]%s[::-]\n\n", workout.FormatClock(snap.RemainingSeconds))

	if snap.HasNext {
		fmt.Fprintf(&b, "  [gray]Next:[white] %s\n", snap.NextLabel)
	} else {
		b.WriteString("  [gray]Next:[white] -\n")
	}
	fmt.Fprintf(&b, "  [gray]Elapsed:[white] %s / %s\n", workout.FormatClock(snap.ElapsedSeconds), workout.FormatClock(snap.TotalSeconds))
	fmt.Fprintf(&b, "  [gray]High intervals:[white] %d / %d\n\n", snap.HighCompleted, snap.HighTotal)
	fmt.Fprintf(&b, "  %s %3.0f%%\n\n", progressBar(snap.Progress, barWidth), snap.Progress*100)
	b.WriteString("  " + statusHint(snap.Status) + "\n")
	return b.String()
}
