package trainer

import (
	"github.com/lowaak/hiit-timer/internal/workout"
)

// UIViewImpl defines the interface for framework-specific UI implementations
type UIViewImpl interface {
	// Initialize is called after construction to set up framework-specific widgets
	// controller is used to handle UI events
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// --- Mode Management ---

	SetMode(mode UIMode)
	GetCurrentMode() UIMode

	// --- Log View (shared across modes) ---

	GetLogViewHeight() int
	ClearLogView()
	WriteLogLine(line string) error

	// --- Workout Mode ---

	// UpdateWorkoutState renders the countdown, progress and counters
	UpdateWorkoutState(state WorkoutState)

	// SetPlan replaces the segment list
	SetPlan(plan workout.Plan)

	// --- Settings Mode ---

	// SetSettings fills the settings form with the applied configuration
	SetSettings(cfg workout.Config)
}
