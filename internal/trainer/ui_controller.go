package trainer

import (
	"log"

	"github.com/lowaak/hiit-timer/internal/workout"
)

// UIController handles UI events and coordinates with the UIModel
type UIController struct {
	model          *UIModel
	workoutManager *WorkoutManager
	logger         *log.Logger
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(model *UIModel, workoutManager *WorkoutManager, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if workoutManager == nil {
		panic("UIController: workoutManager cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}

	return &UIController{
		model:          model,
		workoutManager: workoutManager,
		logger:         logger,
	}
}

// ApplySettings generates a plan from cfg and loads it, resetting any
// running or paused workout. A rejected configuration is logged and
// returned; the current plan and settings stay in place.
func (c *UIController) ApplySettings(cfg workout.Config) error {
	plan, err := workout.Generate(cfg)
	if err != nil {
		c.logger.Printf("Settings rejected: %v", err)
		return err
	}
	c.workoutManager.Apply(cfg, plan)
	return nil
}

// ReloadSettings is ApplySettings for changes that arrive on their own,
// like an edited config file. It leaves a running or paused workout alone.
func (c *UIController) ReloadSettings(cfg workout.Config) error {
	plan, err := workout.Generate(cfg)
	if err != nil {
		c.logger.Printf("Settings rejected: %v", err)
		return err
	}
	c.workoutManager.Load(cfg, plan)
	return nil
}

// OnEscapeKey handles when the Escape key is pressed
func (c *UIController) OnEscapeKey() {
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s mode", info.DisplayName)
	}
	c.model.SetMode(mode)
}

// ToggleWorkout starts, pauses, or resumes the workout based on current state
func (c *UIController) ToggleWorkout() {
	if len(c.model.GetPlan()) == 0 {
		c.logger.Printf("No plan loaded - configure one in Settings mode (press 2)")
		return
	}
	c.workoutManager.Toggle()
}

// SkipSegment jumps to the next segment without counting the current one
func (c *UIController) SkipSegment() {
	c.workoutManager.Skip()
}

// ResetWorkout abandons the session and returns the plan to Ready
func (c *UIController) ResetWorkout() {
	c.workoutManager.Reset()
}

// Shutdown stops the workout manager
func (c *UIController) Shutdown() {
	c.workoutManager.Shutdown()
}
