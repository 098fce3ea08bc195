package trainer

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/hiit-timer/internal/playback"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// Page names for tview.Pages
const (
	pageWorkout  = "workout"
	pageSettings = "settings"
)

const progressBarWidth = 30

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	model       *UIModel
	currentMode UIMode

	pages    *tview.Pages
	logView  *tview.TextView
	mainFlex *tview.Flex

	// Workout mode components
	workoutFlex       *tview.Flex
	workoutTabWidgets []tview.Primitive
	workoutPanel      *tview.TextView
	planList          *tview.List
	plan              workout.Plan
	lastIndex         int

	// Settings mode components
	settingsFlex       *tview.Flex
	settingsTabWidgets []tview.Primitive
	settingsForm       *tview.Form
}

func NewCursesUIView(logger *log.Logger, app *tview.Application, model *UIModel) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:      logger,
		app:         app,
		model:       model,
		currentMode: UIModeWorkout,
		lastIndex:   -1,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// No SetChangedFunc redraw here: BaseUIView draws after each update.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.pages = tview.NewPages()

	ui.initWorkoutMode()
	ui.initSettingsMode(controller)

	ui.pages.AddPage(pageWorkout, ui.workoutFlex, true, true)
	ui.pages.AddPage(pageSettings, ui.settingsFlex, true, false)

	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 3, true).
		AddItem(ui.logView, 0, 2, false)

	ui.setFocusForCurrentMode()
}

func modeHelpText() string {
	return "[yellow]Space[white] Start/Pause  |  [yellow]N[white] Skip  |  [yellow]R[white] Reset  |  [yellow]Tab[white] Focus  |  [yellow]Esc[white] Quit\n" +
		"[yellow]1[white] Workout  |  [yellow]2[white] Settings"
}

func (ui *CursesUIViewImpl) initWorkoutMode() {
	instructions := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructions.SetText(modeHelpText())

	ui.workoutPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.workoutPanel.SetBorder(true).SetTitle(" Workout ")
	ui.workoutPanel.SetText(formatWorkoutPanel(ui.model.GetWorkoutState(), progressBarWidth))

	ui.planList = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	ui.planList.SetBorder(true).SetTitle(" Plan ")

	body := tview.NewFlex().
		AddItem(ui.workoutPanel, 0, 3, false).
		AddItem(ui.planList, 0, 2, true)

	ui.workoutFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(instructions, 3, 0, false).
		AddItem(body, 0, 1, true)

	ui.workoutTabWidgets = []tview.Primitive{ui.planList, ui.logView}
}

// settingsField ties a form input to a workout.Config field
type settingsField struct {
	label string
	get   func(workout.Config) int
	set   func(*workout.Config, int)
}

var settingsFields = []settingsField{
	{"Warmup (s)", func(c workout.Config) int { return c.WarmupSeconds }, func(c *workout.Config, v int) { c.WarmupSeconds = v }},
	{"Work (min)", func(c workout.Config) int { return c.WorkMinutes }, func(c *workout.Config, v int) { c.WorkMinutes = v }},
	{"High (s)", func(c workout.Config) int { return c.HighSeconds }, func(c *workout.Config, v int) { c.HighSeconds = v }},
	{"Low (s)", func(c workout.Config) int { return c.LowSeconds }, func(c *workout.Config, v int) { c.LowSeconds = v }},
	{"Intervals per block", func(c workout.Config) int { return c.IntervalsPerBlock }, func(c *workout.Config, v int) { c.IntervalsPerBlock = v }},
	{"Block break (s)", func(c workout.Config) int { return c.BlockBreakSeconds }, func(c *workout.Config, v int) { c.BlockBreakSeconds = v }},
	{"Cooldown (s)", func(c workout.Config) int { return c.CooldownSeconds }, func(c *workout.Config, v int) { c.CooldownSeconds = v }},
}

type settingsToggle struct {
	label string
	get   func(workout.Config) bool
	set   func(*workout.Config, bool)
}

var settingsToggles = []settingsToggle{
	{"Sound", func(c workout.Config) bool { return c.Sound }, func(c *workout.Config, v bool) { c.Sound = v }},
	{"Vibration", func(c workout.Config) bool { return c.Vibration }, func(c *workout.Config, v bool) { c.Vibration = v }},
	{"Speech", func(c workout.Config) bool { return c.Speech }, func(c *workout.Config, v bool) { c.Speech = v }},
	{"Keep awake", func(c workout.Config) bool { return c.KeepAwake }, func(c *workout.Config, v bool) { c.KeepAwake = v }},
}

func (ui *CursesUIViewImpl) initSettingsMode(controller *UIController) {
	instructions := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructions.SetText("[yellow]Tab[white] Next field  |  [yellow]Enter[white] on Apply to load the plan  |  [yellow]Esc[white] Quit\n" +
		"Digits go to the focused field; use [yellow]1[white]/[yellow]2[white] from a button to switch mode")

	ui.settingsForm = tview.NewForm()
	ui.settingsForm.SetBorder(true).SetTitle(" Settings ")
	for _, f := range settingsFields {
		ui.settingsForm.AddInputField(f.label, "", 8, tview.InputFieldInteger, nil)
	}
	for _, t := range settingsToggles {
		ui.settingsForm.AddCheckbox(t.label, false, nil)
	}
	ui.settingsForm.AddButton("Apply", func() {
		cfg, err := ui.readSettingsForm()
		if err != nil {
			ui.logger.Printf("UI: %v", err)
			return
		}
		if err := controller.ApplySettings(cfg); err == nil {
			controller.OnModeChange(UIModeWorkout)
		}
	})
	ui.settingsForm.AddButton("Defaults", func() {
		ui.SetSettings(workout.DefaultConfig())
	})

	ui.settingsFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(instructions, 3, 0, false).
		AddItem(ui.settingsForm, 0, 1, true)

	ui.settingsTabWidgets = []tview.Primitive{ui.settingsForm, ui.logView}
}

// readSettingsForm builds a configuration from the form fields
func (ui *CursesUIViewImpl) readSettingsForm() (workout.Config, error) {
	cfg := ui.model.GetSettings()
	for i, f := range settingsFields {
		input, ok := ui.settingsForm.GetFormItem(i).(*tview.InputField)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(input.GetText())
		if err != nil {
			return workout.Config{}, fmt.Errorf("%s: %q is not a whole number", f.label, input.GetText())
		}
		f.set(&cfg, v)
	}
	for i, t := range settingsToggles {
		if box, ok := ui.settingsForm.GetFormItem(len(settingsFields) + i).(*tview.Checkbox); ok {
			t.set(&cfg, box.IsChecked())
		}
	}
	return cfg, nil
}

// SetSettings fills the form with cfg
func (ui *CursesUIViewImpl) SetSettings(cfg workout.Config) {
	if ui.settingsForm == nil {
		return
	}
	for i, f := range settingsFields {
		if input, ok := ui.settingsForm.GetFormItem(i).(*tview.InputField); ok {
			input.SetText(strconv.Itoa(f.get(cfg)))
		}
	}
	for i, t := range settingsToggles {
		if box, ok := ui.settingsForm.GetFormItem(len(settingsFields) + i).(*tview.Checkbox); ok {
			box.SetChecked(t.get(cfg))
		}
	}
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}
	ui.currentMode = mode

	switch mode {
	case UIModeWorkout:
		ui.pages.SwitchToPage(pageWorkout)
	case UIModeSettings:
		ui.pages.SwitchToPage(pageSettings)
	}
	ui.setFocusForCurrentMode()
}

func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []tview.Primitive {
	switch ui.currentMode {
	case UIModeWorkout:
		return ui.workoutTabWidgets
	case UIModeSettings:
		return ui.settingsTabWidgets
	default:
		return nil
	}
}

func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	if widgets := ui.getTabWidgetsForCurrentMode(); len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

// editingText reports whether keystrokes belong to a focused input field
func (ui *CursesUIViewImpl) editingText() bool {
	_, ok := ui.app.GetFocus().(*tview.InputField)
	return ok
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		// The settings form handles Tab and typing itself
		if ui.currentMode == UIModeSettings && (ui.editingText() || event.Key() == tcell.KeyTab || event.Key() == tcell.KeyBacktab) {
			return event
		}

		if event.Key() == tcell.KeyRune {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				controller.OnModeChange(mode)
				return nil
			}
		}

		if event.Key() == tcell.KeyTab {
			widgets := ui.getTabWidgetsForCurrentMode()
			for i, w := range widgets {
				if w.HasFocus() {
					ui.app.SetFocus(widgets[(i+1)%len(widgets)])
					return nil
				}
			}
			if len(widgets) > 0 {
				ui.app.SetFocus(widgets[0])
			}
			return nil
		}

		if ui.currentMode == UIModeWorkout && event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case KeyToggleWorkout:
				controller.ToggleWorkout()
				return nil
			case KeySkipSegment, 'N':
				controller.SkipSegment()
				return nil
			case KeyResetWorkout, 'R':
				controller.ResetWorkout()
				return nil
			}
		}

		return event
	})
}

func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, line)
	return err
}

// UpdateWorkoutState updates the countdown panel and follows the current
// segment in the plan list
func (ui *CursesUIViewImpl) UpdateWorkoutState(state WorkoutState) {
	if ui.workoutPanel == nil {
		return
	}
	ui.workoutPanel.SetText(formatWorkoutPanel(state, progressBarWidth))

	index := state.Snapshot.Index
	if state.Snapshot.Status == playback.StatusIdle {
		index = 0
	}
	if index != ui.lastIndex && index < ui.planList.GetItemCount() {
		ui.planList.SetCurrentItem(index)
		ui.lastIndex = index
	}
}

// SetPlan replaces the plan list
func (ui *CursesUIViewImpl) SetPlan(plan workout.Plan) {
	if ui.planList == nil {
		return
	}
	ui.plan = plan
	ui.lastIndex = -1
	ui.planList.Clear()
	for i, seg := range plan {
		ui.planList.AddItem(formatPlanItem(i, seg), "", 0, nil)
	}
	ui.planList.SetTitle(fmt.Sprintf(" Plan (%d segments, %s) ", len(plan), workout.FormatClock(plan.TotalSeconds())))
}

func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}
