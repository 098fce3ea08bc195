package trainer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/hiit-timer/internal/workout"
)

// fakeView records what BaseUIView pushes into it
type fakeView struct {
	mu          sync.Mutex
	initialized bool
	keysSetUp   bool
	stopped     bool
	mode        UIMode
	settings    workout.Config
	plan        workout.Plan
	state       WorkoutState
	logLines    []string
	draws       int
}

func (v *fakeView) Initialize(*UIController) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.initialized = true
}

func (v *fakeView) SetupKeyboardHandlers(*UIController) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.keysSetUp = true
}

func (v *fakeView) Run() error { return nil }

func (v *fakeView) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopped = true
}

func (v *fakeView) Draw() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draws++
	return nil
}

func (v *fakeView) SetMode(mode UIMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = mode
}

func (v *fakeView) GetCurrentMode() UIMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

func (v *fakeView) GetLogViewHeight() int { return 2 }

func (v *fakeView) ClearLogView() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.logLines = nil
}

func (v *fakeView) WriteLogLine(line string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.logLines = append(v.logLines, line)
	return nil
}

func (v *fakeView) UpdateWorkoutState(state WorkoutState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = state
}

func (v *fakeView) SetPlan(plan workout.Plan) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.plan = plan
}

func (v *fakeView) SetSettings(cfg workout.Config) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.settings = cfg
}

func (v *fakeView) read(fn func(v *fakeView) bool) func() bool {
	return func() bool {
		v.mu.Lock()
		defer v.mu.Unlock()
		return fn(v)
	}
}

func newTestBaseView(t *testing.T, logChan chan string) (*BaseUIView, *fakeView, *testRig) {
	t.Helper()
	if logChan == nil {
		logChan = make(chan string)
	}
	rig := newTestRigWithLogs(t, logChan)
	view := &fakeView{}
	controller := NewUIController(rig.model, rig.manager, rig.logger)
	base := NewBaseUIView(NewBaseUIViewArg{
		UIViewImpl:   view,
		UIModel:      rig.model,
		UIController: controller,
		Logger:       rig.logger,
	})
	t.Cleanup(base.Shutdown)
	return base, view, rig
}

func TestBaseUIView_InitializesView(t *testing.T) {
	_, view, _ := newTestBaseView(t, nil)

	view.mu.Lock()
	defer view.mu.Unlock()
	assert.True(t, view.initialized)
	assert.True(t, view.keysSetUp)
	assert.Equal(t, UIModeWorkout, view.mode)
	assert.Equal(t, workout.DefaultConfig(), view.settings)
}

func TestBaseUIView_ForwardsModelEvents(t *testing.T) {
	_, view, rig := newTestBaseView(t, nil)

	rig.model.SetMode(UIModeSettings)
	require.Eventually(t, view.read(func(v *fakeView) bool { return v.mode == UIModeSettings }), waitFor, pollAt)

	rig.model.SetPlan(shortPlan())
	require.Eventually(t, view.read(func(v *fakeView) bool { return len(v.plan) == len(shortPlan()) }), waitFor, pollAt)

	cfg := workout.DefaultConfig()
	cfg.LowSeconds = 40
	rig.model.SetSettings(cfg)
	require.Eventually(t, view.read(func(v *fakeView) bool { return v.settings.LowSeconds == 40 }), waitFor, pollAt)

	rig.model.SetWorkoutState(WorkoutState{SessionID: "abc"})
	require.Eventually(t, view.read(func(v *fakeView) bool { return v.state.SessionID == "abc" }), waitFor, pollAt)

	require.Eventually(t, view.read(func(v *fakeView) bool { return v.draws > 0 }), waitFor, pollAt)
}

func TestBaseUIView_ShowsLogTailForViewHeight(t *testing.T) {
	logChan := make(chan string)
	_, view, _ := newTestBaseView(t, logChan)

	for _, line := range []string{"a", "b", "c"} {
		logChan <- line
	}

	require.Eventually(t, view.read(func(v *fakeView) bool {
		return assert.ObjectsAreEqual([]string{"b\n", "c\n"}, v.logLines)
	}), waitFor, pollAt)
}

func TestBaseUIView_CloseRequestStopsView(t *testing.T) {
	_, view, rig := newTestBaseView(t, nil)

	rig.model.RequestCloseApplication()

	require.Eventually(t, view.read(func(v *fakeView) bool { return v.stopped }), waitFor, pollAt)
}
