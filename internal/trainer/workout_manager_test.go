package trainer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/hiit-timer/internal/cues"
	"github.com/lowaak/hiit-timer/internal/playback"
	"github.com/lowaak/hiit-timer/internal/workout"
)

func loadShortPlan(t *testing.T, rig *testRig) string {
	t.Helper()
	rig.manager.Load(workout.DefaultConfig(), shortPlan())
	require.Eventually(t, func() bool {
		return rig.model.GetWorkoutState().SessionID != ""
	}, waitFor, pollAt)
	return rig.manager.SessionID()
}

func TestWorkoutManager_LoadPublishesPlanAndIdleState(t *testing.T) {
	rig := newTestRig(t)
	cfg := workout.DefaultConfig()
	cfg.Speech = false

	rig.manager.Load(cfg, shortPlan())

	require.Eventually(t, func() bool {
		return len(rig.model.GetPlan()) == len(shortPlan())
	}, waitFor, pollAt)
	require.Eventually(t, func() bool {
		return rig.model.GetWorkoutState().SessionID != ""
	}, waitFor, pollAt)

	state := rig.model.GetWorkoutState()
	assert.Equal(t, rig.manager.SessionID(), state.SessionID)
	assert.Equal(t, playback.StatusIdle, state.Snapshot.Status)
	assert.Equal(t, playback.LabelReady, state.Snapshot.CurrentLabel)
	assert.Equal(t, workout.LabelWarmup, state.Snapshot.NextLabel)
	assert.Equal(t, 60, state.Snapshot.TotalSeconds)
	assert.Equal(t, 2, state.Snapshot.HighTotal)

	toggles, ok := rig.cues.last()
	require.True(t, ok)
	assert.Equal(t, cues.TogglesFrom(cfg), toggles)
	assert.True(t, rig.logs.Contains("(5 segments, 01:00)"))
}

func TestWorkoutManager_ToggleStartsAndPauses(t *testing.T) {
	rig := newTestRig(t)
	loadShortPlan(t, rig)

	rig.manager.Toggle()
	require.Eventually(t, func() bool { return rig.status() == playback.StatusRunning }, waitFor, pollAt)

	rig.manager.Toggle()
	require.Eventually(t, func() bool { return rig.status() == playback.StatusPaused }, waitFor, pollAt)

	rig.manager.Toggle()
	require.Eventually(t, func() bool { return rig.status() == playback.StatusRunning }, waitFor, pollAt)
}

func TestWorkoutManager_TickerAdvancesToCompletion(t *testing.T) {
	rig := newTestRig(t)
	loadShortPlan(t, rig)

	rig.manager.Start()
	require.Eventually(t, func() bool { return rig.status() == playback.StatusRunning }, waitFor, pollAt)

	rig.clock.Advance(25 * time.Second)
	require.Eventually(t, func() bool {
		snap := rig.model.GetWorkoutState().Snapshot
		return snap.Index == 1 && snap.RemainingSeconds == 5
	}, waitFor, pollAt)

	rig.clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return rig.status() == playback.StatusCompleted }, waitFor, pollAt)

	snap := rig.model.GetWorkoutState().Snapshot
	assert.Equal(t, 2, snap.HighCompleted)
	assert.Equal(t, 1.0, snap.Progress)
	assert.Equal(t, playback.LabelDone, snap.CurrentLabel)

	rig.manager.Toggle()
	require.Eventually(t, func() bool { return rig.logs.Contains("Workout finished") }, waitFor, pollAt)
	assert.Equal(t, playback.StatusCompleted, rig.engine.Status())
}

func TestWorkoutManager_SkipDoesNotCountHighInterval(t *testing.T) {
	rig := newTestRig(t)
	loadShortPlan(t, rig)

	rig.manager.Start()
	rig.manager.Skip()
	rig.manager.Skip()

	require.Eventually(t, func() bool {
		return rig.model.GetWorkoutState().Snapshot.Index == 2
	}, waitFor, pollAt)
	assert.Equal(t, 0, rig.model.GetWorkoutState().Snapshot.HighCompleted)
	assert.Equal(t, workout.LabelLow, rig.model.GetWorkoutState().Snapshot.CurrentLabel)
}

func TestWorkoutManager_ResetStartsNewSession(t *testing.T) {
	rig := newTestRig(t)
	first := loadShortPlan(t, rig)

	rig.manager.Start()
	rig.manager.Skip()
	rig.manager.Reset()

	require.Eventually(t, func() bool {
		state := rig.model.GetWorkoutState()
		return state.SessionID != first && state.Snapshot.Status == playback.StatusIdle
	}, waitFor, pollAt)
	assert.Equal(t, 0, rig.model.GetWorkoutState().Snapshot.Index)
	assert.Len(t, rig.engine.Plan(), len(shortPlan()))
}

func TestWorkoutManager_LoadRefusedWhileRunning(t *testing.T) {
	rig := newTestRig(t)
	loadShortPlan(t, rig)

	rig.manager.Start()
	other := workout.Plan{{Label: workout.LabelHigh, DurationSeconds: 99, Kind: workout.KindHigh}}
	rig.manager.Load(workout.DefaultConfig(), other)
	// Commands are handled in order, so once the pause shows the load was refused
	rig.manager.Pause()

	require.Eventually(t, func() bool { return rig.status() == playback.StatusPaused }, waitFor, pollAt)
	assert.Equal(t, shortPlan(), rig.model.GetPlan())
	assert.Equal(t, shortPlan(), rig.engine.Plan())
	assert.True(t, rig.logs.Contains("Cannot load a new plan while paused") || rig.logs.Contains("Cannot load a new plan while running"))
}

func TestWorkoutManager_LoadAllowedAfterCompletion(t *testing.T) {
	rig := newTestRig(t)
	loadShortPlan(t, rig)

	rig.manager.Start()
	require.Eventually(t, func() bool { return rig.status() == playback.StatusRunning }, waitFor, pollAt)

	rig.clock.Advance(2 * time.Minute)
	require.Eventually(t, func() bool { return rig.status() == playback.StatusCompleted }, waitFor, pollAt)

	other := workout.Plan{{Label: workout.LabelHigh, DurationSeconds: 99, Kind: workout.KindHigh}}
	rig.manager.Load(workout.DefaultConfig(), other)

	require.Eventually(t, func() bool {
		return rig.model.GetWorkoutState().Snapshot.TotalSeconds == 99
	}, waitFor, pollAt)
	assert.Equal(t, playback.StatusIdle, rig.status())
}

func TestWorkoutManager_ApplyReplacesRunningWorkout(t *testing.T) {
	rig := newTestRig(t)
	first := loadShortPlan(t, rig)

	rig.manager.Start()
	require.Eventually(t, func() bool { return rig.status() == playback.StatusRunning }, waitFor, pollAt)

	cfg := workout.DefaultConfig()
	cfg.Sound = false
	other := workout.Plan{{Label: workout.LabelHigh, DurationSeconds: 99, Kind: workout.KindHigh}}
	rig.manager.Apply(cfg, other)

	require.Eventually(t, func() bool {
		state := rig.model.GetWorkoutState()
		return state.SessionID != first && state.Snapshot.TotalSeconds == 99
	}, waitFor, pollAt)
	assert.Equal(t, playback.StatusIdle, rig.status())
	assert.Equal(t, other, rig.engine.Plan())
	assert.Equal(t, other, rig.model.GetPlan())
	assert.Equal(t, cfg, rig.model.GetSettings())
	toggles, ok := rig.cues.last()
	require.True(t, ok)
	assert.False(t, toggles.Sound)
	assert.True(t, rig.logs.Contains("Abandoning running session"))
}

func TestWorkoutManager_ShutdownIsIdempotent(t *testing.T) {
	rig := newTestRig(t)
	loadShortPlan(t, rig)

	rig.manager.Shutdown()
	rig.manager.Shutdown()

	done := make(chan struct{})
	go func() {
		rig.manager.Toggle()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("command after shutdown blocked")
	}
	assert.True(t, rig.logs.Contains("Ignoring command after shutdown"))
}

func TestNewWorkoutManager_RejectsMissingDependencies(t *testing.T) {
	model := NewUIModel(discardLogger(), make(chan string))
	defer model.Shutdown()
	engine := playback.New(playback.Options{Logger: discardLogger()})

	assert.PanicsWithValue(t, "WorkoutManager: engine cannot be nil", func() {
		NewWorkoutManager(WorkoutManagerArgs{Model: model, Logger: discardLogger(), FrameInterval: time.Second})
	})
	assert.PanicsWithValue(t, "WorkoutManager: frame interval must be positive", func() {
		NewWorkoutManager(WorkoutManagerArgs{Model: model, Engine: engine, Logger: discardLogger()})
	})
}
