package trainer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/hiit-timer/internal/playback"
	"github.com/lowaak/hiit-timer/internal/workout"
)

func TestUIController_ApplySettingsLoadsGeneratedPlan(t *testing.T) {
	rig := newTestRig(t)
	controller := NewUIController(rig.model, rig.manager, rig.logger)

	cfg := workout.DefaultConfig()
	cfg.WorkMinutes = 2
	want, err := workout.Generate(cfg)
	require.NoError(t, err)

	require.NoError(t, controller.ApplySettings(cfg))

	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, rig.model.GetPlan())
	}, waitFor, pollAt)
	assert.Equal(t, cfg, rig.model.GetSettings())
}

func TestUIController_ApplySettingsRejectsInvalidConfiguration(t *testing.T) {
	rig := newTestRig(t)
	controller := NewUIController(rig.model, rig.manager, rig.logger)
	require.NoError(t, controller.ApplySettings(workout.DefaultConfig()))
	require.Eventually(t, func() bool { return len(rig.model.GetPlan()) > 0 }, waitFor, pollAt)
	before := rig.model.GetPlan()

	bad := workout.DefaultConfig()
	bad.WorkMinutes = 0
	err := controller.ApplySettings(bad)

	require.ErrorIs(t, err, workout.ErrInvalidConfiguration)
	assert.Equal(t, workout.DefaultConfig(), rig.model.GetSettings())
	assert.Equal(t, before, rig.model.GetPlan())
	assert.True(t, rig.logs.Contains("Settings rejected"))
}

func TestUIController_ApplySettingsWhileRunningResetsToNewPlan(t *testing.T) {
	rig := newTestRig(t)
	controller := NewUIController(rig.model, rig.manager, rig.logger)
	require.NoError(t, controller.ApplySettings(workout.DefaultConfig()))
	require.Eventually(t, func() bool { return len(rig.model.GetPlan()) > 0 }, waitFor, pollAt)

	controller.ToggleWorkout()
	require.Eventually(t, func() bool { return rig.status() == playback.StatusRunning }, waitFor, pollAt)

	cfg := workout.DefaultConfig()
	cfg.WorkMinutes = 5
	want, err := workout.Generate(cfg)
	require.NoError(t, err)

	require.NoError(t, controller.ApplySettings(cfg))

	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, rig.model.GetPlan())
	}, waitFor, pollAt)
	require.Eventually(t, func() bool {
		return rig.model.GetWorkoutState().Snapshot.TotalSeconds == want.TotalSeconds()
	}, waitFor, pollAt)
	assert.Equal(t, 480, want.TotalSeconds())
	assert.Equal(t, want, rig.engine.Plan())
	assert.Equal(t, playback.StatusIdle, rig.status())
	assert.Equal(t, cfg, rig.model.GetSettings())
}

func TestUIController_ReloadSettingsLeavesRunningWorkoutAlone(t *testing.T) {
	rig := newTestRig(t)
	controller := NewUIController(rig.model, rig.manager, rig.logger)
	require.NoError(t, controller.ApplySettings(workout.DefaultConfig()))
	require.Eventually(t, func() bool { return len(rig.model.GetPlan()) > 0 }, waitFor, pollAt)
	before := rig.model.GetPlan()

	controller.ToggleWorkout()
	require.Eventually(t, func() bool { return rig.status() == playback.StatusRunning }, waitFor, pollAt)

	cfg := workout.DefaultConfig()
	cfg.WorkMinutes = 5
	require.NoError(t, controller.ReloadSettings(cfg))

	require.Eventually(t, func() bool { return rig.logs.Contains("Cannot load a new plan while running") }, waitFor, pollAt)
	assert.Equal(t, before, rig.model.GetPlan())
	assert.Equal(t, before, rig.engine.Plan())
	assert.Equal(t, workout.DefaultConfig(), rig.model.GetSettings())
	assert.Equal(t, playback.StatusRunning, rig.status())
}

func TestUIController_ReloadSettingsLoadsWhenIdle(t *testing.T) {
	rig := newTestRig(t)
	controller := NewUIController(rig.model, rig.manager, rig.logger)

	cfg := workout.DefaultConfig()
	cfg.WorkMinutes = 1
	want, err := workout.Generate(cfg)
	require.NoError(t, err)

	require.NoError(t, controller.ReloadSettings(cfg))
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, rig.model.GetPlan())
	}, waitFor, pollAt)
	assert.Equal(t, cfg, rig.model.GetSettings())

	cfg.WorkMinutes = 0
	require.ErrorIs(t, controller.ReloadSettings(cfg), workout.ErrInvalidConfiguration)
}

func TestUIController_ToggleWithoutPlanOnlyLogs(t *testing.T) {
	rig := newTestRig(t)
	controller := NewUIController(rig.model, rig.manager, rig.logger)

	controller.ToggleWorkout()

	assert.True(t, rig.logs.Contains("No plan loaded"))
	assert.Equal(t, playback.StatusIdle, rig.engine.Status())
}

func TestUIController_ToggleSkipReset(t *testing.T) {
	rig := newTestRig(t)
	controller := NewUIController(rig.model, rig.manager, rig.logger)
	loadShortPlan(t, rig)

	controller.ToggleWorkout()
	controller.SkipSegment()
	require.Eventually(t, func() bool {
		snap := rig.model.GetWorkoutState().Snapshot
		return snap.Status == playback.StatusRunning && snap.Index == 1
	}, waitFor, pollAt)

	controller.ResetWorkout()
	require.Eventually(t, func() bool { return rig.status() == playback.StatusIdle }, waitFor, pollAt)
}

func TestUIController_ModeChangeAndEscape(t *testing.T) {
	rig := newTestRig(t)
	controller := NewUIController(rig.model, rig.manager, rig.logger)

	controller.OnModeChange(UIModeSettings)
	assert.Equal(t, UIModeSettings, rig.model.GetUIState().Mode)
	assert.True(t, rig.logs.Contains("Switching to Settings mode"))

	closeChan := make(chan struct{}, 1)
	unregister := rig.model.ListenToCloseApplication(closeChan)
	defer unregister()

	controller.OnEscapeKey()
	select {
	case <-closeChan:
	case <-time.After(waitFor):
		t.Fatal("close was not requested")
	}
}
