package trainer

import (
	"bytes"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lowaak/hiit-timer/internal/cues"
	"github.com/lowaak/hiit-timer/internal/playback"
	"github.com/lowaak/hiit-timer/internal/workout"
)

const (
	waitFor = 2 * time.Second
	pollAt  = 5 * time.Millisecond
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeCueSettings struct {
	mu      sync.Mutex
	toggles []cues.Toggles
}

func (f *fakeCueSettings) SetToggles(t cues.Toggles) {
	f.mu.Lock()
	f.toggles = append(f.toggles, t)
	f.mu.Unlock()
}

func (f *fakeCueSettings) ListenToCues(func(cues.Played)) func() { return func() {} }

func (f *fakeCueSettings) last() (cues.Toggles, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.toggles) == 0 {
		return cues.Toggles{}, false
	}
	return f.toggles[len(f.toggles)-1], true
}

// lockedBuffer lets tests read log output written from other goroutines
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Contains(s string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Contains(b.buf.String(), s)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// shortPlan is 60s long with two high intervals
func shortPlan() workout.Plan {
	return workout.Plan{
		{Label: workout.LabelWarmup, DurationSeconds: 10, Kind: workout.KindWarmup},
		{Label: workout.LabelHigh, DurationSeconds: 20, Kind: workout.KindHigh},
		{Label: workout.LabelLow, DurationSeconds: 10, Kind: workout.KindLow},
		{Label: workout.LabelHigh, DurationSeconds: 15, Kind: workout.KindHigh},
		{Label: workout.LabelCooldown, DurationSeconds: 5, Kind: workout.KindCooldown},
	}
}

type testRig struct {
	logs    *lockedBuffer
	logger  *log.Logger
	clock   *fakeClock
	model   *UIModel
	engine  *playback.Engine
	cues    *fakeCueSettings
	manager *WorkoutManager
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	return newTestRigWithLogs(t, make(chan string))
}

// newTestRigWithLogs feeds logChan into the model as the UI log stream
func newTestRigWithLogs(t *testing.T, logChan chan string) *testRig {
	t.Helper()
	logs := &lockedBuffer{}
	logger := log.New(logs, "", 0)
	clock := newFakeClock()
	model := NewUIModel(logger, logChan)
	engine := playback.New(playback.Options{Clock: clock, Logger: logger})
	cueSettings := &fakeCueSettings{}
	manager := NewWorkoutManager(WorkoutManagerArgs{
		Model:         model,
		Engine:        engine,
		Cues:          cueSettings,
		Clock:         clock,
		FrameInterval: time.Millisecond,
		Logger:        logger,
	})
	t.Cleanup(func() {
		manager.Shutdown()
		model.Shutdown()
	})
	return &testRig{
		logs:    logs,
		logger:  logger,
		clock:   clock,
		model:   model,
		engine:  engine,
		cues:    cueSettings,
		manager: manager,
	}
}

func (r *testRig) status() playback.Status {
	return r.model.GetWorkoutState().Snapshot.Status
}
