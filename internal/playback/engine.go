package playback

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/hiit-timer/internal/workout"
)

// Status is the engine's position in the Idle -> Running <-> Paused -> Completed lifecycle
type Status int

const (
	StatusIdle      Status = iota // Plan loaded, not started
	StatusRunning                 // Counting down
	StatusPaused                  // Frozen mid-segment
	StatusCompleted               // Last segment expired; terminal until Load
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Phase labels shown outside of a segment
const (
	LabelReady = "Ready"
	LabelDone  = "Done"
)

// Clock supplies monotonic timestamps. time.Now readings carry a monotonic
// component, so Sub and Before between them ignore wall clock adjustments.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default Clock backed by time.Now
var SystemClock Clock = systemClock{}

// CueDispatcher receives one call per segment entry plus one for completion.
// Implementations must return quickly; muting is their concern.
type CueDispatcher interface {
	Dispatch(kind workout.Kind)
}

// WakeLock keeps the screen awake while a workout runs. Both calls must be
// idempotent and may silently do nothing.
type WakeLock interface {
	Acquire()
	Release()
}

type noopCues struct{}

func (noopCues) Dispatch(workout.Kind) {}

type noopWakeLock struct{}

func (noopWakeLock) Acquire() {}
func (noopWakeLock) Release() {}

// Options configures a new Engine. Nil collaborators fall back to no-ops.
type Options struct {
	Clock     Clock
	Cues      CueDispatcher
	WakeLock  WakeLock
	KeepAwake bool
	Logger    *log.Logger
}

// Engine advances through a plan in real time. It never schedules work on
// its own: the host calls Tick on its display cadence while Running.
type Engine struct {
	clock    Clock
	cues     CueDispatcher
	wakeLock WakeLock
	logger   *log.Logger

	// protected by mu
	mu              sync.Mutex
	keepAwake       bool
	plan            workout.Plan
	highTotal       int
	status          Status
	index           int
	segmentStart    time.Time
	segmentEnd      time.Time
	sessionStart    time.Time
	pausedAt        time.Time
	pausedTotal     time.Duration
	frozenRemaining time.Duration
	highCompleted   int
}

// New creates an idle engine with an empty plan
func New(opts Options) *Engine {
	if opts.Logger == nil {
		panic("Engine: logger cannot be nil")
	}
	e := &Engine{
		clock:     opts.Clock,
		cues:      opts.Cues,
		wakeLock:  opts.WakeLock,
		logger:    opts.Logger,
		keepAwake: opts.KeepAwake,
	}
	if e.clock == nil {
		e.clock = SystemClock
	}
	if e.cues == nil {
		e.cues = noopCues{}
	}
	if e.wakeLock == nil {
		e.wakeLock = noopWakeLock{}
	}
	return e
}

// SetKeepAwake changes whether Start acquires the wake lock
func (e *Engine) SetKeepAwake(keepAwake bool) {
	e.mu.Lock()
	e.keepAwake = keepAwake
	e.mu.Unlock()
}

// Load replaces the plan and resets all playback state to Idle
func (e *Engine) Load(plan workout.Plan) {
	e.mu.Lock()
	e.plan = append(workout.Plan(nil), plan...)
	e.highTotal = e.plan.HighIntervalCount()
	e.status = StatusIdle
	e.index = 0
	e.segmentStart = time.Time{}
	e.segmentEnd = time.Time{}
	e.sessionStart = time.Time{}
	e.pausedAt = time.Time{}
	e.pausedTotal = 0
	e.frozenRemaining = 0
	e.highCompleted = 0
	segments, total := len(e.plan), e.plan.TotalSeconds()
	e.mu.Unlock()

	e.wakeLock.Release()
	e.logger.Printf("Engine: Loaded plan with %d segments (%ds)", segments, total)
}

// Plan returns a copy of the loaded plan
func (e *Engine) Plan() workout.Plan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append(workout.Plan(nil), e.plan...)
}

// Status returns the current lifecycle status
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Running reports whether the host should keep calling Tick
func (e *Engine) Running() bool {
	return e.Status() == StatusRunning
}

// Start begins the session from Idle or resumes it from Paused
func (e *Engine) Start() {
	now := e.clock.Now()

	e.mu.Lock()
	var cues []workout.Kind
	switch e.status {
	case StatusIdle:
		if len(e.plan) == 0 {
			e.mu.Unlock()
			e.logger.Printf("Engine: Nothing to start, plan is empty")
			return
		}
		e.sessionStart = now
		e.pausedTotal = 0
		e.enterLocked(0, now)
		cues = append(cues, e.plan[0].Kind)
	case StatusPaused:
		// Re-anchor so the segment keeps exactly the time it had when paused.
		e.segmentEnd = now.Add(e.frozenRemaining)
		e.segmentStart = e.segmentEnd.Add(-segmentDuration(e.plan[e.index]))
		e.pausedTotal += now.Sub(e.pausedAt)
		e.pausedAt = time.Time{}
	default:
		status := e.status
		e.mu.Unlock()
		e.logger.Printf("Engine: Cannot start while %s", status)
		return
	}
	e.status = StatusRunning
	keepAwake := e.keepAwake
	index := e.index
	e.mu.Unlock()

	if keepAwake {
		e.wakeLock.Acquire()
	}
	e.logger.Printf("Engine: Running at segment %d", index)
	e.dispatch(cues)
}

// Pause freezes the remaining time of the current segment
func (e *Engine) Pause() {
	now := e.clock.Now()

	e.mu.Lock()
	if e.status != StatusRunning {
		e.mu.Unlock()
		return
	}
	e.frozenRemaining = max(e.segmentEnd.Sub(now), 0)
	e.pausedAt = now
	e.status = StatusPaused
	remaining := e.frozenRemaining
	e.mu.Unlock()

	e.wakeLock.Release()
	e.logger.Printf("Engine: Paused with %v left in segment", remaining.Round(time.Millisecond))
}

// Skip moves straight to the next segment without counting the current one
// as completed. It does nothing at the last segment.
func (e *Engine) Skip() {
	now := e.clock.Now()

	e.mu.Lock()
	if e.status != StatusRunning && e.status != StatusPaused {
		e.mu.Unlock()
		return
	}
	if e.index+1 >= len(e.plan) {
		e.mu.Unlock()
		return
	}
	e.enterLocked(e.index+1, now)
	if e.status == StatusPaused {
		e.frozenRemaining = segmentDuration(e.plan[e.index])
	}
	entered := e.plan[e.index]
	index := e.index
	e.mu.Unlock()

	e.logger.Printf("Engine: Skipped to segment %d (%s)", index, entered.Label)
	e.dispatch([]workout.Kind{entered.Kind})
}

// Tick advances past every segment that has ended by now, dispatching each
// entry cue in order. Segments are chained end to start, so a late tick
// catches up without drift. It reports whether the engine is still running.
func (e *Engine) Tick(now time.Time) bool {
	e.mu.Lock()
	if e.status != StatusRunning {
		e.mu.Unlock()
		return false
	}

	var cues []workout.Kind
	completed := false
	for !now.Before(e.segmentEnd) {
		if e.plan[e.index].Kind == workout.KindHigh {
			e.highCompleted = min(e.highCompleted+1, e.highTotal)
		}
		if e.index+1 < len(e.plan) {
			e.enterLocked(e.index+1, e.segmentEnd)
			cues = append(cues, e.plan[e.index].Kind)
			continue
		}
		e.status = StatusCompleted
		completed = true
		break
	}
	running := e.status == StatusRunning
	highCompleted, highTotal := e.highCompleted, e.highTotal
	e.mu.Unlock()

	if completed {
		e.wakeLock.Release()
		cues = append(cues, workout.KindComplete)
		e.logger.Printf("Engine: Workout complete (%d/%d high intervals)", highCompleted, highTotal)
	}
	e.dispatch(cues)
	return running
}

// enterLocked makes index the current segment starting at start.
// MUST be called with mu held.
func (e *Engine) enterLocked(index int, start time.Time) {
	e.index = index
	e.segmentStart = start
	e.segmentEnd = start.Add(segmentDuration(e.plan[index]))
}

func (e *Engine) dispatch(kinds []workout.Kind) {
	for _, kind := range kinds {
		e.dispatchOne(kind)
	}
}

// dispatchOne keeps a misbehaving dispatcher from taking down the advance loop
func (e *Engine) dispatchOne(kind workout.Kind) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("Engine: Cue dispatch for %s panicked: %v", kind, r)
		}
	}()
	e.cues.Dispatch(kind)
}

func segmentDuration(s workout.Segment) time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}
