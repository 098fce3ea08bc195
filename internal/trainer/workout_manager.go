package trainer

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/hiit-timer/internal/cues"
	"github.com/lowaak/hiit-timer/internal/go_func_utils"
	"github.com/lowaak/hiit-timer/internal/playback"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// workoutCommand represents commands sent to the workout goroutine
type workoutCommand int

const (
	cmdLoad workoutCommand = iota
	cmdApply
	cmdStart
	cmdPause
	cmdToggle
	cmdSkip
	cmdReset
)

type commandMsg struct {
	cmd  workoutCommand
	cfg  workout.Config
	plan workout.Plan
}

// CueSettings is the part of the cue dispatcher the manager drives
type CueSettings interface {
	SetToggles(cues.Toggles)
	ListenToCues(func(cues.Played)) func()
}

// WorkoutManagerArgs holds the arguments for creating a new WorkoutManager
type WorkoutManagerArgs struct {
	Model         *UIModel
	Engine        *playback.Engine
	Cues          CueSettings // optional
	Clock         playback.Clock
	FrameInterval time.Duration
	Logger        *log.Logger
}

// WorkoutManager owns the playback engine. Every engine call happens on its
// goroutine, which also runs the frame ticker while a workout is running.
type WorkoutManager struct {
	model         *UIModel
	engine        *playback.Engine
	cues          CueSettings
	clock         playback.Clock
	frameInterval time.Duration
	logger        *log.Logger

	// protected by mu
	mu        sync.RWMutex
	sessionID string

	cmdChan       chan commandMsg
	doneChan      chan struct{}
	wg            sync.WaitGroup
	shutdownOnce  sync.Once
	cueUnregister func()
}

func NewWorkoutManager(args WorkoutManagerArgs) *WorkoutManager {
	if args.Model == nil {
		panic("WorkoutManager: model cannot be nil")
	}
	if args.Engine == nil {
		panic("WorkoutManager: engine cannot be nil")
	}
	if args.Logger == nil {
		panic("WorkoutManager: logger cannot be nil")
	}
	if args.FrameInterval <= 0 {
		panic("WorkoutManager: frame interval must be positive")
	}
	if args.Clock == nil {
		args.Clock = playback.SystemClock
	}

	wm := &WorkoutManager{
		model:         args.Model,
		engine:        args.Engine,
		cues:          args.Cues,
		clock:         args.Clock,
		frameInterval: args.FrameInterval,
		logger:        args.Logger,
		cmdChan:       make(chan commandMsg, 1),
		doneChan:      make(chan struct{}),
	}

	if wm.cues != nil {
		wm.cueUnregister = wm.cues.ListenToCues(func(p cues.Played) {
			wm.logger.Printf("WorkoutManager: Cue %s (%s)", p.Kind, p.Cue.Phrase)
		})
	}

	wm.wg.Add(1)
	go_func_utils.SafeGo(wm.logger, "WorkoutManager", func() { wm.runWorkoutLoop() })

	return wm
}

// Load replaces the plan. Ignored while a workout is running or paused.
func (wm *WorkoutManager) Load(cfg workout.Config, plan workout.Plan) {
	wm.send(commandMsg{cmd: cmdLoad, cfg: cfg, plan: plan})
}

// Apply replaces the plan in any state, abandoning a running or paused workout
func (wm *WorkoutManager) Apply(cfg workout.Config, plan workout.Plan) {
	wm.send(commandMsg{cmd: cmdApply, cfg: cfg, plan: plan})
}

// Start begins or resumes the workout
func (wm *WorkoutManager) Start() { wm.send(commandMsg{cmd: cmdStart}) }

func (wm *WorkoutManager) Pause() { wm.send(commandMsg{cmd: cmdPause}) }

// Toggle starts, resumes or pauses depending on the engine status
func (wm *WorkoutManager) Toggle() { wm.send(commandMsg{cmd: cmdToggle}) }

func (wm *WorkoutManager) Skip() { wm.send(commandMsg{cmd: cmdSkip}) }

// Reset returns the loaded plan to Ready under a new session ID
func (wm *WorkoutManager) Reset() { wm.send(commandMsg{cmd: cmdReset}) }

// SessionID identifies the current load of the plan in log lines
func (wm *WorkoutManager) SessionID() string {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.sessionID
}

// Shutdown stops the workout goroutine and releases the wake lock.
// Safe to call multiple times - only the first call has effect.
func (wm *WorkoutManager) Shutdown() {
	wm.shutdownOnce.Do(func() {
		wm.logger.Printf("WorkoutManager: Shutting down")
		close(wm.doneChan)
		wm.wg.Wait()
		if wm.cueUnregister != nil {
			wm.cueUnregister()
		}
		// Loading an empty plan releases the wake lock of an abandoned session.
		wm.engine.Load(nil)
		wm.logger.Printf("WorkoutManager: Shutdown complete")
	})
}

func (wm *WorkoutManager) send(msg commandMsg) {
	select {
	case wm.cmdChan <- msg:
	case <-wm.doneChan:
		wm.logger.Printf("WorkoutManager: Ignoring command after shutdown")
	}
}

// runWorkoutLoop is the main goroutine that manages workout execution
func (wm *WorkoutManager) runWorkoutLoop() {
	defer wm.wg.Done()

	ticker := time.NewTicker(wm.frameInterval)
	ticker.Stop() // Started only while the engine is running

	for {
		select {
		case <-wm.doneChan:
			ticker.Stop()
			wm.logger.Printf("WorkoutManager: Goroutine exiting")
			return

		case msg := <-wm.cmdChan:
			wm.handleCommand(msg)
			if wm.engine.Running() {
				ticker.Reset(wm.frameInterval)
			} else {
				ticker.Stop()
			}
			wm.publish()

		case <-ticker.C:
			if !wm.engine.Tick(wm.clock.Now()) {
				ticker.Stop()
			}
			wm.publish()
		}
	}
}

func (wm *WorkoutManager) handleCommand(msg commandMsg) {
	switch msg.cmd {
	case cmdLoad:
		if status := wm.engine.Status(); status == playback.StatusRunning || status == playback.StatusPaused {
			wm.logger.Printf("WorkoutManager: Cannot load a new plan while %s, reset first", status)
			return
		}
		wm.loadPlan(msg.cfg, msg.plan)

	case cmdApply:
		if status := wm.engine.Status(); status == playback.StatusRunning || status == playback.StatusPaused {
			wm.logger.Printf("WorkoutManager: Abandoning %s session %s for new settings", status, wm.SessionID())
		}
		wm.loadPlan(msg.cfg, msg.plan)

	case cmdStart:
		wm.engine.Start()

	case cmdPause:
		wm.engine.Pause()

	case cmdToggle:
		switch wm.engine.Status() {
		case playback.StatusRunning:
			wm.engine.Pause()
		case playback.StatusCompleted:
			wm.logger.Printf("WorkoutManager: Workout finished, press %q to go again", KeyResetWorkout)
		default:
			wm.engine.Start()
		}

	case cmdSkip:
		wm.engine.Skip()

	case cmdReset:
		wm.engine.Load(wm.engine.Plan())
		id := wm.newSession()
		wm.logger.Printf("WorkoutManager: Session %s reset", id)
	}
}

// loadPlan resets the engine to Idle on plan and records cfg as the
// settings in effect
func (wm *WorkoutManager) loadPlan(cfg workout.Config, plan workout.Plan) {
	wm.engine.SetKeepAwake(cfg.KeepAwake)
	if wm.cues != nil {
		wm.cues.SetToggles(cues.TogglesFrom(cfg))
	}
	wm.engine.Load(plan)
	id := wm.newSession()
	wm.model.SetSettings(cfg)
	wm.model.SetPlan(plan)
	wm.logger.Printf("WorkoutManager: Session %s ready (%d segments, %s)", id, len(plan), workout.FormatClock(plan.TotalSeconds()))
}

func (wm *WorkoutManager) newSession() string {
	id := uuid.NewString()
	wm.mu.Lock()
	wm.sessionID = id
	wm.mu.Unlock()
	return id
}

func (wm *WorkoutManager) publish() {
	wm.model.SetWorkoutState(WorkoutState{
		SessionID: wm.SessionID(),
		Snapshot:  wm.engine.Snapshot(wm.clock.Now()),
	})
}
