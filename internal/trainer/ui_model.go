package trainer

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/hiit-timer/internal/events"
	"github.com/lowaak/hiit-timer/internal/go_func_utils"
	"github.com/lowaak/hiit-timer/internal/playback"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
}

// WorkoutState is what the workout screen renders on every frame
type WorkoutState struct {
	SessionID string
	Snapshot  playback.Snapshot
}

type UIModel struct {
	logEvent              *events.ChannelEvent[string]
	closeApplicationEvent *events.ChannelEvent[struct{}]
	uiStateEvent          *events.ChannelEvent[UIState]
	uiState               UIState
	workoutStateEvent     *events.ChannelEvent[WorkoutState]
	workoutState          WorkoutState
	planEvent             *events.ChannelEvent[workout.Plan]
	plan                  workout.Plan
	settingsEvent         *events.ChannelEvent[workout.Config]
	settings              workout.Config
	logLines              []string
	logMu                 sync.RWMutex
	mu                    sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	wg                    sync.WaitGroup
	logger                *log.Logger
}

func NewUIModel(logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewChannelEvent[string](false),
		closeApplicationEvent: events.NewChannelEvent[struct{}](true),
		uiStateEvent:          events.NewChannelEvent[UIState](true),
		uiState:               UIState{Mode: UIModeWorkout},
		workoutStateEvent:     events.NewChannelEvent[WorkoutState](true),
		workoutState:          WorkoutState{Snapshot: playback.Snapshot{Status: playback.StatusIdle, CurrentLabel: playback.LabelReady}},
		planEvent:             events.NewChannelEvent[workout.Plan](true),
		settingsEvent:         events.NewChannelEvent[workout.Config](true),
		settings:              workout.DefaultConfig(),
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		logger:                logger,
	}

	model.wg.Add(1)
	go_func_utils.SafeGo(model.logger, "UIModel log reader", func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetMode updates the current UI mode and notifies listeners
func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// ListenToWorkoutState registers a channel to receive a state per frame.
// Slow listeners miss frames rather than delay the workout loop.
func (m *UIModel) ListenToWorkoutState(ch chan<- WorkoutState) func() {
	return m.workoutStateEvent.Listen(ch)
}

func (m *UIModel) GetWorkoutState() WorkoutState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.workoutState
}

func (m *UIModel) SetWorkoutState(state WorkoutState) {
	m.mu.Lock()
	m.workoutState = state
	m.mu.Unlock()

	m.workoutStateEvent.Notify(state)
}

// ListenToPlan registers a channel to receive each newly loaded plan
func (m *UIModel) ListenToPlan(ch chan<- workout.Plan) func() {
	return m.planEvent.Listen(ch)
}

func (m *UIModel) GetPlan() workout.Plan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append(workout.Plan(nil), m.plan...)
}

func (m *UIModel) SetPlan(plan workout.Plan) {
	plan = append(workout.Plan(nil), plan...)
	m.mu.Lock()
	m.plan = plan
	m.mu.Unlock()

	m.planEvent.Notify(plan)
}

// ListenToSettings registers a channel to receive applied settings
func (m *UIModel) ListenToSettings(ch chan<- workout.Config) func() {
	return m.settingsEvent.Listen(ch)
}

func (m *UIModel) GetSettings() workout.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

func (m *UIModel) SetSettings(cfg workout.Config) {
	m.mu.Lock()
	m.settings = cfg
	m.mu.Unlock()

	m.settingsEvent.Notify(cfg)
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	start := max(len(m.logLines)-n, 0)
	result := make([]string, len(m.logLines)-start)
	copy(result, m.logLines[start:])
	return result
}
