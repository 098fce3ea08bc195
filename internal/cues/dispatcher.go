package cues

import (
	"log"
	"sync"

	"github.com/lowaak/hiit-timer/internal/events"
	"github.com/lowaak/hiit-timer/internal/go_func_utils"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// QueueSize is how many cues may wait for the worker before new ones are dropped
const QueueSize = 16

// Toggles mute individual cue channels
type Toggles struct {
	Sound     bool
	Vibration bool
	Speech    bool
}

// TogglesFrom picks the cue toggles out of a workout configuration
func TogglesFrom(cfg workout.Config) Toggles {
	return Toggles{Sound: cfg.Sound, Vibration: cfg.Vibration, Speech: cfg.Speech}
}

// Played is published after the worker has handled a cue
type Played struct {
	Kind    workout.Kind
	Cue     Cue
	Toggles Toggles
}

// Dispatcher plays cues on its own goroutine so that Dispatch never blocks
// the playback engine. Sink errors are logged and otherwise ignored.
type Dispatcher struct {
	logger *log.Logger
	sinks  Sinks

	queue      *events.ChannelEvent[workout.Kind]
	unregister func()
	played     *events.CallbackEvent[Played]

	mu      sync.RWMutex
	toggles Toggles

	quit      chan struct{}
	done      <-chan struct{}
	closeOnce sync.Once
}

// NewDispatcher starts the cue worker. Call Shutdown to stop it.
func NewDispatcher(logger *log.Logger, sinks Sinks, toggles Toggles) *Dispatcher {
	if logger == nil {
		panic("CueDispatcher: logger cannot be nil")
	}

	ch := make(chan workout.Kind, QueueSize)
	d := &Dispatcher{
		logger:  logger,
		sinks:   sinks.withDefaults(),
		queue:   events.NewChannelEvent[workout.Kind](false),
		played:  events.NewCallbackEvent[Played](false),
		toggles: toggles,
		quit:    make(chan struct{}),
	}
	d.unregister = d.queue.Listen(ch)
	d.done = go_func_utils.SafeGoDone(logger, "CueDispatcher", func() { d.work(ch) })
	return d
}

// Dispatch queues the cue for kind and returns immediately
func (d *Dispatcher) Dispatch(kind workout.Kind) {
	select {
	case <-d.quit:
		return
	default:
	}

	dropped := d.queue.Dropped()
	d.queue.Notify(kind)
	if d.queue.Dropped() != dropped {
		d.logger.Printf("CueDispatcher: Queue full, dropped %s cue", kind)
	}
}

// SetToggles changes which channels play from the next cue on
func (d *Dispatcher) SetToggles(toggles Toggles) {
	d.mu.Lock()
	d.toggles = toggles
	d.mu.Unlock()
}

func (d *Dispatcher) Toggles() Toggles {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.toggles
}

// ListenToCues registers for every cue the worker handles, muted or not.
// The callback runs on the worker goroutine.
func (d *Dispatcher) ListenToCues(callback func(Played)) func() {
	return d.played.Listen(callback)
}

// Shutdown stops the worker and waits for it. Cues still queued are discarded.
func (d *Dispatcher) Shutdown() {
	d.closeOnce.Do(func() {
		d.unregister()
		close(d.quit)
	})
	<-d.done
}

func (d *Dispatcher) work(ch <-chan workout.Kind) {
	for {
		select {
		case <-d.quit:
			return
		case kind := <-ch:
			d.play(kind)
		}
	}
}

func (d *Dispatcher) play(kind workout.Kind) {
	cue, ok := For(kind)
	if !ok {
		d.logger.Printf("CueDispatcher: No cue for kind %q", kind)
		return
	}
	toggles := d.Toggles()

	if toggles.Sound && cue.Tone != nil {
		if err := d.sinks.Tone.PlayTone(*cue.Tone); err != nil {
			d.logger.Printf("CueDispatcher: Tone failed: %v", err)
		}
	}
	if toggles.Vibration && len(cue.Vibration) > 0 {
		if err := d.sinks.Vibration.Vibrate(cue.Vibration); err != nil {
			d.logger.Printf("CueDispatcher: Vibration failed: %v", err)
		}
	}
	if toggles.Speech && cue.Phrase != "" {
		if err := d.sinks.Speech.Speak(cue.Phrase); err != nil {
			d.logger.Printf("CueDispatcher: Speech failed: %v", err)
		}
	}

	d.played.Notify(Played{Kind: kind, Cue: cue, Toggles: toggles})
}
