package events

import (
	"sync"
	"sync/atomic"
)

// ChannelEvent fans values out to registered channels without ever blocking
// the notifier: a listener whose buffer is full misses that value.
type ChannelEvent[T any] struct {
	mu       sync.RWMutex
	channels map[uint64]chan<- T
	nextID   uint64
	replay   replay[T]
	dropped  atomic.Uint64
}

// NewChannelEvent creates a ChannelEvent. With sendLastEventOnListen set,
// a new listener is sent the last notified value, if any and if it has room.
func NewChannelEvent[T any](sendLastEventOnListen bool) *ChannelEvent[T] {
	return &ChannelEvent[T]{
		channels: make(map[uint64]chan<- T),
		replay:   replay[T]{enabled: sendLastEventOnListen},
	}
}

// Listen registers ch and returns a function that removes it again.
// The channel is never closed by the event.
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("events: channel cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.channels[id] = ch
	last, ok := e.replay.last()
	e.mu.Unlock()

	if ok {
		e.offer(ch, last)
	}

	return func() {
		e.mu.Lock()
		delete(e.channels, id)
		e.mu.Unlock()
	}
}

// Notify offers value to every listener
func (e *ChannelEvent[T]) Notify(value T) {
	e.mu.Lock()
	e.replay.record(value)
	channels := make([]chan<- T, 0, len(e.channels))
	for _, ch := range e.channels {
		channels = append(channels, ch)
	}
	e.mu.Unlock()

	for _, ch := range channels {
		e.offer(ch, value)
	}
}

func (e *ChannelEvent[T]) offer(ch chan<- T, value T) {
	select {
	case ch <- value:
	default:
		e.dropped.Add(1)
	}
}

// LastEvent returns the last notified value when the event replays to late listeners
func (e *ChannelEvent[T]) LastEvent() (T, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.replay.last()
}

// Dropped counts values that were not delivered because a listener was full
func (e *ChannelEvent[T]) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *ChannelEvent[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.channels)
}
