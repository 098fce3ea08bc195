package events

import (
	"sync"
)

type callbackEntry[T any] struct {
	id       uint64
	callback func(T)
}

// CallbackEvent calls every listener synchronously, in registration order,
// on the goroutine that called Notify
type CallbackEvent[T any] struct {
	mu        sync.RWMutex
	listeners []callbackEntry[T]
	nextID    uint64
	replay    replay[T]
}

// NewCallbackEvent creates a CallbackEvent. With sendLastEventOnListen set,
// a new listener is called straight away with the last notified value, if any.
func NewCallbackEvent[T any](sendLastEventOnListen bool) *CallbackEvent[T] {
	return &CallbackEvent[T]{replay: replay[T]{enabled: sendLastEventOnListen}}
}

// Listen registers callback and returns a function that removes it again.
// The returned function is safe to call more than once, including from
// inside the callback.
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("events: callback cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners = append(e.listeners, callbackEntry[T]{id: id, callback: callback})
	last, ok := e.replay.last()
	e.mu.Unlock()

	if ok {
		callback(last)
	}

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify calls each listener with value. Listeners run outside the lock so
// they may Listen, unregister or Notify themselves.
func (e *CallbackEvent[T]) Notify(value T) {
	e.mu.Lock()
	e.replay.record(value)
	listeners := make([]func(T), len(e.listeners))
	for i, l := range e.listeners {
		listeners[i] = l.callback
	}
	e.mu.Unlock()

	for _, callback := range listeners {
		callback(value)
	}
}

// LastEvent returns the last notified value when the event replays to late listeners
func (e *CallbackEvent[T]) LastEvent() (T, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.replay.last()
}

func (e *CallbackEvent[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}
