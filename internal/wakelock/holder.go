package wakelock

import (
	"log"
	"sync"
)

// Holder pairs Acquire and Release calls on a provider. Repeated calls are
// no-ops and failures are logged, never returned.
type Holder struct {
	logger   *log.Logger
	provider Provider

	mu     sync.Mutex
	handle Handle
	held   bool
}

func NewHolder(logger *log.Logger, provider Provider) *Holder {
	if logger == nil {
		panic("WakeLock: logger cannot be nil")
	}
	if provider == nil {
		provider = Noop
	}
	return &Holder{logger: logger, provider: provider}
}

func (h *Holder) Acquire() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.held {
		return
	}
	handle, err := h.provider.Acquire()
	if err != nil {
		h.logger.Printf("WakeLock: Could not keep the screen awake: %v", err)
		return
	}
	h.handle = handle
	h.held = true
}

func (h *Holder) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.held {
		return
	}
	if err := h.provider.Release(h.handle); err != nil {
		h.logger.Printf("WakeLock: Release failed: %v", err)
	}
	h.handle = nil
	h.held = false
}

// Held reports whether a lock is currently held
func (h *Holder) Held() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.held
}
