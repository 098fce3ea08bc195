package events

// replay remembers the most recent notification for events created with
// sendLastEventOnListen so that late listeners can catch up.
type replay[T any] struct {
	enabled bool
	value   T
	set     bool
}

func (r *replay[T]) record(value T) {
	if !r.enabled {
		return
	}
	r.value = value
	r.set = true
}

func (r *replay[T]) last() (T, bool) {
	if !r.enabled || !r.set {
		var zero T
		return zero, false
	}
	return r.value, true
}
