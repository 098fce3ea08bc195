package wakelock

import (
	"errors"
)

// ErrInvalidHandle is returned when releasing a handle the provider did not hand out
var ErrInvalidHandle = errors.New("wakelock: invalid handle")

// Handle is an opaque token for one acquired lock
type Handle interface{}

// Provider keeps the display and system awake between Acquire and Release
type Provider interface {
	Acquire() (Handle, error)
	Release(Handle) error
}

// New returns the provider for the current platform. Platforms without a
// usable mechanism get a provider that silently does nothing.
func New() Provider {
	return newProvider()
}

type noopProvider struct{}

type noopHandle struct{}

func (noopProvider) Acquire() (Handle, error) { return noopHandle{}, nil }
func (noopProvider) Release(Handle) error     { return nil }

// Noop is the provider used when keeping awake is unsupported or disabled
var Noop Provider = noopProvider{}
