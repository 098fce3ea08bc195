package wakelock

import (
	"bytes"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	acquires   int
	releases   int
	acquireErr error
	released   []Handle
}

func (p *fakeProvider) Acquire() (Handle, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquires++
	return p.acquires, nil
}

func (p *fakeProvider) Release(h Handle) error {
	p.releases++
	p.released = append(p.released, h)
	return nil
}

func TestHolder_AcquireReleaseArePaired(t *testing.T) {
	provider := &fakeProvider{}
	h := NewHolder(log.New(io.Discard, "", 0), provider)

	h.Release()
	h.Acquire()
	h.Acquire()
	assert.True(t, h.Held())
	h.Release()
	h.Release()
	h.Acquire()
	h.Release()

	assert.False(t, h.Held())
	assert.Equal(t, 2, provider.acquires)
	assert.Equal(t, 2, provider.releases)
	assert.Equal(t, []Handle{1, 2}, provider.released)
}

func TestHolder_AcquireFailureIsLoggedAndNotHeld(t *testing.T) {
	provider := &fakeProvider{acquireErr: errors.New("inhibitor busy")}
	var buf bytes.Buffer
	h := NewHolder(log.New(&buf, "", 0), provider)

	h.Acquire()
	h.Release()

	assert.False(t, h.Held())
	assert.Zero(t, provider.releases)
	assert.Contains(t, buf.String(), "WakeLock: Could not keep the screen awake: inhibitor busy")
}

func TestHolder_NilProviderIsNoop(t *testing.T) {
	h := NewHolder(log.New(io.Discard, "", 0), nil)
	h.Acquire()
	assert.True(t, h.Held())
	h.Release()
	assert.False(t, h.Held())
}

func TestNewHolder_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { NewHolder(nil, Noop) })
}

func TestNew_ReturnsProvider(t *testing.T) {
	p := New()
	require.NotNil(t, p)

	handle, err := p.Acquire()
	require.NoError(t, err)
	assert.NoError(t, p.Release(handle))
}
