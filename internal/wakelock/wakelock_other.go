//go:build !linux && !darwin

package wakelock

func newProvider() Provider {
	return Noop
}
