package wakelock

import (
	"fmt"
	"os/exec"
)

// commandProvider holds a lock for as long as a helper process runs
type commandProvider struct {
	path string
	args []string
}

type processHandle struct {
	cmd *exec.Cmd
}

func newCommandProvider(name string, args ...string) Provider {
	path, err := exec.LookPath(name)
	if err != nil {
		return Noop
	}
	return &commandProvider{path: path, args: args}
}

func (p *commandProvider) Acquire() (Handle, error) {
	cmd := exec.Command(p.path, p.args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", p.path, err)
	}
	return &processHandle{cmd: cmd}, nil
}

func (p *commandProvider) Release(h Handle) error {
	handle, ok := h.(*processHandle)
	if !ok || handle == nil {
		return ErrInvalidHandle
	}
	if err := handle.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stopping %s: %w", p.path, err)
	}
	// Wait reports the kill signal, which is how the helper is expected to end.
	_ = handle.cmd.Wait()
	return nil
}
