//go:build !linux
// +build !linux

package native

import (
	"errors"

	"github.com/go-delve/minidbg/pkg/proc"
)

var ErrNativeBackendDisabled = errors.New("native backend only available on linux")

// Launch returns ErrNativeBackendDisabled.
func Launch(_ []string, _ string, _ LaunchFlags, _ string) (*Process, error) {
	return nil, ErrNativeBackendDisabled
}

// Wait returns ErrNativeBackendDisabled.
func (dbp *Process) Wait() (proc.Event, error) {
	return nil, ErrNativeBackendDisabled
}

// Resume returns ErrNativeBackendDisabled.
func (dbp *Process) Resume() error {
	return ErrNativeBackendDisabled
}

// GetRegisters returns ErrNativeBackendDisabled.
func (dbp *Process) GetRegisters() (*proc.AMD64PtraceRegs, error) {
	return nil, ErrNativeBackendDisabled
}

// SetRegisters returns ErrNativeBackendDisabled.
func (dbp *Process) SetRegisters(*proc.AMD64PtraceRegs) error {
	return ErrNativeBackendDisabled
}

func (dbp *Process) kill() error {
	return ErrNativeBackendDisabled
}

func killProcess(int) error {
	return ErrNativeBackendDisabled
}
