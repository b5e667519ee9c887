//go:build linux && !amd64
// +build linux,!amd64

package native

import (
	"fmt"
	"runtime"

	"github.com/go-delve/minidbg/pkg/proc"
)

// GetRegisters is only implemented on linux/amd64.
func (dbp *Process) GetRegisters() (*proc.AMD64PtraceRegs, error) {
	return nil, fmt.Errorf("register access not supported on %s", runtime.GOARCH)
}

// SetRegisters is only implemented on linux/amd64.
func (dbp *Process) SetRegisters(*proc.AMD64PtraceRegs) error {
	return fmt.Errorf("register access not supported on %s", runtime.GOARCH)
}
