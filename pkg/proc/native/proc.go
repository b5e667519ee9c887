package native

import (
	"os"
	"syscall"

	"github.com/go-delve/minidbg/pkg/logflags"
	"github.com/go-delve/minidbg/pkg/proc"
)

// LaunchFlags modify how the target process is started.
type LaunchFlags uint8

const (
	// LaunchDisableASLR turns off address space layout randomization for
	// the new process.
	LaunchDisableASLR LaunchFlags = 1 << iota
)

// Process represents all of the information the debugger
// is holding onto regarding the process we are debugging.
//
// Linux requires every ptrace request to come from the thread that
// started tracing, callers must keep all calls on a single goroutine
// locked to its OS thread (see runtime.LockOSThread).
type Process struct {
	pid int // Process Pid

	ctty *os.File // controlling terminal of the process, if one was passed to Launch

	exited     bool
	exitStatus int
	exitSignal syscall.Signal // set when the process was killed by a signal

	log logflags.Logger
}

var _ proc.Tracer = (*Process)(nil)

func newProcess(pid int) *Process {
	return &Process{
		pid: pid,
		log: logflags.PtraceLogger(),
	}
}

// Pid returns the process ID.
func (dbp *Process) Pid() int {
	return dbp.pid
}

// Exited returns true if the process has exited or was killed.
func (dbp *Process) Exited() bool {
	return dbp.exited
}

func (dbp *Process) errExited() error {
	return proc.ErrProcessExited{Pid: dbp.pid, Status: dbp.exitStatus, Signal: dbp.exitSignal}
}

// Kill kills the process, waits for it to go away and releases its
// controlling terminal. Killing a process that already exited is a no-op.
func (dbp *Process) Kill() error {
	defer func() {
		if dbp.ctty != nil {
			dbp.ctty.Close()
			dbp.ctty = nil
		}
	}()
	return dbp.kill()
}
