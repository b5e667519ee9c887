package proc

import (
	"errors"
	"fmt"
	"syscall"
)

// Tracer is the set of process tracing primitives the debugger needs from
// the operating system. Every method must be called from the goroutine
// that created the traced process.
type Tracer interface {
	// Pid returns the process ID of the tracee.
	Pid() int
	// Wait blocks until the tracee reports its next state change.
	Wait() (Event, error)
	// Resume restarts a stopped tracee without injecting a signal.
	Resume() error
	// GetRegisters returns a fresh snapshot of the tracee registers.
	GetRegisters() (*AMD64PtraceRegs, error)
	// SetRegisters replaces the tracee registers with regs.
	SetRegisters(regs *AMD64PtraceRegs) error
}

// RegisterAccess reads and writes single registers of a stopped process.
type RegisterAccess interface {
	ReadRegister(reg Register) (uint64, error)
	WriteRegister(reg Register, value uint64) error
}

// ErrProcessExited indicates that the process has exited and contains both
// process id and exit status. Signal is set instead of Status when the
// process was killed by a signal.
type ErrProcessExited struct {
	Pid    int
	Status int
	Signal syscall.Signal
}

func (pe ErrProcessExited) Error() string {
	if pe.Signal != 0 {
		return fmt.Sprintf("Process %d was killed by signal %v", pe.Pid, pe.Signal)
	}
	return fmt.Sprintf("Process %d has exited with status %d", pe.Pid, pe.Status)
}

// ProcessStateError is returned when the register state of the process
// could not be fetched or stored, usually because the process is not
// stopped under our control.
type ProcessStateError struct {
	Pid int
	Op  string
	Err error
}

func (e *ProcessStateError) Error() string {
	return fmt.Sprintf("could not %s of process %d: %v", e.Op, e.Pid, e.Err)
}

func (e *ProcessStateError) Unwrap() error {
	return e.Err
}

// Target is the process being debugged. It owns the Tracer for the whole
// debugging session.
type Target struct {
	tracer Tracer

	exit *ErrProcessExited
}

// NewTarget returns a Target driving the process behind tracer.
func NewTarget(tracer Tracer) *Target {
	return &Target{tracer: tracer}
}

// Pid returns the process ID.
func (t *Target) Pid() int {
	return t.tracer.Pid()
}

// Exited returns true if the process has been observed exiting.
func (t *Target) Exited() bool {
	return t.exit != nil
}

// Wait blocks until the process reports a state change.
func (t *Target) Wait() (Event, error) {
	if t.exit != nil {
		return nil, *t.exit
	}
	ev, err := t.tracer.Wait()
	if err != nil {
		return nil, err
	}
	switch e := ev.(type) {
	case ExitedEvent:
		t.exit = &ErrProcessExited{Pid: t.Pid(), Status: e.Status}
	case OtherEvent:
		if e.Signal != 0 {
			t.exit = &ErrProcessExited{Pid: t.Pid(), Signal: e.Signal}
		}
	}
	return ev, nil
}

// Resume restarts the stopped process.
func (t *Target) Resume() error {
	if t.exit != nil {
		return *t.exit
	}
	return t.tracer.Resume()
}

// Continue resumes the process and waits for its next state change.
func (t *Target) Continue() (Event, error) {
	if err := t.Resume(); err != nil {
		return nil, err
	}
	return t.Wait()
}

// ReadRegister fetches a fresh register snapshot and returns the value of
// reg.
func (t *Target) ReadRegister(reg Register) (uint64, error) {
	if !reg.valid() {
		return 0, &UnknownRegisterError{Name: reg.String()}
	}
	regs, err := t.getRegisters()
	if err != nil {
		return 0, err
	}
	return regs.Get(reg)
}

// WriteRegister fetches a fresh register snapshot, replaces reg with
// value and stores the whole snapshot back.
func (t *Target) WriteRegister(reg Register, value uint64) error {
	if !reg.valid() {
		return &UnknownRegisterError{Name: reg.String()}
	}
	regs, err := t.getRegisters()
	if err != nil {
		return err
	}
	if err := regs.Set(reg, value); err != nil {
		return err
	}
	if err := t.tracer.SetRegisters(regs); err != nil {
		return &ProcessStateError{Pid: t.Pid(), Op: "set registers", Err: err}
	}
	return nil
}

func (t *Target) getRegisters() (*AMD64PtraceRegs, error) {
	if t.exit != nil {
		return nil, &ProcessStateError{Pid: t.Pid(), Op: "get registers", Err: *t.exit}
	}
	regs, err := t.tracer.GetRegisters()
	if err != nil {
		return nil, &ProcessStateError{Pid: t.Pid(), Op: "get registers", Err: err}
	}
	if regs == nil {
		return nil, &ProcessStateError{Pid: t.Pid(), Op: "get registers", Err: errors.New("no register state")}
	}
	return regs, nil
}
