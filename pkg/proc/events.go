package proc

import (
	"fmt"
	"syscall"
)

// Event is a state change reported by the traced process. The set of
// implementations is closed: StoppedEvent, ExitedEvent and OtherEvent.
type Event interface {
	fmt.Stringer
	event()
}

// StoppedEvent is reported when the process stops because of a signal.
// The post-exec trap stop is a StoppedEvent with Signal SIGTRAP.
type StoppedEvent struct {
	Pid    int
	Signal syscall.Signal
}

// ExitedEvent is reported when the process exits normally.
type ExitedEvent struct {
	Pid    int
	Status int
}

// OtherEvent is any state change that is neither a signal stop nor a
// normal exit (e.g. the process was killed by a signal). Description is
// printed as is.
type OtherEvent struct {
	Pid         int
	Description string
	// Signal is the signal that terminated the process, zero if the
	// process is still alive.
	Signal syscall.Signal
}

func (StoppedEvent) event() {}
func (ExitedEvent) event()  {}
func (OtherEvent) event()   {}

func (e StoppedEvent) String() string {
	return fmt.Sprintf("Stopped(pid %d, signal %d: %v)", e.Pid, int(e.Signal), e.Signal)
}

func (e ExitedEvent) String() string {
	return fmt.Sprintf("Exited(pid %d, status %d)", e.Pid, e.Status)
}

func (e OtherEvent) String() string {
	return fmt.Sprintf("%s (pid %d)", e.Description, e.Pid)
}

// IsTrapStop returns true if ev is a stop caused by SIGTRAP.
func IsTrapStop(ev Event) bool {
	s, ok := ev.(StoppedEvent)
	return ok && s.Signal == syscall.SIGTRAP
}
