package native

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	sys "golang.org/x/sys/unix"

	"github.com/go-delve/minidbg/pkg/logflags"
	"github.com/go-delve/minidbg/pkg/proc"
)

const (
	personalityGetPersonality = 0xffffffff // argument to pass to personality syscall to get the current personality
	_ADDR_NO_RANDOMIZE        = 0x0040000  // ADDR_NO_RANDOMIZE linux constant
)

// Launch starts a new process under ptrace control. First entry in
// `cmd` is the program to run, and then rest are the arguments
// to be supplied to that process. `wd` is working directory of the program.
// If tty is not empty the process uses it as its controlling terminal.
//
// The process asks to be traced before executing the program image, so
// the first event reported by Wait is the SIGTRAP stop that follows the
// execve. Launch does not consume that event.
func Launch(cmd []string, wd string, flags LaunchFlags, tty string) (*Process, error) {
	if len(cmd) == 0 {
		return nil, errors.New("no program to launch")
	}

	var (
		process *exec.Cmd
		err     error
	)

	dbp := newProcess(0)

	if flags&LaunchDisableASLR != 0 {
		oldPersonality, _, err := syscall.Syscall(sys.SYS_PERSONALITY, personalityGetPersonality, 0, 0)
		if err == syscall.Errno(0) {
			newPersonality := oldPersonality | _ADDR_NO_RANDOMIZE
			syscall.Syscall(sys.SYS_PERSONALITY, newPersonality, 0, 0)
			defer syscall.Syscall(sys.SYS_PERSONALITY, oldPersonality, 0, 0)
		}
	}

	process = exec.Command(cmd[0])
	process.Args = cmd
	process.Stdin, process.Stdout, process.Stderr = os.Stdin, os.Stdout, os.Stderr
	process.SysProcAttr = &syscall.SysProcAttr{
		Ptrace:  true,
		Setpgid: true,
	}
	if tty != "" {
		dbp.ctty, err = attachProcessToTTY(process, tty)
		if err != nil {
			return nil, err
		}
	}
	if wd != "" {
		process.Dir = wd
	}
	if err := process.Start(); err != nil {
		if dbp.ctty != nil {
			dbp.ctty.Close()
		}
		return nil, fmt.Errorf("could not launch process: %w", err)
	}
	dbp.pid = process.Process.Pid
	dbp.log.Debugf("launched %q as pid %d", cmd[0], dbp.pid)
	return dbp, nil
}

// Wait blocks until the process changes state.
func (dbp *Process) Wait() (proc.Event, error) {
	if dbp.exited {
		return nil, dbp.errExited()
	}
	wpid, status, err := dbp.wait(dbp.pid, 0)
	if err != nil {
		return nil, fmt.Errorf("wait for process %d: %w", dbp.pid, err)
	}
	ev := dbp.event(wpid, status)
	if logflags.Ptrace() {
		dbp.log.Debugf("wait4(%d) -> %v", dbp.pid, ev)
	}
	return ev, nil
}

func (dbp *Process) wait(pid, options int) (int, *sys.WaitStatus, error) {
	var s sys.WaitStatus
	for {
		wpid, err := sys.Wait4(pid, &s, sys.WALL|options, nil)
		if err == sys.EINTR {
			continue
		}
		return wpid, &s, err
	}
}

func (dbp *Process) event(wpid int, status *sys.WaitStatus) proc.Event {
	switch {
	case status.Exited():
		dbp.exited = true
		dbp.exitStatus = status.ExitStatus()
		return proc.ExitedEvent{Pid: wpid, Status: status.ExitStatus()}
	case status.Stopped():
		return proc.StoppedEvent{Pid: wpid, Signal: status.StopSignal()}
	case status.Signaled():
		dbp.exited = true
		dbp.exitSignal = status.Signal()
		desc := fmt.Sprintf("killed by signal %v", status.Signal())
		if status.CoreDump() {
			desc += " (core dumped)"
		}
		return proc.OtherEvent{Pid: wpid, Description: desc, Signal: status.Signal()}
	case status.Continued():
		return proc.OtherEvent{Pid: wpid, Description: "continued"}
	default:
		return proc.OtherEvent{Pid: wpid, Description: fmt.Sprintf("wait status %#x", uint32(*status))}
	}
}

// Resume restarts the stopped process without delivering a signal.
func (dbp *Process) Resume() error {
	if dbp.exited {
		return dbp.errExited()
	}
	dbp.log.Debugf("PTRACE_CONT %d", dbp.pid)
	if err := ptraceCont(dbp.pid, 0); err != nil {
		return fmt.Errorf("could not resume process %d: %w", dbp.pid, err)
	}
	return nil
}

// kill kills the target process and reaps it.
func (dbp *Process) kill() error {
	if dbp.exited {
		return nil
	}
	dbp.log.Debugf("killing %d", dbp.pid)
	if err := killProcess(dbp.pid); err != nil {
		return err
	}
	_, status, err := dbp.wait(dbp.pid, 0)
	if err != nil {
		return err
	}
	dbp.exited = true
	if status.Signaled() {
		dbp.exitSignal = status.Signal()
	} else {
		dbp.exitStatus = status.ExitStatus()
	}
	return nil
}

func killProcess(pid int) error {
	return sys.Kill(pid, sys.SIGKILL)
}
