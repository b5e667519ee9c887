package native

import (
	sys "golang.org/x/sys/unix"

	"github.com/go-delve/minidbg/pkg/proc"
)

// GetRegisters reads the general purpose registers of the stopped process
// with PTRACE_GETREGS.
func (dbp *Process) GetRegisters() (*proc.AMD64PtraceRegs, error) {
	if dbp.exited {
		return nil, dbp.errExited()
	}
	var regs proc.AMD64PtraceRegs
	if err := sys.PtraceGetRegs(dbp.pid, (*sys.PtraceRegs)(&regs)); err != nil {
		dbp.log.Debugf("PTRACE_GETREGS %d: %v", dbp.pid, err)
		return nil, err
	}
	return &regs, nil
}

// SetRegisters writes all general purpose registers of the stopped
// process with PTRACE_SETREGS.
func (dbp *Process) SetRegisters(regs *proc.AMD64PtraceRegs) error {
	if dbp.exited {
		return dbp.errExited()
	}
	dbp.log.Debugf("PTRACE_SETREGS %d", dbp.pid)
	return sys.PtraceSetRegs(dbp.pid, (*sys.PtraceRegs)(regs))
}
