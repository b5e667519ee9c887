package proc

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTracer struct {
	pid    int
	regs   AMD64PtraceRegs
	events []Event

	getErr, setErr, resumeErr error

	gets, sets, resumes int
}

func (f *fakeTracer) Pid() int { return f.pid }

func (f *fakeTracer) Wait() (Event, error) {
	if len(f.events) == 0 {
		return nil, errors.New("no more events")
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

func (f *fakeTracer) Resume() error {
	f.resumes++
	return f.resumeErr
}

func (f *fakeTracer) GetRegisters() (*AMD64PtraceRegs, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	regs := f.regs
	return &regs, nil
}

func (f *fakeTracer) SetRegisters(regs *AMD64PtraceRegs) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.regs = *regs
	return nil
}

func TestWriteReadRoundTrip(t *testing.T) {
	ft := &fakeTracer{pid: 10, regs: AMD64PtraceRegs{Rax: 7}}
	tgt := NewTarget(ft)

	require.NoError(t, tgt.WriteRegister(RBX, 42))
	v, err := tgt.ReadRegister(RBX)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
	assert.Equal(t, uint64(7), ft.regs.Rax)
	assert.Equal(t, 2, ft.gets)
	assert.Equal(t, 1, ft.sets)
}

func TestReadRflags(t *testing.T) {
	ft := &fakeTracer{pid: 10, regs: AMD64PtraceRegs{Eflags: 0x246}}
	v, err := NewTarget(ft).ReadRegister(RFLAGS)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x246), v)
}

func TestRegisterAccessFailures(t *testing.T) {
	ft := &fakeTracer{pid: 10, getErr: syscall.ESRCH}
	tgt := NewTarget(ft)

	_, err := tgt.ReadRegister(RAX)
	var pse *ProcessStateError
	require.True(t, errors.As(err, &pse))
	assert.Equal(t, "get registers", pse.Op)
	assert.True(t, errors.Is(err, syscall.ESRCH))

	err = tgt.WriteRegister(RAX, 1)
	require.True(t, errors.As(err, &pse))
	assert.Equal(t, 0, ft.sets, "no store must be attempted when the fetch fails")

	ft = &fakeTracer{pid: 11, regs: AMD64PtraceRegs{Rax: 1}, setErr: syscall.EPERM}
	tgt = NewTarget(ft)
	err = tgt.WriteRegister(RAX, 99)
	require.True(t, errors.As(err, &pse))
	assert.Equal(t, "set registers", pse.Op)
	assert.Equal(t, uint64(1), ft.regs.Rax)
	assert.EqualError(t, err, "could not set registers of process 11: operation not permitted")
}

func TestInvalidRegisterSkipsTracer(t *testing.T) {
	ft := &fakeTracer{pid: 10}
	tgt := NewTarget(ft)
	_, err := tgt.ReadRegister(numRegisters)
	assert.Error(t, err)
	assert.Error(t, tgt.WriteRegister(numRegisters, 1))
	assert.Zero(t, ft.gets)
	assert.Zero(t, ft.sets)
}

func TestContinueUntilExit(t *testing.T) {
	ft := &fakeTracer{pid: 10, events: []Event{
		StoppedEvent{Pid: 10, Signal: syscall.SIGSEGV},
		ExitedEvent{Pid: 10, Status: 3},
	}}
	tgt := NewTarget(ft)

	ev, err := tgt.Continue()
	require.NoError(t, err)
	assert.Equal(t, StoppedEvent{Pid: 10, Signal: syscall.SIGSEGV}, ev)
	assert.False(t, tgt.Exited())

	ev, err = tgt.Continue()
	require.NoError(t, err)
	assert.Equal(t, ExitedEvent{Pid: 10, Status: 3}, ev)
	assert.True(t, tgt.Exited())

	_, err = tgt.Continue()
	assert.Equal(t, ErrProcessExited{Pid: 10, Status: 3}, err)
	assert.Equal(t, 2, ft.resumes)

	_, err = tgt.ReadRegister(RAX)
	assert.True(t, errors.As(err, new(*ProcessStateError)))
}

func TestContinueUntilKilled(t *testing.T) {
	ft := &fakeTracer{pid: 10, events: []Event{
		OtherEvent{Pid: 10, Description: "continued"},
		OtherEvent{Pid: 10, Description: "killed by signal segmentation fault", Signal: syscall.SIGSEGV},
	}}
	tgt := NewTarget(ft)

	_, err := tgt.Continue()
	require.NoError(t, err)
	assert.False(t, tgt.Exited())

	_, err = tgt.Continue()
	require.NoError(t, err)
	assert.True(t, tgt.Exited())

	_, err = tgt.Continue()
	assert.Equal(t, ErrProcessExited{Pid: 10, Signal: syscall.SIGSEGV}, err)
	assert.Equal(t, "Process 10 was killed by signal segmentation fault", err.Error())
	assert.Equal(t, 2, ft.resumes)
}

func TestEvents(t *testing.T) {
	assert.True(t, IsTrapStop(StoppedEvent{Pid: 1, Signal: syscall.SIGTRAP}))
	assert.False(t, IsTrapStop(StoppedEvent{Pid: 1, Signal: syscall.SIGSTOP}))
	assert.False(t, IsTrapStop(ExitedEvent{Pid: 1}))
	assert.False(t, IsTrapStop(OtherEvent{Pid: 1, Description: "Signaled"}))

	assert.Equal(t, "Exited(pid 4, status 0)", ExitedEvent{Pid: 4}.String())
	assert.Equal(t, "killed by signal killed (pid 4)", OtherEvent{Pid: 4, Description: "killed by signal killed"}.String())
}
