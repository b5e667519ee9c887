package proc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegister(t *testing.T) {
	for _, name := range RegisterNames() {
		reg, err := ParseRegister(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, reg.String())
	}
	assert.Len(t, RegisterNames(), 27)

	for _, name := range []string{"RAX", "eflags", "", "rax ", "xmm0", "r16"} {
		_, err := ParseRegister(name)
		var ure *UnknownRegisterError
		require.True(t, errors.As(err, &ure), "%q should not be a register", name)
		assert.Equal(t, name, ure.Name)
	}

	_, err := ParseRegister("notareg")
	assert.EqualError(t, err, "Unknown register: notareg")
}

func TestRflagsIsEflags(t *testing.T) {
	reg, err := ParseRegister("rflags")
	require.NoError(t, err)
	assert.Equal(t, RFLAGS, reg)

	regs := &AMD64PtraceRegs{Eflags: 0x246}
	v, err := regs.Get(reg)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x246), v)

	require.NoError(t, regs.Set(reg, 0x202))
	assert.Equal(t, uint64(0x202), regs.Eflags)
}

func TestSnapshotSetTouchesOneField(t *testing.T) {
	for i, name := range RegisterNames() {
		reg := Register(i)
		regs := &AMD64PtraceRegs{}
		require.NoError(t, regs.Set(reg, uint64(i)+100))

		for j := range RegisterNames() {
			v, err := regs.Get(Register(j))
			require.NoError(t, err)
			if j == i {
				assert.Equal(t, uint64(i)+100, v, name)
			} else {
				assert.Zero(t, v, "writing %s changed %s", name, Register(j))
			}
		}
	}
}

func TestInvalidRegister(t *testing.T) {
	regs := &AMD64PtraceRegs{}
	_, err := regs.Get(numRegisters)
	assert.Error(t, err)
	assert.Error(t, regs.Set(numRegisters+1, 1))
	assert.Equal(t, "Register(28)", Register(28).String())
}
