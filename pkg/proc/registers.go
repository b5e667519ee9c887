package proc

import "fmt"

// Register identifies one of the amd64 registers that can be read or
// written by the debugger.
type Register uint8

const (
	RAX Register = iota
	RBX
	RCX
	RDX
	RDI
	RSI
	RBP
	RSP
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	RIP
	RFLAGS
	CS
	OrigRAX
	FSBase
	GSBase
	FS
	GS
	SS
	DS
	ES

	numRegisters
)

// AMD64PtraceRegs is the struct used by the linux kernel to return the
// general purpose registers for AMD64 CPUs (struct user_regs_struct).
type AMD64PtraceRegs struct {
	R15      uint64
	R14      uint64
	R13      uint64
	R12      uint64
	Rbp      uint64
	Rbx      uint64
	R11      uint64
	R10      uint64
	R9       uint64
	R8       uint64
	Rax      uint64
	Rcx      uint64
	Rdx      uint64
	Rsi      uint64
	Rdi      uint64
	Orig_rax uint64
	Rip      uint64
	Cs       uint64
	Eflags   uint64
	Rsp      uint64
	Ss       uint64
	Fs_base  uint64
	Gs_base  uint64
	Ds       uint64
	Es       uint64
	Fs       uint64
	Gs       uint64
}

// registerTable maps every Register to its symbolic name and to the
// snapshot field backing it. Reads and writes both go through field.
var registerTable = [numRegisters]struct {
	name  string
	field func(*AMD64PtraceRegs) *uint64
}{
	RAX:     {"rax", func(r *AMD64PtraceRegs) *uint64 { return &r.Rax }},
	RBX:     {"rbx", func(r *AMD64PtraceRegs) *uint64 { return &r.Rbx }},
	RCX:     {"rcx", func(r *AMD64PtraceRegs) *uint64 { return &r.Rcx }},
	RDX:     {"rdx", func(r *AMD64PtraceRegs) *uint64 { return &r.Rdx }},
	RDI:     {"rdi", func(r *AMD64PtraceRegs) *uint64 { return &r.Rdi }},
	RSI:     {"rsi", func(r *AMD64PtraceRegs) *uint64 { return &r.Rsi }},
	RBP:     {"rbp", func(r *AMD64PtraceRegs) *uint64 { return &r.Rbp }},
	RSP:     {"rsp", func(r *AMD64PtraceRegs) *uint64 { return &r.Rsp }},
	R8:      {"r8", func(r *AMD64PtraceRegs) *uint64 { return &r.R8 }},
	R9:      {"r9", func(r *AMD64PtraceRegs) *uint64 { return &r.R9 }},
	R10:     {"r10", func(r *AMD64PtraceRegs) *uint64 { return &r.R10 }},
	R11:     {"r11", func(r *AMD64PtraceRegs) *uint64 { return &r.R11 }},
	R12:     {"r12", func(r *AMD64PtraceRegs) *uint64 { return &r.R12 }},
	R13:     {"r13", func(r *AMD64PtraceRegs) *uint64 { return &r.R13 }},
	R14:     {"r14", func(r *AMD64PtraceRegs) *uint64 { return &r.R14 }},
	R15:     {"r15", func(r *AMD64PtraceRegs) *uint64 { return &r.R15 }},
	RIP:     {"rip", func(r *AMD64PtraceRegs) *uint64 { return &r.Rip }},
	RFLAGS:  {"rflags", func(r *AMD64PtraceRegs) *uint64 { return &r.Eflags }},
	CS:      {"cs", func(r *AMD64PtraceRegs) *uint64 { return &r.Cs }},
	OrigRAX: {"orig_rax", func(r *AMD64PtraceRegs) *uint64 { return &r.Orig_rax }},
	FSBase:  {"fs_base", func(r *AMD64PtraceRegs) *uint64 { return &r.Fs_base }},
	GSBase:  {"gs_base", func(r *AMD64PtraceRegs) *uint64 { return &r.Gs_base }},
	FS:      {"fs", func(r *AMD64PtraceRegs) *uint64 { return &r.Fs }},
	GS:      {"gs", func(r *AMD64PtraceRegs) *uint64 { return &r.Gs }},
	SS:      {"ss", func(r *AMD64PtraceRegs) *uint64 { return &r.Ss }},
	DS:      {"ds", func(r *AMD64PtraceRegs) *uint64 { return &r.Ds }},
	ES:      {"es", func(r *AMD64PtraceRegs) *uint64 { return &r.Es }},
}

var registersByName = func() map[string]Register {
	m := make(map[string]Register, numRegisters)
	for i := range registerTable {
		m[registerTable[i].name] = Register(i)
	}
	return m
}()

// UnknownRegisterError is returned when a register name does not match
// any known register.
type UnknownRegisterError struct {
	Name string
}

func (e *UnknownRegisterError) Error() string {
	return fmt.Sprintf("Unknown register: %s", e.Name)
}

// ParseRegister returns the register called name. The match is exact and
// case sensitive.
func ParseRegister(name string) (Register, error) {
	if reg, ok := registersByName[name]; ok {
		return reg, nil
	}
	return 0, &UnknownRegisterError{Name: name}
}

// RegisterNames returns the names of all registers in declaration order.
func RegisterNames() []string {
	r := make([]string, 0, numRegisters)
	for i := range registerTable {
		r = append(r, registerTable[i].name)
	}
	return r
}

func (reg Register) valid() bool {
	return reg < numRegisters
}

func (reg Register) String() string {
	if !reg.valid() {
		return fmt.Sprintf("Register(%d)", uint8(reg))
	}
	return registerTable[reg].name
}

// Get returns the value of reg in the snapshot.
func (r *AMD64PtraceRegs) Get(reg Register) (uint64, error) {
	if !reg.valid() {
		return 0, &UnknownRegisterError{Name: reg.String()}
	}
	return *registerTable[reg].field(r), nil
}

// Set overwrites the value of reg in the snapshot, leaving every other
// field untouched.
func (r *AMD64PtraceRegs) Set(reg Register, value uint64) error {
	if !reg.valid() {
		return &UnknownRegisterError{Name: reg.String()}
	}
	*registerTable[reg].field(r) = value
	return nil
}
