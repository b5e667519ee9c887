// Package proc is a low-level package that provides methods to manipulate
// the process we are debugging.
//
// proc implements the backend independent half of the debugger:
// * the amd64 register set and its mapping onto a register snapshot
// * the events a traced process reports while it runs
// * Target, which reads and writes registers through a Tracer
//
// The Tracer implementation that talks to the operating system lives in
// the native subpackage.
package proc
