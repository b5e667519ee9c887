// Package terminal implements functions for responding to user
// input and dispatching to appropriate backend commands.
package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-delve/minidbg/pkg/proc"
)

const continueKeyword = "continue"

// Command is a parsed debugger command. The set of implementations is
// closed: ContinueCommand, ExitCommand, ReadRegisterCommand and
// WriteRegisterCommand.
type Command interface {
	command()
}

// ContinueCommand resumes the target until its next state change.
type ContinueCommand struct{}

// ExitCommand ends the debugging session.
type ExitCommand struct{}

// ReadRegisterCommand prints the value of one register.
type ReadRegisterCommand struct {
	Reg proc.Register
}

// WriteRegisterCommand stores Value into one register.
type WriteRegisterCommand struct {
	Reg   proc.Register
	Value uint64
}

func (ContinueCommand) command()      {}
func (ExitCommand) command()          {}
func (ReadRegisterCommand) command()  {}
func (WriteRegisterCommand) command() {}

// ErrRegisterUsage is returned when the arguments of the register command
// are missing.
var ErrRegisterUsage = errors.New("register read <register> OR register write <register> <value>")

// UnknownCommandError is returned for input that is not a command.
type UnknownCommandError struct {
	Line string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("Unknown command: %s", e.Line)
}

// InvalidValueError is returned when the value passed to register write
// is not an unsigned 64 bit decimal integer.
type InvalidValueError struct {
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s is not a valid register value", e.Value)
}

// ParseCommand parses a single line of input.
//
// Any prefix of "continue", including the empty string, is a continue
// command. "register read <name>" and "register write <name> <value>"
// access registers, the value being a decimal integer. Everything else,
// including a register sub command other than read or write, is an
// UnknownCommandError.
func ParseCommand(line string) (Command, error) {
	if strings.HasPrefix(continueKeyword, line) {
		return ContinueCommand{}, nil
	}

	args := strings.Fields(line)
	if len(args) == 0 || args[0] != "register" {
		return nil, &UnknownCommandError{Line: line}
	}
	return parseRegisterCommand(line, args[1:])
}

func parseRegisterCommand(line string, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, ErrRegisterUsage
	}
	switch args[0] {
	case "read":
		if len(args) < 2 {
			return nil, ErrRegisterUsage
		}
		reg, err := proc.ParseRegister(args[1])
		if err != nil {
			return nil, err
		}
		return ReadRegisterCommand{Reg: reg}, nil
	case "write":
		if len(args) < 3 {
			return nil, ErrRegisterUsage
		}
		value, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return nil, &InvalidValueError{Value: args[2]}
		}
		reg, err := proc.ParseRegister(args[1])
		if err != nil {
			return nil, err
		}
		return WriteRegisterCommand{Reg: reg, Value: value}, nil
	default:
		return nil, &UnknownCommandError{Line: line}
	}
}
