package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-delve/liner"

	"github.com/go-delve/minidbg/pkg/config"
	"github.com/go-delve/minidbg/pkg/logflags"
	"github.com/go-delve/minidbg/pkg/proc"
)

const (
	historyFile string = ".minidbg_history"
	prompt      string = "debugger> "
)

// LineReader reads command lines from the operator.
//
// Prompt must return io.EOF when the input is exhausted and
// liner.ErrPromptAborted when the operator interrupts the prompt, both
// end the session.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// historyStore is implemented by line readers that can persist their
// history, like *liner.State.
type historyStore interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// UnexpectedEventError is returned by Run when the first event reported
// by the target is not the trap stop that follows the exec.
type UnexpectedEventError struct {
	Event proc.Event
}

func (e *UnexpectedEventError) Error() string {
	return fmt.Sprintf("Unexpected event: %v", e.Event)
}

// Term represents the terminal running minidbg.
type Term struct {
	target   *proc.Target
	conf     *config.Config
	prompt   string
	line     LineReader
	liner    *liner.State
	dumb     bool
	stdout   io.Writer
	log      logflags.Logger
	lineLog  logflags.Logger
	InitFile string
}

// New returns a new Term reading commands from the controlling terminal.
func New(target *proc.Target, conf *config.Config) *Term {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(newCompleter())

	stdout, dumb := stdoutWriter()
	t := newTerm(target, conf, state, stdout)
	t.liner = state
	t.dumb = dumb
	return t
}

func newTerm(target *proc.Target, conf *config.Config, line LineReader, stdout io.Writer) *Term {
	if conf == nil {
		conf = &config.Config{}
	}
	return &Term{
		target:  target,
		conf:    conf,
		prompt:  prompt,
		line:    line,
		dumb:    true,
		stdout:  stdout,
		log:     logflags.DebuggerLogger(),
		lineLog: logflags.TerminalLogger(),
	}
}

// Close returns the terminal to its previous mode.
func (t *Term) Close() {
	if t.liner != nil {
		t.liner.Close()
	}
}

// Run waits for the target to stop after the exec and then reads and
// executes commands until the operator exits or the target terminates.
// The returned status is 0 for a normal end of the session.
func (t *Term) Run() (int, error) {
	defer t.Close()

	if err := t.attach(); err != nil {
		return 1, err
	}

	t.loadHistory()
	defer t.saveHistory()

	if t.InitFile != "" {
		done, err := t.executeFile(t.InitFile)
		if err != nil {
			return 1, err
		}
		if done {
			return 0, nil
		}
	}

	for {
		cmd, err := t.promptForInput()
		if err != nil {
			return 1, err
		}
		done, err := t.execute(cmd)
		if err != nil {
			return 1, err
		}
		if done {
			return 0, nil
		}
	}
}

func (t *Term) attach() error {
	ev, err := t.target.Wait()
	if err != nil {
		return err
	}
	if !proc.IsTrapStop(ev) {
		return &UnexpectedEventError{Event: ev}
	}
	if logflags.Debugger() {
		t.log.Debugf("attached: %v", ev)
	}
	fmt.Fprintf(t.stdout, "Debugger attached to %d\n", t.target.Pid())
	return nil
}

// promptForInput reads lines until one of them parses. Interrupting the
// prompt or reaching the end of the input is an ExitCommand.
func (t *Term) promptForInput() (Command, error) {
	for {
		l, err := t.line.Prompt(t.prompt)
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				fmt.Fprintln(t.stdout, "exit")
				return ExitCommand{}, nil
			}
			return nil, fmt.Errorf("Prompt for input failed: %w", err)
		}

		l = strings.TrimSuffix(l, "\n")
		if logflags.Terminal() {
			t.lineLog.Debugf("read %q", l)
		}
		cmd, err := ParseCommand(l)
		if err != nil {
			fmt.Fprintln(t.stdout, err)
			continue
		}
		if l != "" {
			t.line.AppendHistory(l)
		}
		return cmd, nil
	}
}

// execute runs cmd against the target. It returns true when the session
// is over.
func (t *Term) execute(cmd Command) (bool, error) {
	switch cmd := cmd.(type) {
	case ContinueCommand:
		ev, err := t.target.Continue()
		if err != nil {
			return false, err
		}
		if exited, ok := ev.(proc.ExitedEvent); ok {
			t.log.Debugf("debuggee exited with status %d", exited.Status)
			fmt.Fprintln(t.stdout, "Debuggee exited")
			return true, nil
		}
		fmt.Fprintf(t.stdout, "Received event: %v\n", ev)
	case ExitCommand:
		return true, nil
	case ReadRegisterCommand:
		v, err := t.target.ReadRegister(cmd.Reg)
		if err != nil {
			t.printError(err)
			break
		}
		fmt.Fprintln(t.stdout, t.conf.FormatRegister(v))
	case WriteRegisterCommand:
		if err := t.target.WriteRegister(cmd.Reg, cmd.Value); err != nil {
			t.printError(err)
			break
		}
		fmt.Fprintln(t.stdout, "Register updated")
	default:
		return false, fmt.Errorf("unknown command type %T", cmd)
	}
	return false, nil
}

// executeFile runs the commands in the file name, one per line. Empty
// lines and lines starting with '#' are skipped.
func (t *Term) executeFile(name string) (bool, error) {
	fh, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer fh.Close()

	scanner := bufio.NewScanner(fh)
	lineno := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineno++

		if line == "" || line[0] == '#' {
			continue
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintf(t.stdout, "%s:%d: %v\n", name, lineno, err)
			continue
		}
		done, err := t.execute(cmd)
		if err != nil || done {
			return done, err
		}
	}

	return false, scanner.Err()
}

func (t *Term) loadHistory() {
	h, ok := t.line.(historyStore)
	if !ok || !t.conf.HistoryEnabled() {
		return
	}
	fullHistoryFile, err := config.GetConfigFilePath(historyFile)
	if err != nil {
		fmt.Fprintf(t.stdout, "Unable to load history file: %v.\n", err)
		return
	}
	f, err := os.Open(fullHistoryFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(t.stdout, "Unable to open history file: %v.\n", err)
		}
		return
	}
	defer f.Close()
	n, err := h.ReadHistory(f)
	if err != nil {
		t.lineLog.Warnf("reading history: %v", err)
		return
	}
	t.lineLog.Debugf("loaded %d history entries from %s", n, fullHistoryFile)
}

func (t *Term) saveHistory() {
	h, ok := t.line.(historyStore)
	if !ok || !t.conf.HistoryEnabled() {
		return
	}
	fullHistoryFile, err := config.GetConfigFilePath(historyFile)
	if err != nil {
		fmt.Fprintln(t.stdout, "Error saving history file:", err)
		return
	}
	var sb strings.Builder
	if _, err := h.WriteHistory(&sb); err != nil {
		fmt.Fprintln(t.stdout, "readline history error:", err)
		return
	}
	data := sb.String()
	if t.conf.MaxHistory != nil {
		data = trimHistory(data, *t.conf.MaxHistory)
	}
	if err := os.WriteFile(fullHistoryFile, []byte(data), 0600); err != nil {
		fmt.Fprintln(t.stdout, "Error saving history file:", err)
	}
}

// trimHistory keeps the last max lines of history.
func trimHistory(history string, max int) string {
	if max < 0 {
		return history
	}
	lines := strings.SplitAfter(history, "\n")
	if n := len(lines); lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return strings.Join(lines, "")
}
