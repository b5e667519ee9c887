package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	terminalHighlightEscapeCode string = "\033[%2dm"
	terminalResetEscapeCode     string = "\033[0m"

	ansiRed = 31
)

// stdoutWriter returns the writer used for terminal output and whether
// escape sequences must be left out of it.
func stdoutWriter() (io.Writer, bool) {
	dumb := strings.ToLower(os.Getenv("TERM")) == "dumb" || !isatty.IsTerminal(os.Stdout.Fd())
	if dumb {
		return os.Stdout, true
	}
	return colorable.NewColorableStdout(), false
}

func (t *Term) printError(err error) {
	prefix := "Error:"
	if !t.dumb {
		prefix = fmt.Sprintf(terminalHighlightEscapeCode, ansiRed) + prefix + terminalResetEscapeCode
	}
	fmt.Fprintf(t.stdout, "%s %v\n", prefix, err)
}
