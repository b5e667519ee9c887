package logflags

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is what minidbg components log through. Each component gets its
// own Logger from DebuggerLogger, PtraceLogger or TerminalLogger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Fields are attached to every line written by a component logger.
type Fields map[string]interface{}

// LoggerFactory builds the Logger of one component. flag reports whether
// the component was selected with --log-output, out is the --log-dest
// writer or nil for stderr.
type LoggerFactory func(flag bool, fields Fields, out io.Writer) Logger

var loggerFactory LoggerFactory

// SetLoggerFactory replaces the logrus loggers handed out by this package
// with the ones built by lf. Passing nil restores logrus.
func SetLoggerFactory(lf LoggerFactory) {
	loggerFactory = lf
}

type logrusLogger struct {
	*logrus.Entry
}
