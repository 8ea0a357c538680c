package calculation

import (
	"fmt"
	"io"
)

// Logger is the minimal logging interface the projection engine writes to.
// The default is a no-op so library callers pay nothing for logging.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// WriterLogger writes level-prefixed lines to an io.Writer. Debug lines are
// suppressed unless Verbose is set. Used by the CLI with os.Stderr.
type WriterLogger struct {
	W       io.Writer
	Verbose bool
}

func (l WriterLogger) Debugf(format string, args ...any) {
	if l.Verbose {
		fmt.Fprintf(l.W, "DEBUG "+format+"\n", args...)
	}
}

func (l WriterLogger) Infof(format string, args ...any) {
	fmt.Fprintf(l.W, "INFO  "+format+"\n", args...)
}

func (l WriterLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.W, "WARN  "+format+"\n", args...)
}

func (l WriterLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(l.W, "ERROR "+format+"\n", args...)
}
