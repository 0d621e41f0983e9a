package webvr

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// loggerState is shared by a DefaultLogger and every component logger derived
// from it, so one SetDebug call toggles them all.
type loggerState struct {
	mu    sync.Mutex
	debug bool
	out   *log.Logger
	err   *log.Logger
}

// DefaultLogger writes INFO and DEBUG to stdout and WARN and ERROR to stderr as
// "[prefix] LEVEL component: message".
type DefaultLogger struct {
	state     *loggerState
	prefix    string
	component string
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewDefaultLoggerTo(os.Stdout, os.Stderr, prefix, debug)
}

func NewDefaultLoggerTo(out, errOut io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		state: &loggerState{
			debug: debug,
			out:   log.New(out, "", flags),
			err:   log.New(errOut, "", flags),
		},
		prefix: prefix,
	}
}

// Component returns a logger tagging its lines with name. It shares output and
// the debug switch with l.
func (l *DefaultLogger) Component(name string) *DefaultLogger {
	return &DefaultLogger{state: l.state, prefix: l.prefix, component: name}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	return l.state.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.state.mu.Lock()
	l.state.debug = enabled
	l.state.mu.Unlock()
}

func (l *DefaultLogger) line(level string, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if l.component != "" {
		msg = l.component + ": " + msg
	}
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s %s", l.prefix, level, msg)
	}
	return level + " " + msg
}

// Debugf is a no-op unless debug is enabled.
func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.state.out.Print(l.line("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.state.out.Print(l.line("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.state.err.Print(l.line("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.state.err.Print(l.line("ERROR", format, args...))
}

// componentLogger tags lines for loggers that know nothing about components.
type componentLogger struct {
	Logger
	component string
}

func (c componentLogger) Debugf(format string, args ...any) {
	c.Logger.Debugf(c.component+": "+format, args...)
}

func (c componentLogger) Infof(format string, args ...any) {
	c.Logger.Infof(c.component+": "+format, args...)
}

func (c componentLogger) Warnf(format string, args ...any) {
	c.Logger.Warnf(c.component+": "+format, args...)
}

func (c componentLogger) Errorf(format string, args ...any) {
	c.Logger.Errorf(c.component+": "+format, args...)
}

// WithComponent tags l's output with name. A nil logger stays silent.
func WithComponent(l Logger, name string) Logger {
	switch v := l.(type) {
	case nil:
		return NewNopLogger()
	case *nopLogger:
		return v
	case *DefaultLogger:
		if v == nil {
			return NewNopLogger()
		}
		return v.Component(name)
	default:
		return componentLogger{Logger: l, component: name}
	}
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// orNop never returns nil.
func orNop(l Logger) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return l
}
