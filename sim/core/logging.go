package core

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Logger is the leveled logging surface shared by the app and the GPU
// backend. Info and debug lines go to stdout, warnings and errors to
// stderr.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type DefaultLogger struct {
	debug atomic.Bool
	out   *log.Logger
	err   *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	if prefix != "" {
		prefix += " "
	}
	flags := log.LstdFlags | log.Lmicroseconds
	l := &DefaultLogger{
		out: log.New(os.Stdout, prefix, flags),
		err: log.New(os.Stderr, prefix, flags),
	}
	l.debug.Store(debug)
	return l
}

// SetDebug toggles debug output. Safe to call while other goroutines
// are logging.
func (l *DefaultLogger) SetDebug(enabled bool) { l.debug.Store(enabled) }

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.debug.Load() {
		l.out.Print("DEBUG ", fmt.Sprintf(format, args...))
	}
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print("INFO ", fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print("WARN ", fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print("ERROR ", fmt.Sprintf(format, args...))
}
