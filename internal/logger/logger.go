package logger

import (
	"log"
	"os"
)

// Logger is the logging contract used across the engine and interface layers.
// Implementations should be safe for concurrent use.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// StdLogger wraps Go's standard logger. Output goes to stderr so the MCP
// stdio transport keeps stdout clean for protocol frames.
type StdLogger struct {
	logger *log.Logger
	debug  bool
}

// NewStdLogger creates a new StdLogger writing to stderr.
func NewStdLogger() *StdLogger {
	return &StdLogger{
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// SetDebug toggles emission of Debug messages.
func (l *StdLogger) SetDebug(on bool) {
	l.debug = on
}

func (l *StdLogger) Info(msg string, args ...any) {
	l.logger.Printf("[INFO] "+msg, args...)
}

func (l *StdLogger) Warn(msg string, args ...any) {
	l.logger.Printf("[WARN] "+msg, args...)
}

func (l *StdLogger) Error(msg string, args ...any) {
	l.logger.Printf("[ERROR] "+msg, args...)
}

func (l *StdLogger) Debug(msg string, args ...any) {
	if !l.debug {
		return
	}
	l.logger.Printf("[DEBUG] "+msg, args...)
}

// Default is the global logger instance.
var Default Logger = NewStdLogger()
