package logger

import (
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// ParseLevel maps a configured level name to a LogLevel.
func ParseLevel(level string) (LogLevel, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warning", "warn":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	default:
		return WarnLevel, false
	}
}

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

// Init initializes the logger. Output goes to stderr so it never
// interleaves with the rendered display on stdout.
func Init(level LogLevel, isService bool) {
	InitWithWriter(os.Stderr, level, isService)
}

// InitWithWriter initializes the logger with an explicit output.
func InitWithWriter(w io.Writer, level LogLevel, isService bool) {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	if isService {
		output.TimeFormat = ""
		output.FormatTimestamp = func(_ interface{}) string {
			return ""
		}
	}

	log = zerolog.New(output).With().Timestamp().Logger()

	SetLogLevel(level)
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// IsService checks if the application is running as a service
func IsService() bool {
	if _, err := os.Stdin.Stat(); err != nil {
		return true
	}
	if os.Getenv("SERVICE_NAME") != "" || os.Getenv("INVOCATION_ID") != "" {
		return true
	}
	if os.Getppid() == 1 {
		return true
	}

	return syscall.Getpgrp() == syscall.Getpid() && os.Getenv("TERM") == ""
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message with its error code
func ErrorWithCode(err error) *LogEvent {
	return withCode(log.Error(), err)
}

// Fatal logs a fatal message and exits the program
func Fatal() *LogEvent {
	return &LogEvent{log.Fatal()}
}

// FatalWithCode logs a fatal message with its error code and exits the program
func FatalWithCode(err error) *LogEvent {
	return withCode(log.Fatal(), err)
}

func withCode(ev *zerolog.Event, err error) *LogEvent {
	return &LogEvent{ev.
		Str("error_code", string(errors.CodeOf(err))).
		AnErr("error", err)}
}

// Default returns a Logger backed by the package-level logger.
func Default() Logger {
	return global{}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &instance{l: zerolog.Nop()}
}

// New returns a Logger writing to w, independent of the global one.
func New(w io.Writer) Logger {
	return &instance{l: zerolog.New(w)}
}

type global struct{}

func (global) Debug() *LogEvent { return Debug() }
func (global) Info() *LogEvent  { return Info() }
func (global) Warn() *LogEvent  { return Warn() }
func (global) Error() *LogEvent { return Error() }

func (global) ErrorWithCode(err error) *LogEvent { return ErrorWithCode(err) }

func (global) ErrorWithContext(err error, component, operation string) *LogEvent {
	return contextual(ErrorWithCode(err), component, operation)
}

type instance struct {
	l zerolog.Logger
}

func (i *instance) Debug() *LogEvent { return &LogEvent{i.l.Debug()} }
func (i *instance) Info() *LogEvent  { return &LogEvent{i.l.Info()} }
func (i *instance) Warn() *LogEvent  { return &LogEvent{i.l.Warn()} }
func (i *instance) Error() *LogEvent { return &LogEvent{i.l.Error()} }

func (i *instance) ErrorWithCode(err error) *LogEvent {
	return withCode(i.l.Error(), err)
}

func (i *instance) ErrorWithContext(err error, component, operation string) *LogEvent {
	return contextual(i.ErrorWithCode(err), component, operation)
}

func contextual(ev *LogEvent, component, operation string) *LogEvent {
	ev.Event = ev.Str("component", component).Str("operation", operation)
	return ev
}
