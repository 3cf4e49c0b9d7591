package log

import (
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

const (
	consoleTimeFormat = "15:04:05"

	// The first stack line is "goroutine 123 [running]:".
	stackBufSize       = 32
	goroutinePrefixLen = len("goroutine ")
	unknownGoroutine   = "unknown"
)

var (
	Logger        zerolog.Logger
	stackBufs     = sync.Pool{New: func() any { return make([]byte, stackBufSize) }}
	goroutineHook = zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
		e.Str("goid", goroutineID())
	})
)

// goroutineID parses the current goroutine's ID from the head of its stack
// trace. It returns "unknown" if the trace cannot be parsed.
func goroutineID() string {
	buf, ok := stackBufs.Get().([]byte)
	if !ok {
		return unknownGoroutine
	}
	defer stackBufs.Put(buf) //nolint:staticcheck // small fixed-size slice

	n := runtime.Stack(buf, false)
	end := goroutinePrefixLen
	for end < n && buf[end] >= '0' && buf[end] <= '9' {
		end++
	}
	if end == goroutinePrefixLen {
		return unknownGoroutine
	}
	return string(buf[goroutinePrefixLen:end])
}

func init() {
	Logger = New(os.Stderr, zerolog.InfoLevel)
	log.Logger = Logger
}

// New builds a logger writing to out. Terminals get the colored console
// writer, everything else gets JSON lines. Every event carries the ID of
// the goroutine that logged it.
func New(out io.Writer, level zerolog.Level) zerolog.Logger {
	if isTerminal(out) {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: consoleTimeFormat,
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger().
		Hook(goroutineHook)
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

// Info logs an info message.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Error logs an error message.
func Error() *zerolog.Event {
	return Logger.Error()
}

// Warn logs a warning message.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Debug logs a debug message.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Fatal logs a fatal message and exits.
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}

// SetDebugMode switches the logger to debug level.
func SetDebugMode() {
	Logger = Logger.Level(zerolog.DebugLevel)
	log.Logger = Logger
}

// SetLevel switches the logger to the named level ("debug", "info", ...).
// An empty name keeps the current level.
func SetLevel(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return err
	}

	Logger = Logger.Level(level)
	log.Logger = Logger
	return nil
}
