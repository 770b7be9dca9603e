package flash

import (
	"fmt"
	"sync"

	"github.com/rzbill/flash/pkg/colorscheme"
	"github.com/rzbill/flash/pkg/level"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger *Dispatcher
)

// Default returns the process-wide dispatcher, creating one with a
// colored console channel on first use.
func Default() *Dispatcher {
	defaultMu.RLock()
	d := defaultLogger
	defaultMu.RUnlock()
	if d != nil {
		return d
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		d, err := New(WithConsole(colorscheme.Color))
		if err != nil {
			// New cannot fail when a console channel is requested.
			panic(err)
		}
		defaultLogger = d
	}
	return defaultLogger
}

// SetDefault replaces the process-wide dispatcher. Passing nil resets it
// so the next Default call builds a fresh one.
func SetDefault(d *Dispatcher) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = d
}

// Configure ensures the default dispatcher logs to a console with the
// given scheme and, when logFile is non-empty, to that file at the
// warning threshold. Channels already covering either destination are
// kept as they are. colorscheme.None requests no console channel.
func Configure(console colorscheme.Default, logFile string) (*Dispatcher, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		var opts []Option
		if console != colorscheme.None {
			opts = append(opts, WithConsole(console))
		}
		if logFile != "" {
			opts = append(opts, WithFile(logFile))
		}
		d, err := New(opts...)
		if err != nil {
			return nil, err
		}
		defaultLogger = d
		return d, nil
	}

	d := defaultLogger
	if console != colorscheme.None && !hasConsole(d) {
		scheme, err := colorscheme.New(console)
		if err != nil {
			return nil, err
		}
		d.Register(NewConsole(WithScheme(scheme)), "")
	}
	if logFile != "" && !hasFile(d, logFile) {
		fc, err := NewFile(logFile, WithMinimumLevel(level.Warning))
		if err != nil {
			return nil, err
		}
		d.Register(fc, "")
	}
	return d, nil
}

func hasConsole(d *Dispatcher) bool {
	for _, ch := range d.Channels() {
		if _, ok := ch.(*ConsoleChannel); ok {
			return true
		}
	}
	return false
}

func hasFile(d *Dispatcher, path string) bool {
	for _, ch := range d.Channels() {
		if fc, ok := ch.(*FileChannel); ok && fc.Path() == path {
			return true
		}
	}
	return false
}

// Log logs on the default dispatcher.
func Log(lvl level.Level, msg string, extra ...Field) {
	Default().log(logDepth, lvl, msg, extra)
}

// Logf logs a formatted message on the default dispatcher.
func Logf(lvl level.Level, format string, args ...any) {
	Default().log(logDepth, lvl, fmt.Sprintf(format, args...), nil)
}

// NotSet logs at the notset severity on the default dispatcher.
func NotSet(msg string, extra ...Field) { Default().log(logDepth, level.NotSet, msg, extra) }

// Debug logs at the debug severity on the default dispatcher.
func Debug(msg string, extra ...Field) { Default().log(logDepth, level.Debug, msg, extra) }

// Info logs at the info severity on the default dispatcher.
func Info(msg string, extra ...Field) { Default().log(logDepth, level.Info, msg, extra) }

// Warning logs at the warning severity on the default dispatcher.
func Warning(msg string, extra ...Field) { Default().log(logDepth, level.Warning, msg, extra) }

// Error logs at the error severity on the default dispatcher.
func Error(msg string, extra ...Field) { Default().log(logDepth, level.Error, msg, extra) }

// Critical logs at the critical severity on the default dispatcher.
func Critical(msg string, extra ...Field) { Default().log(logDepth, level.Critical, msg, extra) }

// Fatal logs at the fatal severity on the default dispatcher without
// terminating the process.
func Fatal(msg string, extra ...Field) { Default().log(logDepth, level.Fatal, msg, extra) }

// Command logs an executed command line on the default dispatcher.
func Command(msg string, extra ...Field) { Default().log(logDepth, level.Command, msg, extra) }

// CommandOutput logs a line of command standard output on the default
// dispatcher.
func CommandOutput(msg string, extra ...Field) {
	Default().log(logDepth, level.CommandOutput, msg, extra)
}

// CommandStderr logs a line of command standard error on the default
// dispatcher.
func CommandStderr(msg string, extra ...Field) {
	Default().log(logDepth, level.CommandStderr, msg, extra)
}

// Custom logs on the default dispatcher at the severity bound to value,
// binding a free custom slot on first use.
func Custom(value int, label, msg string, extra ...Field) (level.Level, error) {
	d := Default()
	lvl, err := level.FromValue(value)
	if err != nil {
		return level.NotSet, err
	}
	if label != "" {
		level.SetLabel(lvl, label)
	}
	d.log(logDepth, lvl, msg, extra)
	return lvl, nil
}

// Header logs a decorated section header on the default dispatcher.
func Header(header string) {
	Default().log(logDepth, level.Info, "# "+header+" #", nil)
}

// Progress logs a progress message on the default dispatcher, appending
// the extra comment in parentheses when present.
func Progress(lvl level.Level, msg, extraComment string) {
	if extraComment != "" {
		msg = msg + " (" + extraComment + ")"
	}
	Default().log(logDepth, lvl, msg, nil)
}
