package flash

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rzbill/flash/internal/metrics"
	"github.com/rzbill/flash/pkg/colorscheme"
	"github.com/rzbill/flash/pkg/level"
)

// logDepth is the runtime.Caller skip from newRecord back to the caller
// of a public logging method.
const logDepth = 3

// Dispatcher fans log records out to an ordered set of channels.
type Dispatcher struct {
	mu       sync.RWMutex
	channels []Channel
	ids      map[int]Channel
	names    map[string]Channel
	nextID   int
	errOut   io.Writer
}

// Option configures a Dispatcher at construction.
type Option func(*dispatcherConfig)

type dispatcherConfig struct {
	channels []namedChannel
	consoles []colorscheme.Default
	files    []string
	errOut   io.Writer
}

type namedChannel struct {
	ch   Channel
	name string
}

// WithChannel registers a prebuilt channel.
func WithChannel(ch Channel) Option {
	return func(c *dispatcherConfig) {
		c.channels = append(c.channels, namedChannel{ch: ch})
	}
}

// WithNamedChannel registers a prebuilt channel under a lookup name.
func WithNamedChannel(name string, ch Channel) Option {
	return func(c *dispatcherConfig) {
		c.channels = append(c.channels, namedChannel{ch: ch, name: name})
	}
}

// WithConsole adds a console channel using the given built-in scheme,
// logging every level. colorscheme.None adds nothing.
func WithConsole(d colorscheme.Default) Option {
	return func(c *dispatcherConfig) { c.consoles = append(c.consoles, d) }
}

// WithFile adds a file channel for path with a Warning threshold.
func WithFile(path string) Option {
	return func(c *dispatcherConfig) { c.files = append(c.files, path) }
}

// WithErrorOutput redirects channel failure reports away from standard
// error.
func WithErrorOutput(w io.Writer) Option {
	return func(c *dispatcherConfig) { c.errOut = w }
}

// New builds a dispatcher from the given options. At least one channel
// must result or New fails with ErrNoChannels.
func New(opts ...Option) (*Dispatcher, error) {
	var cfg dispatcherConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Dispatcher{
		ids:    map[int]Channel{},
		names:  map[string]Channel{},
		errOut: cfg.errOut,
	}
	if d.errOut == nil {
		d.errOut = os.Stderr
	}

	for _, nc := range cfg.channels {
		d.register(nc.ch, nc.name)
	}
	for _, def := range cfg.consoles {
		if def == colorscheme.None {
			continue
		}
		scheme, err := colorscheme.New(def)
		if err != nil {
			return nil, err
		}
		d.register(NewConsole(WithScheme(scheme)), "")
	}
	for _, path := range cfg.files {
		fc, err := NewFile(path, WithMinimumLevel(level.Warning))
		if err != nil {
			return nil, err
		}
		d.register(fc, "")
	}

	if len(d.channels) == 0 {
		return nil, ErrNoChannels
	}
	return d, nil
}

// Register adds a channel and returns its id. Ids start at zero and are
// never reused. Registering the same instance again is a no-op that
// returns the existing id; a non-empty name binds a lookup name either
// way, with the last registration winning on name collisions.
func (d *Dispatcher) Register(ch Channel, name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.register(ch, name)
}

func (d *Dispatcher) register(ch Channel, name string) int {
	for id, existing := range d.ids {
		if existing == ch {
			if name != "" {
				d.names[name] = ch
			}
			return id
		}
	}
	id := d.nextID
	d.nextID++
	d.ids[id] = ch
	d.channels = append(d.channels, ch)
	if name != "" {
		d.names[name] = ch
	}
	return id
}

// Unregister removes a channel by id, name or instance. Unknown selectors
// are ignored. The channel is not closed.
func (d *Dispatcher) Unregister(sel any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch, ok := d.lookup(sel)
	if !ok {
		return
	}
	for i, c := range d.channels {
		if c == ch {
			d.channels = append(d.channels[:i], d.channels[i+1:]...)
			break
		}
	}
	for id, c := range d.ids {
		if c == ch {
			delete(d.ids, id)
			break
		}
	}
	for n, c := range d.names {
		if c == ch {
			delete(d.names, n)
		}
	}
}

// Channel finds a registered channel by id, name or instance. String
// lookup checks registration names first and then falls back to a
// case-insensitive containment match against channel type names, so
// "console" finds a ConsoleChannel.
func (d *Dispatcher) Channel(sel any) (Channel, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ch, ok := d.lookup(sel)
	if ok {
		return ch, nil
	}
	switch v := sel.(type) {
	case int:
		return nil, fmt.Errorf("%w: no channel with id %d", ErrChannelNotFound, v)
	case string:
		return nil, fmt.Errorf("%w: no channel matching %q", ErrChannelNotFound, v)
	}
	return nil, fmt.Errorf("%w: no matching channel for selector %v", ErrChannelNotFound, sel)
}

func (d *Dispatcher) lookup(sel any) (Channel, bool) {
	switch v := sel.(type) {
	case int:
		ch, ok := d.ids[v]
		return ch, ok
	case string:
		if ch, ok := d.names[v]; ok {
			return ch, true
		}
		want := strings.ToLower(v)
		for _, ch := range d.channels {
			name := strings.ToLower(typeName(ch))
			if strings.Contains(name, want) || strings.Contains(want, name) {
				return ch, true
			}
		}
	case Channel:
		for _, ch := range d.channels {
			if ch == v {
				return ch, true
			}
		}
	}
	return nil, false
}

func typeName(ch Channel) string {
	s := fmt.Sprintf("%T", ch)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// Channels returns the registered channels in registration order.
func (d *Dispatcher) Channels() []Channel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Channel(nil), d.channels...)
}

// SetOutputFormat switches every registered channel to the given format.
func (d *Dispatcher) SetOutputFormat(f OutputFormat) {
	for _, ch := range d.Channels() {
		ch.SetOutputFormat(f)
	}
}

// Close closes every registered channel.
func (d *Dispatcher) Close() error {
	var errs []error
	for _, ch := range d.Channels() {
		if err := ch.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log offers one record to every channel in registration order. A
// channel that fails or panics is reported on the dispatcher's error
// output and does not affect the remaining channels.
func (d *Dispatcher) Log(lvl level.Level, msg string, extra ...Field) {
	d.log(logDepth, lvl, msg, extra)
}

// Logf logs a formatted message.
func (d *Dispatcher) Logf(lvl level.Level, format string, args ...any) {
	d.log(logDepth, lvl, fmt.Sprintf(format, args...), nil)
}

func (d *Dispatcher) log(calldepth int, lvl level.Level, msg string, extra []Field) {
	metrics.RecordsDispatched.WithLabelValues(lvl.String()).Inc()
	rec := newRecord(calldepth, lvl, msg, extra)

	d.mu.RLock()
	channels := append([]Channel(nil), d.channels...)
	errOut := d.errOut
	d.mu.RUnlock()

	for _, ch := range channels {
		d.emit(errOut, ch, rec)
	}
}

func (d *Dispatcher) emit(errOut io.Writer, ch Channel, rec Record) {
	defer func() {
		if r := recover(); r != nil {
			reportEmitFailure(errOut, ch, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := ch.Emit(rec); err != nil {
		reportEmitFailure(errOut, ch, err)
	}
}

func reportEmitFailure(errOut io.Writer, ch Channel, err error) {
	metrics.ChannelEmitFailures.WithLabelValues(typeName(ch)).Inc()
	fmt.Fprintf(errOut, "error logging to channel %T: %v\n", ch, err)
}

// NotSet logs at the notset severity.
func (d *Dispatcher) NotSet(msg string, extra ...Field) { d.log(logDepth, level.NotSet, msg, extra) }

// Debug logs at the debug severity.
func (d *Dispatcher) Debug(msg string, extra ...Field) { d.log(logDepth, level.Debug, msg, extra) }

// Info logs at the info severity.
func (d *Dispatcher) Info(msg string, extra ...Field) { d.log(logDepth, level.Info, msg, extra) }

// Warning logs at the warning severity.
func (d *Dispatcher) Warning(msg string, extra ...Field) { d.log(logDepth, level.Warning, msg, extra) }

// Error logs at the error severity.
func (d *Dispatcher) Error(msg string, extra ...Field) { d.log(logDepth, level.Error, msg, extra) }

// Critical logs at the critical severity.
func (d *Dispatcher) Critical(msg string, extra ...Field) { d.log(logDepth, level.Critical, msg, extra) }

// Fatal logs at the fatal severity. Unlike the standard library's
// log.Fatal it does not terminate the process.
func (d *Dispatcher) Fatal(msg string, extra ...Field) { d.log(logDepth, level.Fatal, msg, extra) }

// Command logs an executed command line.
func (d *Dispatcher) Command(msg string, extra ...Field) { d.log(logDepth, level.Command, msg, extra) }

// CommandOutput logs a line of command standard output.
func (d *Dispatcher) CommandOutput(msg string, extra ...Field) {
	d.log(logDepth, level.CommandOutput, msg, extra)
}

// CommandStderr logs a line of command standard error.
func (d *Dispatcher) CommandStderr(msg string, extra ...Field) {
	d.log(logDepth, level.CommandStderr, msg, extra)
}

// Custom logs at the severity bound to value, binding a free custom slot
// on first use. A non-empty label becomes the level's display label. The
// bound level is returned; binding fails with level.ErrExhaustedSlots
// when all ten slots hold other values.
func (d *Dispatcher) Custom(value int, label, msg string, extra ...Field) (level.Level, error) {
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

// Header logs a decorated section header at the info severity.
func (d *Dispatcher) Header(header string) {
	d.log(logDepth, level.Info, "# "+header+" #", nil)
}

// Progress logs a progress message, appending the extra comment in
// parentheses when present.
func (d *Dispatcher) Progress(lvl level.Level, msg, extraComment string) {
	if extraComment != "" {
		msg = msg + " (" + extraComment + ")"
	}
	d.log(logDepth, lvl, msg, nil)
}
