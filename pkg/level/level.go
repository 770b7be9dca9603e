package level

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
)

// Level identifies a log severity. The zero value is NotSet.
type Level int

// Standard severities in ascending numeric order, followed by the ten
// dynamically bindable custom slots.
const (
	NotSet Level = iota
	Debug
	Info
	Command
	CommandOutput
	CommandStderr
	Warning
	Error
	Critical
	Fatal

	Custom0
	Custom1
	Custom2
	Custom3
	Custom4
	Custom5
	Custom6
	Custom7
	Custom8
	Custom9
)

// numSlots is the size of the custom pool.
const numSlots = 10

// Registry errors.
var (
	// ErrExhaustedSlots is returned when a new numeric value cannot be
	// bound because all ten custom slots are already bound to other values.
	ErrExhaustedSlots = errors.New("no available custom level slots")

	// ErrUnknownLevel is returned for names or identities that match no
	// declared severity.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrBadRef is returned by Resolve for unsupported reference types.
	ErrBadRef = errors.New("level reference must be a Level, integer or string")
)

// standardValue fixes the numeric value per standard severity. The exact
// constants and their total order are load-bearing: threshold filters
// compare these values, and the command family must sit between Info and
// Warning.
var standardValue = [...]int{
	NotSet:        0,
	Debug:         10,
	Info:          20,
	Command:       22,
	CommandOutput: 24,
	CommandStderr: 26,
	Warning:       30,
	Error:         40,
	Critical:      50,
	Fatal:         51,
}

var names = [...]string{
	NotSet:        "notset",
	Debug:         "debug",
	Info:          "info",
	Command:       "command",
	CommandOutput: "command_output",
	CommandStderr: "command_stderr",
	Warning:       "warning",
	Error:         "error",
	Critical:      "critical",
	Fatal:         "fatal",
	Custom0:       "custom0",
	Custom1:       "custom1",
	Custom2:       "custom2",
	Custom3:       "custom3",
	Custom4:       "custom4",
	Custom5:       "custom5",
	Custom6:       "custom6",
	Custom7:       "custom7",
	Custom8:       "custom8",
	Custom9:       "custom9",
}

// registry holds the process-wide mutable state: custom slot bindings and
// label overrides. Slot value 0 means unbound; a slot can never be bound to
// 0 because 0 always resolves to NotSet first.
var registry = struct {
	mu     sync.RWMutex
	slots  [numSlots]int
	labels map[Level]string
}{labels: map[Level]string{}}

// Valid reports whether l is one of the declared identities.
func (l Level) Valid() bool { return l >= NotSet && l <= Custom9 }

// IsCustom reports whether l is one of the ten custom slots.
func (l Level) IsCustom() bool { return l >= Custom0 && l <= Custom9 }

// String returns the canonical lowercase name, e.g. "info" or "custom3".
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return names[l]
}

// Value returns the numeric severity value. Unbound custom slots report 0.
func (l Level) Value() int {
	if l.IsCustom() {
		registry.mu.RLock()
		defer registry.mu.RUnlock()
		return registry.slots[l-Custom0]
	}
	if !l.Valid() {
		return 0
	}
	return standardValue[l]
}

// FromValue resolves a numeric value to a Level. Negative values resolve to
// NotSet. A value matching a standard severity or an already bound custom
// slot returns that identity; any other value binds the next free slot for
// the remainder of the process. Resolution is idempotent: the same value
// always yields the same identity.
func FromValue(v int) (Level, error) {
	if v < 0 {
		return NotSet, nil
	}
	for l, val := range standardValue {
		if val == v {
			return Level(l), nil
		}
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	for i, val := range registry.slots {
		if val == v {
			return Custom0 + Level(i), nil
		}
	}
	for i, val := range registry.slots {
		if val == 0 {
			registry.slots[i] = v
			return Custom0 + Level(i), nil
		}
	}
	return NotSet, fmt.Errorf("bind value %d: %w", v, ErrExhaustedSlots)
}

// FromName resolves a case-insensitive canonical name ("info", "Custom3").
func FromName(s string) (Level, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for l, name := range names {
		if name == n {
			return Level(l), nil
		}
	}
	return NotSet, fmt.Errorf("%w: name %q", ErrUnknownLevel, s)
}

// Resolve converts whichever severity reference the caller holds into a
// Level: an existing Level, an integer value (JSON numbers arrive as
// float64 and must be integral), or a name string. It is the single
// conversion point for untyped boundaries.
func Resolve(ref any) (Level, error) {
	switch v := ref.(type) {
	case Level:
		if !v.Valid() {
			return NotSet, fmt.Errorf("%w: identity %d", ErrUnknownLevel, int(v))
		}
		return v, nil
	case int:
		return FromValue(v)
	case int64:
		return FromValue(int(v))
	case float64:
		if v != math.Trunc(v) {
			return NotSet, fmt.Errorf("%w: non-integral value %v", ErrBadRef, v)
		}
		return FromValue(int(v))
	case string:
		return FromName(v)
	default:
		return NotSet, fmt.Errorf("%w, got %T", ErrBadRef, ref)
	}
}

// All returns every declared identity in declaration order, including
// unbound custom slots. Exclusion filters complement against this set.
func All() []Level {
	out := make([]Level, 0, int(Custom9)+1)
	for l := NotSet; l <= Custom9; l++ {
		out = append(out, l)
	}
	return out
}

// Reset unbinds every custom slot and clears all label overrides, restoring
// the registry to its initial state. It is intended for tests.
func Reset() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.slots = [numSlots]int{}
	registry.labels = map[Level]string{}
}
