package flash

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rzbill/flash/pkg/level"
)

// Filter decides which severities a channel emits. It operates in one of
// three modes:
//
//   - threshold: allow every level whose numeric value is at least the
//     threshold's value
//   - inclusion: allow exactly the given levels, nothing else
//   - exclusion: allow everything except the given levels
//
// The allowed set is computed when the policy is set and is a snapshot:
// custom slots bound after a threshold was applied keep the membership
// they had at policy time. A new filter allows everything.
type Filter struct {
	mu      sync.RWMutex
	allowed map[level.Level]struct{}
}

// NewFilter returns a filter that allows every severity.
func NewFilter() *Filter {
	f := &Filter{}
	f.setExcludeLevels(nil)
	return f
}

// resolveRefs converts mixed references (level.Level, integer value or
// name string) into levels. Integer values may bind custom slots.
func resolveRefs(refs []any) ([]level.Level, error) {
	out := make([]level.Level, 0, len(refs))
	for _, ref := range refs {
		l, err := level.Resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFilterSpec, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// SetThreshold switches to threshold mode. Every level whose value is at
// least the threshold's value at call time is allowed; unbound custom
// slots carry value 0 and are therefore only allowed by a zero threshold.
func (f *Filter) SetThreshold(ref any) error {
	ls, err := resolveRefs([]any{ref})
	if err != nil {
		return err
	}
	f.setThresholdLevel(ls[0])
	return nil
}

// SetInclude switches to inclusion mode: exactly the given levels pass.
// An empty list permits nothing.
func (f *Filter) SetInclude(refs ...any) error {
	ls, err := resolveRefs(refs)
	if err != nil {
		return err
	}
	f.setIncludeLevels(ls)
	return nil
}

// SetExclude switches to exclusion mode: everything but the given levels
// passes.
func (f *Filter) SetExclude(refs ...any) error {
	ls, err := resolveRefs(refs)
	if err != nil {
		return err
	}
	f.setExcludeLevels(ls)
	return nil
}

func (f *Filter) setThresholdLevel(threshold level.Level) {
	min := threshold.Value()
	allowed := map[level.Level]struct{}{}
	for _, l := range level.All() {
		if l.Value() >= min {
			allowed[l] = struct{}{}
		}
	}
	f.swap(allowed)
}

func (f *Filter) setIncludeLevels(ls []level.Level) {
	allowed := make(map[level.Level]struct{}, len(ls))
	for _, l := range ls {
		allowed[l] = struct{}{}
	}
	f.swap(allowed)
}

func (f *Filter) setExcludeLevels(ls []level.Level) {
	excluded := make(map[level.Level]struct{}, len(ls))
	for _, l := range ls {
		excluded[l] = struct{}{}
	}
	allowed := map[level.Level]struct{}{}
	for _, l := range level.All() {
		if _, ok := excluded[l]; !ok {
			allowed[l] = struct{}{}
		}
	}
	f.swap(allowed)
}

func (f *Filter) swap(allowed map[level.Level]struct{}) {
	f.mu.Lock()
	f.allowed = allowed
	f.mu.Unlock()
}

// Allows reports whether records at the given severity pass the filter.
func (f *Filter) Allows(l level.Level) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.allowed[l]
	return ok
}

// Permits is Allows for untyped severity references: a level.Level, a
// numeric value or a name. Unresolvable references are not permitted.
// Numeric references resolve through the registry and may bind a custom
// slot.
func (f *Filter) Permits(ref any) bool {
	l, err := level.Resolve(ref)
	if err != nil {
		return false
	}
	return f.Allows(l)
}

// Levels returns the currently allowed severities in declaration order.
func (f *Filter) Levels() []level.Level {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]level.Level, 0, len(f.allowed))
	for _, l := range level.All() {
		if _, ok := f.allowed[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// FilterSpec is the declarative form of a filter policy, as carried in
// JSON configuration documents. Levels holds severity references in any
// form Resolve accepts; JSON numbers arrive as float64 and resolve by
// value.
type FilterSpec struct {
	Mode   string `json:"mode"`
	Levels []any  `json:"levels"`
}

// Apply configures f according to the spec. Threshold mode takes exactly
// one level; unknown modes fail with ErrInvalidFilterSpec.
func (s FilterSpec) Apply(f *Filter) error {
	switch strings.ToLower(strings.TrimSpace(s.Mode)) {
	case "threshold":
		if len(s.Levels) != 1 {
			return fmt.Errorf("%w: threshold takes exactly one level, got %d", ErrInvalidFilterSpec, len(s.Levels))
		}
		return f.SetThreshold(s.Levels[0])
	case "include":
		return f.SetInclude(s.Levels...)
	case "exclude":
		return f.SetExclude(s.Levels...)
	}
	return fmt.Errorf("%w: unknown mode %q", ErrInvalidFilterSpec, s.Mode)
}
