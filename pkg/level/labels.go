package level

import (
	"encoding/json"
	"fmt"
	"os"
)

// Label returns the display label: the override if one is set, else the
// canonical lowercase name.
func (l Level) Label() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if s, ok := registry.labels[l]; ok {
		return s
	}
	return l.String()
}

// SetLabel overrides the display label for a single level.
func SetLabel(l Level, label string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.labels[l] = label
}

// SetLabels merges the given overrides into the label map.
func SetLabels(m map[Level]string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for l, label := range m {
		registry.labels[l] = label
	}
}

// Labels returns a copy of the current override map. Levels without an
// override are absent.
func Labels() map[Level]string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	out := make(map[Level]string, len(registry.labels))
	for l, label := range registry.labels {
		out[l] = label
	}
	return out
}

// ClearLabels removes every override, reverting all levels to their
// canonical names.
func ClearLabels() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.labels = map[Level]string{}
}

// LoadLabels merges overrides from a JSON document mapping level names to
// labels. Names are matched case-insensitively; unknown names are skipped.
func LoadLabels(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load labels: %w", err)
	}
	var doc map[string]string
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("load labels: %w", err)
	}
	m := make(map[Level]string, len(doc))
	for name, label := range doc {
		l, err := FromName(name)
		if err != nil {
			continue
		}
		m[l] = label
	}
	SetLabels(m)
	return nil
}

// SaveLabels writes the current overrides as a JSON document keyed by
// canonical lowercase names, two-space indented with sorted keys.
func SaveLabels(path string) error {
	registry.mu.RLock()
	doc := make(map[string]string, len(registry.labels))
	for l, label := range registry.labels {
		doc[l.String()] = label
	}
	registry.mu.RUnlock()

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("save labels: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("save labels: %w", err)
	}
	return nil
}
