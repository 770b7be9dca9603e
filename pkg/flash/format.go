package flash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rzbill/flash/pkg/level"
)

// OutputFormat selects how a channel renders records.
type OutputFormat int

const (
	// HumanReadable renders styled console lines or plain file lines.
	HumanReadable OutputFormat = iota
	// JSON renders one compact JSON object per record.
	JSON
	// JSONPretty renders an indented JSON object per record.
	JSONPretty
	// JSONLines is newline-delimited compact JSON, byte-identical to
	// JSON since every record is written as a single line.
	JSONLines
)

var formatNames = map[OutputFormat]string{
	HumanReadable: "human_readable",
	JSON:          "json",
	JSONPretty:    "json_pretty",
	JSONLines:     "json_lines",
}

func (f OutputFormat) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseOutputFormat resolves a case-insensitive format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == n {
			return f, nil
		}
	}
	return HumanReadable, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// formatTimestamp renders times with zero-padded millisecond precision,
// e.g. "2026-08-25 14:03:07.00042".
func formatTimestamp(t time.Time) string {
	return fmt.Sprintf("%s.%05d", t.Format("2006-01-02 15:04:05"), t.Nanosecond()/int(time.Millisecond))
}

// displayName renders the level for output: the lowercased label, raised
// to upper case for the warning-and-above severities.
func displayName(l level.Level) string {
	name := strings.ToLower(l.Label())
	switch l {
	case level.Warning, level.Error, level.Critical, level.Fatal:
		return strings.ToUpper(name)
	}
	return name
}

// streamType tags the command family in JSON output.
func streamType(l level.Level) (string, bool) {
	switch l {
	case level.Command:
		return "command", true
	case level.CommandOutput:
		return "stdout", true
	case level.CommandStderr:
		return "stderr", true
	}
	return "", false
}

type jsonPair struct {
	key string
	val any
}

var reservedKeys = map[string]struct{}{
	"timestamp": {}, "level": {}, "message": {}, "pid": {}, "tid": {}, "type": {},
}

// renderJSON builds the JSON form of a record. Keys appear in a fixed
// order: timestamp, level, message, pid, tid, the stream type for the
// command family, then extra fields in attachment order.
func renderJSON(rec Record, f OutputFormat) (string, error) {
	pairs := []jsonPair{
		{"timestamp", formatTimestamp(rec.Time)},
		{"level", displayName(rec.Level)},
		{"message", rec.Message},
		{"pid", rec.PID},
		{"tid", rec.TID},
	}
	if typ, ok := streamType(rec.Level); ok {
		pairs = append(pairs, jsonPair{"type", typ})
	}
	seen := map[string]struct{}{}
	for _, fld := range rec.Extra {
		if _, reserved := reservedKeys[fld.Key]; reserved {
			continue
		}
		if _, dup := seen[fld.Key]; dup {
			continue
		}
		seen[fld.Key] = struct{}{}
		pairs = append(pairs, jsonPair{fld.Key, fld.Value})
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.key)
		if err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.val)
		if err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')

	if f != JSONPretty {
		return buf.String(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "    "); err != nil {
		return "", fmt.Errorf("render json: %w", err)
	}
	return out.String(), nil
}
