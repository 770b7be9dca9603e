package flash

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rzbill/flash/pkg/level"
)

// timeNow is swapped in tests for deterministic timestamps.
var timeNow = time.Now

// Field keys that override the detected call site instead of rendering as
// extra output fields.
const (
	fileKey = "file"
	lineKey = "line"
)

// Record is one log entry as handed to channels.
type Record struct {
	Time    time.Time
	Level   level.Level
	Message string
	PID     int
	TID     uint64

	// File and Line locate the log call. File is empty when the call
	// site could not be determined.
	File string
	Line int

	Extra []Field
}

// newRecord captures the ambient context for a log call. calldepth counts
// stack frames back to the caller whose location should be recorded, in
// the same convention as runtime.Caller.
func newRecord(calldepth int, lvl level.Level, msg string, extra []Field) Record {
	rec := Record{
		Time:    timeNow(),
		Level:   lvl,
		Message: msg,
		PID:     os.Getpid(),
		TID:     goid(),
		Extra:   extra,
	}
	if _, file, line, ok := runtime.Caller(calldepth); ok {
		rec.File = file
		rec.Line = line
	}
	rec.applyOverrides()
	return rec
}

// applyOverrides consumes file and line fields, which replace the detected
// call site rather than appearing in output. Fields of the wrong type are
// left in place.
func (r *Record) applyOverrides() {
	found := false
	for _, f := range r.Extra {
		if f.Key == fileKey || f.Key == lineKey {
			found = true
			break
		}
	}
	if !found {
		return
	}
	kept := make([]Field, 0, len(r.Extra))
	for _, f := range r.Extra {
		switch f.Key {
		case fileKey:
			if s, ok := f.Value.(string); ok {
				r.File = s
				continue
			}
		case lineKey:
			if n, ok := f.Value.(int); ok {
				r.Line = n
				continue
			}
		}
		kept = append(kept, f)
	}
	r.Extra = kept
}

// goid parses the current goroutine id from the stack header, the only
// portable way to get one. Returns 0 if the header is unrecognizable.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	if i := strings.IndexByte(s, ' '); i > 0 {
		if id, err := strconv.ParseUint(s[:i], 10, 64); err == nil {
			return id
		}
	}
	return 0
}
