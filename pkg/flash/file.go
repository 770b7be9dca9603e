package flash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rzbill/flash/internal/metrics"
	"github.com/rzbill/flash/pkg/level"
)

const fileMetricLabel = "file"

var errFileClosed = errors.New("file channel is closed")

// FileChannel writes plain log lines to a file. Writes are serialized;
// the file stays open until Close.
type FileChannel struct {
	mu     sync.Mutex
	f      *os.File
	path   string
	filter *Filter
	format OutputFormat
}

// NewFile opens (and by default truncates) the log file at path, creating
// parent directories as needed. WithAppend preserves existing content.
func NewFile(path string, opts ...ChannelOption) (*FileChannel, error) {
	cfg := applyChannelOptions(opts)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
	}
	flags := os.O_CREATE | os.O_WRONLY
	if cfg.appendFile {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &FileChannel{
		f:      f,
		path:   path,
		filter: cfg.buildFilter(),
		format: cfg.outputFormat(),
	}, nil
}

// Path returns the channel's log file path.
func (c *FileChannel) Path() string { return c.path }

// Filter returns the channel's filter.
func (c *FileChannel) Filter() *Filter { return c.filter }

// SetOutputFormat switches between human-readable and JSON rendering.
func (c *FileChannel) SetOutputFormat(f OutputFormat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.format = f
}

// OutputFormat returns the current rendering format.
func (c *FileChannel) OutputFormat() OutputFormat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.format
}

// Emit renders one record to the file.
func (c *FileChannel) Emit(rec Record) error {
	if !c.filter.Allows(rec.Level) {
		metrics.RecordsFiltered.WithLabelValues(fileMetricLabel).Inc()
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.f == nil {
		return errFileClosed
	}

	var line string
	if c.format == HumanReadable {
		line = renderFileLine(rec)
	} else {
		var err error
		line, err = renderJSON(rec, c.format)
		if err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(c.f, line); err != nil {
		return fmt.Errorf("write log file: %w", err)
	}
	return nil
}

// Close flushes and closes the log file. Further emits fail.
func (c *FileChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.f == nil {
		return nil
	}
	err := c.f.Close()
	c.f = nil
	return err
}

// renderFileLine builds the plain line. Command lines keep the raw level
// label and annotate the stream; everything else is the standard
// timestamp, level, process and message layout.
func renderFileLine(rec Record) string {
	ts := formatTimestamp(rec.Time)
	proc := fmt.Sprintf("[PID:%d|TID:%d]", rec.PID, rec.TID)
	switch rec.Level {
	case level.Command:
		return fmt.Sprintf("[%s] [%s] %s %s ## command to execute", ts, rec.Level.Label(), proc, rec.Message)
	case level.CommandOutput:
		return fmt.Sprintf("[%s] [%s] %s (stdout): %s", ts, rec.Level.Label(), proc, rec.Message)
	case level.CommandStderr:
		return fmt.Sprintf("[%s] [%s] %s (stderr): %s", ts, rec.Level.Label(), proc, rec.Message)
	}
	return fmt.Sprintf("[%s] [%s] %s %s", ts, displayName(rec.Level), proc, rec.Message)
}
