package flash

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/rzbill/flash/internal/metrics"
	"github.com/rzbill/flash/pkg/colorscheme"
	"github.com/rzbill/flash/pkg/level"
)

const consoleMetricLabel = "console"

// ConsoleChannel writes styled log lines to a terminal. Styling follows
// the channel's color scheme and is disabled globally through
// color.NoColor, which fatih/color flips automatically when standard
// output is not a terminal.
type ConsoleChannel struct {
	mu     sync.Mutex
	out    io.Writer
	scheme *colorscheme.Scheme
	filter *Filter
	format OutputFormat
	order  []colorscheme.Field
}

// NewConsole returns a console channel. Without options it uses the full
// color scheme, writes to standard output and logs every level.
func NewConsole(opts ...ChannelOption) *ConsoleChannel {
	cfg := applyChannelOptions(opts)
	scheme := cfg.scheme
	if scheme == nil {
		scheme = colorscheme.NewDefault()
	}
	out := cfg.writer
	if out == nil {
		out = color.Output
	}
	order := cfg.order
	if order == nil {
		order = scheme.FieldOrder()
	}
	return &ConsoleChannel{
		out:    out,
		scheme: scheme,
		filter: cfg.buildFilter(),
		format: cfg.outputFormat(),
		order:  order,
	}
}

// Filter returns the channel's filter.
func (c *ConsoleChannel) Filter() *Filter { return c.filter }

// SetOutputFormat switches between human-readable and JSON rendering.
func (c *ConsoleChannel) SetOutputFormat(f OutputFormat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.format = f
}

// OutputFormat returns the current rendering format.
func (c *ConsoleChannel) OutputFormat() OutputFormat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.format
}

// Scheme returns the channel's color scheme.
func (c *ConsoleChannel) Scheme() *colorscheme.Scheme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scheme
}

// SetScheme swaps the color scheme. The field order keeps its current
// value; use SetFieldOrder to follow the new scheme's order.
func (c *ConsoleChannel) SetScheme(s *colorscheme.Scheme) {
	if s == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheme = s
}

// SetFieldOrder changes the layout of human-readable lines.
func (c *ConsoleChannel) SetFieldOrder(order ...colorscheme.Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = append([]colorscheme.Field(nil), order...)
}

// SetLevelColor adjusts one level's style at runtime. variant selects
// "normal" or "highlight". Empty component strings keep the current
// value; "default" inherits from the scheme's default style.
func (c *ConsoleChannel) SetLevelColor(ref any, variant, foreground, background, intensity string) error {
	l, err := level.Resolve(ref)
	if err != nil {
		return fmt.Errorf("set level color: %w", err)
	}

	c.mu.Lock()
	scheme := c.scheme
	c.mu.Unlock()

	var st colorscheme.Style
	switch variant {
	case "normal":
		st = scheme.LevelStyle(l)
	case "highlight":
		st = scheme.LevelHighlight(l)
	default:
		return fmt.Errorf(`set level color: variant must be "normal" or "highlight", got %q`, variant)
	}

	def := scheme.DefaultStyle()
	switch foreground {
	case "":
	case "default":
		st.Foreground = def.Foreground
	default:
		st.Foreground = strings.ToUpper(foreground)
	}
	switch background {
	case "":
	case "default":
		st.Background = ""
	default:
		st.Background = strings.ToUpper(background)
	}
	switch intensity {
	case "":
	case "default":
		st.Intensity = def.Intensity
	default:
		in, err := colorscheme.ParseIntensity(intensity)
		if err != nil {
			return fmt.Errorf("set level color: %w", err)
		}
		st.Intensity = in
	}

	if variant == "normal" {
		return scheme.SetLevelStyle(l, st)
	}
	return scheme.SetLevelHighlight(l, st)
}

// Emit renders one record to the terminal.
func (c *ConsoleChannel) Emit(rec Record) error {
	if !c.filter.Allows(rec.Level) {
		metrics.RecordsFiltered.WithLabelValues(consoleMetricLabel).Inc()
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var line string
	if c.format == HumanReadable {
		line = c.renderHuman(rec)
	} else {
		var err error
		line, err = renderJSON(rec, c.format)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(c.out, line)
	return err
}

// Close is a no-op; the console channel does not own its writer.
func (c *ConsoleChannel) Close() error { return nil }

// renderHuman builds the styled line. The command family has dedicated
// shapes; everything else is bracketed tags joined in field order.
func (c *ConsoleChannel) renderHuman(rec Record) string {
	s := c.scheme
	ts := formatTimestamp(rec.Time)

	switch rec.Level {
	case level.Command:
		msg := s.LevelStyle(rec.Level).Sprint(rec.Message)
		comment := s.CommentStyle().Sprint(" ## command executed at " + ts)
		return msg + comment
	case level.CommandOutput:
		return c.streamLine(s, rec, "stdout")
	case level.CommandStderr:
		return c.streamLine(s, rec, "stderr")
	}

	lb := s.BracketStyle().Sprint("[")
	rb := s.BracketStyle().Sprint("]")
	tag := func(st colorscheme.Style, text string) string {
		return lb + st.Sprint(text) + rb
	}

	tags := map[colorscheme.Field]string{
		colorscheme.Timestamp: tag(s.TimestampStyle(), ts),
		colorscheme.PID:       tag(s.ProcessStyle(), fmt.Sprintf("pid:%d", rec.PID)),
		colorscheme.TID:       tag(s.ProcessStyle(), fmt.Sprintf("tid:%d", rec.TID)),
		colorscheme.Level:     tag(s.LevelHighlight(rec.Level), displayName(rec.Level)),
		colorscheme.Message:   tag(s.DefaultStyle(), rec.Message),
	}
	if rec.File != "" {
		loc := fmt.Sprintf("%s:%d", filepath.Base(rec.File), rec.Line)
		tags[colorscheme.File] = tag(s.FieldStyle(colorscheme.File), loc)
	}

	parts := make([]string, 0, len(c.order))
	for _, f := range c.order {
		if t, ok := tags[f]; ok {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func (c *ConsoleChannel) streamLine(s *colorscheme.Scheme, rec Record, stream string) string {
	lp := s.OperatorStyle().Sprint("(")
	rp := s.OperatorStyle().Sprint(")")
	return lp + s.LevelHighlight(rec.Level).Sprint(stream) + rp + ": " + s.DefaultStyle().Sprint(rec.Message)
}
