package flash

import (
	"io"

	"github.com/rzbill/flash/pkg/colorscheme"
	"github.com/rzbill/flash/pkg/level"
)

// Channel is one log destination. Implementations must be safe for
// concurrent use; the dispatcher may call Emit from many goroutines.
type Channel interface {
	// Emit renders and writes one record. Records rejected by the
	// channel's filter are dropped without error.
	Emit(rec Record) error

	// Filter returns the channel's filter for inspection and policy
	// changes.
	Filter() *Filter

	// SetOutputFormat switches the channel's rendering.
	SetOutputFormat(f OutputFormat)

	// Close releases any resources held by the channel.
	Close() error
}

// ChannelOption configures a channel at construction. Options that do not
// apply to a channel kind are ignored, so one option list can serve both
// console and file channels.
type ChannelOption func(*channelConfig)

type channelConfig struct {
	minimum *level.Level
	include []level.Level
	exclude []level.Level

	format *OutputFormat

	scheme *colorscheme.Scheme
	order  []colorscheme.Field
	writer io.Writer

	appendFile bool
}

// WithMinimumLevel sets a threshold filter: only levels at or above the
// given severity are emitted.
func WithMinimumLevel(l level.Level) ChannelOption {
	return func(c *channelConfig) { c.minimum = &l }
}

// WithIncludeLevels sets an inclusion filter: exactly the given levels are
// emitted.
func WithIncludeLevels(ls ...level.Level) ChannelOption {
	return func(c *channelConfig) { c.include = append([]level.Level(nil), ls...) }
}

// WithExcludeLevels sets an exclusion filter: everything but the given
// levels is emitted.
func WithExcludeLevels(ls ...level.Level) ChannelOption {
	return func(c *channelConfig) { c.exclude = append([]level.Level(nil), ls...) }
}

// WithOutputFormat sets the initial rendering format.
func WithOutputFormat(f OutputFormat) ChannelOption {
	return func(c *channelConfig) { c.format = &f }
}

// WithScheme sets the color scheme of a console channel.
func WithScheme(s *colorscheme.Scheme) ChannelOption {
	return func(c *channelConfig) { c.scheme = s }
}

// WithFieldOrder overrides the console line layout.
func WithFieldOrder(order ...colorscheme.Field) ChannelOption {
	return func(c *channelConfig) { c.order = append([]colorscheme.Field(nil), order...) }
}

// WithWriter redirects a console channel away from standard output.
func WithWriter(w io.Writer) ChannelOption {
	return func(c *channelConfig) { c.writer = w }
}

// WithAppend opens a file channel in append mode instead of truncating.
func WithAppend() ChannelOption {
	return func(c *channelConfig) { c.appendFile = true }
}

func applyChannelOptions(opts []ChannelOption) channelConfig {
	var cfg channelConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// buildFilter materializes the filter options. When several are given,
// exclusion wins over inclusion, which wins over the threshold; with none
// the channel logs everything.
func (c channelConfig) buildFilter() *Filter {
	f := NewFilter()
	switch {
	case c.exclude != nil:
		f.setExcludeLevels(c.exclude)
	case c.include != nil:
		f.setIncludeLevels(c.include)
	case c.minimum != nil:
		f.setThresholdLevel(*c.minimum)
	}
	return f
}

func (c channelConfig) outputFormat() OutputFormat {
	if c.format != nil {
		return *c.format
	}
	return HumanReadable
}
