package flash

import "errors"

var (
	// ErrNoChannels is returned when a dispatcher is constructed without
	// any channel.
	ErrNoChannels = errors.New("no log channels configured")

	// ErrChannelNotFound is returned by Channel when no registered
	// channel matches the selector.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrInvalidFilterSpec is returned when a filter reference cannot be
	// resolved to a severity.
	ErrInvalidFilterSpec = errors.New("invalid filter spec")

	// ErrUnknownFormat is returned for output format names outside the
	// declared set.
	ErrUnknownFormat = errors.New("unknown output format")
)
