// Package flash is a leveled logging facade that fans records out to
// console and file channels.
//
// # Overview
//
// A Dispatcher owns an ordered set of channels. Every log call builds one
// record (timestamp, severity, message, process and goroutine ids, best
// effort call site) and offers it to each channel in registration order.
// Channels filter independently, so one dispatcher can drive a colored
// console at full verbosity and a warnings-only log file at the same time.
//
//	logger, err := flash.New(
//	    flash.WithConsole(colorscheme.Color),
//	    flash.WithFile("/var/log/app.log"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("service started", flash.Str("region", "eu-west-1"))
//	logger.Command("make deploy")
//
// A failing channel never breaks the others: emit errors and panics are
// reported on the dispatcher's error output and dispatch continues.
//
// # Channels
//
// Channels are registered with optional names and addressed by id, name or
// instance. Name lookup falls back to a case-insensitive match against the
// channel's type name, so "console" finds a ConsoleChannel without any
// explicit registration name.
//
// Each channel renders records as colored human-readable lines, plain
// file lines, or JSON (compact, pretty or line-delimited), selected per
// channel with SetOutputFormat.
//
// # The default dispatcher
//
// Default returns a process-wide dispatcher, created on first use with a
// full-color console channel. Package-level shortcuts such as Info and
// Error forward to it. Configure adds a console or file channel to the
// default dispatcher if an equivalent one is not already registered.
package flash
