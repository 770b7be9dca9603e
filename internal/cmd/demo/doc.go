// Package demorun exposes a shared Run entrypoint used by the CLI to render
// a sample of every log level through a freshly built dispatcher, optionally
// serving Prometheus metrics while it does.
//
// Example:
//
//	opts := demorun.Options{ConsoleScheme: "color", Format: "human_readable"}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = demorun.Run(ctx, opts)
package demorun
