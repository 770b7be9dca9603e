// Package cli provides the `flash` command-line tool.
//
// The CLI manages the JSON documents that drive the logging library: the
// color scheme read by console channels and the label overrides applied
// to log levels. It also ships a demo command that renders a sample of
// every level in every format.
//
// # Installation
//
//	go install github.com/rzbill/flash/cmd/flash@latest
//
// # File locations
//
// Commands that read or write files default to the OS configuration
// directory (for example ~/.config/flash on Linux). The FLASH_SCHEME_FILE
// and FLASH_LABELS_FILE environment variables override the defaults, and
// every command accepts an explicit --file.
//
// # Usage
//
//	flash scheme init --scheme color
//	flash scheme show --file ./my_scheme.json
//	flash scheme set --level error --variant highlight --fg LIGHTRED_EX --intensity bright
//	flash scheme path
//
//	flash labels show
//	flash labels set --level custom0 --label TRACE
//	flash labels set --level 35 --label AUDIT
//	flash labels clear
//
//	flash demo --scheme bw --format json_pretty
//	flash demo --log-file ./demo.log --metrics :9090
//
// # Notes
//
//   - `scheme set` and `labels set` accept level names ("error",
//     "custom0") or numeric values; unknown values bind a free custom
//     slot exactly like the library does at runtime.
//   - Color names follow the scheme document: RED, GREEN, LIGHTCYAN_EX
//     and friends, with BRIGHT, NORMAL and DIM intensities.
//   - `--color never` (or piping output) disables styling; `--color
//     always` keeps it on for pagers that understand escapes.
package cli
