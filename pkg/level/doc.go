// Package level defines log severities and the process-wide registry that
// backs them.
//
// # Overview
//
// A Level is a small identity, not a bare number. Ten standard severities
// carry fixed numeric values in tens (with a command family interleaved
// between Info and Warning), and ten custom slots start unbound and are
// bound to caller-supplied values on first use.
// Bindings are process-lifetime: resolving the same value again returns the
// same identity, and an eleventh distinct value fails with
// ErrExhaustedSlots.
//
//	lvl, err := level.FromValue(777) // binds Custom0 to 777
//	if err != nil {
//	    // all ten slots already bound to other values
//	}
//	same, _ := level.FromValue(777) // same == lvl
//
// Resolve accepts whichever form a caller holds: a Level, an integer value,
// or a case-insensitive canonical name such as "info" or "Custom3". It is
// the single conversion point used by filters, configuration loading and
// the CLI.
//
// # Labels
//
// Display labels default to the canonical lowercase name and may be
// overridden per level, in bulk, or from a JSON name-to-label document.
// Overrides affect rendering only; numeric bindings are untouched.
//
//	level.SetLabel(level.Info, "INFORMATION")
//	level.Info.Label() // "INFORMATION"
//	level.ClearLabels()
package level
