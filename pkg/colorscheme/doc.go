// Package colorscheme maps log severities and record fields to terminal
// styles.
//
// # Overview
//
// A Scheme holds two styles per severity (normal and highlight), one style
// per special element (brackets, timestamps, operators, process ids,
// comments and the message default) and the field order used by
// human-readable console output. Three built-in schemes ship with the
// package: a full color scheme, a monochrome scheme and a plain-text
// scheme that emits no color codes beyond the normal-intensity rendition.
//
//	scheme, err := colorscheme.New(colorscheme.Color)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(scheme.LevelStyle(level.Error).Sprint("boom"))
//
// Custom schemes load from JSON documents keyed by lowercase level names,
// with a "special" section for the level-independent styles and a "fields"
// array fixing the console field order. Unknown level names are skipped,
// and empty or "default" color components inherit from the special default
// style. Save writes the same document shape back out.
//
// Styles render through github.com/fatih/color, so the package-level
// color.NoColor switch disables all escape sequences at once.
package colorscheme
