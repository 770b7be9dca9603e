package colorscheme

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/rzbill/flash/pkg/level"
)

// identityCount covers every declared severity, custom slots included.
const identityCount = int(level.Custom9) + 1

// ErrUnknownScheme is returned for scheme selectors outside the built-in
// set.
var ErrUnknownScheme = errors.New("unknown default color scheme")

// Default selects one of the built-in schemes.
type Default int

const (
	// None falls back to the full color scheme.
	None Default = iota
	BlackAndWhite
	Color
	PlainText
)

var defaultNames = map[Default]string{
	None:          "none",
	BlackAndWhite: "black_and_white",
	Color:         "color",
	PlainText:     "plain_text",
}

func (d Default) String() string {
	if s, ok := defaultNames[d]; ok {
		return s
	}
	return fmt.Sprintf("default(%d)", int(d))
}

// ParseDefault resolves a built-in scheme selector by name. The short
// aliases "bw" and "plain" are accepted.
func ParseDefault(s string) (Default, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return None, nil
	case "black_and_white", "bw":
		return BlackAndWhite, nil
	case "color":
		return Color, nil
	case "plain_text", "plain":
		return PlainText, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}

// Intensity is the rendition weight of a style.
type Intensity int

const (
	Normal Intensity = iota
	Bright
	Dim
)

// normalIntensity is SGR 22, neither bold nor faint.
const normalIntensity color.Attribute = 22

func (i Intensity) attr() color.Attribute {
	switch i {
	case Bright:
		return color.Bold
	case Dim:
		return color.Faint
	}
	return normalIntensity
}

func (i Intensity) String() string {
	switch i {
	case Bright:
		return "BRIGHT"
	case Dim:
		return "DIM"
	}
	return "NORMAL"
}

func parseIntensity(s string) (Intensity, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NORMAL":
		return Normal, true
	case "BRIGHT":
		return Bright, true
	case "DIM":
		return Dim, true
	}
	return Normal, false
}

// ParseIntensity resolves a case-insensitive intensity name: NORMAL,
// BRIGHT or DIM.
func ParseIntensity(s string) (Intensity, error) {
	in, ok := parseIntensity(s)
	if !ok {
		return Normal, fmt.Errorf("unknown intensity %q", s)
	}
	return in, nil
}

// Style describes one renderable style: color names in the scheme's naming
// convention plus an intensity. Empty color names mean the terminal
// default. The zero value renders with normal intensity and no colors.
type Style struct {
	Foreground string
	Background string
	Intensity  Intensity
}

// Color names follow the classic terminal palette, with LIGHT*_EX naming
// the high-intensity variants.
var foregrounds = map[string]color.Attribute{
	"BLACK":           color.FgBlack,
	"RED":             color.FgRed,
	"GREEN":           color.FgGreen,
	"YELLOW":          color.FgYellow,
	"BLUE":            color.FgBlue,
	"MAGENTA":         color.FgMagenta,
	"CYAN":            color.FgCyan,
	"WHITE":           color.FgWhite,
	"LIGHTBLACK_EX":   color.FgHiBlack,
	"LIGHTRED_EX":     color.FgHiRed,
	"LIGHTGREEN_EX":   color.FgHiGreen,
	"LIGHTYELLOW_EX":  color.FgHiYellow,
	"LIGHTBLUE_EX":    color.FgHiBlue,
	"LIGHTMAGENTA_EX": color.FgHiMagenta,
	"LIGHTCYAN_EX":    color.FgHiCyan,
	"LIGHTWHITE_EX":   color.FgHiWhite,
}

var backgrounds = map[string]color.Attribute{
	"BLACK":           color.BgBlack,
	"RED":             color.BgRed,
	"GREEN":           color.BgGreen,
	"YELLOW":          color.BgYellow,
	"BLUE":            color.BgBlue,
	"MAGENTA":         color.BgMagenta,
	"CYAN":            color.BgCyan,
	"WHITE":           color.BgWhite,
	"LIGHTBLACK_EX":   color.BgHiBlack,
	"LIGHTRED_EX":     color.BgHiRed,
	"LIGHTGREEN_EX":   color.BgHiGreen,
	"LIGHTYELLOW_EX":  color.BgHiYellow,
	"LIGHTBLUE_EX":    color.BgHiBlue,
	"LIGHTMAGENTA_EX": color.BgHiMagenta,
	"LIGHTCYAN_EX":    color.BgHiCyan,
	"LIGHTWHITE_EX":   color.BgHiWhite,
}

func foregroundAttr(name string) (color.Attribute, bool) {
	a, ok := foregrounds[strings.ToUpper(name)]
	return a, ok
}

func backgroundAttr(name string) (color.Attribute, bool) {
	a, ok := backgrounds[strings.ToUpper(name)]
	return a, ok
}

// ColorNames returns the recognized color names in palette order.
func ColorNames() []string {
	return []string{
		"BLACK", "RED", "GREEN", "YELLOW", "BLUE", "MAGENTA", "CYAN", "WHITE",
		"LIGHTBLACK_EX", "LIGHTRED_EX", "LIGHTGREEN_EX", "LIGHTYELLOW_EX",
		"LIGHTBLUE_EX", "LIGHTMAGENTA_EX", "LIGHTCYAN_EX", "LIGHTWHITE_EX",
	}
}

// Attrs returns the SGR attributes for the style, foreground then
// background then intensity. Unknown color names contribute nothing; the
// intensity attribute is always present.
func (s Style) Attrs() []color.Attribute {
	attrs := make([]color.Attribute, 0, 3)
	if a, ok := foregroundAttr(s.Foreground); ok {
		attrs = append(attrs, a)
	}
	if a, ok := backgroundAttr(s.Background); ok {
		attrs = append(attrs, a)
	}
	return append(attrs, s.Intensity.attr())
}

// Sprint renders its arguments wrapped in the style's escape sequence,
// honoring the package-wide color.NoColor switch.
func (s Style) Sprint(a ...any) string {
	return color.New(s.Attrs()...).Sprint(a...)
}

// Field identifies one element of a human-readable log line.
type Field int

const (
	Operator Field = iota
	Timestamp
	PID
	TID
	File
	Level
	Message
)

var fieldNames = [...]string{
	Operator:  "operator",
	Timestamp: "timestamp",
	PID:       "pid",
	TID:       "tid",
	File:      "file",
	Level:     "level",
	Message:   "message",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField resolves a case-insensitive field name.
func ParseField(s string) (Field, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for f, name := range fieldNames {
		if name == n {
			return Field(f), nil
		}
	}
	return Operator, fmt.Errorf("unknown field %q", s)
}

// Fields returns every field in declaration order.
func Fields() []Field {
	out := make([]Field, len(fieldNames))
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// DefaultFieldOrder is the console line layout used when a scheme does not
// fix its own order.
func DefaultFieldOrder() []Field {
	return []Field{Timestamp, PID, TID, Level, Message}
}

// Names of the level-independent special styles.
const (
	SpecialDefault   = "default"
	SpecialBracket   = "bracket_color"
	SpecialTimestamp = "timestamp_color"
	SpecialOperator  = "operator_color"
	SpecialProcess   = "process_color"
	SpecialComment   = "comment_color"
)

// SpecialNames returns the special style names in document order.
func SpecialNames() []string {
	return []string{
		SpecialDefault, SpecialBracket, SpecialTimestamp,
		SpecialOperator, SpecialProcess, SpecialComment,
	}
}

// Scheme holds the styles for every severity and special element. All
// methods are safe for concurrent use.
type Scheme struct {
	mu        sync.RWMutex
	normal    [identityCount]Style
	highlight [identityCount]Style
	special   map[string]Style
	order     []Field
}

// New returns one of the built-in schemes. None selects the color scheme.
func New(d Default) (*Scheme, error) {
	switch d {
	case PlainText:
		return plainScheme(), nil
	case BlackAndWhite:
		return bwScheme(), nil
	case None, Color:
		return colorScheme(), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(d))
}

// NewDefault returns the full color scheme.
func NewDefault() *Scheme {
	s, _ := New(Color)
	return s
}

// LevelStyle returns the normal style for a severity. Invalid identities
// fall back to the default style.
func (s *Scheme) LevelStyle(l level.Level) Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !l.Valid() {
		return s.special[SpecialDefault]
	}
	return s.normal[l]
}

// LevelHighlight returns the highlight style for a severity, used for the
// level tag and command stream tags.
func (s *Scheme) LevelHighlight(l level.Level) Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !l.Valid() {
		return s.special[SpecialDefault]
	}
	return s.highlight[l]
}

// FieldStyle returns the style for a line element. PID and TID share the
// process style, File uses the comment style, and Level brightens the
// default style. Message is the default style itself.
func (s *Scheme) FieldStyle(f Field) Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fieldStyleLocked(f)
}

func (s *Scheme) fieldStyleLocked(f Field) Style {
	switch f {
	case Operator:
		return s.special[SpecialOperator]
	case Timestamp:
		return s.special[SpecialTimestamp]
	case PID, TID:
		return s.special[SpecialProcess]
	case File:
		return s.special[SpecialComment]
	case Level:
		st := s.special[SpecialDefault]
		st.Intensity = Bright
		return st
	}
	return s.special[SpecialDefault]
}

// SpecialStyle returns one of the named special styles.
func (s *Scheme) SpecialStyle(name string) Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.special[name]
}

// DefaultStyle returns the special default style, the fallback for
// messages and unknown references.
func (s *Scheme) DefaultStyle() Style { return s.SpecialStyle(SpecialDefault) }

// BracketStyle returns the style for the square brackets around tags.
func (s *Scheme) BracketStyle() Style { return s.SpecialStyle(SpecialBracket) }

// TimestampStyle returns the style for timestamps.
func (s *Scheme) TimestampStyle() Style { return s.SpecialStyle(SpecialTimestamp) }

// OperatorStyle returns the style for operator punctuation such as the
// parentheses around command stream tags.
func (s *Scheme) OperatorStyle() Style { return s.SpecialStyle(SpecialOperator) }

// ProcessStyle returns the style for process and thread ids.
func (s *Scheme) ProcessStyle() Style { return s.SpecialStyle(SpecialProcess) }

// CommentStyle returns the style for trailing comments on command lines.
func (s *Scheme) CommentStyle() Style { return s.SpecialStyle(SpecialComment) }

// StyleFor resolves a style reference: a level.Level, a Field, or a string
// naming either. Unknown references fall back to the default style, never
// an error. The highlight flag selects the highlight variant for
// severities and is ignored for fields.
func (s *Scheme) StyleFor(ref any, highlight bool) Style {
	switch v := ref.(type) {
	case level.Level:
		if highlight {
			return s.LevelHighlight(v)
		}
		return s.LevelStyle(v)
	case Field:
		return s.FieldStyle(v)
	case string:
		if l, err := level.FromName(v); err == nil {
			return s.StyleFor(l, highlight)
		}
		if f, err := ParseField(v); err == nil {
			return s.FieldStyle(f)
		}
	}
	return s.DefaultStyle()
}

// FieldOrder returns a copy of the console field order.
func (s *Scheme) FieldOrder() []Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Field(nil), s.order...)
}

// SetFieldOrder replaces the console field order.
func (s *Scheme) SetFieldOrder(order []Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append([]Field(nil), order...)
}

// SetLevelStyle replaces the normal style for a severity.
func (s *Scheme) SetLevelStyle(l level.Level, st Style) error {
	if !l.Valid() {
		return fmt.Errorf("set level style: %w: identity %d", level.ErrUnknownLevel, int(l))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.normal[l] = st
	return nil
}

// SetLevelHighlight replaces the highlight style for a severity.
func (s *Scheme) SetLevelHighlight(l level.Level, st Style) error {
	if !l.Valid() {
		return fmt.Errorf("set level highlight: %w: identity %d", level.ErrUnknownLevel, int(l))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlight[l] = st
	return nil
}

// SetSpecialStyle replaces one of the named special styles.
func (s *Scheme) SetSpecialStyle(name string, st Style) error {
	for _, n := range SpecialNames() {
		if n == name {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.special[name] = st
			return nil
		}
	}
	return fmt.Errorf("unknown special style %q", name)
}

// customPalette colors the ten custom slots distinctly in the color
// scheme.
var customPalette = [...]string{
	"CYAN", "MAGENTA", "BLUE", "LIGHTGREEN_EX", "LIGHTYELLOW_EX",
	"LIGHTBLUE_EX", "LIGHTMAGENTA_EX", "LIGHTCYAN_EX", "GREEN", "YELLOW",
}

func colorScheme() *Scheme {
	s := &Scheme{
		special: map[string]Style{
			SpecialDefault:   {Foreground: "LIGHTWHITE_EX"},
			SpecialBracket:   {Foreground: "YELLOW"},
			SpecialTimestamp: {Foreground: "LIGHTCYAN_EX"},
			SpecialOperator:  {Foreground: "YELLOW"},
			SpecialProcess:   {Foreground: "CYAN"},
			SpecialComment:   {Foreground: "LIGHTBLACK_EX"},
		},
		order: DefaultFieldOrder(),
	}
	s.normal = [identityCount]Style{
		level.NotSet:        {Foreground: "LIGHTBLACK_EX"},
		level.Debug:         {Foreground: "BLUE"},
		level.Info:          {Foreground: "GREEN"},
		level.Command:       {Foreground: "CYAN"},
		level.CommandOutput: {Foreground: "WHITE"},
		level.CommandStderr: {Foreground: "LIGHTRED_EX"},
		level.Warning:       {Foreground: "YELLOW"},
		level.Error:         {Foreground: "RED"},
		level.Critical:      {Foreground: "MAGENTA", Intensity: Bright},
		level.Fatal:         {Foreground: "LIGHTWHITE_EX", Background: "RED", Intensity: Bright},
	}
	s.highlight = [identityCount]Style{
		level.NotSet:        {Foreground: "LIGHTBLACK_EX", Intensity: Bright},
		level.Debug:         {Foreground: "LIGHTBLUE_EX", Intensity: Bright},
		level.Info:          {Foreground: "LIGHTGREEN_EX", Intensity: Bright},
		level.Command:       {Foreground: "LIGHTCYAN_EX", Intensity: Bright},
		level.CommandOutput: {Foreground: "LIGHTWHITE_EX"},
		level.CommandStderr: {Foreground: "RED", Intensity: Bright},
		level.Warning:       {Foreground: "LIGHTYELLOW_EX", Intensity: Bright},
		level.Error:         {Foreground: "LIGHTRED_EX", Intensity: Bright},
		level.Critical:      {Foreground: "LIGHTMAGENTA_EX", Intensity: Bright},
		level.Fatal:         {Foreground: "RED", Background: "WHITE", Intensity: Bright},
	}
	for i := 0; i < len(customPalette); i++ {
		s.normal[int(level.Custom0)+i] = Style{Foreground: customPalette[i]}
		s.highlight[int(level.Custom0)+i] = Style{Foreground: customPalette[i], Intensity: Bright}
	}
	return s
}

func bwScheme() *Scheme {
	s := &Scheme{
		special: map[string]Style{
			SpecialDefault:   {Foreground: "LIGHTWHITE_EX"},
			SpecialBracket:   {Foreground: "LIGHTBLACK_EX"},
			SpecialTimestamp: {Foreground: "WHITE"},
			SpecialOperator:  {Foreground: "WHITE"},
			SpecialProcess:   {Foreground: "WHITE", Intensity: Dim},
			SpecialComment:   {Foreground: "LIGHTBLACK_EX"},
		},
		order: DefaultFieldOrder(),
	}
	s.normal = [identityCount]Style{
		level.NotSet:        {Foreground: "LIGHTBLACK_EX", Intensity: Dim},
		level.Debug:         {Foreground: "LIGHTBLACK_EX"},
		level.Info:          {Foreground: "WHITE"},
		level.Command:       {Foreground: "WHITE"},
		level.CommandOutput: {Foreground: "WHITE", Intensity: Dim},
		level.CommandStderr: {Foreground: "LIGHTWHITE_EX"},
		level.Warning:       {Foreground: "LIGHTWHITE_EX"},
		level.Error:         {Foreground: "LIGHTWHITE_EX", Intensity: Bright},
		level.Critical:      {Foreground: "LIGHTWHITE_EX", Intensity: Bright},
		level.Fatal:         {Foreground: "BLACK", Background: "WHITE", Intensity: Bright},
	}
	s.highlight = [identityCount]Style{
		level.NotSet:        {Foreground: "LIGHTBLACK_EX"},
		level.Debug:         {Foreground: "WHITE"},
		level.Info:          {Foreground: "LIGHTWHITE_EX"},
		level.Command:       {Foreground: "LIGHTWHITE_EX"},
		level.CommandOutput: {Foreground: "WHITE"},
		level.CommandStderr: {Foreground: "LIGHTWHITE_EX", Intensity: Bright},
		level.Warning:       {Foreground: "LIGHTWHITE_EX", Intensity: Bright},
		level.Error:         {Foreground: "BLACK", Background: "WHITE"},
		level.Critical:      {Foreground: "BLACK", Background: "WHITE", Intensity: Bright},
		level.Fatal:         {Foreground: "WHITE", Background: "BLACK", Intensity: Bright},
	}
	for l := level.Custom0; l <= level.Custom9; l++ {
		s.normal[l] = Style{Foreground: "WHITE"}
		s.highlight[l] = Style{Foreground: "LIGHTWHITE_EX"}
	}
	return s
}

func plainScheme() *Scheme {
	s := &Scheme{
		special: map[string]Style{},
		order:   DefaultFieldOrder(),
	}
	for _, name := range SpecialNames() {
		s.special[name] = Style{}
	}
	return s
}
