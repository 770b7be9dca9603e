package flash

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/rzbill/flash/pkg/colorscheme"
	"github.com/rzbill/flash/pkg/level"
)

// noColor renders styles as plain text so lines can be compared exactly.
func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func forceColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })
}

func emitLine(t *testing.T, c *ConsoleChannel, buf *bytes.Buffer, rec Record) string {
	t.Helper()
	buf.Reset()
	if err := c.Emit(rec); err != nil {
		t.Fatalf("emit: %v", err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func TestConsoleHumanLine(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf))

	got := emitLine(t, c, &buf, testRecord(level.Info, "service started"))
	want := "[" + testStamp + "] [pid:4242] [tid:7] [info] [service started]"
	if got != want {
		t.Fatalf("line %q, want %q", got, want)
	}
}

func TestConsoleSevereLevelsUppercase(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf))

	got := emitLine(t, c, &buf, testRecord(level.Warning, "low disk"))
	want := "[" + testStamp + "] [pid:4242] [tid:7] [WARNING] [low disk]"
	if got != want {
		t.Fatalf("line %q, want %q", got, want)
	}

	got = emitLine(t, c, &buf, testRecord(level.Debug, "detail"))
	if !strings.Contains(got, "[debug]") {
		t.Fatalf("debug tag should stay lower case: %q", got)
	}
}

func TestConsoleCommandLine(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf))

	got := emitLine(t, c, &buf, testRecord(level.Command, "make all"))
	want := "make all ## command executed at " + testStamp
	if got != want {
		t.Fatalf("line %q, want %q", got, want)
	}
}

func TestConsoleCommandStreams(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf))

	got := emitLine(t, c, &buf, testRecord(level.CommandOutput, "compiling main.go"))
	if got != "(stdout): compiling main.go" {
		t.Fatalf("stdout line %q", got)
	}
	got = emitLine(t, c, &buf, testRecord(level.CommandStderr, "warning: unused"))
	if got != "(stderr): warning: unused" {
		t.Fatalf("stderr line %q", got)
	}
}

func TestConsoleFieldOrder(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithFieldOrder(colorscheme.Level, colorscheme.Message))

	got := emitLine(t, c, &buf, testRecord(level.Info, "hi"))
	if got != "[info] [hi]" {
		t.Fatalf("line %q", got)
	}

	c.SetFieldOrder(colorscheme.Message, colorscheme.Level)
	got = emitLine(t, c, &buf, testRecord(level.Info, "hi"))
	if got != "[hi] [info]" {
		t.Fatalf("line after reorder %q", got)
	}
}

func TestConsoleFileField(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithFieldOrder(colorscheme.File, colorscheme.Message))

	rec := testRecord(level.Info, "hi")
	rec.File = "/src/app/server.go"
	rec.Line = 42
	got := emitLine(t, c, &buf, rec)
	if got != "[server.go:42] [hi]" {
		t.Fatalf("line %q", got)
	}

	// Records without a call site drop the tag.
	got = emitLine(t, c, &buf, testRecord(level.Info, "hi"))
	if got != "[hi]" {
		t.Fatalf("line without call site %q", got)
	}
}

func TestConsoleJSON(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithOutputFormat(JSON))

	got := emitLine(t, c, &buf, testRecord(level.Info, "hi"))
	want := `{"timestamp":"` + testStamp + `","level":"info","message":"hi","pid":4242,"tid":7}`
	if got != want {
		t.Fatalf("json %q, want %q", got, want)
	}
}

func TestConsoleJSONPretty(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithOutputFormat(JSONPretty))

	got := emitLine(t, c, &buf, testRecord(level.Command, "make"))
	if !strings.HasPrefix(got, "{\n    \"timestamp\"") {
		t.Fatalf("pretty json not indented: %q", got)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("pretty json does not parse: %v", err)
	}
	if decoded["type"] != "command" {
		t.Fatalf("missing command type: %v", decoded)
	}
}

func TestConsoleFilterDropsRecords(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithMinimumLevel(level.Error))

	if err := c.Emit(testRecord(level.Info, "hidden")); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("filtered record was written: %q", buf.String())
	}
	if err := c.Emit(testRecord(level.Error, "shown")); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("allowed record missing: %q", buf.String())
	}
}

func TestConsoleColorOutput(t *testing.T) {
	forceColor(t)
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf))

	if err := c.Emit(testRecord(level.Error, "boom")); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected escape sequences in colored output: %q", buf.String())
	}
}

func TestSetLevelColor(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf))

	if err := c.SetLevelColor(level.Info, "normal", "RED", "WHITE", "bright"); err != nil {
		t.Fatalf("set level color: %v", err)
	}
	st := c.Scheme().LevelStyle(level.Info)
	if st.Foreground != "RED" || st.Background != "WHITE" || st.Intensity != colorscheme.Bright {
		t.Fatalf("style not applied: %+v", st)
	}

	// "default" inherits from the scheme's default style.
	if err := c.SetLevelColor(level.Info, "normal", "default", "default", "default"); err != nil {
		t.Fatalf("reset to default: %v", err)
	}
	st = c.Scheme().LevelStyle(level.Info)
	def := c.Scheme().DefaultStyle()
	if st.Foreground != def.Foreground || st.Background != "" || st.Intensity != def.Intensity {
		t.Fatalf("default inheritance not applied: %+v", st)
	}

	if err := c.SetLevelColor(level.Info, "sideways", "RED", "", ""); err == nil {
		t.Fatalf("bad variant should fail")
	}
	if err := c.SetLevelColor(struct{}{}, "normal", "RED", "", ""); !errors.Is(err, level.ErrBadRef) {
		t.Fatalf("want ErrBadRef, got %v", err)
	}
}

func TestConsoleSetScheme(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf))

	plain, err := colorscheme.New(colorscheme.PlainText)
	if err != nil {
		t.Fatalf("new scheme: %v", err)
	}
	c.SetScheme(plain)
	if c.Scheme() != plain {
		t.Fatalf("scheme not swapped")
	}
	c.SetScheme(nil)
	if c.Scheme() != plain {
		t.Fatalf("nil scheme should be ignored")
	}
}
