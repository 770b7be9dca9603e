package demorun

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/rzbill/flash/pkg/flash"
	"github.com/rzbill/flash/pkg/level"
)

func runDemo(t *testing.T, opts Options) string {
	t.Helper()
	t.Cleanup(level.Reset)
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	opts.ConsoleWriter = &buf
	if err := Run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	return buf.String()
}

func TestRunShowsEveryShape(t *testing.T) {
	out := runDemo(t, Options{ConsoleScheme: "plain_text"})

	for _, want := range []string{
		"# flash demo #",
		"## command executed at",
		"(stdout):",
		"(stderr):",
		"[WARNING]",
		"[audit]",
		"syncing artifacts (3/5)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("demo output missing %q:\n%s", want, out)
		}
	}
}

func TestRunJSONFormat(t *testing.T) {
	out := runDemo(t, Options{ConsoleScheme: "plain_text", Format: "json"})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		t.Fatalf("no output")
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not JSON: %v\n%s", err, lines[0])
	}
	if first["message"] != "# flash demo #" {
		t.Fatalf("unexpected first record: %v", first)
	}
}

func TestRunLogFileWarningThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.log")
	runDemo(t, Options{ConsoleScheme: "plain_text", LogFile: path})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "upstream returned 502") {
		t.Fatalf("errors should reach the log file:\n%s", content)
	}
	if strings.Contains(content, "resolving build graph") {
		t.Fatalf("debug lines should not pass the warning threshold:\n%s", content)
	}
}

func TestRunFileFilterOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.log")
	runDemo(t, Options{
		ConsoleScheme: "plain_text",
		LogFile:       path,
		FileFilter:    &flash.FilterSpec{Mode: "include", Levels: []any{"command"}},
	})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "go build ./...") {
		t.Fatalf("included level should reach the log file:\n%s", content)
	}
	if strings.Contains(content, "upstream returned 502") {
		t.Fatalf("the include filter should replace the warning threshold:\n%s", content)
	}
}

func TestRunBadFilter(t *testing.T) {
	t.Cleanup(level.Reset)
	err := Run(context.Background(), Options{
		ConsoleScheme: "plain_text",
		ConsoleWriter: &bytes.Buffer{},
		ConsoleFilter: &flash.FilterSpec{Mode: "fancy"},
	})
	if !errors.Is(err, flash.ErrInvalidFilterSpec) {
		t.Fatalf("want ErrInvalidFilterSpec, got %v", err)
	}
}

func TestRunBadInputs(t *testing.T) {
	if err := Run(context.Background(), Options{ConsoleScheme: "sparkly"}); err == nil {
		t.Fatalf("unknown scheme should fail")
	}
	if err := Run(context.Background(), Options{ConsoleScheme: "plain_text", Format: "yaml"}); !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("unknown format should fail, got %v", err)
	}
	// No console and no file leaves the dispatcher without channels.
	if err := Run(context.Background(), Options{ConsoleScheme: "none"}); !errors.Is(err, flash.ErrNoChannels) {
		t.Fatalf("want ErrNoChannels, got %v", err)
	}
}
