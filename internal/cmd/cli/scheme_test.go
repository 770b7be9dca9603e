package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/rzbill/flash/pkg/colorscheme"
	"github.com/rzbill/flash/pkg/level"
)

func resetLevels(t *testing.T) {
	t.Helper()
	level.Reset()
	t.Cleanup(level.Reset)
}

// runCommand executes cmd with args and returns its combined output,
// failing the test when execution errors.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

func TestSchemeInitWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scheme.json")

	out := runCommand(t, NewSchemeCommand(), "init", "--scheme", "bw", "--file", path)
	if !strings.Contains(out, "wrote") {
		t.Fatalf("missing write confirmation: %q", out)
	}

	loaded, err := colorscheme.Load(path)
	if err != nil {
		t.Fatalf("load written scheme: %v", err)
	}
	want, err := colorscheme.New(colorscheme.BlackAndWhite)
	if err != nil {
		t.Fatalf("built-in scheme: %v", err)
	}
	if got := loaded.LevelStyle(level.Error); got != want.LevelStyle(level.Error) {
		t.Fatalf("error style = %+v, want %+v", got, want.LevelStyle(level.Error))
	}
	if got := loaded.LevelHighlight(level.Fatal); got != want.LevelHighlight(level.Fatal) {
		t.Fatalf("fatal highlight = %+v, want %+v", got, want.LevelHighlight(level.Fatal))
	}
}

func TestSchemeSetRoundTripsEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scheme.json")

	// The first edit starts from a file that does not exist yet.
	runCommand(t, newSchemeSetCommand(),
		"--level", "error", "--fg", "green", "--file", path)
	runCommand(t, newSchemeSetCommand(),
		"--level", "warning", "--variant", "highlight", "--bg", "BLUE", "--intensity", "bright", "--file", path)

	loaded, err := colorscheme.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.LevelStyle(level.Error).Foreground; got != "GREEN" {
		t.Fatalf("error foreground = %q, want GREEN", got)
	}
	st := loaded.LevelHighlight(level.Warning)
	if st.Background != "BLUE" || st.Intensity != colorscheme.Bright {
		t.Fatalf("warning highlight = %+v, want BLUE bright", st)
	}
	// Untouched levels keep the built-in color styles.
	if got, want := loaded.LevelStyle(level.Info), colorscheme.NewDefault().LevelStyle(level.Info); got != want {
		t.Fatalf("info style = %+v, want %+v", got, want)
	}
}

func TestSchemeSetBindsNumericLevel(t *testing.T) {
	resetLevels(t)
	path := filepath.Join(t.TempDir(), "scheme.json")

	runCommand(t, newSchemeSetCommand(),
		"--level", "35", "--variant", "highlight", "--fg", "LIGHTRED_EX", "--file", path)

	// 35 matches no standard value, so it binds the first free custom slot.
	if got := level.Custom0.Value(); got != 35 {
		t.Fatalf("custom0 value = %d, want 35", got)
	}
	loaded, err := colorscheme.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.LevelHighlight(level.Custom0).Foreground; got != "LIGHTRED_EX" {
		t.Fatalf("custom0 highlight foreground = %q, want LIGHTRED_EX", got)
	}
}

func TestSchemeSetRejectsUnknownVariant(t *testing.T) {
	cmd := newSchemeSetCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--level", "info", "--variant", "fancy", "--file", filepath.Join(t.TempDir(), "scheme.json")})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "variant") {
		t.Fatalf("err = %v, want invalid variant", err)
	}
}

func TestSchemeShowListsStyles(t *testing.T) {
	t.Setenv("FLASH_SCHEME_FILE", "")

	out := runCommand(t, NewSchemeCommand(), "show", "--scheme", "plain")
	for _, want := range []string{"levels:", "custom9", "special:", "comment_color", "fields:", "timestamp"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestSchemeDefaultPathFallback(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("FLASH_SCHEME_FILE", "")

	want := filepath.Join(dir, "flash", "color_scheme.json")
	out := runCommand(t, NewSchemeCommand(), "path")
	if strings.TrimSpace(out) != want {
		t.Fatalf("path = %q, want %q", strings.TrimSpace(out), want)
	}

	runCommand(t, NewSchemeCommand(), "init")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("init at default path: %v", err)
	}
}
