package flash

import (
	"path/filepath"
	"testing"

	"github.com/rzbill/flash/pkg/colorscheme"
	"github.com/rzbill/flash/pkg/level"
)

func resetDefault(t *testing.T) {
	t.Helper()
	SetDefault(nil)
	t.Cleanup(func() { SetDefault(nil) })
}

func TestDefaultIsLazyAndSticky(t *testing.T) {
	resetDefault(t)

	d := Default()
	if d == nil {
		t.Fatalf("default dispatcher missing")
	}
	if Default() != d {
		t.Fatalf("default dispatcher should be reused")
	}

	SetDefault(nil)
	if Default() == d {
		t.Fatalf("reset should build a fresh dispatcher")
	}
}

func TestSetDefault(t *testing.T) {
	resetDefault(t)

	mem := newMemChannel()
	d, err := New(WithChannel(mem))
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	SetDefault(d)

	Info("through the package")
	got := mem.recorded()
	if len(got) != 1 {
		t.Fatalf("want 1 record, got %d", len(got))
	}
	if got[0].Level != level.Info || got[0].Message != "through the package" {
		t.Fatalf("unexpected record: %+v", got[0])
	}
	if filepath.Base(got[0].File) != "global_test.go" {
		t.Fatalf("call site %q, want this test file", got[0].File)
	}
}

func TestPackageShortcuts(t *testing.T) {
	resetDefault(t)
	resetLevels(t)

	mem := newMemChannel()
	d, err := New(WithChannel(mem))
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	SetDefault(d)

	Debug("a")
	Warning("b")
	Command("c")
	Logf(level.Error, "count %d", 2)
	Header("Boot")
	Progress(level.Info, "pulling", "1/3")
	if _, err := Custom(42, "AUDIT", "custom line"); err != nil {
		t.Fatalf("custom: %v", err)
	}

	got := mem.recorded()
	wantMsgs := []string{"a", "b", "c", "count 2", "# Boot #", "pulling (1/3)", "custom line"}
	if len(got) != len(wantMsgs) {
		t.Fatalf("want %d records, got %d", len(wantMsgs), len(got))
	}
	for i, msg := range wantMsgs {
		if got[i].Message != msg {
			t.Fatalf("record %d message %q, want %q", i, got[i].Message, msg)
		}
	}
	if got[0].Level != level.Debug || got[2].Level != level.Command {
		t.Fatalf("shortcut levels wrong: %+v", got)
	}
}

func TestConfigureBuildsAndDeduplicates(t *testing.T) {
	resetDefault(t)

	path := filepath.Join(t.TempDir(), "log", "app.log")
	d, err := Configure(colorscheme.PlainText, path)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	if n := len(d.Channels()); n != 2 {
		t.Fatalf("want console and file channel, got %d", n)
	}

	// Re-configuring the same destinations changes nothing.
	d2, err := Configure(colorscheme.Color, path)
	if err != nil {
		t.Fatalf("reconfigure: %v", err)
	}
	if d2 != d {
		t.Fatalf("configure should keep the default dispatcher")
	}
	if n := len(d2.Channels()); n != 2 {
		t.Fatalf("reconfigure added channels, got %d", n)
	}

	// A second log file is added alongside.
	other := filepath.Join(t.TempDir(), "other.log")
	if _, err := Configure(colorscheme.None, other); err != nil {
		t.Fatalf("configure second file: %v", err)
	}
	if n := len(d.Channels()); n != 3 {
		t.Fatalf("want 3 channels after adding a file, got %d", n)
	}
}

func TestConfigureFileOnly(t *testing.T) {
	resetDefault(t)

	path := filepath.Join(t.TempDir(), "app.log")
	d, err := Configure(colorscheme.None, path)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	chs := d.Channels()
	if len(chs) != 1 {
		t.Fatalf("want only the file channel, got %d", len(chs))
	}
	if _, ok := chs[0].(*FileChannel); !ok {
		t.Fatalf("want a file channel, got %T", chs[0])
	}
}

func TestConfigureNothingFails(t *testing.T) {
	resetDefault(t)

	if _, err := Configure(colorscheme.None, ""); err == nil {
		t.Fatalf("configuring no destinations should fail")
	}
}
