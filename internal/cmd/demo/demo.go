package demorun

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rzbill/flash/pkg/colorscheme"
	"github.com/rzbill/flash/pkg/flash"
	"github.com/rzbill/flash/pkg/level"
)

type Options struct {
	ConsoleScheme string
	SchemeFile    string
	LabelsFile    string
	LogFile       string
	Append        bool
	Format        string
	MetricsAddr   string

	// ConsoleFilter and FileFilter replace the channels' default filter
	// policies (console: everything, file: warning threshold).
	ConsoleFilter *flash.FilterSpec
	FileFilter    *flash.FilterSpec

	// ConsoleWriter redirects console output; used by tests. Defaults to
	// the process terminal.
	ConsoleWriter io.Writer
}

// Run logs a sample of every level through a freshly built dispatcher.
// When a metrics address is set it serves Prometheus metrics there and
// blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Layer a local signal context over the provided one so a bare
	// context.Background still reacts to Ctrl+C while blocking.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.LabelsFile != "" {
		if err := level.LoadLabels(opts.LabelsFile); err != nil {
			return err
		}
	}

	scheme, err := demoScheme(opts)
	if err != nil {
		return err
	}

	var dopts []flash.Option
	if scheme != nil {
		consoleOpts := []flash.ChannelOption{flash.WithScheme(scheme)}
		if opts.ConsoleWriter != nil {
			consoleOpts = append(consoleOpts, flash.WithWriter(opts.ConsoleWriter))
		}
		console := flash.NewConsole(consoleOpts...)
		if opts.ConsoleFilter != nil {
			if err := opts.ConsoleFilter.Apply(console.Filter()); err != nil {
				return err
			}
		}
		dopts = append(dopts, flash.WithChannel(console))
	}
	if opts.LogFile != "" {
		fileOpts := []flash.ChannelOption{flash.WithMinimumLevel(level.Warning)}
		if opts.Append {
			fileOpts = append(fileOpts, flash.WithAppend())
		}
		fc, err := flash.NewFile(opts.LogFile, fileOpts...)
		if err != nil {
			return err
		}
		if opts.FileFilter != nil {
			if err := opts.FileFilter.Apply(fc.Filter()); err != nil {
				return err
			}
		}
		dopts = append(dopts, flash.WithChannel(fc))
	}
	d, err := flash.New(dopts...)
	if err != nil {
		return err
	}
	defer d.Close()

	if opts.Format != "" {
		f, err := flash.ParseOutputFormat(opts.Format)
		if err != nil {
			return err
		}
		d.SetOutputFormat(f)
	}

	var srv *http.Server
	if opts.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv = &http.Server{Addr: opts.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				d.Error("metrics server: " + err.Error())
			}
		}()
		d.Info("serving metrics on " + opts.MetricsAddr + "/metrics")
	}

	showcase(d)

	if srv != nil {
		<-sctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	return nil
}

func demoScheme(opts Options) (*colorscheme.Scheme, error) {
	if opts.SchemeFile != "" {
		return colorscheme.Load(opts.SchemeFile)
	}
	name := opts.ConsoleScheme
	if name == "" {
		name = "color"
	}
	def, err := colorscheme.ParseDefault(name)
	if err != nil {
		return nil, err
	}
	if def == colorscheme.None {
		return nil, nil
	}
	return colorscheme.New(def)
}

func showcase(d *flash.Dispatcher) {
	d.Header("flash demo")
	d.Debug("resolving build graph")
	d.Info("service started", flash.Str("addr", ":8080"))
	d.Warning("cache miss ratio above 0.8")
	d.Error("upstream returned 502")
	d.Critical("write quorum lost")
	d.Fatal("unrecoverable state, shutting down")

	d.Command("go build ./...")
	d.CommandOutput("ok  github.com/rzbill/flash  0.412s")
	d.CommandStderr("ld: warning: ignoring duplicate libraries")

	if lvl, err := d.Custom(35, "AUDIT", "custom severity bound at runtime"); err == nil {
		d.Log(lvl, "the audit slot sits between warning and error")
	}
	d.Progress(level.Info, "syncing artifacts", "3/5")
}
