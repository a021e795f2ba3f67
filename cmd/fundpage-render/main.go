// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command fundpage-render writes the campaign page as a static HTML file.
//
//	fundpage-render -data data.json -out public/index.html
//	fundpage-render -data https://example.org/data.json -watch
//
// With -watch the page is rendered again whenever a local input changes.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"

	"github.com/danielhkuo/fundpage/cliparse"
	"github.com/danielhkuo/fundpage/dom"
	"github.com/danielhkuo/fundpage/loader"
	"github.com/danielhkuo/fundpage/logging"
	"github.com/danielhkuo/fundpage/models"
	"github.com/danielhkuo/fundpage/page"
	"github.com/danielhkuo/fundpage/progress"
	"github.com/danielhkuo/fundpage/render"
)

const debounce = 100 * time.Millisecond

type options struct {
	Data     string
	Template string
	Out      string
	Chain    string
	Watch    bool
	Timeout  time.Duration
	LogLevel string
	EnvFile  string
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(2)
	}

	logging.Setup(opts.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("fundpage-render", flag.ContinueOnError)
	fs.StringVar(&opts.Data, "data", "", "Snapshot file path or http(s) URL")
	fs.StringVar(&opts.Template, "template", "", "Page template path (default: embedded)")
	fs.StringVar(&opts.Out, "out", "-", "Output file, - for stdout")
	fs.StringVar(&opts.Chain, "chain", "", "Phase chain YAML path (default: built-in)")
	fs.BoolVar(&opts.Watch, "watch", false, "Render again when local inputs change")
	fs.DurationVar(&opts.Timeout, "timeout", 5*time.Second, "Snapshot fetch timeout")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&opts.EnvFile, "env", ".env", "Environment file to load if present")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if err := cliparse.LoadEnvFile(opts.EnvFile); err != nil {
		return options{}, err
	}
	for field, env := range map[*string]string{
		&opts.Data:     "DATA_URL",
		&opts.Template: "TEMPLATE_PATH",
		&opts.Chain:    "CHAIN_PATH",
		&opts.LogLevel: "LOG_LEVEL",
	} {
		if *field == "" {
			*field = os.Getenv(env)
		}
	}

	if opts.Data == "" {
		return options{}, errors.New("snapshot required (use -data or DATA_URL env)")
	}
	if opts.Watch && isStdout(opts.Out) {
		return options{}, errors.New("-watch needs -out to name a file")
	}
	return opts, nil
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	if err := renderOnce(ctx, opts, stdout); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}
	return watch(ctx, opts, func() error { return renderOnce(ctx, opts, stdout) })
}

// renderOnce renders the page from fresh inputs. A snapshot that cannot be
// loaded leaves the template values in place, the same as the server does.
func renderOnce(ctx context.Context, opts options, stdout io.Writer) error {
	chain, err := progress.LoadChain(opts.Chain)
	if err != nil {
		return err
	}
	tmpl, err := page.Load(opts.Template)
	if err != nil {
		return err
	}

	doc, err := dom.Parse(bytes.NewReader(tmpl))
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	renderer := render.New(chain)
	loaded := loader.Load(ctx, sourceFor(opts), func(snap models.CampaignSnapshot) {
		renderer.Render(doc, snap)
	})

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	if err := writeOutput(opts.Out, buf.Bytes(), stdout); err != nil {
		return err
	}

	slog.Info("page rendered", "out", opts.Out, "size", humanize.Bytes(uint64(buf.Len())), "snapshot_loaded", loaded)
	return nil
}

func sourceFor(opts options) loader.Source {
	if strings.HasPrefix(opts.Data, "http://") || strings.HasPrefix(opts.Data, "https://") {
		return loader.NewHTTPSource(opts.Data, opts.Timeout)
	}
	return loader.FileSource{Path: opts.Data}
}

func isStdout(out string) bool {
	return out == "" || out == "-"
}

// writeOutput replaces the output file atomically so readers never see a
// partial page.
func writeOutput(out string, data []byte, stdout io.Writer) error {
	if isStdout(out) {
		_, err := stdout.Write(data)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), ".fundpage-*.html")
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		return fmt.Errorf("failed to replace output: %w", err)
	}
	return nil
}

// watchedFiles lists the local inputs of a render.
func watchedFiles(opts options) []string {
	var files []string
	for _, p := range []string{opts.Template, opts.Chain} {
		if p != "" {
			files = append(files, p)
		}
	}
	if _, ok := sourceFor(opts).(loader.FileSource); ok {
		files = append(files, opts.Data)
	}
	return files
}

// watch re-runs rerender after local inputs settle. Directories are watched
// rather than files so editors that replace files on save are still seen.
func watch(ctx context.Context, opts options, rerender func() error) error {
	files := watchedFiles(opts)
	if len(files) == 0 {
		return errors.New("nothing to watch: every input is remote or embedded")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	slog.Info("watching for changes", "files", len(targets))

	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain initial timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !targets[name] {
				continue
			}
			slog.Debug("input changed", "file", name, "op", event.Op.String())
			debounceTimer.Reset(debounce)

		case <-debounceTimer.C:
			if err := rerender(); err != nil {
				slog.Error("render failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}
