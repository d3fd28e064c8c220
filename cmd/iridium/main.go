// Command iridium compiles a persisted IR snapshot (§6 "Persisted snapshot
// format") into standalone JS source. It is the one standalone entry point
// the library needs, adapted from the teacher's own spec/dev.go: plain
// flag-based parsing, an fsnotify watch loop, no CLI framework.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/protongramzk/iridium/internal/ircompiler"
	"github.com/protongramzk/iridium/internal/irstore"
	"github.com/protongramzk/iridium/logutil"
)

func main() {
	in := flag.String("in", "-", "path to a persisted IR snapshot (JSON); \"-\" reads stdin")
	out := flag.String("out", "-", "path to write the compiled JS; \"-\" writes stdout")
	validate := flag.Bool("validate", true, "validate the assembled JS via esbuild before writing it")
	minify := flag.Bool("minify", false, "minify the assembled JS via esbuild (implies -validate)")
	watch := flag.Bool("watch", false, "watch -in for changes and recompile; requires a real file path, not stdin")
	flag.Parse()

	if *watch && *in == "-" {
		logutil.Log("cannot -watch stdin; pass -in <path>")
		os.Exit(1)
	}

	opts := ircompiler.Options{Validate: *validate || *minify, Minify: *minify}

	if err := buildOnce(*in, *out, opts); err != nil {
		logutil.Log("build failed:", err)
		if !*watch {
			os.Exit(1)
		}
	}

	if !*watch {
		return
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		stop()
	}()

	if err := watchAndRebuild(ctx, *in, *out, opts); err != nil {
		logutil.Log("watch error:", err)
		os.Exit(1)
	}
}

func buildOnce(in, out string, opts ircompiler.Options) error {
	data, err := readInput(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", in, err)
	}

	store, err := irstore.ImportJSON(data, nil)
	if err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}

	source, err := ircompiler.Compile(store.GetIR(), opts)
	if err != nil {
		return fmt.Errorf("compiling: %w", err)
	}

	if err := writeOutput(out, source); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	logutil.Logf("compiled %s -> %s (%d bytes)\n", in, out, len(source))
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(bufio.NewReader(os.Stdin))
	}
	return os.ReadFile(path)
}

func writeOutput(path, source string) error {
	if path == "-" {
		_, err := io.WriteString(os.Stdout, source)
		return err
	}
	return os.WriteFile(path, []byte(source), 0o644)
}

// watchAndRebuild debounces fsnotify events on -in's containing directory
// the same way the teacher's spec/dev.go debounces source-tree changes
// before rebuilding the WASM binary: a single idle timer reset on every
// relevant event, fired once the stream goes quiet.
func watchAndRebuild(ctx context.Context, in, out string, opts ircompiler.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(in)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(in)
	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	logutil.Logf("watching %s for changes\n", in)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !strings.Contains(ev.Op.String(), "WRITE") && !strings.Contains(ev.Op.String(), "CREATE") {
				continue
			}
			debounce.Reset(150 * time.Millisecond)
		case <-debounce.C:
			if err := buildOnce(in, out, opts); err != nil {
				logutil.Log("rebuild failed:", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logutil.Log("watcher error:", err)
		}
	}
}
