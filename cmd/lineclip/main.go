// Package main is the entry point for the lineclip editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlanLynn/lineclip/internal/clipboard"
	"github.com/AlanLynn/lineclip/internal/config"
	"github.com/AlanLynn/lineclip/internal/engine/buffer"
	"github.com/AlanLynn/lineclip/internal/engine/cursor"
	"github.com/AlanLynn/lineclip/internal/lineops"
	"github.com/AlanLynn/lineclip/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	scriptPath string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	buf, err := openBuffer(opts.file, cfg.Editor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var clip lineops.Clipboard
	if cfg.Clipboard.UseSystem {
		clip = clipboard.NewSystem()
	} else {
		clip = clipboard.NewRegister()
	}

	eng := lineops.New(buf, cursor.NewSetAt(0), clip)

	// Script mode runs headless and prints the resulting buffer.
	if opts.scriptPath != "" {
		return runScript(eng, opts.scriptPath)
	}

	app, err := newApp(eng, opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	defer app.shutdown()

	// Live-reload the config so clipboard and editor settings can change
	// without restarting.
	if opts.configPath != "" {
		watcher, werr := config.NewWatcher(opts.configPath, app.applyConfig)
		if werr == nil {
			defer watcher.Close()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		app.interrupt()
	}()

	if err := app.loop(); err != nil {
		if errors.Is(err, errQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func openBuffer(path string, cfg config.EditorConfig) (*buffer.Buffer, error) {
	if path == "" {
		return buffer.New(cfg.BufferOptions()...), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return buffer.New(cfg.BufferOptions()...), nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return buffer.NewFromReader(f, cfg.BufferOptions()...)
}

func runScript(eng *lineops.Engine, path string) int {
	runner := script.New(eng)
	defer runner.Close()

	if err := runner.DoFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: script %s: %v\n", path, err)
		return 1
	}
	fmt.Print(eng.Buffer().Text())
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Run a Lua script headlessly and print the buffer")
	flag.StringVar(&opts.scriptPath, "s", "", "Run a Lua script headlessly (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "lineclip - line clipboard editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: lineclip [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-C  Copy lines       Ctrl-X  Cut lines\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-V  Paste lines      Ctrl-D  Duplicate lines\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-Q  Quit\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("lineclip %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		opts.file = flag.Arg(0)
	}
	return opts
}
