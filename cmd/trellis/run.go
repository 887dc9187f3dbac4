package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/ShayCichocki/trellis/internal/config"
	"github.com/ShayCichocki/trellis/internal/dashboard"
	"github.com/ShayCichocki/trellis/internal/events"
	"github.com/ShayCichocki/trellis/internal/navigation"
	"github.com/ShayCichocki/trellis/internal/source"
	"github.com/ShayCichocki/trellis/internal/tui"
	"github.com/ShayCichocki/trellis/internal/version"
)

// runDashboard loads the configuration and runs the dashboard until the
// user quits.
func runDashboard(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", config.Path(), err)
	}
	return run(ctx, cfg)
}

// run wires the source, event stream, screen and loop for cfg. Extra
// program options are passed to the screen.
func run(ctx context.Context, cfg *config.Config, screenOpts ...tea.ProgramOption) (retErr error) {
	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	// Nothing may write to the terminal while the alt screen is active.
	restoreLog := redirectLog(logFile)
	defer restoreLog()

	// Recover from panics; deferred closes above still restore the terminal.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[trellis] panic: %v", r)
			retErr = fmt.Errorf("PANIC in dashboard: %v", r)
		}
	}()

	log.Printf("[trellis] starting version %s with %s source", version.Get(), cfg.Source)

	src, err := newSource(cfg)
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	boards, err := src.ListBoards(ctx)
	if err != nil {
		return fmt.Errorf("fetch boards: %w", err)
	}
	log.Printf("[trellis] loaded %d boards", len(boards))

	stream := events.NewStream(ctx, events.DefaultCapacity)
	defer stream.Close()

	screen := tui.NewScreen(screenOpts...)
	screen.Start()
	defer func() {
		if err := screen.Close(); err != nil && retErr == nil {
			retErr = fmt.Errorf("%w: %w", dashboard.ErrRendererFailure, err)
		}
	}()

	stream.StartKeys(screen)
	stream.StartTicker(cfg.TickInterval)
	for _, dir := range watchDirs(cfg) {
		if err := stream.WatchFiles(dir); err != nil {
			log.Printf("[trellis] warning: not watching %s: %v", dir, err)
		}
	}

	loop := dashboard.NewLoop(loopOptions(cfg), navigation.New(boards), src, screen, stream)
	if err := loop.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("[trellis] interrupted")
			return nil
		}
		log.Printf("[trellis] dashboard stopped: %v", err)
		return err
	}

	log.Printf("[trellis] bye")
	return nil
}

// newSource builds the data source selected by cfg.Source.
func newSource(cfg *config.Config) (source.Source, error) {
	switch cfg.Source {
	case config.SourceRemote:
		log.Printf("[config] remote source %s (key %s, token %s)",
			cfg.BaseURL, config.MaskSecret(cfg.Key), config.MaskSecret(cfg.Token))
		remote, err := source.NewRemote(source.RemoteConfig{
			BaseURL: cfg.BaseURL,
			Key:     cfg.Key,
			Token:   cfg.Token,
		})
		if err != nil {
			return nil, err
		}
		return remote, nil
	case config.SourceFixture:
		log.Printf("[config] fixture source under %s", cfg.FixtureRoot)
		return source.NewFixture(afero.NewOsFs(), cfg.FixtureRoot), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// watchDirs returns the directories whose changes should trigger a redraw.
func watchDirs(cfg *config.Config) []string {
	if cfg.Source != config.SourceFixture || !cfg.WatchFixtures {
		return nil
	}
	return []string{filepath.Join(cfg.FixtureRoot, source.FixtureDir)}
}

// loopOptions maps the configuration onto dashboard options.
func loopOptions(cfg *config.Config) dashboard.Options {
	return dashboard.Options{
		AbortOnSourceError: cfg.AbortOnSourceError,
		FetchConcurrency:   cfg.FetchConcurrency,
	}
}

// openLog opens the diagnostic log in append mode.
func openLog(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// redirectLog sends the standard logger to w and returns a function that
// restores the previous output and flags.
func redirectLog(w io.Writer) func() {
	originalOutput := log.Writer()
	originalFlags := log.Flags()
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}
}
