package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/briarfell/jotter/internal/configuration"
	"github.com/briarfell/jotter/internal/ui"
	"github.com/briarfell/jotter/jsonio"
	"github.com/briarfell/jotter/manifest"
	"github.com/dustin/go-humanize"
)

type App struct {
	settings    *configuration.Settings
	builder     *manifest.Builder
	writer      *manifest.Writer
	jsonHandler *jsonio.Handler
	uiHandler   *ui.Handler
}

func NewApp(settings *configuration.Settings,
	builder *manifest.Builder,
	writer *manifest.Writer,
	jsonHandler *jsonio.Handler,
	uiHandler *ui.Handler,
) *App {
	return &App{
		settings:    settings,
		builder:     builder,
		writer:      writer,
		jsonHandler: jsonHandler,
		uiHandler:   uiHandler,
	}
}

func (app *App) Launch(ctx context.Context) error {
	m, err := app.builder.Build(ctx, app.settings.Root)
	if err != nil {
		return fmt.Errorf("(app) %w", err)
	}

	if err := app.checkSpaceFloor(); err != nil {
		return fmt.Errorf("(app) %w", err)
	}

	if err := app.writer.Write(m, app.settings.Output, app.settings.Format); err != nil {
		return fmt.Errorf("(app) %w", err)
	}

	slog.Info("Manifest written:",
		"path", app.settings.Output,
		"format", app.settings.Format,
	)

	if app.settings.Verify {
		if err := app.verify(m); err != nil {
			return fmt.Errorf("(app) %w", err)
		}
	}

	return nil
}

func (app *App) LaunchUI() error {
	if err := app.uiHandler.Launch(); err != nil {
		return fmt.Errorf("(app-ui) %w", err)
	}

	return nil
}

// checkSpaceFloor ensures the filesystem holding the output path has at
// least the configured minimum of free space left before writing.
func (app *App) checkSpaceFloor() error {
	if app.settings.SpaceFloor == 0 {
		return nil
	}

	outputDir := filepath.Dir(app.settings.Output)

	stats, err := app.builder.DiskUsage(outputDir)
	if err != nil {
		return fmt.Errorf("failed to probe output filesystem: %w", err)
	}

	if stats.FreeSpace < app.settings.SpaceFloor {
		return fmt.Errorf("%w: %s free, %s required",
			ErrSpaceFloor,
			humanize.Bytes(stats.FreeSpace),
			humanize.Bytes(app.settings.SpaceFloor),
		)
	}

	return nil
}

// verify re-reads a written JSON manifest and compares it against the one
// just built. Other output formats are skipped with a warning.
func (app *App) verify(built *manifest.Manifest) error {
	if app.settings.Format != manifest.FormatJSON {
		slog.Warn("Verification is only supported for JSON manifests (was skipped).")

		return nil
	}

	loaded, err := manifest.Load(app.jsonHandler, app.settings.Output)
	if err != nil {
		return fmt.Errorf("failed to re-read manifest: %w", err)
	}

	if loaded.FileCount != built.FileCount || loaded.TotalSize != built.TotalSize {
		return fmt.Errorf("%w: read back %d files with %d bytes, expected %d files with %d bytes",
			ErrVerifyMismatch,
			loaded.FileCount, loaded.TotalSize,
			built.FileCount, built.TotalSize,
		)
	}

	slog.Info("Manifest verified:", "files", loaded.FileCount)

	return nil
}
