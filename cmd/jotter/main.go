package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/briarfell/jotter/internal/configuration"
	"github.com/briarfell/jotter/internal/ui"
	"github.com/briarfell/jotter/jsonio"
	"github.com/briarfell/jotter/manifest"
	"github.com/briarfell/jotter/schema"
	"github.com/briarfell/jotter/textio"
	"github.com/briarfell/jotter/walk"
	"github.com/lmittmann/tint"
)

const (
	stackTraceBufMax = 1 << 24
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	rootFlag      = flag.String("root", "", "directory tree to build the manifest over")
	outputFlag    = flag.String("output", configuration.DefaultOutput, "path to write the encoded manifest to")
	formatFlag    = flag.String("format", configuration.DefaultFormat, "manifest output format (json or yaml)")
	checksumsFlag = flag.Bool("checksums", false, "record per-file BLAKE3 checksums")
	verifyFlag    = flag.Bool("verify", false, "re-read the written manifest as a final validation")
	floorFlag     = flag.Uint64("floor", 0, "minimum free space (in bytes) required on the output filesystem")
	configFlag    = flag.String("config", "", "path to a configuration file")
	uiEnabled     = flag.Bool("ui", false, "enable the UI")
	cpuprofile    = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile    = flag.String("memprofile", "", "write memory profile to this file")
)

func setupLogging() *SlogManager {
	logManager := NewSlogManager()
	logManager.AddHandler("terminal", tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))

	slog.SetDefault(slog.New(logManager))

	return logManager
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()

	sigChan3 := make(chan os.Signal, 1)
	signal.Notify(sigChan3, syscall.SIGUSR2)
	go func() {
		for range sigChan3 {
			runtime.GC()
		}
	}()
}

// applyFlagOverrides lets any explicitly passed command-line flags take
// precedence over the respective configuration file values.
func applyFlagOverrides(settings *configuration.Settings) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			settings.Root = *rootFlag
		case "output":
			settings.Output = *outputFlag
		case "format":
			settings.Format = strings.ToLower(*formatFlag)
		case "checksums":
			settings.Checksums = *checksumsFlag
		case "verify":
			settings.Verify = *verifyFlag
		case "floor":
			settings.SpaceFloor = *floorFlag
		case "ui":
			settings.UI = *uiEnabled
		}
	})
}

func startApp(ctx context.Context, wg *sync.WaitGroup, app *App) {
	defer wg.Done()

	if app.uiHandler != nil {
		slog.Info("Waiting for UI...")
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if app.uiHandler.Ready.Load() || app.uiHandler.Failed.Load() {
				break
			}
		}
	}

	if err := app.Launch(ctx); err != nil {
		slog.Error("Failed to build the manifest.", "err", err)
		ExitCode = 1
	}
}

func startUI(wg *sync.WaitGroup, app *App, logManager *SlogManager) {
	defer wg.Done()

	if app.uiHandler != nil {
		terminalHandler, hadTerminal := logManager.GetHandler("terminal")

		logManager.AddHandler("ui", tint.NewHandler(app.uiHandler.LogWriter, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
		logManager.RemoveHandler("terminal")

		defer func() {
			logManager.RemoveHandler("ui")
			if hadTerminal {
				logManager.AddHandler("terminal", terminalHandler)
			}
		}()

		if err := app.LaunchUI(); err != nil {
			slog.Error("UI failure: falling back to terminal.", "err", err)
		}
	}
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Parse()
	logManager := setupLogging()
	setupSignalHandlers(cancel)

	slog.Info("Starting jotter:", "version", Version)

	memObserver := newMemoryObserver(ctx)
	defer memObserver.Stop()

	cpuProfiler := newCPUProfiler(ctx, cpuprofile)
	defer cpuProfiler.Stop()

	allocProfiler := newAllocProfiler(ctx, memprofile)
	defer allocProfiler.Stop()

	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}
	configProvider := &configuration.GodotenvProvider{}

	configHandler := configuration.NewHandler(configProvider)

	var configFiles []string
	if *configFlag != "" {
		configFiles = append(configFiles, *configFlag)
	}

	settings, err := configHandler.EstablishSettings(configFiles...)
	if err != nil {
		slog.Error("Failed to establish the application settings.",
			"err", err,
		)
		ExitCode = 1

		return
	}

	applyFlagOverrides(settings)

	if err := settings.Validate(); err != nil {
		slog.Error("Invalid application settings.",
			"err", err,
		)
		flag.Usage()
		ExitCode = 2

		return
	}

	textHandler := textio.NewHandler(osProvider)
	jsonHandler := jsonio.NewHandler(textHandler)
	walkHandler := walk.NewHandler(osProvider)

	builder := manifest.NewBuilder(walkHandler, osProvider, unixProvider, settings.Checksums)
	writer := manifest.NewWriter(jsonHandler, textHandler)

	var uiHandler *ui.Handler
	if settings.UI {
		uiHandler = ui.NewHandler(ctx, cancel, builder, settings.LogLines)
	}

	var wg sync.WaitGroup
	app := NewApp(settings, builder, writer, jsonHandler, uiHandler)

	wg.Add(1)
	go startUI(&wg, app, logManager)

	wg.Add(1)
	go startApp(ctx, &wg, app)

	wg.Wait()
}
