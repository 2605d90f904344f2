// Command audiomaster is the CLI entrypoint for the AudioMaster batch
// mastering tool.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the interactive mastering session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/audiomaster/internal/check"
	"github.com/backmassage/audiomaster/internal/config"
	"github.com/backmassage/audiomaster/internal/display"
	"github.com/backmassage/audiomaster/internal/enhance"
	"github.com/backmassage/audiomaster/internal/ffmpeg"
	"github.com/backmassage/audiomaster/internal/logging"
	"github.com/backmassage/audiomaster/internal/pipeline"
	"github.com/backmassage/audiomaster/internal/progress"
	"github.com/backmassage/audiomaster/internal/session"
	"github.com/backmassage/audiomaster/internal/workdir"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "audiomaster: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "audiomaster: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audiomaster: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(log)
		return 0
	}

	// Fail fast if ffmpeg/ffprobe or the MP3 encoder are unavailable;
	// every job ends in an MP3 encode so there is no point starting without.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling. Ctrl+C terminates the whole process
	// immediately rather than winding down mid-file: partial scratch
	// output is reclaimed by the next run's directory setup.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted. Exiting.")
		os.Exit(0)
	}()

	// Phase 4: Optional enhancement model. Initialized once per process;
	// a missing or broken deep-filter install is fatal so the user never
	// silently gets un-enhanced output. --no-enhance skips this entirely.
	var enhancer *enhance.Handle
	if cfg.EnhanceEnabled {
		ind := progress.New("Initializing audio enhancement model (DeepFilterNet)", os.Stdout, 0)
		ind.Start()
		enhancer, err = enhance.Init(ctx, cfg.Verbose)
		ind.Stop()
		if err != nil {
			log.Error("Enhancement init failed: %v", err)
			log.Error("Install deep-filter, or re-run with --no-enhance.")
			return 1
		}
	}

	// Phase 5: Assemble the pipeline and hand off to the interactive session.
	dirs := workdir.NewManager(cfg.BaseDir)
	engine := ffmpeg.New(cfg.Verbose)

	pipe := &pipeline.Pipeline{
		Dirs:         dirs,
		Transcoder:   engine,
		Loudness:     engine,
		Prober:       engine,
		Log:          log,
		IndicatorOut: os.Stdout,
		Verbose:      cfg.Verbose,
	}
	if enhancer != nil {
		pipe.Enhancer = enhancer
	}

	log.Debug(cfg.Verbose, "audiomaster v%s (%s)", version, commit)

	sess := session.New(&cfg, log, pipe, dirs, os.Stdin, os.Stdout)
	if err := sess.Run(ctx); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
