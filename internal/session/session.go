// Package session implements the interactive outer loop: gather batch
// configuration, discover inputs, run one batch, report, repeat or exit.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/backmassage/audiomaster/internal/config"
	"github.com/backmassage/audiomaster/internal/display"
	"github.com/backmassage/audiomaster/internal/pipeline"
	"github.com/backmassage/audiomaster/internal/workdir"
)

// State is the explicit position of the session loop. The session is the
// only long-lived stateful object in the system; it is driven as a finite
// state value plus a BatchConfig record, never as scattered flags.
type State int

const (
	StateConfiguring State = iota
	StateAwaitingInput
	StateEmpty
	StateQueued
	StateRunning
	StateReporting
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "Configuring"
	case StateAwaitingInput:
		return "AwaitingInput"
	case StateEmpty:
		return "Empty"
	case StateQueued:
		return "Queued"
	case StateRunning:
		return "Running"
	case StateReporting:
		return "Reporting"
	case StateTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session owns one interactive run of the program: a sequence of batches
// sharing a pipeline (and its optional enhancement handle).
type Session struct {
	cfg  *config.Config
	log  pipeline.Logger
	pipe *pipeline.Pipeline
	dirs *workdir.Manager

	in  *lineReader
	out io.Writer

	state  State
	batch  config.BatchConfig
	files  []string
	result pipeline.BatchResult
}

// New assembles a session. in and out are the interactive terminal streams;
// tests substitute scripted readers and buffers.
func New(cfg *config.Config, log pipeline.Logger, pipe *pipeline.Pipeline, dirs *workdir.Manager, in io.Reader, out io.Writer) *Session {
	return &Session{
		cfg:   cfg,
		log:   log,
		pipe:  pipe,
		dirs:  dirs,
		in:    newLineReader(in),
		out:   out,
		state: StateConfiguring,
	}
}

// State returns the current loop state. Exposed for tests.
func (s *Session) State() State { return s.state }

// Run drives the state machine until termination. EOF on the input stream is
// a graceful exit; any other returned error is fatal for the process.
func (s *Session) Run(ctx context.Context) error {
	for s.state != StateTerminated {
		var err error
		switch s.state {
		case StateConfiguring:
			err = s.configure()
		case StateAwaitingInput:
			err = s.awaitInput()
		case StateEmpty:
			err = s.handleEmpty()
		case StateQueued:
			err = s.confirmQueue()
		case StateRunning:
			err = s.runBatch(ctx)
		case StateReporting:
			err = s.report()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.state = StateTerminated
				return nil
			}
			return err
		}
	}
	return nil
}

// configure collects the target loudness from the preset menu or a custom
// value constrained to the valid open interval.
func (s *Session) configure() error {
	fmt.Fprint(s.out, display.Separator())
	fmt.Fprintln(s.out, "Select Target Loudness:")
	for i, p := range config.LoudnessPresets {
		fmt.Fprintf(s.out, "%d. %s: %g LUFS\n", i+1, p.Name, p.LUFS)
	}
	customChoice := len(config.LoudnessPresets) + 1
	fmt.Fprintf(s.out, "%d. Custom Value\n", customChoice)

	for {
		choice, err := s.prompt(fmt.Sprintf("\n> Select option (1-%d) [Default: 1]: ", customChoice))
		if err != nil {
			return err
		}

		if choice == "" {
			s.batch.TargetLoudness = config.DefaultTargetLoudness
			break
		}

		if n, ok := parseMenuChoice(choice, len(config.LoudnessPresets)); ok {
			s.batch.TargetLoudness = config.LoudnessPresets[n-1].LUFS
			break
		}

		if choice == fmt.Sprint(customChoice) {
			target, err := s.promptCustomLoudness()
			if err != nil {
				return err
			}
			s.batch.TargetLoudness = target
			break
		}

		fmt.Fprintln(s.out, "Invalid selection. Please try again.")
	}

	s.state = StateAwaitingInput
	return nil
}

// awaitInput resolves the input source. Discovery errors re-prompt; an empty
// result moves to the Empty state.
func (s *Session) awaitInput() error {
	fmt.Fprint(s.out, display.Separator())
	fmt.Fprintln(s.out, "Select Input Source:")
	fmt.Fprintln(s.out, "1. Drag & drop a [File] or [Folder] here")
	fmt.Fprintf(s.out, "2. Press [Enter] to use default folder: './%s/'\n", s.cfg.InputDir)

	source, err := s.prompt("\n> Path: ")
	if err != nil {
		return err
	}
	source = stripQuotes(source)
	s.batch.Source = source

	d, err := pipeline.Discover(source, s.defaultInputDir())
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidPath) || errors.Is(err, pipeline.ErrUnsupportedFile) {
			s.log.Error("%v", err)
			return nil // stay in AwaitingInput, re-prompt
		}
		return err
	}

	if d.CreatedDefault {
		fmt.Fprint(s.out, display.Separator())
		fmt.Fprintf(s.out, "Created default folder: '%s'\n", s.cfg.InputDir)
		fmt.Fprintln(s.out, "Please place your audio files inside it and try again.")
		s.state = StateEmpty
		return nil
	}

	if len(d.Files) == 0 {
		s.state = StateEmpty
		return nil
	}

	s.files = d.Files
	s.state = StateQueued
	return nil
}

func (s *Session) handleEmpty() error {
	again, err := s.promptYesNo("No valid audio files found. Try again? (Y/n): ", true)
	if err != nil {
		return err
	}
	if again {
		s.state = StateAwaitingInput
	} else {
		s.state = StateTerminated
	}
	return nil
}

// confirmQueue announces the queue and asks the retention question, which is
// deliberately asked after queueing, not during configuration.
func (s *Session) confirmQueue() error {
	fmt.Fprintf(s.out, "\nTarget: %g LUFS | Queue: %d file(s)\n", s.batch.TargetLoudness, len(s.files))

	retain, err := s.promptYesNo("Save normalized intermediate files? (y/N): ", false)
	if err != nil {
		return err
	}
	s.batch.RetainIntermediate = retain

	fmt.Fprint(s.out, display.Separator())
	s.state = StateRunning
	return nil
}

// runBatch ensures the working directories and runs the pipeline. The batch
// cannot be cancelled mid-run except by whole-process termination.
func (s *Session) runBatch(ctx context.Context) error {
	if err := s.dirs.EnsureAll(); err != nil {
		// Without working directories no stage can proceed: fatal for the
		// whole session, not just this batch.
		return err
	}
	s.result = s.pipe.RunBatch(ctx, s.files, s.batch)
	s.state = StateReporting
	return nil
}

func (s *Session) report() error {
	fmt.Fprint(s.out, display.Separator())
	s.log.Info("Completed %d/%d files.", s.result.Succeeded, s.result.Total)
	for _, f := range s.result.Failures {
		s.log.Warn("  %s failed at %s: %v", f.Name, f.Stage, f.Reason)
	}
	s.log.Info("Files saved to: %s", s.dirs.Path(workdir.RoleOutput))
	fmt.Fprint(s.out, display.Separator())

	again, err := s.promptYesNo("Process another batch? (Y/n/q) [Default: Y]: ", true)
	if err != nil {
		return err
	}
	if again {
		s.state = StateConfiguring
	} else {
		fmt.Fprintln(s.out, "Exiting...")
		s.state = StateTerminated
	}
	return nil
}

func (s *Session) defaultInputDir() string {
	return filepath.Join(s.cfg.BaseDir, s.cfg.InputDir)
}

// promptCustomLoudness loops until a parseable value inside the valid open
// interval is entered.
func (s *Session) promptCustomLoudness() (float64, error) {
	for {
		raw, err := s.prompt("Enter target LUFS (e.g. -18.0): ")
		if err != nil {
			return 0, err
		}
		target, perr := parseLoudness(raw)
		if perr != nil {
			fmt.Fprintf(s.out, "Error: %v\n", perr)
			continue
		}
		return target, nil
	}
}

// parseMenuChoice returns the 1-based preset index if choice selects one.
func parseMenuChoice(choice string, presets int) (int, bool) {
	if len(choice) != 1 || choice[0] < '1' {
		return 0, false
	}
	n := int(choice[0] - '0')
	if n >= 1 && n <= presets {
		return n, true
	}
	return 0, false
}
