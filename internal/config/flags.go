package config

// This file implements CLI flag parsing and help text. The tool is prompt
// driven; flags cover only display, diagnostics, and pipeline-shape toggles.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("audiomaster", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var (
		noEnhance   bool
		forceColor  bool
		noColor     bool
		showVersion bool
		showHelp    bool
	)

	fs.BoolVar(&noEnhance, "no-enhance", false, "Disable neural noise suppression (loudness-only pipeline)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (show ffmpeg stderr)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "audiomaster v"+version)
		os.Exit(0)
	}

	if noEnhance {
		cfg.EnhanceEnabled = false
	}
	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	if args := fs.Args(); len(args) != 0 {
		return fmt.Errorf("unexpected argument %q (input is selected interactively)", args[0])
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 24
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "AudioMaster v" + version + " — interactive batch audio mastering"},
		{"", ""},
		{"  audiomaster [OPTIONS]", ""},
		{"", ""},
		{"Pipeline", ""},
		{"  --no-enhance", "Skip neural noise suppression (loudness-only)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, MP3 encoder, enhancer)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		switch {
		case l.flags == "" && l.desc == "":
			fmt.Fprintln(os.Stderr)
		case l.desc == "":
			fmt.Fprintln(os.Stderr, l.flags)
		case l.flags == "":
			fmt.Fprintln(os.Stderr, l.desc)
		default:
			padding := col1 - len(l.flags)
			if padding < 1 {
				padding = 1
			}
			fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
		}
	}
}
