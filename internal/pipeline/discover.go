package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/audiomaster/internal/config"
)

// Discovery errors reported back to the interactive prompt. They re-prompt
// rather than abort the session.
var (
	ErrInvalidPath     = errors.New("path does not exist")
	ErrUnsupportedFile = errors.New("unsupported file format")
)

// Discovery is the result of resolving a user-specified input source.
type Discovery struct {
	Files []string
	// Dir is the directory that was scanned; empty when a single file was
	// given.
	Dir string
	// CreatedDefault is set when the default input folder did not exist and
	// was created for the user (first run).
	CreatedDefault bool
}

// Discover resolves source into a concrete file list. A directory yields its
// supported-extension files (case-insensitive, non-recursive, in directory
// listing order); a single supported file yields itself; an empty source
// selects defaultDir, creating it on first run and returning an empty list
// with CreatedDefault set.
func Discover(source, defaultDir string) (Discovery, error) {
	if source == "" {
		return discoverDefault(defaultDir)
	}

	fi, err := os.Stat(source)
	if err != nil {
		return Discovery{}, fmt.Errorf("%w: %s", ErrInvalidPath, source)
	}

	if fi.IsDir() {
		files, err := listSupported(source)
		if err != nil {
			return Discovery{}, err
		}
		return Discovery{Files: files, Dir: source}, nil
	}

	if !config.SupportedExtension(source) {
		return Discovery{}, fmt.Errorf("%w: %s (supported: %v)",
			ErrUnsupportedFile, filepath.Base(source), config.SupportedExtensionList())
	}
	return Discovery{Files: []string{source}}, nil
}

func discoverDefault(defaultDir string) (Discovery, error) {
	if _, err := os.Stat(defaultDir); os.IsNotExist(err) {
		if err := os.MkdirAll(defaultDir, 0o755); err != nil {
			return Discovery{}, fmt.Errorf("create default input folder %s: %w", defaultDir, err)
		}
		return Discovery{Dir: defaultDir, CreatedDefault: true}, nil
	}

	files, err := listSupported(defaultDir)
	if err != nil {
		return Discovery{}, err
	}
	return Discovery{Files: files, Dir: defaultDir}, nil
}

// listSupported returns the supported-extension files directly inside dir.
// os.ReadDir yields entries in listing order; no re-sorting is applied so
// processing order is stable with it.
func listSupported(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if config.SupportedExtension(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
