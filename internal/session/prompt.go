package session

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/backmassage/audiomaster/internal/config"
)

// lineReader reads whole input lines, reporting io.EOF when the stream ends.
// EOF is how a piped or closed stdin asks the session to exit gracefully.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (lr *lineReader) readLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			// A final line without a trailing newline still counts.
			return strings.TrimSpace(line), nil
		}
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

// prompt prints msg and reads one trimmed line.
func (s *Session) prompt(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	return s.in.readLine()
}

// promptYesNo asks a yes/no question; an empty answer selects def. "q" is
// treated as no so either decline key exits loops.
func (s *Session) promptYesNo(msg string, def bool) (bool, error) {
	answer, err := s.prompt(msg)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no", "q":
		return false, nil
	default:
		return def, nil
	}
}

// stripQuotes removes surrounding quote characters that terminals add when a
// path is dragged and dropped onto the prompt.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, `'`)
	return strings.TrimSpace(s)
}

// parseLoudness parses a custom LUFS value and checks the valid interval.
func parseLoudness(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	if verr := config.ValidateTargetLoudness(v); verr != nil {
		return 0, verr
	}
	return v, nil
}
