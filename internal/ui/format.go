package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how a sweep is rendered on stdout.
type Format int

const (
	FormatAuto     Format = iota // settled by DetectFormat at startup
	FormatTerminal               // lipgloss colors and icons
	FormatText                   // the same lines without escape codes
	FormatJSON                   // one report document and nothing else
)

var formatNames = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

// String is the canonical --output value.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps an --output value to a Format, ignoring case.
func ParseFormat(s string) (Format, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return FormatAuto, fmt.Errorf("invalid output format %q (want auto, text, term or json)", s)
	}
	return f, nil
}

// DetectFormat styles the report only for a color-capable TTY with
// NO_COLOR unset; pipes and redirects get plain text.
func DetectFormat(output *os.File) Format {
	fd := output.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	switch {
	case os.Getenv("NO_COLOR") != "", !tty:
		return FormatText
	case termenv.NewOutput(output).Profile == termenv.Ascii:
		return FormatText
	}
	return FormatTerminal
}

// Resolve turns FormatAuto into a concrete format for output. noColor
// downgrades terminal output to text.
func Resolve(f Format, output *os.File, noColor bool) Format {
	if f == FormatAuto {
		f = DetectFormat(output)
	}
	if noColor && f == FormatTerminal {
		f = FormatText
	}
	return f
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return in && out
}
