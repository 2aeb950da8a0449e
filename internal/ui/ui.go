// Package ui holds terminal helpers shared by the commands: status line
// styling, interactivity detection and password prompts.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrNotInteractive is returned by ReadPassword when stdin is not a terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// isTerminal is swapped in tests.
var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// readPassword is swapped in tests.
var readPassword = term.ReadPassword

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

// ReadPassword prompts on w and reads a line from stdin without echo.
func ReadPassword(w io.Writer, prompt string) (string, error) {
	fd := os.Stdin.Fd()
	if !isTerminal(fd) {
		return "", ErrNotInteractive
	}
	fmt.Fprint(w, prompt)
	// #nosec G115
	pw, err := readPassword(int(fd))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// OK prints a success status line.
func OK(w io.Writer, format string, args ...any) {
	status(w, OKStyle.Render(CheckMark), format, args...)
}

// Fail prints a failure status line.
func Fail(w io.Writer, format string, args ...any) {
	status(w, FailedStyle.Render(CrossMark), format, args...)
}

// Warn prints a warning status line.
func Warn(w io.Writer, format string, args ...any) {
	status(w, WarningStyle.Render(WarnMark), format, args...)
}

// Section prints a section heading.
func Section(w io.Writer, title string) {
	fmt.Fprintln(w, SectionStyle.Render(title))
}

func status(w io.Writer, mark, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}
