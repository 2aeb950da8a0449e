// Package textedit splices generated text into existing files.
//
// Insertion points are located with an anchor: a contiguous, line-exact
// snippet of the target text. Matching is verbatim per line (no trimming,
// no patterns) and the earliest matching position wins.
package textedit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAnchorNotFound is returned when the anchor does not occur in the text.
// The text is returned unchanged alongside it.
var ErrAnchorNotFound = errors.New("anchor not found")

// Placement controls where content goes relative to the anchor.
type Placement int

const (
	// Above inserts the content before the first anchor line.
	Above Placement = iota
	// Under inserts the content after the last anchor line.
	Under
	// Append ignores the anchor and appends at end of file.
	Append
)

func (p Placement) String() string {
	switch p {
	case Above:
		return "above"
	case Under:
		return "under"
	case Append:
		return "append"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// ParsePlacement converts a flag value into a Placement. An empty value
// means Above; with an empty anchor that still appends.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "above", "":
		return Above, nil
	case "under", "below":
		return Under, nil
	case "append":
		return Append, nil
	default:
		return Append, fmt.Errorf("unknown placement %q (want above, under or append)", s)
	}
}

// Insert splices addition into original relative to anchor.
//
// An empty anchor (or Append) inserts at end of file. When the anchor is
// not found, original is returned as-is together with ErrAnchorNotFound.
// Repeated calls insert repeatedly; there is no deduplication.
func Insert(original, addition, anchor string, placement Placement) (string, error) {
	lines := splitLines(original)
	added := splitLines(addition + "\n")

	offset := len(lines)
	if anchor != "" && placement != Append {
		anchorLines := splitLines(anchor)
		n := findAnchor(lines, anchorLines)
		if n < 0 {
			return original, ErrAnchorNotFound
		}
		offset = n
		if placement == Under {
			offset = n + len(anchorLines)
		}
	}

	out := make([]string, 0, len(lines)+len(added))
	out = append(out, lines[:offset]...)
	out = append(out, added...)
	out = append(out, lines[offset:]...)
	return strings.Join(out, "\n"), nil
}

// findAnchor returns the index of the first window of lines equal to
// anchor, or -1. Windows running past the end are never compared.
func findAnchor(lines, anchor []string) int {
	if len(anchor) == 0 {
		return -1
	}
	for n := 0; n+len(anchor) <= len(lines); n++ {
		matched := true
		for m := range anchor {
			if lines[n+m] != anchor[m] {
				matched = false
				break
			}
		}
		if matched {
			return n
		}
	}
	return -1
}

// splitLines splits on line boundaries the way a text editor does: a
// trailing newline does not produce an empty final line, and "\r\n" is
// treated as a single break.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Indent prefixes every non-blank line of text with prefix.
func Indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
