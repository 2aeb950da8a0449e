package textedit

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrContentNotFound is returned by Replace and SetValue when the text to
// change does not exist in the buffer.
var ErrContentNotFound = errors.New("content not found")

// Buffer holds the content of a file while it is being edited.
// Changes stay in memory until Save is called.
type Buffer struct {
	Path string
	data string
}

// NewBuffer creates a buffer for path with the given content.
func NewBuffer(path, data string) *Buffer {
	return &Buffer{Path: path, data: data}
}

// Load reads path into a new buffer.
func Load(path string) (*Buffer, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewBuffer(path, string(data)), nil
}

// String returns the current content.
func (b *Buffer) String() string {
	return b.data
}

// Insert splices content into the buffer. On ErrAnchorNotFound the buffer
// is left untouched.
func (b *Buffer) Insert(content, anchor string, placement Placement) error {
	data, err := Insert(b.data, content, anchor, placement)
	if err != nil {
		return err
	}
	b.data = data
	return nil
}

// Replace substitutes every occurrence of old with new.
func (b *Buffer) Replace(old, new string) error {
	if old == "" || !strings.Contains(b.data, old) {
		return fmt.Errorf("%w: %q", ErrContentNotFound, old)
	}
	b.data = strings.ReplaceAll(b.data, old, new)
	return nil
}

// SetValue rewrites the first "key: value" line for key, keeping the
// line's indentation.
func (b *Buffer) SetValue(key, value string) error {
	lines := strings.Split(b.data, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, key+":") {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		lines[i] = fmt.Sprintf("%s%s: %s", indent, key, value)
		b.data = strings.Join(lines, "\n")
		return nil
	}
	return fmt.Errorf("%w: key %q", ErrContentNotFound, key)
}

// Save writes the buffer back to its path.
func (b *Buffer) Save() error {
	if b.Path == "" {
		return errors.New("buffer has no path")
	}
	if err := os.WriteFile(b.Path, []byte(b.data), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", b.Path, err)
	}
	return nil
}
