package handlers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shikifyj/corosync-config-tool/internal/textedit"
	"github.com/shikifyj/corosync-config-tool/internal/ui"
)

// InsertOptions configures Insert.
type InsertOptions struct {
	File      string
	Anchor    string
	Placement textedit.Placement
	// Content is used unless ContentFile is set.
	Content     string
	ContentFile string
	// Write saves the result to File instead of printing it.
	Write bool
}

// Insert splices content into File at Anchor.
func Insert(out io.Writer, opts InsertOptions) error {
	content := opts.Content
	if opts.ContentFile != "" {
		// #nosec G304
		data, err := os.ReadFile(opts.ContentFile)
		if err != nil {
			return fmt.Errorf("failed to read content: %w", err)
		}
		content = strings.TrimSuffix(string(data), "\n")
	}
	if content == "" {
		return errors.New("nothing to insert: set --content or --content-file")
	}

	buf, err := textedit.Load(opts.File)
	if err != nil {
		return err
	}
	if err := buf.Insert(content, opts.Anchor, opts.Placement); err != nil {
		if errors.Is(err, textedit.ErrAnchorNotFound) {
			return fmt.Errorf("%s: %w: %q", opts.File, err, opts.Anchor)
		}
		return err
	}

	if !opts.Write {
		fmt.Fprintln(out, buf.String())
		return nil
	}
	if err := buf.Save(); err != nil {
		return err
	}
	ui.OK(out, "%s updated (%s)", opts.File, opts.Placement)
	return nil
}
