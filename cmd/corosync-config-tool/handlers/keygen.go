package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/shikifyj/corosync-config-tool/internal/ui"
	"github.com/shikifyj/corosync-config-tool/internal/util/keygen"
)

// KeygenOptions configures Keygen.
type KeygenOptions struct {
	Type    string
	Dir     string
	Name    string
	Comment string
}

// generateKey creates the key pair; replaced in tests.
var generateKey = keygen.Generate

// Keygen writes a new SSH key pair and prints the public key for
// authorized_keys on the nodes.
func Keygen(out io.Writer, opts KeygenOptions) error {
	pair, err := generateKey(opts.Type, opts.Comment)
	if err != nil {
		return err
	}
	path, err := pair.WriteFiles(opts.Dir, opts.Name)
	if err != nil {
		return err
	}

	ui.OK(out, "private key written to %s", path)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Append this line to /root/.ssh/authorized_keys on every node:")
	fmt.Fprintf(out, "  %s\n", strings.TrimSpace(string(pair.PublicKey)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Then run with --ssh-key %s\n", path)
	return nil
}
