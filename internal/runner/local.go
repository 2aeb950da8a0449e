package runner

import (
	"bytes"
	"context"
	"os/exec"
)

// LocalHost is the Host of the local target.
const LocalHost = "local"

// Local runs commands through /bin/sh on this machine.
type Local struct {
	// Shell defaults to "sh".
	Shell string
}

// Host implements Target.
func (Local) Host() string { return LocalHost }

// Exec implements Target. A non-zero exit is returned as *exec.ExitError.
func (l Local) Exec(ctx context.Context, command string) ([]byte, []byte, error) {
	shell := l.Shell
	if shell == "" {
		shell = "sh"
	}

	// #nosec G204
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
