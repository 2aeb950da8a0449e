package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shikifyj/corosync-config-tool/internal/logging"
	"github.com/shikifyj/corosync-config-tool/internal/metrics"
	"github.com/shikifyj/corosync-config-tool/internal/platform/ssh"
)

// fakeTarget records commands and answers from a table.
type fakeTarget struct {
	host     string
	failOn   map[string]bool
	executed []string
}

func (f *fakeTarget) Host() string { return f.host }

func (f *fakeTarget) Exec(_ context.Context, command string) ([]byte, []byte, error) {
	f.executed = append(f.executed, command)
	if f.failOn[command] {
		return nil, []byte("failed: " + command), errors.New("exit status 1")
	}
	return []byte("ok: " + command), nil, nil
}

func newTestRunner(buf *bytes.Buffer, opts ...Option) *Runner {
	opts = append([]Option{WithHostIP(func() string { return "192.0.2.10" })}, opts...)
	return New(logging.New(buf, logging.Options{}), opts...)
}

func TestRun_Local(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRunner(&buf)

	res, err := r.Run(context.Background(), "echo hello", nil)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "hello\n", res.Output)
	assert.Contains(t, buf.String(), ` - INFO - 192.0.2.10 - echo hello - (true, "hello\n") - {"target": "local"}`)
}

func TestRun_LocalFailure(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRunner(&buf)

	res, err := r.Run(context.Background(), "echo oops >&2; exit 1", nil)
	require.Error(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "oops\n", res.Output)

	assert.ErrorIs(t, err, ErrCommandFailed)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, LocalHost, cmdErr.Host)
	assert.Equal(t, "oops\n", cmdErr.Output)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())

	assert.Contains(t, buf.String(), " - ERROR - 192.0.2.10 - echo oops >&2; exit 1 - (false, \"oops\\n\")")
}

func TestRun_FailureWithoutStderrKeepsStdout(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRunner(&buf)

	res, err := r.Run(context.Background(), "echo partial; exit 3", nil)
	require.Error(t, err)
	assert.Equal(t, "partial\n", res.Output)
}

func TestRun_Remote(t *testing.T) {
	var buf bytes.Buffer
	target := &fakeTarget{host: "10.0.0.11"}
	r := newTestRunner(&buf)

	res, err := r.Run(context.Background(), "hostname", target)
	require.NoError(t, err)
	assert.Equal(t, Result{OK: true, Output: "ok: hostname"}, res)
	assert.Equal(t, []string{"hostname"}, target.executed)
	assert.Contains(t, buf.String(), `target="10.0.0.11"`)
}

func TestRun_DisconnectedSessionFails(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRunner(&buf)

	session := ssh.Open(ssh.Config{Host: "127.0.0.1"})
	require.False(t, session.Connected())

	res, err := r.Run(context.Background(), "hostname", session)
	require.Error(t, err)
	assert.False(t, res.OK)
	assert.ErrorIs(t, err, ErrCommandFailed)

	var connErr *ssh.ConnectionError
	assert.ErrorAs(t, err, &connErr)
}

func TestRunAll_StopsAtFirstFailure(t *testing.T) {
	var buf bytes.Buffer
	target := &fakeTarget{host: "10.0.0.11", failOn: map[string]bool{"two": true}}
	r := newTestRunner(&buf)

	results, err := r.RunAll(context.Background(), []string{"one", "two", "three"}, target)
	require.Error(t, err)
	assert.Equal(t, []string{"one", "two"}, target.executed)
	assert.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
}

func TestRun_DryRun(t *testing.T) {
	var buf bytes.Buffer
	target := &fakeTarget{host: "10.0.0.11"}
	r := newTestRunner(&buf, WithDryRun(true))
	assert.True(t, r.DryRun())

	res, err := r.Run(context.Background(), "systemctl restart corosync", target)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Empty(t, target.executed)
	assert.Contains(t, buf.String(), "systemctl restart corosync - dry-run")
}

func TestRun_Metrics(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.NewRecorder()
	target := &fakeTarget{host: "10.0.0.11", failOn: map[string]bool{"bad": true}}
	r := newTestRunner(&buf, WithMetrics(m))

	_, _ = r.Run(context.Background(), "good", target)
	_, _ = r.Run(context.Background(), "bad", target)

	count, err := testutil.GatherAndCount(m.Registry(), "corosync_config_tool_runner_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRun_CustomLocal(t *testing.T) {
	var buf bytes.Buffer
	local := &fakeTarget{host: LocalHost}
	r := newTestRunner(&buf, WithLocal(local))

	_, err := r.Run(context.Background(), "corosync-cfgtool -s", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"corosync-cfgtool -s"}, local.executed)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, `(true, "a\nb")`, Result{OK: true, Output: "a\nb"}.String())
}

func TestCommandError(t *testing.T) {
	err := &CommandError{Host: "h", Command: "c", Err: errors.New("exit status 2")}
	assert.True(t, strings.HasPrefix(err.Error(), `command "c" failed on h`))
	assert.ErrorIs(t, err, ErrCommandFailed)
}
