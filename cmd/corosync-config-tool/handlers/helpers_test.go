package handlers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shikifyj/corosync-config-tool/internal/config"
	"github.com/shikifyj/corosync-config-tool/internal/logging"
	"github.com/shikifyj/corosync-config-tool/internal/metrics"
	"github.com/shikifyj/corosync-config-tool/internal/platform/ssh"
	"github.com/shikifyj/corosync-config-tool/internal/runner"
	"github.com/shikifyj/corosync-config-tool/internal/settings"
	"github.com/shikifyj/corosync-config-tool/internal/util/prerequisites"
)

const sampleTopology = `cluster: prod
node:
  - name: node-a
    heartbeat_line: [10.0.0.11, 10.0.1.11]
    id: 1
  - name: node-b
    heartbeat_line: [10.0.0.12, 10.0.1.12]
    id: 2
`

type testEnv struct {
	*Env
	out *bytes.Buffer
	log *bytes.Buffer
}

func newTestEnv(t *testing.T, topology string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultTopologyFile)
	if topology != "" {
		require.NoError(t, os.WriteFile(path, []byte(topology), 0o600))
	}

	out, logBuf := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Env: &Env{
			Settings: &settings.Settings{
				Topology:    path,
				LogDir:      dir,
				SSHUser:     "root",
				SSHPort:     22,
				SSHPassword: "pw",
				SSHTimeout:  time.Second,
			},
			Log:     logging.New(logBuf, logging.Options{}),
			Metrics: metrics.NewRecorder(),
			Out:     out,
		},
		out: out,
		log: logBuf,
	}
}

// fakeSession records commands and fails the ones listed in fail.
type fakeSession struct {
	host   string
	fail   map[string]bool
	mu     *sync.Mutex
	ran    *[]string
	closed bool
}

func (f *fakeSession) Host() string    { return f.host }
func (f *fakeSession) Connected() bool { return true }
func (f *fakeSession) Err() error      { return nil }
func (f *fakeSession) Close() error    { f.closed = true; return nil }

func (f *fakeSession) Exec(_ context.Context, cmd string) ([]byte, []byte, error) {
	f.mu.Lock()
	*f.ran = append(*f.ran, f.host+": "+firstLine(cmd))
	f.mu.Unlock()
	if f.fail[f.host] {
		return nil, []byte("permission denied\n"), errors.New("exit status 1")
	}
	return []byte("ok from " + f.host + "\n"), nil, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// sessionRecorder swaps openSession for fake sessions.
type sessionRecorder struct {
	mu       sync.Mutex
	ran      []string
	configs  []ssh.Config
	sessions []*fakeSession
	fail     map[string]bool
	refuse   map[string]bool
}

func stubSessions(t *testing.T) *sessionRecorder {
	t.Helper()
	rec := &sessionRecorder{fail: map[string]bool{}, refuse: map[string]bool{}}

	origOpen, origLocal, origHostIP, origInteractive := openSession, localTarget, hostIP, isInteractive
	origCheck := checkLocalTools
	t.Cleanup(func() {
		openSession, localTarget, hostIP, isInteractive = origOpen, origLocal, origHostIP, origInteractive
		checkLocalTools = origCheck
	})

	checkLocalTools = func([]prerequisites.Tool) *prerequisites.CheckResults {
		return &prerequisites.CheckResults{}
	}

	hostIP = func() string { return "192.0.2.1" }
	isInteractive = func() bool { return false }
	openSession = func(cfg ssh.Config) Session {
		rec.configs = append(rec.configs, cfg)
		if rec.refuse[cfg.Host] {
			return ssh.Open(ssh.Config{Host: cfg.Host})
		}
		s := &fakeSession{host: cfg.Host, fail: rec.fail, mu: &rec.mu, ran: &rec.ran}
		rec.sessions = append(rec.sessions, s)
		return s
	}
	localTarget = &fakeSession{host: runner.LocalHost, fail: rec.fail, mu: &rec.mu, ran: &rec.ran}
	return rec
}
