// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/shikifyj/corosync-config-tool/internal/config"
	"github.com/shikifyj/corosync-config-tool/internal/logging"
	"github.com/shikifyj/corosync-config-tool/internal/metrics"
	"github.com/shikifyj/corosync-config-tool/internal/platform/ssh"
	"github.com/shikifyj/corosync-config-tool/internal/runner"
	"github.com/shikifyj/corosync-config-tool/internal/settings"
	"github.com/shikifyj/corosync-config-tool/internal/ui"
	"github.com/shikifyj/corosync-config-tool/internal/util/netutil"
)

// Session is an open connection to one node.
type Session interface {
	runner.Target
	Connected() bool
	Err() error
	Close() error
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// initLogging opens the per-run log file.
	initLogging = logging.Init

	// openSession connects to a node.
	openSession = func(cfg ssh.Config) Session { return ssh.Open(cfg) }

	// localTarget runs commands on this machine.
	localTarget runner.Target = runner.Local{}

	// hostIP reports the address written into every log line.
	hostIP = netutil.HostIP

	// isInteractive reports whether prompts can be shown.
	isInteractive = ui.IsInteractive

	// readPassword prompts for the SSH password.
	readPassword = ui.ReadPassword
)

// Env carries what every handler needs for one invocation.
type Env struct {
	Settings *settings.Settings
	Log      logr.Logger
	Metrics  *metrics.Recorder
	Out      io.Writer

	logCloser io.Closer
	prompted  bool
}

// NewEnv opens the log file for a run started at start.
func NewEnv(s *settings.Settings, start time.Time) (*Env, error) {
	log, closer, err := initLogging(s.LogDir, start, logging.Options{Verbosity: s.Verbose})
	if err != nil {
		return nil, err
	}
	return &Env{
		Settings:  s,
		Log:       log,
		Metrics:   metrics.NewRecorder(),
		Out:       os.Stdout,
		logCloser: closer,
	}, nil
}

// Close writes the metrics file when configured and closes the log.
func (e *Env) Close() error {
	var errs []error
	if e.Settings != nil && e.Settings.MetricsFile != "" {
		if err := e.Metrics.WriteTextfile(e.Settings.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}
	if e.logCloser != nil {
		if err := e.logCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close log: %w", err))
		}
	}
	return errors.Join(errs...)
}

// loadTopology loads the configured topology file. A failed load is
// logged and yields an unloaded topology; the first derivation reports it.
func (e *Env) loadTopology() *config.Topology {
	return config.Load(e.Settings.Topology, e.Log)
}

func (e *Env) newRunner() *runner.Runner {
	return runner.New(e.Log,
		runner.WithMetrics(e.Metrics),
		runner.WithDryRun(e.Settings.DryRun),
		runner.WithLocal(localTarget),
		runner.WithHostIP(hostIP),
	)
}

// ensureCredentials asks for the SSH password when neither a password nor
// a key is configured and a terminal is attached.
func (e *Env) ensureCredentials() error {
	if e.prompted || e.Settings.HasCredentials() || !isInteractive() {
		return nil
	}
	e.prompted = true
	pw, err := readPassword(os.Stderr, "SSH password: ")
	if err != nil {
		return err
	}
	e.Settings.SSHPassword = pw
	return nil
}

// connect opens a session to node. Connection failures are logged and
// returned; the session is closed in that case.
func (e *Env) connect(node config.Node, key []byte) (Session, error) {
	s := openSession(e.Settings.SSHConfig(node, key))
	e.Metrics.ObserveSession(s.Connected())
	if !s.Connected() {
		err := s.Err()
		if err == nil {
			err = ssh.ErrDisconnected
		}
		e.Log.Error(err, "failed to open session", "node", node.Name)
		return nil, fmt.Errorf("node %s: %w", node.Name, err)
	}
	return s, nil
}

// forEachNode connects to every node in order and calls fn with the open
// session. It stops at the first failure.
func (e *Env) forEachNode(topo *config.Topology, fn func(node config.Node, s Session) error) error {
	if !topo.Loaded() {
		_, err := topo.Name()
		return err
	}
	if err := e.ensureCredentials(); err != nil {
		return err
	}
	key, err := e.Settings.ReadKey()
	if err != nil {
		return err
	}

	for _, node := range topo.Nodes {
		if err := e.withNode(node, key, fn); err != nil {
			return err
		}
	}
	return nil
}

func (e *Env) withNode(node config.Node, key []byte, fn func(config.Node, Session) error) error {
	if e.Settings.DryRun {
		return fn(node, dryRunSession{host: node.Address()})
	}
	s, err := e.connect(node, key)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return fn(node, s)
}

// dryRunSession stands in for a session when nothing is executed.
type dryRunSession struct{ host string }

func (d dryRunSession) Host() string { return d.host }
func (d dryRunSession) Exec(_ context.Context, _ string) ([]byte, []byte, error) {
	return nil, nil, errors.New("dry-run session cannot execute")
}
func (dryRunSession) Connected() bool { return true }
func (dryRunSession) Err() error      { return nil }
func (dryRunSession) Close() error    { return nil }
