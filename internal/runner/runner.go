// Package runner executes shell commands on cluster nodes or locally.
//
// Every invocation is logged as "hostIP - command - (ok, output)". A failed
// command is returned as a *CommandError; callers stop at the first one and
// the CLI exits non-zero, so a provisioning step is never half applied.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/shikifyj/corosync-config-tool/internal/metrics"
	"github.com/shikifyj/corosync-config-tool/internal/util/netutil"
)

// ErrCommandFailed matches every *CommandError with errors.Is.
var ErrCommandFailed = errors.New("command failed")

// Target executes commands somewhere. *ssh.Session implements it.
type Target interface {
	Host() string
	Exec(ctx context.Context, command string) (stdout, stderr []byte, err error)
}

// Result is the outcome of one command.
type Result struct {
	OK     bool
	Output string
}

func (r Result) String() string {
	return fmt.Sprintf("(%t, %q)", r.OK, r.Output)
}

// CommandError reports a command that failed locally or remotely.
type CommandError struct {
	Host    string
	Command string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed on %s: %v", e.Command, e.Host, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrCommandFailed) true.
func (e *CommandError) Is(target error) bool { return target == ErrCommandFailed }

// Runner runs commands and logs each invocation.
type Runner struct {
	log     logr.Logger
	metrics *metrics.Recorder
	local   Target
	hostIP  func() string
	dryRun  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithMetrics records every command in m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithDryRun logs commands without executing them.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) { r.dryRun = dryRun }
}

// WithLocal replaces the local shell.
func WithLocal(t Target) Option {
	return func(r *Runner) { r.local = t }
}

// WithHostIP replaces local address discovery.
func WithHostIP(fn func() string) Option {
	return func(r *Runner) { r.hostIP = fn }
}

// New creates a Runner that logs to log.
func New(log logr.Logger, opts ...Option) *Runner {
	r := &Runner{
		log:    log,
		local:  Local{},
		hostIP: netutil.HostIP,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DryRun reports whether commands are only logged.
func (r *Runner) DryRun() bool {
	return r.dryRun
}

// Run executes command on target, or locally when target is nil.
// Output is stdout on success and stderr (or stdout if empty) on failure.
func (r *Runner) Run(ctx context.Context, command string, target Target) (Result, error) {
	if target == nil {
		target = r.local
	}
	host := target.Host()

	if r.dryRun {
		r.log.Info(fmt.Sprintf("%s - %s - dry-run", r.hostIP(), command), "target", host)
		return Result{OK: true}, nil
	}

	start := time.Now()
	stdout, stderr, err := target.Exec(ctx, command)
	r.metrics.ObserveCommand(host, err == nil, time.Since(start))

	res := Result{OK: err == nil, Output: string(stdout)}
	if err != nil && len(stderr) > 0 {
		res.Output = string(stderr)
	}

	line := fmt.Sprintf("%s - %s - %s", r.hostIP(), command, res)
	if err != nil {
		r.log.Error(err, line, "target", host)
		return res, &CommandError{Host: host, Command: command, Output: res.Output, Err: err}
	}
	r.log.Info(line, "target", host)
	return res, nil
}

// RunAll runs commands in order and stops at the first failure.
func (r *Runner) RunAll(ctx context.Context, commands []string, target Target) ([]Result, error) {
	results := make([]Result, 0, len(commands))
	for _, cmd := range commands {
		res, err := r.Run(ctx, cmd, target)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
