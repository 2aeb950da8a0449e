package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/shikifyj/corosync-config-tool/internal/config"
	"github.com/shikifyj/corosync-config-tool/internal/runner"
	"github.com/shikifyj/corosync-config-tool/internal/ui"
)

// Exec runs command on every node in order, or only on this machine when
// local is set. It stops at the first node where the command fails.
func Exec(ctx context.Context, env *Env, command string, local bool) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("command is empty")
	}
	r := env.newRunner()

	if local {
		res, err := r.Run(ctx, command, nil)
		printResult(env, runner.LocalHost, res, err)
		return err
	}

	return env.forEachNode(env.loadTopology(), func(node config.Node, s Session) error {
		res, err := r.Run(ctx, command, s)
		printResult(env, fmt.Sprintf("%s (%s)", node.Name, s.Host()), res, err)
		return err
	})
}

func printResult(env *Env, where string, res runner.Result, err error) {
	switch {
	case err != nil:
		ui.Fail(env.Out, "%s", where)
	case env.Settings.DryRun:
		ui.Warn(env.Out, "%s: dry-run", where)
	default:
		ui.OK(env.Out, "%s", where)
	}
	if out := strings.TrimRight(res.Output, "\n"); out != "" {
		fmt.Fprintln(env.Out, ui.DimStyle.Render(out))
	}
}
