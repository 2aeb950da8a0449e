package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shikifyj/corosync-config-tool/internal/config"
	"github.com/shikifyj/corosync-config-tool/internal/corosync"
	"github.com/shikifyj/corosync-config-tool/internal/runner"
	"github.com/shikifyj/corosync-config-tool/internal/ui"
	"github.com/shikifyj/corosync-config-tool/internal/ui/tui"
	"github.com/shikifyj/corosync-config-tool/internal/util/prerequisites"
)

// runApplyTUI shows the progress dashboard; replaced in tests.
var runApplyTUI = tui.RunApplyTUI

// checkLocalTools looks up the programs a local install needs.
var checkLocalTools = prerequisites.Check

// ApplyOptions configures Apply.
type ApplyOptions struct {
	// Version is the corosync major version, 2 or 3.
	Version int
	// Path is the config file on the nodes.
	Path string
	// BaseFile replaces the embedded stock config when set.
	BaseFile string
	Restart  bool
	// Local installs on this machine instead of every node.
	Local bool
	NoTUI bool
}

// Apply builds corosync.conf from the topology and installs it on every
// node, one after the other. The first failed command stops the run.
func Apply(ctx context.Context, env *Env, opts ApplyOptions) error {
	topo := env.loadTopology()
	conf, err := buildConf(topo, opts.Version, opts.BaseFile)
	if err != nil {
		return err
	}
	if opts.Path == "" {
		opts.Path = corosync.DefaultPath
	}
	cmds := corosync.Commands(conf, opts.Path, opts.Restart)
	r := env.newRunner()

	if opts.Local {
		if !env.Settings.DryRun {
			results := checkLocalTools(prerequisites.LocalInstallTools(opts.Restart))
			if err := results.Error(); err != nil {
				ui.Fail(env.Out, "local: %v", err)
				return err
			}
			for _, name := range results.Optional() {
				ui.Warn(env.Out, "local: %s not found in PATH", name)
			}
		}
		if _, err := r.RunAll(ctx, cmds, nil); err != nil {
			ui.Fail(env.Out, "local: %v", err)
			return err
		}
		ui.OK(env.Out, "local: %s installed", opts.Path)
		return nil
	}

	if opts.NoTUI || env.Settings.DryRun || !isInteractive() {
		return applyToNodes(ctx, env, r, topo, cmds, nil)
	}

	if err := env.ensureCredentials(); err != nil {
		return err
	}
	name, _ := topo.Name()
	names := make([]string, 0, len(topo.Nodes))
	for _, n := range topo.Nodes {
		names = append(names, n.Name)
	}
	return runApplyTUI(ctx, func(ctx context.Context, ch chan<- tui.NodeStepMsg) error {
		return applyToNodes(ctx, env, r, topo, cmds, ch)
	}, name, names)
}

// applyToNodes runs cmds on every node. Progress goes to ch when it is
// set, otherwise status lines are printed.
func applyToNodes(
	ctx context.Context,
	env *Env,
	r *runner.Runner,
	topo *config.Topology,
	cmds []string,
	ch chan<- tui.NodeStepMsg,
) error {
	return env.forEachNode(topo, func(node config.Node, s Session) error {
		for i, cmd := range cmds {
			send(ch, tui.NodeStepMsg{Node: node.Name, Step: i, Total: len(cmds), Label: stepLabel(cmd)})
			if _, err := r.Run(ctx, cmd, s); err != nil {
				send(ch, tui.NodeStepMsg{Node: node.Name, Step: i, Total: len(cmds), Err: err})
				if ch == nil {
					ui.Fail(env.Out, "%s (%s): %v", node.Name, s.Host(), err)
				}
				return err
			}
		}
		send(ch, tui.NodeStepMsg{Node: node.Name, Step: len(cmds) - 1, Total: len(cmds), Done: true})
		if ch == nil {
			if r.DryRun() {
				ui.Warn(env.Out, "%s (%s): dry-run, %d commands logged", node.Name, s.Host(), len(cmds))
			} else {
				ui.OK(env.Out, "%s (%s): configuration applied", node.Name, s.Host())
			}
		}
		return nil
	})
}

func send(ch chan<- tui.NodeStepMsg, msg tui.NodeStepMsg) {
	if ch != nil {
		ch <- msg
	}
}

// stepLabel shortens a command to its first line for display.
func stepLabel(cmd string) string {
	line, _, _ := strings.Cut(cmd, "\n")
	const maxLen = 48
	if len(line) > maxLen {
		line = line[:maxLen-3] + "..."
	}
	return line
}

// buildConf assembles corosync.conf from baseFile, or from the stock
// config for version when baseFile is empty.
func buildConf(topo *config.Topology, version int, baseFile string) (string, error) {
	var base string
	if baseFile != "" {
		// #nosec G304
		data, err := os.ReadFile(baseFile)
		if err != nil {
			return "", fmt.Errorf("failed to read base config: %w", err)
		}
		base = string(data)
	} else {
		var err error
		if base, err = corosync.Base(version); err != nil {
			return "", err
		}
	}
	return corosync.Build(base, topo, version)
}
