package handlers

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shikifyj/corosync-config-tool/internal/config"
	"github.com/shikifyj/corosync-config-tool/internal/render"
	"github.com/shikifyj/corosync-config-tool/internal/ui"
)

// Render targets.
const (
	RenderNodeList    = "nodelist"
	RenderInterfaces  = "interfaces"
	RenderBindNetAddr = "bindnetaddr"
	RenderConf        = "conf"
)

// RenderTargets lists the valid Render targets.
var RenderTargets = []string{RenderNodeList, RenderInterfaces, RenderBindNetAddr, RenderConf}

// RenderOptions configures Render.
type RenderOptions struct {
	// IDs adds nodeid to every node block.
	IDs bool
	// Version selects the stock config for RenderConf.
	Version int
	// BaseFile replaces the stock config for RenderConf.
	BaseFile string
	// All prints every ring's bind address instead of ring 0 only.
	All bool
	// Check reads the rendered nodelist back and compares it with the
	// topology instead of printing it.
	Check bool
}

// Render prints one fragment derived from the topology.
func Render(env *Env, target string, opts RenderOptions) error {
	topo := env.loadTopology()

	var (
		out string
		err error
	)
	switch target {
	case RenderNodeList:
		if opts.IDs {
			out, err = topo.NodeListWithIDs()
		} else {
			out, err = topo.NodeListBasic()
		}
	case RenderInterfaces:
		out, err = topo.InterfaceBlocks()
	case RenderBindNetAddr:
		if opts.All {
			var addrs []string
			addrs, err = topo.BindNetAddrList()
			out = strings.Join(addrs, "\n")
		} else {
			out, err = topo.BindNetAddress()
		}
	case RenderConf:
		out, err = buildConf(topo, opts.Version, opts.BaseFile)
	default:
		return fmt.Errorf("unknown render target %q (want one of %s)", target, strings.Join(RenderTargets, ", "))
	}
	if err != nil {
		return err
	}

	if opts.Check {
		if target != RenderNodeList {
			return fmt.Errorf("--check only applies to %s", RenderNodeList)
		}
		if err := checkNodeList(topo, out); err != nil {
			return err
		}
		ui.OK(env.Out, "%d node blocks match the topology", len(topo.Nodes))
		return nil
	}

	if out != "" {
		fmt.Fprintln(env.Out, strings.TrimRight(out, "\n"))
	}
	return nil
}

// checkNodeList verifies that every node block of a rendered nodelist
// carries the node's heartbeat lines in ring order.
func checkNodeList(topo *config.Topology, nodelist string) error {
	blocks := nodeBlocks(nodelist)
	if len(blocks) != len(topo.Nodes) {
		return fmt.Errorf("nodelist has %d node blocks, topology has %d nodes", len(blocks), len(topo.Nodes))
	}
	for i, n := range topo.Nodes {
		got := render.ParseRingAddrs(blocks[i])
		if !slices.Equal(got, n.HeartbeatLines) {
			return fmt.Errorf("node %s: rendered rings %v, want %v", n.Name, got, n.HeartbeatLines)
		}
	}
	return nil
}

// nodeBlocks splits a nodelist into the bodies of its node blocks.
func nodeBlocks(nodelist string) []string {
	var (
		blocks  []string
		current []string
		inside  bool
	)
	for _, line := range strings.Split(nodelist, "\n") {
		switch trimmed := strings.TrimSpace(line); {
		case trimmed == "node {":
			inside, current = true, nil
		case inside && trimmed == "}":
			blocks = append(blocks, strings.Join(current, "\n"))
			inside = false
		case inside:
			current = append(current, line)
		}
	}
	return blocks
}
