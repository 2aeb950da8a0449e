package handlers

import (
	"fmt"

	"github.com/shikifyj/corosync-config-tool/internal/ui"
	"github.com/shikifyj/corosync-config-tool/internal/util/netutil"
)

// portOpen probes a TCP port; replaced in tests.
var portOpen = netutil.PortOpen

// Check probes the SSH port of every node once and reports which nodes are
// unreachable. It does not authenticate.
func Check(env *Env) error {
	topo := env.loadTopology()
	if _, err := topo.Name(); err != nil {
		return err
	}

	var down int
	for _, node := range topo.Nodes {
		port := env.Settings.SSHPort
		if node.SSHPort != 0 {
			port = node.SSHPort
		}
		if portOpen(node.Address(), port, env.Settings.SSHTimeout) {
			ui.OK(env.Out, "%s %s:%d reachable", node.Name, node.Address(), port)
			env.Log.Info("port reachable", "node", node.Name, "port", port)
			continue
		}
		down++
		ui.Fail(env.Out, "%s %s:%d unreachable", node.Name, node.Address(), port)
		env.Log.Error(fmt.Errorf("port %d closed", port), "node unreachable", "node", node.Name)
	}

	if down > 0 {
		return fmt.Errorf("%d of %d nodes unreachable", down, len(topo.Nodes))
	}
	return nil
}
