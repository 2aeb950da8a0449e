package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shikifyj/corosync-config-tool/internal/config"
	"github.com/shikifyj/corosync-config-tool/internal/ui"
)

// NodeAddOptions configures NodeAdd.
type NodeAddOptions struct {
	Name           string
	HeartbeatLines []string
	// ID is the nodeid; 0 means none unless AutoID is set.
	ID     int
	AutoID bool

	SSHUser string
	SSHPort int
}

// NodeAdd adds a node to the topology file.
func NodeAdd(env *Env, opts NodeAddOptions) error {
	topo := env.loadTopology()
	if _, err := topo.Name(); err != nil {
		return err
	}

	node := config.Node{
		Name:           opts.Name,
		HeartbeatLines: opts.HeartbeatLines,
		SSHUser:        opts.SSHUser,
		SSHPort:        opts.SSHPort,
	}
	switch {
	case opts.ID != 0:
		id := opts.ID
		node.ID = &id
	case opts.AutoID:
		id := topo.NextID()
		node.ID = &id
	}

	if err := topo.AddNode(node); err != nil {
		return err
	}
	if err := topo.SaveFile(env.Settings.Topology); err != nil {
		return err
	}
	env.Log.Info("node added", "node", node.Name, "topology", env.Settings.Topology)
	ui.OK(env.Out, "node %s added to %s", node.Name, env.Settings.Topology)
	return nil
}

// NodeRemove removes a node from the topology file.
func NodeRemove(env *Env, name string) error {
	topo := env.loadTopology()
	if err := topo.RemoveNode(name); err != nil {
		return err
	}
	if err := topo.SaveFile(env.Settings.Topology); err != nil {
		return err
	}
	env.Log.Info("node removed", "node", name, "topology", env.Settings.Topology)
	ui.OK(env.Out, "node %s removed from %s", name, env.Settings.Topology)
	return nil
}

// NodeList prints the nodes of the topology as a table.
func NodeList(env *Env) error {
	topo := env.loadTopology()
	name, err := topo.Name()
	if err != nil {
		return err
	}

	ui.Section(env.Out, "Cluster "+name)
	w := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tHEARTBEAT LINES")
	for _, n := range topo.Nodes {
		id := "-"
		if n.ID != nil {
			id = strconv.Itoa(*n.ID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.Name, id, strings.Join(n.HeartbeatLines, ", "))
	}
	return w.Flush()
}
