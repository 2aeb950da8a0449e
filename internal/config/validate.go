package config

import (
	"errors"
	"fmt"

	"github.com/shikifyj/corosync-config-tool/internal/util/netutil"
)

// Validate checks the topology for errors.
func (t *Topology) Validate() error {
	if t.ClusterName == "" {
		return errors.New("cluster is required")
	}
	if t.BindNetAddr != "" && !netutil.IsIPv4(t.BindNetAddr) {
		return fmt.Errorf("bindnetaddr %q is not an IPv4 address", t.BindNetAddr)
	}
	if len(t.Nodes) == 0 {
		return errors.New("at least one node is required")
	}

	names := make(map[string]bool, len(t.Nodes))
	ids := make(map[int]string, len(t.Nodes))
	rings := len(t.Nodes[0].HeartbeatLines)
	for i, n := range t.Nodes {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		if names[n.Name] {
			return fmt.Errorf("node %d: %w: %s", i, ErrNodeExists, n.Name)
		}
		names[n.Name] = true

		if len(n.HeartbeatLines) != rings {
			return fmt.Errorf("node %s: has %d heartbeat lines, node %s has %d",
				n.Name, len(n.HeartbeatLines), t.Nodes[0].Name, rings)
		}
		if n.ID != nil {
			if other, dup := ids[*n.ID]; dup {
				return fmt.Errorf("node %s: id %d already used by %s", n.Name, *n.ID, other)
			}
			ids[*n.ID] = n.Name
		}
	}
	return nil
}

// Validate checks a single node.
func (n Node) Validate() error {
	if n.Name == "" {
		return errors.New("name is required")
	}
	if len(n.HeartbeatLines) == 0 {
		return fmt.Errorf("node %s: at least one heartbeat_line is required", n.Name)
	}
	for ring, addr := range n.HeartbeatLines {
		if !netutil.IsIPv4(addr) {
			return fmt.Errorf("node %s: heartbeat_line[%d] %q is not an IPv4 address", n.Name, ring, addr)
		}
	}
	if n.ID != nil && *n.ID < 1 {
		return fmt.Errorf("node %s: id must be positive, got %d", n.Name, *n.ID)
	}
	if n.SSHPort < 0 || n.SSHPort > 65535 {
		return fmt.Errorf("node %s: ssh_port %d out of range", n.Name, n.SSHPort)
	}
	return nil
}
