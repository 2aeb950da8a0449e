package wizard

import (
	"fmt"
	"strings"

	"github.com/shikifyj/corosync-config-tool/internal/config"
)

// BuildTopology creates a validated Topology from the wizard result.
func BuildTopology(result *WizardResult) (*config.Topology, error) {
	topo := &config.Topology{
		ClusterName: strings.TrimSpace(result.ClusterName),
		BindNetAddr: strings.TrimSpace(result.BindNetAddr),
		Nodes:       make([]config.Node, 0, len(result.Nodes)),
	}

	for i, answer := range result.Nodes {
		node := config.Node{
			Name:           strings.TrimSpace(answer.Name),
			HeartbeatLines: parseList(answer.HeartbeatLines),
		}
		if strings.TrimSpace(answer.ID) != "" {
			id, err := parseNodeID(answer.ID)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i+1, err)
			}
			node.ID = &id
		} else if result.CorosyncVersion >= 3 {
			return nil, fmt.Errorf("node %d: %w", i+1, config.ErrMissingNodeID)
		}
		topo.Nodes = append(topo.Nodes, node)
	}

	if err := topo.Validate(); err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}
	return topo, nil
}
