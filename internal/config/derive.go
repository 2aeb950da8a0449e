package config

import (
	"fmt"

	"github.com/shikifyj/corosync-config-tool/internal/render"
	"github.com/shikifyj/corosync-config-tool/internal/util/netutil"
)

// Name returns the cluster name.
func (t *Topology) Name() (string, error) {
	if err := t.check(); err != nil {
		return "", err
	}
	return t.ClusterName, nil
}

// BindNetAddrList returns the /24 network of every heartbeat line of the
// first node, in ring order. The first node is the reference for all rings.
func (t *Topology) BindNetAddrList() ([]string, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if len(t.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrNotLoaded)
	}

	ref := t.Nodes[0]
	addrs := make([]string, 0, len(ref.HeartbeatLines))
	for ring, ip := range ref.HeartbeatLines {
		prefix, err := netutil.NetworkPrefix24(ip)
		if err != nil {
			return nil, fmt.Errorf("node %s ring %d: %w", ref.Name, ring, err)
		}
		addrs = append(addrs, prefix)
	}
	return addrs, nil
}

// BindNetAddress returns the configured cluster-wide bind address, falling back
// to the ring 0 network of the first node.
func (t *Topology) BindNetAddress() (string, error) {
	if err := t.check(); err != nil {
		return "", err
	}
	if t.BindNetAddr != "" {
		return t.BindNetAddr, nil
	}
	addrs, err := t.BindNetAddrList()
	if err != nil {
		return "", err
	}
	return addrs[0], nil
}

// InterfaceBlocks renders one interface block per ring after ring 0.
func (t *Topology) InterfaceBlocks() (string, error) {
	addrs, err := t.BindNetAddrList()
	if err != nil {
		return "", err
	}
	return render.RenderInterfaces(addrs), nil
}

// NodeListBasic renders the nodelist without node ids.
func (t *Topology) NodeListBasic() (string, error) {
	return t.nodeList(false)
}

// NodeListWithIDs renders the nodelist including nodeid for every node.
func (t *Topology) NodeListWithIDs() (string, error) {
	return t.nodeList(true)
}

func (t *Topology) nodeList(withIDs bool) (string, error) {
	if err := t.check(); err != nil {
		return "", err
	}

	blocks := make([]render.NodeBlock, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		b := render.NodeBlock{Name: n.Name, HeartbeatLines: n.HeartbeatLines}
		if withIDs {
			if n.ID == nil {
				return "", fmt.Errorf("%w: %s", ErrMissingNodeID, n.Name)
			}
			b.ID = n.ID
		}
		blocks = append(blocks, b)
	}
	return render.RenderNodeList(blocks), nil
}
