package config

import "fmt"

// Node returns the node with the given name.
func (t *Topology) Node(name string) (Node, error) {
	if err := t.check(); err != nil {
		return Node{}, err
	}
	for _, n := range t.Nodes {
		if n.Name == name {
			return n, nil
		}
	}
	return Node{}, fmt.Errorf("%w: %s", ErrNodeNotFound, name)
}

// AddNode appends a node. The node must be valid, have a unique name and
// (when set) a unique id, and carry as many heartbeat lines as the others.
func (t *Topology) AddNode(n Node) error {
	if err := t.check(); err != nil {
		return err
	}
	if err := n.Validate(); err != nil {
		return err
	}
	for _, existing := range t.Nodes {
		if existing.Name == n.Name {
			return fmt.Errorf("%w: %s", ErrNodeExists, n.Name)
		}
		if n.ID != nil && existing.ID != nil && *existing.ID == *n.ID {
			return fmt.Errorf("node %s: id %d already used by %s", n.Name, *n.ID, existing.Name)
		}
	}
	if len(t.Nodes) > 0 && len(n.HeartbeatLines) != len(t.Nodes[0].HeartbeatLines) {
		return fmt.Errorf("node %s: has %d heartbeat lines, cluster uses %d",
			n.Name, len(n.HeartbeatLines), len(t.Nodes[0].HeartbeatLines))
	}
	t.Nodes = append(t.Nodes, n)
	return nil
}

// RemoveNode deletes the named node.
func (t *Topology) RemoveNode(name string) error {
	if err := t.check(); err != nil {
		return err
	}
	for i, n := range t.Nodes {
		if n.Name == name {
			// fresh slice; earlier views of Nodes keep their contents
			nodes := make([]Node, 0, len(t.Nodes)-1)
			t.Nodes = append(append(nodes, t.Nodes[:i]...), t.Nodes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNodeNotFound, name)
}

// NextID returns one more than the highest node id in use.
func (t *Topology) NextID() int {
	next := 1
	if t == nil {
		return next
	}
	for _, n := range t.Nodes {
		if n.ID != nil && *n.ID >= next {
			next = *n.ID + 1
		}
	}
	return next
}
