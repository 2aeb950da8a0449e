package config

import "errors"

// DefaultTopologyFile is the topology file used when none is given.
const DefaultTopologyFile = "corosync_config.yaml"

var (
	// ErrConfigLoad wraps every failure to read, parse or validate a topology file.
	ErrConfigLoad = errors.New("config load error")

	// ErrNotLoaded is returned by derivations on a topology whose load failed.
	ErrNotLoaded = errors.New("topology not loaded")

	// ErrNodeExists is returned when adding a node whose name is taken.
	ErrNodeExists = errors.New("node already exists")

	// ErrNodeNotFound is returned when a named node does not exist.
	ErrNodeNotFound = errors.New("node not found")

	// ErrMissingNodeID is returned when id-aware rendering meets a node without id.
	ErrMissingNodeID = errors.New("node has no id")
)

// Topology describes a corosync cluster.
type Topology struct {
	ClusterName string `yaml:"cluster" mapstructure:"cluster"`
	BindNetAddr string `yaml:"bindnetaddr" mapstructure:"bindnetaddr"`
	Nodes       []Node `yaml:"node" mapstructure:"node"`

	// loadErr is set when the topology came from a failed Load.
	loadErr error
}

// Node is one cluster member.
type Node struct {
	Name string `yaml:"name" mapstructure:"name"`

	// HeartbeatLines holds one address per ring; index i is ring i.
	HeartbeatLines []string `yaml:"heartbeat_line" mapstructure:"heartbeat_line"`

	// ID is the corosync nodeid. Only needed for id-aware node lists.
	ID *int `yaml:"id,omitempty" mapstructure:"id"`

	// SSHUser and SSHPort override the global SSH settings for this node.
	SSHUser string `yaml:"ssh_user,omitempty" mapstructure:"ssh_user"`
	SSHPort int    `yaml:"ssh_port,omitempty" mapstructure:"ssh_port"`
}

// Address is the address used to reach the node, its ring 0 heartbeat line.
func (n Node) Address() string {
	if len(n.HeartbeatLines) == 0 {
		return ""
	}
	return n.HeartbeatLines[0]
}
