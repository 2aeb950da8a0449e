package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	ClusterName string
	// BindNetAddr is optional; it defaults to the first node's ring 0 network.
	BindNetAddr string

	CorosyncVersion int
	Nodes           []NodeAnswer
}

// NodeAnswer holds the raw answers for one node.
type NodeAnswer struct {
	Name string
	// HeartbeatLines is a comma-separated list, one address per ring.
	HeartbeatLines string
	// ID is the nodeid as typed; empty means none.
	ID string
}

// Function variables for dependency injection in tests.
var (
	runIdentityGroup = runClusterIdentityGroup
	runNodeGroup     = runNodeQuestions
)

// RunWizard runs the interactive topology wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{CorosyncVersion: 3}

	nodeCount := 2
	if err := runIdentityGroup(ctx, result, &nodeCount); err != nil {
		return nil, fmt.Errorf("cluster identity: %w", err)
	}

	result.Nodes = make([]NodeAnswer, nodeCount)
	for i := range result.Nodes {
		answer := &result.Nodes[i]
		answer.ID = fmt.Sprint(i + 1)
		if err := runNodeGroup(ctx, i, result.CorosyncVersion, answer); err != nil {
			return nil, fmt.Errorf("node %d: %w", i+1, err)
		}
	}
	return result, nil
}
