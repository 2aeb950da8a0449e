package handlers

import (
	"context"
	"fmt"

	"github.com/shikifyj/corosync-config-tool/internal/config"
	"github.com/shikifyj/corosync-config-tool/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	wizardFileExists       = wizard.FileExists
	wizardConfirmOverwrite = wizard.ConfirmOverwrite
	wizardRunWizard        = wizard.RunWizard
	wizardBuildTopology    = wizard.BuildTopology
	wizardWriteTopology    = wizard.WriteTopology
)

// Init runs the topology wizard and writes the result to outputPath.
func Init(ctx context.Context, outputPath string) error {
	if wizardFileExists(outputPath) {
		ok, err := wizardConfirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := wizardRunWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	topo, err := wizardBuildTopology(result)
	if err != nil {
		return err
	}

	if err := wizardWriteTopology(topo, outputPath, result.CorosyncVersion); err != nil {
		return fmt.Errorf("failed to write topology: %w", err)
	}

	printInitSuccess(outputPath, topo, result.CorosyncVersion)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("corosync-config-tool")
	fmt.Println("====================")
	fmt.Println()
	fmt.Println("This wizard creates a cluster topology: the cluster name and,")
	fmt.Println("for every node, its name and one heartbeat address per ring.")
	fmt.Println()
}

func printInitSuccess(outputPath string, topo *config.Topology, version int) {
	fmt.Println()
	fmt.Println("Topology saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Cluster Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:     %s\n", topo.ClusterName)
	fmt.Printf("  Corosync: %d\n", version)
	fmt.Printf("  Nodes:    %d\n", len(topo.Nodes))
	if len(topo.Nodes) > 0 {
		fmt.Printf("  Rings:    %d\n", len(topo.Nodes[0].HeartbeatLines))
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review the generated config:\n")
	fmt.Printf("     corosync-config-tool render conf --version %d -t %s\n", version, outputPath)
	fmt.Println()
	fmt.Println("  2. Install it on every node:")
	fmt.Printf("     corosync-config-tool apply --version %d -t %s\n", version, outputPath)
	fmt.Println()
}
