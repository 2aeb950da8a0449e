package commands

import (
	"github.com/spf13/cobra"

	"github.com/shikifyj/corosync-config-tool/cmd/corosync-config-tool/handlers"
)

// Check returns the command that probes every node's SSH port.
func Check() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every node's SSH port is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, handlers.Check)
		},
	}
}
