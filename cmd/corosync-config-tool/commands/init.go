package commands

import (
	"github.com/spf13/cobra"

	"github.com/shikifyj/corosync-config-tool/cmd/corosync-config-tool/handlers"
	"github.com/shikifyj/corosync-config-tool/internal/config"
)

// Init returns the command for interactively creating a cluster topology.
//
// Flags:
//
//	--output, -o: Path to output file (default "corosync_config.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a cluster topology",
		Long: `Interactively create a cluster topology file.

The wizard asks for the cluster name, the corosync version and, for
every node, its name, its heartbeat addresses (one per ring) and its
node id.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultTopologyFile, "Output file path")

	return cmd
}
