package commands

import (
	"github.com/spf13/cobra"

	"github.com/shikifyj/corosync-config-tool/cmd/corosync-config-tool/handlers"
	"github.com/shikifyj/corosync-config-tool/internal/corosync"
)

// Apply returns the command that installs corosync.conf on the cluster.
func Apply() *cobra.Command {
	var opts handlers.ApplyOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Build corosync.conf and install it on every node",
		Long: `Build corosync.conf from the topology and install it on every node.

Nodes are processed in topology order over SSH, using each node's first
heartbeat address. The existing file is kept as corosync.conf.bak. The
first failing command stops the run and the tool exits non-zero.

Examples:
  # Install on every node and restart corosync
  corosync-config-tool apply --restart

  # Only show what would run
  corosync-config-tool apply --dry-run

  # Install on this machine
  corosync-config-tool apply --local`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, func(env *handlers.Env) error {
				return handlers.Apply(cmd.Context(), env, opts)
			})
		},
	}

	cmd.Flags().IntVar(&opts.Version, "version", 3, "Corosync major version (2 or 3)")
	cmd.Flags().StringVar(&opts.Path, "path", corosync.DefaultPath, "Config file path on the nodes")
	cmd.Flags().StringVar(&opts.BaseFile, "base", "", "Base corosync.conf instead of the built-in one")
	cmd.Flags().BoolVar(&opts.Restart, "restart", false, "Restart corosync after writing the config")
	cmd.Flags().BoolVar(&opts.Local, "local", false, "Install on this machine only")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Print status lines instead of the progress dashboard")

	return cmd
}
