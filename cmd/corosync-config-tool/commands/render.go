package commands

import (
	"github.com/spf13/cobra"

	"github.com/shikifyj/corosync-config-tool/cmd/corosync-config-tool/handlers"
)

// Render returns the command that prints configuration fragments derived
// from the topology.
func Render() *cobra.Command {
	var opts handlers.RenderOptions

	cmd := &cobra.Command{
		Use:   "render {nodelist|interfaces|bindnetaddr|conf}",
		Short: "Print a corosync configuration fragment",
		Long: `Print a corosync configuration fragment derived from the topology.

  nodelist     the nodelist block (--ids adds nodeid, required by corosync 3)
  interfaces   interface blocks for every ring after ring 0
  bindnetaddr  the ring 0 bind network address (--all for every ring)
  conf         a complete corosync.conf for --version`,
		ValidArgs: handlers.RenderTargets,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *handlers.Env) error {
				return handlers.Render(env, args[0], opts)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.IDs, "ids", false, "Include nodeid in the nodelist")
	cmd.Flags().IntVar(&opts.Version, "version", 3, "Corosync major version (2 or 3)")
	cmd.Flags().StringVar(&opts.BaseFile, "base", "", "Base corosync.conf instead of the built-in one")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Print the bind address of every ring")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Verify the rendered nodelist against the topology instead of printing it")

	return cmd
}
