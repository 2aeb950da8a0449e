package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/shikifyj/corosync-config-tool/cmd/corosync-config-tool/handlers"
)

// Exec returns the command that runs a shell command on every node.
func Exec() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "exec -- COMMAND...",
		Short: "Run a shell command on every node",
		Long: `Run a shell command on every node in topology order.

Every invocation is written to the run's log file. The first node where
the command fails stops the run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *handlers.Env) error {
				return handlers.Exec(cmd.Context(), env, strings.Join(args, " "), local)
			})
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Run on this machine only")

	return cmd
}
