package commands

import (
	"github.com/spf13/cobra"

	"github.com/shikifyj/corosync-config-tool/cmd/corosync-config-tool/handlers"
)

// Node returns the command group that edits the topology's node list.
func Node() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Add, remove or list topology nodes",
	}
	cmd.AddCommand(nodeAdd())
	cmd.AddCommand(nodeRemove())
	cmd.AddCommand(nodeList())
	return cmd
}

func nodeAdd() *cobra.Command {
	var opts handlers.NodeAddOptions

	cmd := &cobra.Command{
		Use:     "add NAME",
		Short:   "Add a node",
		Example: `  corosync-config-tool node add node-c --line 10.0.0.13 --line 10.0.1.13 --auto-id`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			return withEnv(cmd, func(env *handlers.Env) error {
				return handlers.NodeAdd(env, opts)
			})
		},
	}

	cmd.Flags().StringSliceVar(&opts.HeartbeatLines, "line", nil, "Heartbeat address, one per ring in ring order")
	cmd.Flags().IntVar(&opts.ID, "id", 0, "Node id")
	cmd.Flags().BoolVar(&opts.AutoID, "auto-id", false, "Use the next free node id")
	cmd.Flags().StringVar(&opts.SSHUser, "node-ssh-user", "", "SSH user for this node")
	cmd.Flags().IntVar(&opts.SSHPort, "node-ssh-port", 0, "SSH port for this node")
	_ = cmd.MarkFlagRequired("line")
	cmd.MarkFlagsMutuallyExclusive("id", "auto-id")

	return cmd
}

func nodeRemove() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *handlers.Env) error {
				return handlers.NodeRemove(env, args[0])
			})
		},
	}
}

func nodeList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, handlers.NodeList)
		},
	}
}
