package commands

import (
	"github.com/spf13/cobra"

	"github.com/shikifyj/corosync-config-tool/cmd/corosync-config-tool/handlers"
)

// Keygen returns the command that creates an SSH key pair for node access.
func Keygen() *cobra.Command {
	var opts handlers.KeygenOptions

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an SSH key pair for node access",
		Long: `Generate an SSH key pair for node access.

Install the printed public key on every node and pass the private key
with --ssh-key (or COROSYNC_TOOL_SSH_KEY) instead of a password.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Keygen(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "ed25519", "Key type: ed25519 or rsa")
	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "Output directory")
	cmd.Flags().StringVar(&opts.Name, "name", "id_corosync", "Private key file name")
	cmd.Flags().StringVar(&opts.Comment, "comment", "corosync-config-tool", "Public key comment")

	return cmd
}
