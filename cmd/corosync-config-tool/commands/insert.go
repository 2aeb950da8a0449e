package commands

import (
	"github.com/spf13/cobra"

	"github.com/shikifyj/corosync-config-tool/cmd/corosync-config-tool/handlers"
	"github.com/shikifyj/corosync-config-tool/internal/textedit"
)

// Insert returns the command that splices text into a file at an anchor.
func Insert() *cobra.Command {
	var (
		opts      handlers.InsertOptions
		above     string
		under     string
		anchor    string
		placement string
	)

	cmd := &cobra.Command{
		Use:   "insert FILE",
		Short: "Insert text into a file above or under an anchor",
		Long: `Insert text into a file above or under an anchor.

The anchor is matched line by line and must appear verbatim; the first
match wins. Without an anchor the text is appended. --above and --under
are shorthands for --anchor with --placement above or under; --anchor
alone inserts above the anchor. The result is printed unless --write is
given.

Examples:
  corosync-config-tool insert corosync.conf --above 'quorum {' --content-file nodelist.txt
  corosync-config-tool insert corosync.conf --anchor 'totem {' --placement under --content '	token: 3000'
  corosync-config-tool render nodelist | corosync-config-tool insert corosync.conf --above 'quorum {' --content-file /dev/stdin --write`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.File = args[0]
			switch {
			case above != "":
				opts.Anchor, opts.Placement = above, textedit.Above
			case under != "":
				opts.Anchor, opts.Placement = under, textedit.Under
			case anchor != "" || placement != "":
				p, err := textedit.ParsePlacement(placement)
				if err != nil {
					return err
				}
				opts.Anchor, opts.Placement = anchor, p
			default:
				opts.Placement = textedit.Append
			}
			return handlers.Insert(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&above, "above", "", "Insert before the first line of this anchor")
	cmd.Flags().StringVar(&under, "under", "", "Insert after the last line of this anchor")
	cmd.Flags().StringVar(&anchor, "anchor", "", "Anchor text, used with --placement")
	cmd.Flags().StringVar(&placement, "placement", "", "Where to insert relative to --anchor: above (default), under or append")
	cmd.Flags().StringVar(&opts.Content, "content", "", "Text to insert")
	cmd.Flags().StringVar(&opts.ContentFile, "content-file", "", "Read the text to insert from this file")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to FILE")
	cmd.MarkFlagsMutuallyExclusive("above", "under", "anchor")
	cmd.MarkFlagsMutuallyExclusive("above", "under", "placement")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")

	return cmd
}
