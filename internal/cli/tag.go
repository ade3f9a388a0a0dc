package cli

import (
	"fmt"

	"github.com/repomash/repomash/internal/mash"
	"github.com/spf13/cobra"
)

// NewTagCmd creates the tag command
func NewTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <repo>...",
		Short: "Resolve the build tags repositories are composed from",
		Long: `Looks up each repository's mash configuration next to the main mash
configuration file and prints the build tag it pulls from.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := mash.NewResolver(cfg.MashConf)
			out := cmd.OutOrStdout()

			for _, repo := range args {
				tag, ok := resolver.Tag(repo)
				if !ok {
					return fmt.Errorf("no build tag for repository %s", repo)
				}
				fmt.Fprintf(out, "%s\t%s\n", repo, tag)
			}
			return nil
		},
	}
}
