package cli

import (
	"fmt"

	"github.com/repomash/repomash/internal/repodata"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <dir>...",
		Short: "Read back generated metadata and report what it records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, dir := range args {
				summary, err := repodata.Verify(dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %d packages (revision %d, primary %s)\n",
					dir, summary.Packages, summary.Revision, summary.Primary)
			}
			return nil
		},
	}
}
