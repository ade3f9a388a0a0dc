package cli

import (
	"fmt"

	"github.com/repomash/repomash/internal/rpmmeta"
	"github.com/spf13/cobra"
)

// NewNVRCmd creates the nvr command
func NewNVRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nvr <name-version-release>...",
		Short: "Split build identifiers into name, version and release",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				nvr, err := rpmmeta.SplitNVR(arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", nvr.Name, nvr.Version, nvr.Release)
			}
			return nil
		},
	}
}
