package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/repomash/repomash/internal/models"
	"github.com/repomash/repomash/internal/rpmmeta"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var arch string

	cmd := &cobra.Command{
		Use:   "inspect <package>...",
		Short: "Print the header metadata of package files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, path := range args {
				pkg, err := rpmmeta.ReadPackage(path, cfg.DigestAlgo())
				if err != nil {
					return &models.RepoError{Type: models.ErrHeaderRead, Err: err}
				}

				fmt.Fprintf(out, "%s\n", pkg.ID())
				if pkg.Summary != "" {
					fmt.Fprintf(out, "  Summary:       %s\n", pkg.Summary)
				}
				if pkg.SourceRPM != "" {
					fmt.Fprintf(out, "  Source:        %s\n", pkg.SourceRPM)
				}
				if pkg.BuildTime > 0 {
					built := time.Unix(pkg.BuildTime, 0).UTC().Format(time.RFC3339)
					fmt.Fprintf(out, "  Built:         %s\n", built)
				}
				fmt.Fprintf(out, "  Size:          %d\n", pkg.Size)
				fmt.Fprintf(out, "  Digest:        %s:%s\n", pkg.DigestAlgo, pkg.Digest)
				if len(pkg.ExcludeArch) > 0 {
					fmt.Fprintf(out, "  ExcludeArch:   %s\n", strings.Join(pkg.ExcludeArch, " "))
				}
				if len(pkg.ExclusiveArch) > 0 {
					fmt.Fprintf(out, "  ExclusiveArch: %s\n", strings.Join(pkg.ExclusiveArch, " "))
				}
				if arch != "" {
					if rpmmeta.Excluded(&pkg.Header, arch) {
						fmt.Fprintf(out, "  Eligible:      no (%s)\n", arch)
					} else {
						fmt.Fprintf(out, "  Eligible:      yes (%s)\n", arch)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&arch, "arch", "", "Report eligibility for this architecture")

	return cmd
}
