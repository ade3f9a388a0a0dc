package cli

import (
	"github.com/repomash/repomash/internal/repodata"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRefreshCmd creates the refresh command
func NewRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <dir>...",
		Short: "Regenerate the metadata of repository directories",
		Long: `Creates each directory if it does not exist yet and regenerates its
repository metadata with the configured indexer. Work on the same
directory is serialized; distinct directories refresh independently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := repodata.NewManager(&repodata.Createrepo{
				Bin:      cfg.CreaterepoBin,
				CacheDir: cfg.CreaterepoCacheDir,
			})

			for _, dir := range args {
				err := repoLocks.Do(dir, func() error {
					return m.Refresh(cmd.Context(), dir)
				})
				if err != nil {
					return err
				}
				logrus.Infof("Refreshed metadata for %s", dir)
			}
			return nil
		},
	}
}
