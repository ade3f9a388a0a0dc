package cli

import (
	"github.com/repomash/repomash/internal/config"
	"github.com/repomash/repomash/internal/rpmmeta"
	"github.com/repomash/repomash/internal/syncutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// cfg carries the settings shared by all subcommands. PersistentPreRunE
// replaces it when --config names a file.
var cfg = config.Default()

// repoLocks serializes metadata work per repository directory.
var repoLocks syncutil.KeyedMutex

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:   "repomash",
		Short: "Maintain mash-composed RPM update repositories",
		Long: `Repomash inspects RPM packages and maintains mash-composed update
repositories: it stages packages into per-architecture trees, regenerates
repository metadata through createrepo, and resolves the build tags that
repositories are composed from.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}

			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			return rpmmeta.SelectHeaderAPI(cfg.HeaderAPI)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to configuration file")

	// Add subcommands
	rootCmd.AddCommand(NewInspectCmd())
	rootCmd.AddCommand(NewNVRCmd())
	rootCmd.AddCommand(NewComposeCmd())
	rootCmd.AddCommand(NewRefreshCmd())
	rootCmd.AddCommand(NewVerifyCmd())
	rootCmd.AddCommand(NewTagCmd())

	return rootCmd
}
