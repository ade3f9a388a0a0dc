package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/repomash/repomash/internal/models"
	"github.com/repomash/repomash/internal/repodata"
	"github.com/repomash/repomash/internal/rpmmeta"
	"github.com/repomash/repomash/internal/scanner"
	"github.com/repomash/repomash/internal/signer"
	"github.com/repomash/repomash/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewComposeCmd creates the compose command
func NewComposeCmd() *cobra.Command {
	var opts models.ComposeConfig

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Stage packages into per-architecture repositories and index them",
		Long: `Scans the input directory for packages, stages each one into the
per-architecture repository trees it is eligible for, regenerates the
repository metadata and verifies the result. Source packages are staged
into an SRPMS tree.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateComposeOptions(&opts); err != nil {
				return err
			}

			logrus.Info("Starting compose...")
			logrus.Debugf("Options: %+v", opts)

			return runCompose(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputDir, "input-dir", "i", ".", "Input directory to scan")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "./repo", "Output directory")
	cmd.Flags().StringSliceVar(&opts.Arches, "arch", []string{"x86_64"}, "Architectures to compose")
	cmd.Flags().StringVarP(&opts.GPGKeyPath, "gpg-key", "k", "", "Path to GPG private key for signing repomd.xml")
	cmd.Flags().StringVarP(&opts.GPGPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")

	return cmd
}

func validateComposeOptions(opts *models.ComposeConfig) error {
	if opts.InputDir == "" {
		return &models.RepoError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("input-dir is required"),
		}
	}
	if opts.OutputDir == "" {
		return &models.RepoError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("output-dir is required"),
		}
	}
	if len(opts.Arches) == 0 {
		return &models.RepoError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("at least one architecture is required"),
		}
	}
	return nil
}

func runCompose(ctx context.Context, opts *models.ComposeConfig) error {
	// Step 1: Scan for packages
	logrus.Infof("Scanning directory: %s", opts.InputDir)
	sc := scanner.NewFileSystemScanner()
	scanned, err := sc.Scan(ctx, opts.InputDir)
	if err != nil {
		return &models.RepoError{Type: models.ErrScan, Path: opts.InputDir, Err: err}
	}

	if len(scanned) == 0 {
		logrus.Warn("No packages found in input directory")
		return nil
	}

	// Step 2: Initialize signer
	var gpgSigner signer.Signer
	if opts.GPGKeyPath != "" {
		gpgSigner, err = signer.NewGPGSigner(opts.GPGKeyPath, opts.GPGPassphrase)
		if err != nil {
			return &models.RepoError{
				Type: models.ErrSign,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		logrus.Info("GPG signer initialized")
	}

	// Step 3: Read headers and plan per-directory staging
	plan := make(map[string][]models.Package)
	add := func(dir string, pkg models.Package) {
		if dups := utils.DetectConflicts(plan[dir], []models.Package{pkg}); len(dups) > 0 {
			logrus.Warnf("Package %s conflicts with an already staged package, skipping %s", pkg.ID(), pkg.Path)
			return
		}
		plan[dir] = append(plan[dir], pkg)
	}

	for _, s := range scanned {
		pkg, err := rpmmeta.ReadPackage(s.Path, cfg.DigestAlgo())
		if err != nil {
			logrus.Warnf("Failed to read %s: %v", s.Path, err)
			continue
		}

		if s.SourcePackage() {
			add(filepath.Join(opts.OutputDir, "SRPMS"), *pkg)
			continue
		}

		for _, arch := range opts.Arches {
			if pkg.Arch != arch && pkg.Arch != "noarch" {
				continue
			}
			if rpmmeta.Excluded(&pkg.Header, arch) {
				logrus.Debugf("Skipping %s for %s", pkg.ID(), arch)
				continue
			}
			add(filepath.Join(opts.OutputDir, arch), *pkg)
		}
	}

	if len(plan) == 0 {
		logrus.Warn("No packages eligible for the requested architectures")
		return nil
	}

	dirs := make([]string, 0, len(plan))
	for dir := range plan {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	// Step 4: Stage package files
	for _, dir := range dirs {
		for _, pkg := range plan[dir] {
			dst := filepath.Join(dir, filepath.Base(pkg.Path))
			copyNeeded, err := utils.ShouldStage(&pkg, dst)
			if err != nil {
				return &models.RepoError{Type: models.ErrStage, Path: dst, Err: err}
			}
			if !copyNeeded {
				logrus.Debugf("Already staged: %s", dst)
				continue
			}
			if err := utils.CopyFile(pkg.Path, dst); err != nil {
				return &models.RepoError{Type: models.ErrStage, Path: dst, Err: err}
			}
			logrus.Debugf("Staged %s", dst)
		}
		logrus.Infof("Staged %d packages into %s", len(plan[dir]), dir)
	}

	// Step 5: Regenerate, verify and sign metadata per directory
	m := repodata.NewManager(&repodata.Createrepo{
		Bin:      cfg.CreaterepoBin,
		CacheDir: cfg.CreaterepoCacheDir,
	})

	for _, dir := range dirs {
		if err := repoLocks.Do(dir, func() error { return m.Refresh(ctx, dir) }); err != nil {
			return err
		}

		summary, err := repodata.Verify(dir)
		if err != nil {
			return &models.RepoError{Type: models.ErrIndex, Path: dir, Err: err}
		}
		logrus.Infof("Indexed %s: %d packages", dir, summary.Packages)

		if gpgSigner != nil {
			if err := signRepomd(gpgSigner, dir); err != nil {
				return err
			}
		}
	}

	logrus.Info("Compose completed successfully!")
	logrus.Infof("Output directory: %s", opts.OutputDir)

	return nil
}

// signRepomd writes a detached armored signature next to repomd.xml.
func signRepomd(s signer.Signer, dir string) error {
	repomdPath := filepath.Join(dir, "repodata", "repomd.xml")

	data, err := os.ReadFile(repomdPath)
	if err != nil {
		return &models.RepoError{Type: models.ErrSign, Path: repomdPath, Err: err}
	}

	sig, err := s.SignDetached(data)
	if err != nil {
		return &models.RepoError{Type: models.ErrSign, Path: repomdPath, Err: err}
	}

	sigPath := repomdPath + ".asc"
	if err := utils.WriteFile(sigPath, sig, 0644); err != nil {
		return &models.RepoError{Type: models.ErrSign, Path: sigPath, Err: err}
	}

	logrus.Debugf("Signed %s", repomdPath)
	return nil
}
