package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/repomash/repomash/internal/models"
	"github.com/repomash/repomash/internal/rpmmeta"
)

// CopyFile copies a file from src to dst
func CopyFile(src, dst string) error {
	// Create destination directory if it doesn't exist
	dstDir := filepath.Dir(dst)
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return err
	}

	// Open source file
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	// Create destination file
	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	// Copy contents
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	// Sync to disk
	return dstFile.Sync()
}

// WriteFile writes data to a file, creating directories as needed
func WriteFile(path string, data []byte, perm os.FileMode) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, perm)
}

// EnsureDir ensures a directory exists, creating it if necessary
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ShouldStage reports whether the package file needs to be copied to dstPath.
// An existing destination with the same size and content digest is left
// alone, so re-running a compose does not rewrite the tree.
func ShouldStage(pkg *models.Package, dstPath string) (bool, error) {
	dstInfo, err := os.Stat(dstPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("cannot stat destination: %w", err)
	}

	if dstInfo.Size() != pkg.Size {
		return true, nil
	}

	if pkg.Digest != "" {
		dstDigest, err := rpmmeta.FileDigest(dstPath, pkg.DigestAlgo)
		if err != nil {
			return true, nil
		}
		if dstDigest != pkg.Digest {
			return true, nil
		}
	}

	return false, nil
}
