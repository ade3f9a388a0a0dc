package scanner

import "context"

// ScannedPackage represents a package file found during scanning
type ScannedPackage struct {
	Path string
	Size int64
}

// Scanner interface for discovering package files under a tree
type Scanner interface {
	// Scan recursively scans a directory for packages
	Scan(ctx context.Context, dir string) ([]ScannedPackage, error)
}
