package utils

import (
	"github.com/repomash/repomash/internal/models"
)

// DetectConflicts returns packages from incoming that collide with an
// existing package. Two packages collide when they share an identity but
// carry different content; re-staging an identical file is not a conflict.
func DetectConflicts(existing, incoming []models.Package) []models.Package {
	digests := make(map[string]string)
	for _, pkg := range existing {
		digests[pkg.ID()] = pkg.Digest
	}

	var conflicts []models.Package
	for _, pkg := range incoming {
		if digest, ok := digests[pkg.ID()]; ok && digest != pkg.Digest {
			conflicts = append(conflicts, pkg)
		}
	}
	return conflicts
}
