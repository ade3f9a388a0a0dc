package rpmmeta

import "github.com/repomash/repomash/internal/models"

// Excluded determines if a package should be excluded from a given
// architecture, either because the header explicitly lists the architecture
// in ExcludeArch, or because the header is exclusive to other architectures.
func Excluded(hdr *models.Header, arch string) bool {
	if len(hdr.ExcludeArch) > 0 && containsArch(hdr.ExcludeArch, arch) {
		return true
	}
	if len(hdr.ExclusiveArch) > 0 && !containsArch(hdr.ExclusiveArch, arch) {
		return true
	}
	return false
}

func containsArch(arches []string, arch string) bool {
	for _, a := range arches {
		if a == arch {
			return true
		}
	}
	return false
}
