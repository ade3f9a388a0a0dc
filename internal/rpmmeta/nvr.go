package rpmmeta

import (
	"fmt"
	"strings"
)

// NVR is the name-version-release identity of a package.
type NVR struct {
	Name    string
	Version string
	Release string
}

// String re-joins the identity with hyphens.
func (n NVR) String() string {
	return fmt.Sprintf("%s-%s-%s", n.Name, n.Version, n.Release)
}

// SplitNVR splits an identity string into name, version and release: the last
// hyphen-separated field is the release, the one before it the version, and
// the remaining leading fields (re-joined) form the name. Identity strings
// with fewer than three fields are rejected with InvalidNVRError.
func SplitNVR(s string) (NVR, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return NVR{}, &InvalidNVRError{NVR: s}
	}
	return NVR{
		Name:    strings.Join(parts[:len(parts)-2], "-"),
		Version: parts[len(parts)-2],
		Release: parts[len(parts)-1],
	}, nil
}
