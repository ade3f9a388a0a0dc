package models

import "fmt"

// Header holds the package header tags the update pipeline consumes.
// A nil slice means the corresponding tag is absent from the header.
type Header struct {
	Name      string
	Version   string
	Release   string
	Arch      string
	Summary   string
	SourceRPM string
	BuildTime int64

	// Architecture restrictions declared by the package
	ExcludeArch   []string
	ExclusiveArch []string
}

// NVR returns the name-version-release identity string of the package.
func (h *Header) NVR() string {
	return fmt.Sprintf("%s-%s-%s", h.Name, h.Version, h.Release)
}

// Package represents a package file together with its header metadata.
type Package struct {
	Header

	// File information
	Path       string
	Size       int64
	Digest     string
	DigestAlgo string
}

// ID returns a stable identity for duplicate detection within one compose run.
func (p *Package) ID() string {
	return fmt.Sprintf("%s.%s", p.NVR(), p.Arch)
}
