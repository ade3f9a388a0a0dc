package rpmmeta

import (
	"errors"
	"fmt"
)

// ErrPackageNotFound is returned when a package file is missing or no header
// can be parsed from it. Callers cannot distinguish the two cases.
var ErrPackageNotFound = errors.New("package not found")

// PackageNotFoundError wraps ErrPackageNotFound with the offending path.
type PackageNotFoundError struct {
	Path string
	Err  error
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("no package header at %s: %v", e.Path, e.Err)
}

func (e *PackageNotFoundError) Unwrap() []error {
	return []error{ErrPackageNotFound, e.Err}
}

// ErrInvalidNVR is returned for identity strings with too few fields to split.
var ErrInvalidNVR = errors.New("invalid nvr")

// InvalidNVRError wraps ErrInvalidNVR with the rejected identity string.
type InvalidNVRError struct {
	NVR string
}

func (e *InvalidNVRError) Error() string {
	return fmt.Sprintf("invalid nvr %q: need at least name-version-release", e.NVR)
}

func (e *InvalidNVRError) Unwrap() error {
	return ErrInvalidNVR
}
