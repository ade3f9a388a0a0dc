package rpmmeta

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cavaliergopher/rpm"
	"github.com/repomash/repomash/internal/models"
	"github.com/sassoftware/go-rpmutils"
	"github.com/sirupsen/logrus"
)

// headerReader is one strategy for extracting a header from an open package
// file. Two are kept for compatibility with packages produced by differing
// generations of rpm tooling; ReadHeader resolves between them per call.
type headerReader interface {
	name() string
	read(f *os.File) (*models.Header, error)
}

var active = defaultReaders()

func defaultReaders() []headerReader {
	return []headerReader{transactionReader{}, directReader{}}
}

// SelectHeaderAPI pins the header-reading strategy for the process. Valid
// names are "transaction" and "direct"; the empty string restores the default
// fallback chain. Call once at startup, before any ReadHeader.
func SelectHeaderAPI(api string) error {
	switch api {
	case "":
		active = defaultReaders()
	case "transaction":
		active = []headerReader{transactionReader{}}
	case "direct":
		active = []headerReader{directReader{}}
	default:
		return fmt.Errorf("unknown header api %q (want \"transaction\" or \"direct\")", api)
	}
	return nil
}

// ReadHeader opens the package at path read-only and extracts its header.
// The descriptor is closed on every path. A missing file and an unparsable
// file both surface as PackageNotFoundError.
func ReadHeader(path string) (*models.Header, error) {
	logrus.Debugf("Reading package header of %s", path)

	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, &PackageNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	var lastErr error
	for _, r := range active {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, &PackageNotFoundError{Path: path, Err: err}
		}
		hdr, err := r.read(f)
		if err == nil {
			return hdr, nil
		}
		lastErr = err
		logrus.Debugf("%s header read of %s failed: %v", r.name(), path, err)
	}
	return nil, &PackageNotFoundError{Path: path, Err: lastErr}
}

// ReadPackage reads the header of the package at path and combines it with
// file size and content digest into a full package record.
func ReadPackage(path, algo string) (*models.Package, error) {
	hdr, err := ReadHeader(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	digest, err := FileDigest(path, algo)
	if err != nil {
		return nil, err
	}

	return &models.Package{
		Header:     *hdr,
		Path:       path,
		Size:       info.Size(),
		Digest:     digest,
		DigestAlgo: digestAlgo(algo),
	}, nil
}

// transactionReader extracts headers with go-rpmutils, which parses the full
// lead/signature/header sequence the way a librpm transaction set does.
type transactionReader struct{}

func (transactionReader) name() string { return "transaction" }

func (transactionReader) read(f *os.File) (*models.Header, error) {
	pkg, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, err
	}

	hdr := pkg.Header
	return &models.Header{
		Name:          getStringTag(hdr, rpmutils.NAME),
		Version:       getStringTag(hdr, rpmutils.VERSION),
		Release:       getStringTag(hdr, rpmutils.RELEASE),
		Arch:          getStringTag(hdr, rpmutils.ARCH),
		Summary:       getStringTag(hdr, rpmutils.SUMMARY),
		SourceRPM:     getStringTag(hdr, rpmutils.SOURCERPM),
		BuildTime:     getIntTag(hdr, rpmutils.BUILDTIME),
		ExcludeArch:   getStringSliceTag(hdr, rpmutils.EXCLUDEARCH),
		ExclusiveArch: getStringSliceTag(hdr, rpmutils.EXCLUSIVEARCH),
	}, nil
}

// directReader extracts headers with the cavaliergopher parser, whose direct
// tag getters match the older header-from-package call convention.
type directReader struct{}

func (directReader) name() string { return "direct" }

func (directReader) read(f *os.File) (*models.Header, error) {
	pkg, err := rpm.Read(f)
	if err != nil {
		return nil, err
	}

	hdr := &models.Header{
		Name:          pkg.Name(),
		Version:       pkg.Version(),
		Release:       pkg.Release(),
		Arch:          pkg.Architecture(),
		Summary:       pkg.Summary(),
		SourceRPM:     pkg.SourceRPM(),
		ExcludeArch:   pkg.ExcludeArch(),
		ExclusiveArch: pkg.ExclusiveArch(),
	}
	if bt := pkg.BuildTime(); !bt.IsZero() {
		hdr.BuildTime = bt.Unix()
	}
	return hdr, nil
}

// getStringTag safely gets a string tag from an rpm header
func getStringTag(hdr *rpmutils.RpmHeader, tag int) string {
	val, err := hdr.Get(tag)
	if err != nil {
		return ""
	}

	// Handle different types that might be returned
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	default:
		return fmt.Sprintf("%v", v)
	}

	return ""
}

// getIntTag safely gets an integer tag from an rpm header
func getIntTag(hdr *rpmutils.RpmHeader, tag int) int64 {
	val, err := hdr.Get(tag)
	if err != nil {
		return 0
	}
	switch v := val.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case []int32:
		if len(v) > 0 {
			return int64(v[0])
		}
	case []int64:
		if len(v) > 0 {
			return v[0]
		}
	}
	return 0
}

// getStringSliceTag safely gets a string slice tag from an rpm header
func getStringSliceTag(hdr *rpmutils.RpmHeader, tag int) []string {
	val, err := hdr.Get(tag)
	if err != nil {
		return nil
	}
	if slice, ok := val.([]string); ok {
		// Filter out empty strings
		var result []string
		for _, s := range slice {
			s = strings.TrimSpace(s)
			if s != "" {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}
