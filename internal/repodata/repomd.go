package repodata

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// repomd mirrors the index document a createrepo run leaves in
// repodata/repomd.xml.
type repomd struct {
	XMLName  xml.Name     `xml:"repomd"`
	Revision int64        `xml:"revision"`
	Data     []repomdData `xml:"data"`
}

type repomdData struct {
	Type      string         `xml:"type,attr"`
	Checksum  repomdChecksum `xml:"checksum"`
	Location  repomdLocation `xml:"location"`
	Timestamp int64          `xml:"timestamp"`
	Size      int64          `xml:"size"`
	OpenSize  int64          `xml:"open-size"`
}

type repomdChecksum struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type repomdLocation struct {
	Href string `xml:"href,attr"`
}

// primaryMetadata picks up only the package count from the primary blob; the
// per-package entries are not needed to judge whether a refresh took.
type primaryMetadata struct {
	XMLName  xml.Name `xml:"metadata"`
	Packages int      `xml:"packages,attr"`
}

// Summary describes the state of a generated metadata directory.
type Summary struct {
	Revision int64
	Primary  string
	Packages int
}

// Verify reads back the metadata under dir and reports what the indexer
// recorded. It fails if repomd.xml is missing, lists no primary entry, or the
// primary blob cannot be opened and decoded.
func Verify(dir string) (*Summary, error) {
	repomdPath := filepath.Join(dir, "repodata", "repomd.xml")
	data, err := os.ReadFile(repomdPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", repomdPath, err)
	}

	var md repomd
	if err := xml.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", repomdPath, err)
	}

	var primary *repomdData
	for i := range md.Data {
		if md.Data[i].Type == "primary" {
			primary = &md.Data[i]
			break
		}
	}
	if primary == nil {
		return nil, fmt.Errorf("no primary entry in %s", repomdPath)
	}

	blobPath := filepath.Join(dir, filepath.FromSlash(primary.Location.Href))
	r, err := openBlob(blobPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open primary metadata: %w", err)
	}
	defer r.Close()

	var meta primaryMetadata
	if err := xml.NewDecoder(r).Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode primary metadata: %w", err)
	}

	return &Summary{
		Revision: md.Revision,
		Primary:  primary.Location.Href,
		Packages: meta.Packages,
	}, nil
}

// openBlob opens a metadata blob, transparently decompressing by suffix.
func openBlob(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &blobReader{Reader: gr, closers: []io.Closer{gr, f}}, nil
	case strings.HasSuffix(path, ".xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &blobReader{Reader: xr, closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

type blobReader struct {
	io.Reader
	closers []io.Closer
}

func (b *blobReader) Close() error {
	var first error
	for _, c := range b.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
