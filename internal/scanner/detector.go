package scanner

import (
	"bytes"
	"os"
	"path/filepath"
)

// rpmMagic is the lead signature every rpm package starts with
var rpmMagic = []byte{0xED, 0xAB, 0xEE, 0xDB}

// IsPackageFile reports whether path looks like an rpm package, by magic
// bytes or by extension. Files it cannot open are reported as errors so the
// caller can decide whether to skip them.
func IsPackageFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, len(rpmMagic))
	n, err := f.Read(header)
	if err != nil && n == 0 {
		return false, err
	}
	header = header[:n]

	if bytes.HasPrefix(header, rpmMagic) {
		return true, nil
	}
	return filepath.Ext(path) == ".rpm", nil
}
