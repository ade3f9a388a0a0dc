package rpmmeta

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

const (
	// DigestSHA256 is the default content digest algorithm.
	DigestSHA256 = "sha256"

	// DigestSHA1 reproduces digests recorded by the legacy pipeline. Only use
	// it where stored digests must keep validating.
	DigestSHA1 = "sha1"
)

// FileDigest returns the hex-encoded digest of the file's full content. The
// whole file is read into memory before hashing.
func FileDigest(path, algo string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	switch digestAlgo(algo) {
	case DigestSHA256:
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	case DigestSHA1:
		sum := sha1.Sum(data)
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unsupported digest algorithm %q", algo)
	}
}

func digestAlgo(algo string) string {
	if algo == "" {
		return DigestSHA256
	}
	return algo
}
