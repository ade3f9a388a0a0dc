package rpmmeta

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/repomash/repomash/internal/models"
)

// stubReader stands in for a real header strategy so tests can steer the
// fallback chain without crafting full package files.
type stubReader struct {
	id    string
	hdr   *models.Header
	err   error
	calls *[]string
}

func (s stubReader) name() string { return s.id }

func (s stubReader) read(f *os.File) (*models.Header, error) {
	if s.calls != nil {
		*s.calls = append(*s.calls, s.id)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.hdr, nil
}

func TestReadHeaderMissingFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "header-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "nosuch-1.0-1.x86_64.rpm")
	hdr, err := ReadHeader(path)
	if err == nil {
		t.Fatalf("ReadHeader(%q) = %+v, want error", path, hdr)
	}
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("Error %v does not match ErrPackageNotFound", err)
	}
	var nfe *PackageNotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("Error %v is not a PackageNotFoundError", err)
	}
	if nfe.Path != path {
		t.Errorf("Error path = %q, want %q", nfe.Path, path)
	}
}

func TestReadHeaderMalformedFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "header-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := writeTempFile(t, tmpDir, "junk.rpm", []byte("this is not a package"))
	if _, err := ReadHeader(path); !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("ReadHeader on junk = %v, want ErrPackageNotFound", err)
	}
}

func TestReadHeaderClosesDescriptors(t *testing.T) {
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skipf("Cannot inspect open descriptors: %v", err)
	}
	before := len(entries)

	tmpDir, err := os.MkdirTemp("", "header-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := writeTempFile(t, tmpDir, "junk.rpm", []byte("still not a package"))
	for i := 0; i < 64; i++ {
		if _, err := ReadHeader(path); err == nil {
			t.Fatal("Expected header read of junk to fail")
		}
	}

	entries, err = os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Fatalf("Failed to re-read descriptor table: %v", err)
	}
	if after := len(entries); after > before {
		t.Errorf("Descriptor count grew from %d to %d", before, after)
	}
}

func TestReadHeaderFallback(t *testing.T) {
	defer func() { active = defaultReaders() }()

	tmpDir, err := os.MkdirTemp("", "header-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := writeTempFile(t, tmpDir, "pkg.rpm", []byte("payload"))
	want := &models.Header{Name: "zsh", Version: "5.7.1", Release: "1.fc31", Arch: "x86_64"}

	var calls []string
	active = []headerReader{
		stubReader{id: "first", err: errors.New("short read"), calls: &calls},
		stubReader{id: "second", hdr: want, calls: &calls},
	}

	hdr, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if hdr != want {
		t.Errorf("ReadHeader = %+v, want the fallback strategy's header", hdr)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("Strategy order = %v, want [first second]", calls)
	}
}

func TestReadHeaderAllStrategiesFail(t *testing.T) {
	defer func() { active = defaultReaders() }()

	tmpDir, err := os.MkdirTemp("", "header-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := writeTempFile(t, tmpDir, "pkg.rpm", []byte("payload"))
	lastErr := errors.New("bad header region")
	active = []headerReader{
		stubReader{id: "first", err: errors.New("bad lead")},
		stubReader{id: "second", err: lastErr},
	}

	_, err = ReadHeader(path)
	if !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("ReadHeader = %v, want ErrPackageNotFound", err)
	}
	if !errors.Is(err, lastErr) {
		t.Errorf("Error %v does not wrap the last strategy failure", err)
	}
}

func TestSelectHeaderAPI(t *testing.T) {
	defer func() { active = defaultReaders() }()

	if err := SelectHeaderAPI("transaction"); err != nil {
		t.Fatalf("Failed to pin transaction strategy: %v", err)
	}
	if len(active) != 1 || active[0].name() != "transaction" {
		t.Errorf("Pinned chain = %v, want transaction only", readerNames())
	}

	if err := SelectHeaderAPI("direct"); err != nil {
		t.Fatalf("Failed to pin direct strategy: %v", err)
	}
	if len(active) != 1 || active[0].name() != "direct" {
		t.Errorf("Pinned chain = %v, want direct only", readerNames())
	}

	if err := SelectHeaderAPI(""); err != nil {
		t.Fatalf("Failed to restore default chain: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("Default chain = %v, want both strategies", readerNames())
	}

	if err := SelectHeaderAPI("librpm"); err == nil {
		t.Error("Expected error for unknown strategy name")
	}
	if len(active) != 2 {
		t.Errorf("Chain changed on rejected name: %v", readerNames())
	}
}

func readerNames() []string {
	names := make([]string, 0, len(active))
	for _, r := range active {
		names = append(names, r.name())
	}
	return names
}

func TestReadPackage(t *testing.T) {
	defer func() { active = defaultReaders() }()

	tmpDir, err := os.MkdirTemp("", "header-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	content := []byte("not a real package body")
	path := writeTempFile(t, tmpDir, "kernel-5.3.7-301.fc31.x86_64.rpm", content)
	active = []headerReader{stubReader{id: "stub", hdr: &models.Header{
		Name:    "kernel",
		Version: "5.3.7",
		Release: "301.fc31",
		Arch:    "x86_64",
	}}}

	pkg, err := ReadPackage(path, "")
	if err != nil {
		t.Fatalf("ReadPackage failed: %v", err)
	}
	if pkg.Path != path {
		t.Errorf("Path = %q, want %q", pkg.Path, path)
	}
	if pkg.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", pkg.Size, len(content))
	}
	if pkg.DigestAlgo != DigestSHA256 {
		t.Errorf("DigestAlgo = %q, want %q", pkg.DigestAlgo, DigestSHA256)
	}
	wantDigest, err := FileDigest(path, DigestSHA256)
	if err != nil {
		t.Fatalf("Failed to digest fixture: %v", err)
	}
	if pkg.Digest != wantDigest {
		t.Errorf("Digest = %s, want %s", pkg.Digest, wantDigest)
	}
	if got := pkg.ID(); got != "kernel-5.3.7-301.fc31.x86_64" {
		t.Errorf("ID = %q, want kernel-5.3.7-301.fc31.x86_64", got)
	}
}
