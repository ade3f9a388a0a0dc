package signer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

func newTestKey(t *testing.T, dir string) (string, *openpgp.Entity) {
	t.Helper()

	entity, err := openpgp.NewEntity("Repo Master", "", "masher@example.com", nil)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PrivateKeyType, nil)
	if err != nil {
		t.Fatalf("Failed to start armor: %v", err)
	}
	if err := entity.SerializePrivate(w, nil); err != nil {
		t.Fatalf("Failed to serialize key: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish armor: %v", err)
	}

	path := filepath.Join(dir, "signing.key")
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}
	return path, entity
}

func TestSignDetached(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "signer-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	keyPath, entity := newTestKey(t, tmpDir)
	s, err := NewGPGSigner(keyPath, "")
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}

	data := []byte("<repomd>index</repomd>")
	sig, err := s.SignDetached(data)
	if err != nil {
		t.Fatalf("SignDetached failed: %v", err)
	}
	if !strings.Contains(string(sig), "BEGIN PGP SIGNATURE") {
		t.Errorf("Signature not armored: %q", sig)
	}

	keyring := openpgp.EntityList{entity}
	if _, err := openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader(data), bytes.NewReader(sig), nil); err != nil {
		t.Errorf("Signature does not verify: %v", err)
	}
}

func TestPublicKey(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "signer-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	keyPath, _ := newTestKey(t, tmpDir)
	s, err := NewGPGSigner(keyPath, "")
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}

	pub, err := s.PublicKey()
	if err != nil {
		t.Fatalf("PublicKey failed: %v", err)
	}
	if !strings.Contains(string(pub), "BEGIN PGP PUBLIC KEY BLOCK") {
		t.Errorf("Public key not armored: %q", pub)
	}
}

func TestNewGPGSignerErrors(t *testing.T) {
	if _, err := NewGPGSigner("", ""); err == nil {
		t.Error("Expected error for empty key path")
	}
	if _, err := NewGPGSigner("/nonexistent/signing.key", ""); err == nil {
		t.Error("Expected error for missing key file")
	}
}
